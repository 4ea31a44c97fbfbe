// Package plugin runs external hook programs when game events happen.
// Each plugin lives in its own directory with a plugin.json manifest and
// receives one JSON request on stdin per event it subscribes to.
package plugin

// Manifest describes a plugin's metadata and the events it handles.
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Executable  string   `json:"executable"`
	Events      []string `json:"events"`
}

// Handles reports whether the plugin subscribes to event.
// A "*" entry subscribes to every event.
func (m Manifest) Handles(event string) bool {
	for _, e := range m.Events {
		if e == event || e == "*" {
			return true
		}
	}
	return false
}

// Request is the event payload sent to a plugin.
type Request struct {
	Event       string `json:"event"`
	MatchID     string `json:"matchId"`
	Round       int    `json:"round"`
	Remaining   int    `json:"remaining,omitempty"`
	PlayerMove  string `json:"playerMove,omitempty"`
	AIMove      string `json:"aiMove,omitempty"`
	Outcome     string `json:"outcome,omitempty"`
	AIScore     int    `json:"aiScore"`
	PlayerScore int    `json:"playerScore"`
}

// Response is what a plugin writes to stdout.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}
