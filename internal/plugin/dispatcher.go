package plugin

import (
	"context"
	"log"

	"github.com/ayusman/rockpaper/internal/game"
)

// Runner executes one plugin request. *Executor implements it.
type Runner interface {
	Execute(ctx context.Context, plugin *Plugin, req *Request) (*Response, error)
}

// Dispatcher delivers game events to the plugins subscribed to them.
// Failures are logged and never reach the caller.
type Dispatcher struct {
	manager *Manager
	runner  Runner
}

// NewDispatcher creates a Dispatcher over the manager's plugins.
func NewDispatcher(manager *Manager, runner Runner) *Dispatcher {
	return &Dispatcher{manager: manager, runner: runner}
}

// Dispatch runs every subscriber of each event in order and returns the
// number of successful deliveries.
func (d *Dispatcher) Dispatch(ctx context.Context, matchID string, events []game.Event) int {
	delivered := 0
	for _, ev := range events {
		name := ev.Name()
		subs := d.manager.Subscribers(name)
		if len(subs) == 0 {
			continue
		}

		req := NewRequest(matchID, ev)
		for _, p := range subs {
			resp, err := d.runner.Execute(ctx, p, req)
			if err != nil {
				log.Printf("Hook %s for %s failed: %v", p.Manifest.Name, name, err)
				continue
			}
			if !resp.Success {
				log.Printf("Hook %s for %s reported: %s", p.Manifest.Name, name, resp.Error)
				continue
			}
			delivered++
		}
	}
	return delivered
}

// NewRequest converts an event into a plugin request.
func NewRequest(matchID string, ev game.Event) *Request {
	req := &Request{
		Event:       ev.Name(),
		MatchID:     matchID,
		Round:       ev.Round,
		AIScore:     ev.Score.AI,
		PlayerScore: ev.Score.Player,
	}

	switch ev.Kind {
	case game.EventCountdown:
		req.Remaining = ev.Remaining
	case game.EventRoundResolved:
		req.PlayerMove = ev.PlayerMove.String()
		req.AIMove = ev.AIMove.String()
		req.Outcome = ev.Outcome.String()
	case game.EventMatchOver, game.EventDisqualified:
		req.Outcome = ev.Status.String()
	}
	return req
}
