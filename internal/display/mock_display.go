package display

import (
	"time"

	"github.com/ayusman/rockpaper/internal/game"
	"gocv.io/x/gocv"
)

// MockDisplay is a Display for tests. It replays queued commands and keeps
// a copy of the last frame shown.
type MockDisplay struct {
	commands []game.Command
	shown    int
	last     gocv.Mat
	closed   bool
}

// NewMockDisplay creates a MockDisplay that returns commands from PollKey in
// order, then CommandNone.
func NewMockDisplay(commands ...game.Command) *MockDisplay {
	return &MockDisplay{commands: commands, last: gocv.NewMat()}
}

// Queue appends commands to be returned by PollKey.
func (d *MockDisplay) Queue(commands ...game.Command) {
	d.commands = append(d.commands, commands...)
}

// Show records img.
func (d *MockDisplay) Show(img gocv.Mat) error {
	if d.closed {
		return ErrClosed
	}
	d.shown++
	img.CopyTo(&d.last)
	return nil
}

// PollKey returns the next queued command without waiting.
func (d *MockDisplay) PollKey(timeout time.Duration) game.Command {
	if len(d.commands) == 0 {
		return game.CommandNone
	}
	cmd := d.commands[0]
	d.commands = d.commands[1:]
	return cmd
}

// Shown returns how many frames were shown.
func (d *MockDisplay) Shown() int {
	return d.shown
}

// Last returns the last frame shown. It is owned by the MockDisplay.
func (d *MockDisplay) Last() gocv.Mat {
	return d.last
}

// Pending returns the number of queued commands left.
func (d *MockDisplay) Pending() int {
	return len(d.commands)
}

// Close marks the display closed and releases the recorded frame.
func (d *MockDisplay) Close() error {
	if !d.closed {
		d.closed = true
		d.last.Close()
	}
	return nil
}
