// Package display shows composed boards in a window and turns key presses
// into game commands.
package display

import (
	"errors"
	"time"

	"github.com/ayusman/rockpaper/internal/game"
	"gocv.io/x/gocv"
)

// ErrClosed is returned by Show after Close.
var ErrClosed = errors.New("display is closed")

// Display defines the interface for showing frames and reading keys.
type Display interface {
	Show(img gocv.Mat) error
	// PollKey waits up to timeout for a key and returns its command.
	PollKey(timeout time.Duration) game.Command
	Close() error
}

// KeyMap maps key codes as returned by gocv.WaitKey to commands.
type KeyMap map[int]game.Command

// Key codes outside the printable range.
const (
	KeyEsc   = 27
	KeySpace = ' '
)

// DefaultKeyMap returns s/space to start, r to restart, q/Esc to quit and
// 1/2/3 to pick rock/paper/scissors by hand. Letters match in either case.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		's':      game.CommandStart,
		'S':      game.CommandStart,
		KeySpace: game.CommandStart,
		'r':      game.CommandRestart,
		'R':      game.CommandRestart,
		'q':      game.CommandQuit,
		'Q':      game.CommandQuit,
		KeyEsc:   game.CommandQuit,
		'1':      game.CommandSelectRock,
		'2':      game.CommandSelectPaper,
		'3':      game.CommandSelectScissors,
	}
}

// Lookup returns the command for key, or CommandNone. A negative key means
// no key was pressed.
func (k KeyMap) Lookup(key int) game.Command {
	if key < 0 {
		return game.CommandNone
	}
	// Some backends report modifier bits above the low byte.
	if cmd, ok := k[key]; ok {
		return cmd
	}
	return k[key&0xFF]
}

// Window is a Display backed by a gocv (HighGUI) window. It must be used
// from the main OS thread.
type Window struct {
	window *gocv.Window
	keys   KeyMap
}

// NewWindow opens a window with the given title. A nil keys uses DefaultKeyMap.
func NewWindow(title string, keys KeyMap) *Window {
	if keys == nil {
		keys = DefaultKeyMap()
	}
	return &Window{
		window: gocv.NewWindow(title),
		keys:   keys,
	}
}

// Show draws img in the window. The image is painted on the next PollKey.
func (w *Window) Show(img gocv.Mat) error {
	if w.window == nil {
		return ErrClosed
	}
	if img.Empty() {
		return nil
	}
	w.window.IMShow(img)
	return nil
}

// PollKey pumps window events for up to timeout and maps the pressed key.
func (w *Window) PollKey(timeout time.Duration) game.Command {
	if w.window == nil {
		return game.CommandQuit
	}
	return w.keys.Lookup(w.window.WaitKey(waitMillis(timeout)))
}

// Close closes the window.
func (w *Window) Close() error {
	if w.window == nil {
		return nil
	}
	err := w.window.Close()
	w.window = nil
	return err
}

// waitMillis converts timeout for WaitKey, where 0 would block forever.
func waitMillis(timeout time.Duration) int {
	ms := int(timeout / time.Millisecond)
	if ms < 1 {
		return 1
	}
	return ms
}
