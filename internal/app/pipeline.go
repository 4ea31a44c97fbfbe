package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ayusman/rockpaper/internal/capture"
	"github.com/ayusman/rockpaper/internal/detector"
	"github.com/ayusman/rockpaper/internal/display"
	"github.com/ayusman/rockpaper/internal/game"
)

// Run opens the camera and window and plays until the quit key is pressed
// or ctx is cancelled. Resources are released by Close.
//
// Each tick:
// 1. Read a frame and scale it into the camera view
// 2. Detect the player's hand and reduce it to raised fingers
// 3. Poll one key
// 4. Step the game engine
// 5. Send the resulting events to hook plugins
// 6. Compose and show the board
func (a *App) Run(ctx context.Context) error {
	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("failed to open camera %d: %w", a.config.CameraID, err)
	}
	if a.display == nil {
		a.display = display.NewWindow(a.config.WindowName, nil)
	}
	if err := a.DiscoverPlugins(); err != nil {
		log.Printf("Hook plugins disabled: %v", err)
	}

	log.Printf("Match %s ready: press %s to start a round, %s to restart, Q to quit",
		a.matchID, startKeyLabel, restartKeyLabel)

	for {
		select {
		case <-ctx.Done():
			log.Println("Game loop stopped")
			return nil
		default:
		}

		quit, err := a.Tick(ctx)
		if err != nil {
			return err
		}
		if quit {
			log.Println("Quit requested")
			return nil
		}
	}
}

// Tick runs one iteration of the game loop. It reports true when the player
// asked to quit; the state is left untouched in that case.
func (a *App) Tick(ctx context.Context) (bool, error) {
	in := game.Input{Now: a.now()}
	in.FrameOK, in.Hand = a.readHand(in.Now)

	in.Command = a.display.PollKey(a.config.PollTimeout)
	if in.Command == game.CommandQuit {
		return true, nil
	}

	next, events := a.engine.Step(a.state, in)
	a.state = next
	a.handleEvents(ctx, events)

	board := a.presenter.Compose(a.view, a.state)
	defer board.Close()
	if err := a.display.Show(board); err != nil {
		return false, fmt.Errorf("failed to show board: %w", err)
	}
	return false, nil
}

// readHand captures a frame into the view and returns the raised fingers of
// the most confident hand, nil when no hand is seen. A failed capture
// reports false and keeps the previous view on screen.
func (a *App) readHand(now time.Time) (bool, *game.FingerState) {
	frame, err := a.camera.ReadFrame()
	if err != nil {
		a.frameLog.Printf(now, "Error reading frame: %v", err)
		return false, nil
	}
	defer frame.Close()

	if err := capture.Prepare(*frame, &a.view, a.config.Mirror); err != nil {
		a.frameLog.Printf(now, "Error preparing frame: %v", err)
		return false, nil
	}
	if a.detector == nil {
		return true, nil
	}

	hands, err := a.detector.Detect(&a.view)
	if err != nil {
		a.detectLog.Printf(now, "Error detecting hands: %v", err)
		return true, nil
	}
	hand := detector.Primary(hands)
	if hand == nil {
		return true, nil
	}
	fingers := hand.FingersUp()
	return true, &fingers
}

// handleEvents logs the events of a tick and hands them to the plugins.
func (a *App) handleEvents(ctx context.Context, events []game.Event) {
	if len(events) == 0 {
		return
	}

	for _, ev := range events {
		switch ev.Kind {
		case game.EventRestarted:
			a.matchID = newMatchID()
			log.Printf("Match %s started", a.matchID)
		case game.EventRoundStarted:
			log.Printf("Match %s round %d: show your hand", a.matchID, ev.Round)
		case game.EventRoundResolved:
			log.Printf("Match %s round %d: you %s, AI %s, %s (AI %d : %d you)",
				a.matchID, ev.Round, ev.PlayerMove, ev.AIMove, ev.Outcome, ev.Score.AI, ev.Score.Player)
		case game.EventDisqualified:
			log.Printf("Match %s round %d: disqualified for unsportsmanlike gesture", a.matchID, ev.Round)
		case game.EventMatchOver:
			log.Printf("Match %s over: %s (AI %d : %d you)", a.matchID, ev.Status, ev.Score.AI, ev.Score.Player)
		}
	}

	a.dispatcher.Dispatch(ctx, a.matchID, events)
}

// throttle rate-limits a repeating log line and counts what it drops.
type throttle struct {
	every      time.Duration
	last       time.Time
	suppressed int
}

func newThrottle(every time.Duration) *throttle {
	return &throttle{every: every}
}

// Printf logs unless a line was logged less than every ago. It reports
// whether the line was written.
func (t *throttle) Printf(now time.Time, format string, args ...any) bool {
	if !t.last.IsZero() && now.Sub(t.last) < t.every {
		t.suppressed++
		return false
	}
	msg := fmt.Sprintf(format, args...)
	if t.suppressed > 0 {
		msg = fmt.Sprintf("%s (%d similar suppressed)", msg, t.suppressed)
	}
	log.Print(msg)
	t.last = now
	t.suppressed = 0
	return true
}
