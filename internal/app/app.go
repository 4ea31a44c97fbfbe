// Package app wires camera, detector, game engine, renderer, window and hook
// plugins into the rock paper scissors game loop.
package app

import (
	"fmt"
	"log"
	"time"

	"github.com/ayusman/rockpaper/internal/capture"
	"github.com/ayusman/rockpaper/internal/config"
	"github.com/ayusman/rockpaper/internal/detector"
	"github.com/ayusman/rockpaper/internal/display"
	"github.com/ayusman/rockpaper/internal/game"
	"github.com/ayusman/rockpaper/internal/plugin"
	"github.com/ayusman/rockpaper/internal/render"
	"github.com/google/uuid"
	"gocv.io/x/gocv"
)

// Keys named in the on-screen prompts. They must agree with display.DefaultKeyMap.
const (
	startKeyLabel   = "S"
	restartKeyLabel = "R"
)

// How often repeated camera or detector failures are logged.
const errorLogInterval = 5 * time.Second

// App is the game: it owns the state and runs one tick per frame.
// It is not safe for concurrent use.
type App struct {
	config     config.Config
	camera     capture.Camera
	detector   detector.Detector
	engine     *game.Engine
	picker     game.MovePicker
	presenter  *render.Presenter
	display    display.Display
	plugins    *plugin.Manager
	dispatcher *plugin.Dispatcher

	state       game.State
	matchID     string
	manualMoves bool
	now     func() time.Time
	view    gocv.Mat

	frameLog  *throttle
	detectLog *throttle
}

// New creates an App from cfg. The camera is not opened and no window is
// created until Run.
func New(cfg config.Config) *App {
	a := &App{
		config: cfg,
		camera: capture.NewCamera(capture.Config{
			DeviceID: cfg.CameraID,
			Width:    cfg.Width,
			Height:   cfg.Height,
		}),
		presenter: render.NewPresenter(cfg.AssetsDir, startKeyLabel, restartKeyLabel),
		plugins:   plugin.NewManager(cfg.PluginDir),
		state:     game.NewState(),
		matchID:   newMatchID(),
		now:       time.Now,
		view:      gocv.NewMat(),
		frameLog:  newThrottle(errorLogInterval),
		detectLog: newThrottle(errorLogInterval),
	}
	a.dispatcher = plugin.NewDispatcher(a.plugins, plugin.NewExecutor(cfg.HookTimeout))
	a.SetPicker(nil)

	// Try MediaPipe first, fall back to mock detector
	detCfg := detector.DefaultConfig()
	detCfg.MinConfidence = cfg.MinConfidence
	if mp, err := detector.NewMediaPipeDetector(detCfg); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector: pick moves with keys 1, 2 and 3", err)
		a.detector = detector.NewMockDetector()
		a.SetManualMoves(true)
	}

	return a
}

func newMatchID() string {
	return uuid.NewString()
}

// SetCamera replaces the camera. It must be called before Run.
func (a *App) SetCamera(c capture.Camera) {
	a.camera = c
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.detector = d
}

// SetDisplay replaces the window Run would otherwise open.
func (a *App) SetDisplay(d display.Display) {
	a.display = d
}

// SetPicker replaces the AI's move picker. A nil picker draws uniformly at
// random, seeded from the configured seed or the clock.
func (a *App) SetPicker(p game.MovePicker) {
	if p == nil {
		seed := a.config.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		p = game.NewRandomPicker(seed)
	}
	a.picker = p
	a.rebuildEngine()
}

// SetManualMoves toggles move selection with keys 1, 2 and 3. New enables
// it only when it falls back to the mock detector.
func (a *App) SetManualMoves(on bool) {
	a.manualMoves = on
	a.rebuildEngine()
}

func (a *App) rebuildEngine() {
	a.engine = game.NewEngine(game.Rules{
		WinScore:      a.config.WinScore,
		Countdown:     a.config.Countdown,
		Sportsmanship: a.config.Sportsmanship,
		ManualMoves:   a.manualMoves,
	}, a.picker)
}

// SetClock replaces the wall clock used for the countdown.
func (a *App) SetClock(now func() time.Time) {
	a.now = now
}

// DiscoverPlugins scans the plugin directory and loads available hook plugins.
func (a *App) DiscoverPlugins() error {
	if err := a.plugins.Discover(); err != nil {
		return fmt.Errorf("failed to discover plugins in %s: %w", a.plugins.PluginDir(), err)
	}
	for _, p := range a.plugins.List() {
		log.Printf("Loaded plugin %s %s for %v", p.Manifest.Name, p.Manifest.Version, p.Manifest.Events)
	}
	return nil
}

// State returns the current game state.
func (a *App) State() game.State {
	return a.state
}

// MatchID returns the id of the current match. Restart assigns a new one.
func (a *App) MatchID() string {
	return a.matchID
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.plugins
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	return a.detector
}

// Close releases the camera, detector, window and images.
func (a *App) Close() error {
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}
	if a.display != nil {
		if err := a.display.Close(); err != nil {
			log.Printf("Error closing display: %v", err)
		}
	}
	a.presenter.Close()
	a.view.Close()
	return nil
}
