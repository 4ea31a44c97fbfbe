// Package config loads game settings from a .env file and the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting read at startup.
type Config struct {
	CameraID   int
	Width      int
	Height     int
	AssetsDir  string
	PluginDir  string
	WindowName string
	WinScore   int
	Countdown  time.Duration
	Mirror     bool

	// Sportsmanship ends the match when the player shows the middle finger.
	Sportsmanship bool
	PollTimeout   time.Duration
	HookTimeout   time.Duration
	MinConfidence float64
	Seed          int64
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		CameraID:      0,
		Width:         640,
		Height:        480,
		AssetsDir:     "Resources",
		PluginDir:     "plugins",
		WindowName:    "Rock Paper Scissors",
		WinScore:      3,
		Countdown:     3 * time.Second,
		Mirror:        false,
		PollTimeout:   time.Millisecond,
		HookTimeout:   300 * time.Millisecond,
		MinConfidence: 0.8,
	}
}

// envPaths are tried in order; the first .env found is loaded.
var envPaths = []string{".env", "../.env", "../../.env"}

// LoadEnvFile loads the first .env file found and returns its path.
// Variables already set in the environment win over the file.
func LoadEnvFile() string {
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads .env (if present) and then the RPS_* environment variables.
func Load() (Config, error) {
	if path := LoadEnvFile(); path != "" {
		log.Printf("Loaded .env from: %s", path)
	} else {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function, starting from Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	p := parser{lookup: lookup}

	c.CameraID = p.intVal("RPS_CAMERA_ID", c.CameraID)
	c.Width = p.intVal("RPS_WIDTH", c.Width)
	c.Height = p.intVal("RPS_HEIGHT", c.Height)
	c.AssetsDir = p.stringVal("RPS_ASSETS_DIR", c.AssetsDir)
	c.PluginDir = p.stringVal("RPS_PLUGIN_DIR", c.PluginDir)
	c.WindowName = p.stringVal("RPS_WINDOW", c.WindowName)
	c.WinScore = p.intVal("RPS_WIN_SCORE", c.WinScore)
	c.Countdown = p.durationVal("RPS_COUNTDOWN", c.Countdown)
	c.Mirror = p.boolVal("RPS_MIRROR", c.Mirror)
	c.Sportsmanship = p.boolVal("RPS_SPORTSMANSHIP", c.Sportsmanship)
	c.PollTimeout = p.millisVal("RPS_POLL_MS", c.PollTimeout)
	c.HookTimeout = p.millisVal("RPS_HOOK_TIMEOUT_MS", c.HookTimeout)
	c.MinConfidence = p.floatVal("RPS_MIN_CONFIDENCE", c.MinConfidence)
	c.Seed = int64(p.intVal("RPS_SEED", 0))

	if p.err != nil {
		return Config{}, p.err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.WinScore < 1:
		return fmt.Errorf("RPS_WIN_SCORE must be at least 1, got %d", c.WinScore)
	case c.Countdown < time.Second:
		return fmt.Errorf("RPS_COUNTDOWN must be at least 1s, got %s", c.Countdown)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("camera size must be positive, got %dx%d", c.Width, c.Height)
	case c.PollTimeout < time.Millisecond:
		return fmt.Errorf("RPS_POLL_MS must be at least 1, got %s", c.PollTimeout)
	case c.HookTimeout < time.Millisecond:
		return fmt.Errorf("RPS_HOOK_TIMEOUT_MS must be at least 1, got %s", c.HookTimeout)
	case c.MinConfidence < 0 || c.MinConfidence > 1:
		return fmt.Errorf("RPS_MIN_CONFIDENCE must be within 0..1, got %g", c.MinConfidence)
	}
	return nil
}

// parser keeps the first error so FromEnv can read every key in sequence.
type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) raw(key string) (string, bool) {
	v, ok := p.lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
}

func (p *parser) stringVal(key, def string) string {
	if v, ok := p.raw(key); ok {
		return v
	}
	return def
}

func (p *parser) intVal(key string, def int) int {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *parser) floatVal(key string, def float64) float64 {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return f
}

func (p *parser) boolVal(key string, def bool) bool {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return b
}

// durationVal accepts Go durations ("3s") or a plain number of seconds ("3").
func (p *parser) durationVal(key string, def time.Duration) time.Duration {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return d
}

func (p *parser) millisVal(key string, def time.Duration) time.Duration {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return time.Duration(n) * time.Millisecond
}
