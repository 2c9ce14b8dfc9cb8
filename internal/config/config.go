// Package config provides YAML-based configuration loading and difficulty
// presets for the snake family.
package config

import "time"

// SnakeConfig contains all configuration for the snake variants.
type SnakeConfig struct {
	Grid     SnakeGrid     `yaml:"grid"`
	Gameplay SnakeGameplay `yaml:"gameplay"`
	Rewind   SnakeRewind   `yaml:"rewind"`
	Timing   SnakeTiming   `yaml:"timing"`
}

// SnakeGrid defines the playfield size in cells.
type SnakeGrid struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SnakeGameplay defines simulation parameters.
type SnakeGameplay struct {
	TicksPerSecond int `yaml:"ticks_per_second"` // one of TickRateChoices
	HistorySeconds int `yaml:"history_seconds"`  // one of HistoryChoices
	InitialLength  int `yaml:"initial_length"`
}

// SnakeRewind defines how rewind input behaves.
type SnakeRewind struct {
	Mode        string `yaml:"mode"`          // "hold" or "toggle"
	HoldLeaseMS int    `yaml:"hold_lease_ms"` // keyboard hold without key-up events
}

// SnakeTiming defines frame pacing limits.
type SnakeTiming struct {
	MaxFrameDeltaMS int `yaml:"max_frame_delta_ms"`
}

// Allowed values for the tunable settings. Anything else falls back to the
// default.
var (
	TickRateChoices   = []int{15, 20}
	HistoryChoices    = []int{6, 8, 10}
	RewindModeChoices = []string{"hold", "toggle"}
	defaultTickRate   = 20
	defaultHistory    = 8
	defaultRewindMode = "hold"
	defaultGridSize   = 40
	defaultLength     = 4
	defaultHoldLease  = 550
	defaultFrameDelta = 100
	minGridSize       = 4
)

// Normalize replaces out-of-range values with defaults.
func (c *SnakeConfig) Normalize() {
	c.Gameplay.TicksPerSecond = ChooseInt(c.Gameplay.TicksPerSecond, TickRateChoices, defaultTickRate)
	c.Gameplay.HistorySeconds = ChooseInt(c.Gameplay.HistorySeconds, HistoryChoices, defaultHistory)
	c.Rewind.Mode = ChooseString(c.Rewind.Mode, RewindModeChoices, defaultRewindMode)

	if c.Grid.Width < minGridSize {
		c.Grid.Width = defaultGridSize
	}
	if c.Grid.Height < minGridSize {
		c.Grid.Height = defaultGridSize
	}
	if c.Gameplay.InitialLength <= 0 {
		c.Gameplay.InitialLength = defaultLength
	}
	if c.Rewind.HoldLeaseMS <= 0 {
		c.Rewind.HoldLeaseMS = defaultHoldLease
	}
	if c.Timing.MaxFrameDeltaMS <= 0 {
		c.Timing.MaxFrameDeltaMS = defaultFrameDelta
	}
}

// HoldLease returns the keyboard rewind lease as a duration.
func (c SnakeConfig) HoldLease() time.Duration {
	return time.Duration(c.Rewind.HoldLeaseMS) * time.Millisecond
}

// MaxFrameDelta returns the frame delta clamp as a duration.
func (c SnakeConfig) MaxFrameDelta() time.Duration {
	return time.Duration(c.Timing.MaxFrameDeltaMS) * time.Millisecond
}

// ChooseInt returns v when it is one of allowed, else fallback.
func ChooseInt(v int, allowed []int, fallback int) int {
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return fallback
}

// ChooseString returns v when it is one of allowed, else fallback.
func ChooseString(v string, allowed []string, fallback string) string {
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return fallback
}
