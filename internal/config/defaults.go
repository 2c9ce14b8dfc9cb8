package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: SnakeGrid{
			Width:  defaultGridSize,
			Height: defaultGridSize,
		},
		Gameplay: SnakeGameplay{
			TicksPerSecond: defaultTickRate,
			HistorySeconds: defaultHistory,
			InitialLength:  defaultLength,
		},
		Rewind: SnakeRewind{
			Mode:        defaultRewindMode,
			HoldLeaseMS: defaultHoldLease,
		},
		Timing: SnakeTiming{
			MaxFrameDeltaMS: defaultFrameDelta,
		},
	}
}
