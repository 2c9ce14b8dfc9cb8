package core

// RuntimeConfig is passed to games on Reset.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	FrameRate int   // Render frames per second driving Step
	Seed      int64 // RNG seed; 0 lets the game pick one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		FrameRate: 60,
	}
}

// GameState is the coarse status a game reports to the platform.
type GameState struct {
	Score     int
	Best      int
	GameOver  bool // crashed or won; a crash may still be rewound
	Paused    bool
	Rewinding bool
}

// StepResult is returned by Game.Step after each frame.
type StepResult struct {
	State GameState
	// Ticks is the number of simulation ticks the frame ran.
	Ticks int
	// Ended is set on the frame a run crashed or was won.
	Ended bool
}
