package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty validates a preset name. Empty means fixed.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyFixed, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", s)
}

// IsFixedPreset returns true if the preset leaves loaded values untouched.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed || preset == ""
}

// ApplySnakePreset modifies the config based on a difficulty preset.
// Slower ticks and a deeper rewind buffer make a run easier.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.TicksPerSecond = 15
		cfg.Gameplay.HistorySeconds = 10
	case DifficultyNormal:
		cfg.Gameplay.TicksPerSecond = 20
		cfg.Gameplay.HistorySeconds = 8
	case DifficultyHard:
		cfg.Gameplay.TicksPerSecond = 20
		cfg.Gameplay.HistorySeconds = 6
	}
}
