package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake(\"\") error: %v", err)
	}
	if cfg != DefaultSnakeConfig() {
		t.Errorf("Loaded defaults %+v differ from DefaultSnakeConfig() %+v", cfg, DefaultSnakeConfig())
	}
}

func TestLoadSnakeCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte(`
gameplay:
  ticks_per_second: 15
  history_seconds: 10
rewind:
  mode: toggle
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake() error: %v", err)
	}
	if cfg.Gameplay.TicksPerSecond != 15 || cfg.Gameplay.HistorySeconds != 10 {
		t.Errorf("Gameplay = %+v, expected 15 tps / 10 s", cfg.Gameplay)
	}
	if cfg.Rewind.Mode != "toggle" {
		t.Errorf("Rewind.Mode = %q, expected toggle", cfg.Rewind.Mode)
	}
	if cfg.Grid.Width != 40 || cfg.Rewind.HoldLeaseMS != 550 {
		t.Errorf("Unset fields should keep defaults, got %+v", cfg)
	}
}

func TestLoadSnakeMissingCustomPath(t *testing.T) {
	_, err := LoadSnake(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("LoadSnake() should fail for an explicit missing file")
	}
}

func TestLoadSnakeMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("grid: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(path); err == nil {
		t.Error("LoadSnake() should fail for malformed YAML")
	}
}

func TestNormalizeFallbacks(t *testing.T) {
	tests := []struct {
		name string
		in   SnakeConfig
		tps  int
		hist int
		mode string
	}{
		{"zero values", SnakeConfig{}, 20, 8, "hold"},
		{"disallowed tps", SnakeConfig{Gameplay: SnakeGameplay{TicksPerSecond: 30, HistorySeconds: 6}}, 20, 6, "hold"},
		{"disallowed history", SnakeConfig{Gameplay: SnakeGameplay{TicksPerSecond: 15, HistorySeconds: 7}}, 15, 8, "hold"},
		{"unknown mode", SnakeConfig{Rewind: SnakeRewind{Mode: "press"}}, 20, 8, "hold"},
		{"valid", SnakeConfig{Gameplay: SnakeGameplay{TicksPerSecond: 15, HistorySeconds: 10}, Rewind: SnakeRewind{Mode: "toggle"}}, 15, 10, "toggle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.in
			cfg.Normalize()
			if cfg.Gameplay.TicksPerSecond != tt.tps {
				t.Errorf("TicksPerSecond = %d, expected %d", cfg.Gameplay.TicksPerSecond, tt.tps)
			}
			if cfg.Gameplay.HistorySeconds != tt.hist {
				t.Errorf("HistorySeconds = %d, expected %d", cfg.Gameplay.HistorySeconds, tt.hist)
			}
			if cfg.Rewind.Mode != tt.mode {
				t.Errorf("Rewind.Mode = %q, expected %q", cfg.Rewind.Mode, tt.mode)
			}
			if cfg.Grid.Width != 40 || cfg.Grid.Height != 40 || cfg.Gameplay.InitialLength != 4 {
				t.Errorf("Sizing not defaulted: %+v", cfg)
			}
		})
	}
}

func TestDurations(t *testing.T) {
	cfg := DefaultSnakeConfig()
	if cfg.HoldLease() != 550*time.Millisecond {
		t.Errorf("HoldLease() = %v, expected 550ms", cfg.HoldLease())
	}
	if cfg.MaxFrameDelta() != 100*time.Millisecond {
		t.Errorf("MaxFrameDelta() = %v, expected 100ms", cfg.MaxFrameDelta())
	}
}

func TestApplySnakePreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		tps    int
		hist   int
	}{
		{DifficultyEasy, 15, 10},
		{DifficultyNormal, 20, 8},
		{DifficultyHard, 20, 6},
		{DifficultyFixed, 15, 6},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			cfg.Gameplay.TicksPerSecond = 15
			cfg.Gameplay.HistorySeconds = 6
			ApplySnakePreset(&cfg, tt.preset)
			if cfg.Gameplay.TicksPerSecond != tt.tps || cfg.Gameplay.HistorySeconds != tt.hist {
				t.Errorf("Got %d tps / %d s, expected %d / %d",
					cfg.Gameplay.TicksPerSecond, cfg.Gameplay.HistorySeconds, tt.tps, tt.hist)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	if p, err := ParseDifficulty(""); err != nil || p != DifficultyFixed {
		t.Errorf("ParseDifficulty(\"\") = %q, %v; expected fixed", p, err)
	}
	if p, err := ParseDifficulty("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParseDifficulty(hard) = %q, %v", p, err)
	}
	if _, err := ParseDifficulty("insane"); err == nil {
		t.Error("ParseDifficulty(insane) should fail")
	}
}
