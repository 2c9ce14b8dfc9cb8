// warpsnake is a terminal snake game with a rewindable timeline.
//
// Usage:
//
//	warpsnake list              - List available variants
//	warpsnake play [variant]    - Play a variant (default: timewarp)
//	warpsnake menu              - Start menu to pick variants interactively
//	warpsnake serve             - Start SSH server for remote play
//	warpsnake web               - Serve the browser version
//	warpsnake scores <variant>  - Show high scores for a variant
//
// Global flags:
//
//	--fps <rate>          - Set render frame rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.warpsnake/scores.db)
//	--config <path>       - Load a custom snake.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/warpsnake/internal/config"
	"github.com/vovakirdan/warpsnake/internal/core"
	"github.com/vovakirdan/warpsnake/internal/games/snake"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagTPS        int
	flagHistory    int
	flagRewind     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "warpsnake",
	Short: "Time-Warp Snake - snake with a rewind button",
	Long: `Time-Warp Snake is snake in your terminal, with a twist: hold SPACE
and time runs backwards, so a crash is only a setback.

Variants:
  timewarp  - Classic rules with rewind
  classic   - Plain snake
  gravity   - Every meal flips gravity
  portal    - Food teleports you to a paired exit

Examples:
  warpsnake play
  warpsnake play portal --difficulty hard
  warpsnake menu --rewind toggle
  warpsnake serve --ssh :2222
  warpsnake web --http :8000
  warpsnake scores timewarp`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Render frame rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.warpsnake/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.IntVar(&flagTPS, "tps", 0, "Simulation ticks per second: 15 or 20 (0 = from config)")
	pf.IntVar(&flagHistory, "history", 0, "Rewind history in seconds: 6, 8 or 10 (0 = from config)")
	pf.StringVar(&flagRewind, "rewind", "", "Rewind mode: hold or toggle (empty = from config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadSettings resolves the snake configuration from file, preset and flags
// and installs it for every game the registry creates.
func loadSettings(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return err
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplySnakePreset(&cfg, preset)

	if flagTPS != 0 {
		cfg.Gameplay.TicksPerSecond = flagTPS
	}
	if flagHistory != 0 {
		cfg.Gameplay.HistorySeconds = flagHistory
	}
	if flagRewind != "" {
		cfg.Rewind.Mode = flagRewind
	}

	snake.SetConfig(cfg)
	return nil
}

// runtimeConfig builds a runtime config sized to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		FrameRate: flagFPS,
		Seed:      flagSeed,
	}
}
