package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/warpsnake/internal/games/snake"
	"github.com/vovakirdan/warpsnake/internal/platform/tui"
	"github.com/vovakirdan/warpsnake/internal/registry"
	"github.com/vovakirdan/warpsnake/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant (default: timewarp).

Controls:
  Arrows/WASD  - Turn (the first turn starts the run)
  Space        - Rewind (hold, or tap in toggle mode)
  P            - Pause
  R            - Restart
  Esc/Q        - Quit

Difficulty options:
  easy   - 15 ticks per second, 10 seconds of history
  normal - 20 ticks per second, 8 seconds of history
  hard   - 20 ticks per second, 6 seconds of history
  fixed  - Use the config file as is

Examples:
  warpsnake play
  warpsnake play gravity --difficulty easy
  warpsnake play timewarp --rewind toggle
  warpsnake play portal --config ./my-snake.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := snake.Variants[0].ID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'warpsnake list' to see available variants.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
