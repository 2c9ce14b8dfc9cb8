package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/warpsnake/internal/games/snake"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available variants",
	Long:  `Shows every playable variant with a short description.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, v := range snake.Variants {
		maxIDLen = max(maxIDLen, len(v.ID))
		maxTitleLen = max(maxTitleLen, len(v.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Rewind")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "------")

	for _, v := range snake.Variants {
		rewind := "no"
		if v.Rewind {
			rewind = "yes"
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, v.ID, maxTitleLen, v.Title, rewind)
		fmt.Printf("  %-*s  %s\n", maxIDLen, "", v.Blurb)
	}

	cfg := snake.Config()
	fmt.Println()
	fmt.Printf("Settings: %dx%d grid, %d TPS, %ds history, %s rewind\n",
		cfg.Grid.Width, cfg.Grid.Height, cfg.Gameplay.TicksPerSecond,
		cfg.Gameplay.HistorySeconds, cfg.Rewind.Mode)
	fmt.Println("Run 'warpsnake play <id>' to play a variant.")
}
