package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/warpsnake/internal/games/snake"
	"github.com/vovakirdan/warpsnake/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top 10 finished runs and the best score for a variant.
Without a variant, shows the best score and run count of every variant.

Examples:
  warpsnake scores
  warpsnake scores timewarp
  warpsnake scores portal --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the variant")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if err := printSummary(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			os.Exit(1)
		}
		return
	}

	gameID := args[0]
	v, ok := snake.LookupVariant(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'warpsnake list' to see available variants.")
		os.Exit(1)
	}

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s\n", v.Title)
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", v.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
		}
	}

	// The best score also counts runs that were rewound before they ended.
	fmt.Println()
	if best, err := store.BestScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}

func printSummary(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	best, err := store.BestScores()
	if err != nil {
		return err
	}
	bestByID := make(map[string]int, len(best))
	for _, b := range best {
		bestByID[b.GameID] = b.Score
	}

	fmt.Printf("  %-10s  %-6s  %-6s  %s\n", "Variant", "Best", "Runs", "Last played")
	fmt.Printf("  %-10s  %-6s  %-6s  %s\n", "-------", "----", "----", "-----------")
	for _, v := range snake.Variants {
		runs, last := 0, "-"
		if st, ok := stats[v.ID]; ok {
			runs = st.GamesCount
			if !st.LastPlayed.IsZero() {
				last = st.LastPlayed.Format("2006-01-02 15:04")
			}
		}
		fmt.Printf("  %-10s  %-6d  %-6d  %s\n", v.ID, bestByID[v.ID], runs, last)
	}
	return nil
}
