package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagRecent bool

var scoresCmd = &cobra.Command{
	Use:   "scores <board>",
	Short: "Show high scores for a board",
	Long: `Display the top 10 high scores and statistics for the specified board.

With --recent, list the last recorded games instead, with the IDs that
't2048 replay' accepts.

Examples:
  t2048 scores 2048
  t2048 scores 2048_mini --recent`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "List recent recorded games instead of top scores")
}

func runScores(cmd *cobra.Command, args []string) {
	variantID := args[0]

	if !registry.Exists(variantID) {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", variantID)
		fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available boards.")
		os.Exit(1)
	}

	g, err := registry.Create(variantID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := g.Title()

	store, err := storage.Open(dbPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRecent {
		if err := printRecent(store, variantID, title); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error retrieving games: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scores, err := store.TopScores(variantID, 10)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %s' to set the first high score!\n", variantID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Rank", "Score", "Tile", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "----", "-----", "----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-6d  %s\n", i+1, entry.Score, entry.MaxTile, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetVariantStats(variantID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Best: %d  Games: %d  Avg: %.0f  Best tile: %d  Wins: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestTile, stats.Wins)
	}
}

// printRecent lists the latest recorded games of a board.
func printRecent(store *storage.Store, variantID, title string) error {
	games, err := store.RecentGames(variantID, 20)
	if err != nil {
		return err
	}

	fmt.Printf("Recent Games - %s\n", title)
	fmt.Println()

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		return nil
	}

	fmt.Printf("  %-6s  %-10s  %-6s  %-5s  %-6s  %s\n", "ID", "Score", "Tile", "Won", "Moves", "Date")
	fmt.Printf("  %-6s  %-10s  %-6s  %-5s  %-6s  %s\n", "--", "-----", "----", "---", "-----", "----")
	for _, rec := range games {
		won := "no"
		if rec.Won {
			won = "yes"
		}
		fmt.Printf("  %-6d  %-10d  %-6d  %-5s  %-6d  %s\n",
			rec.ID, rec.Score, rec.MaxTile, won, len(rec.Moves), rec.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
