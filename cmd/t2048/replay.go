package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Replay a recorded game",
	Long: `Rebuild a recorded game from its seed and moves and print the final board.

Every finished game is stored with the seed of its tile spawns and the
moves that changed the board, so replaying it must reach the same score.
Use 't2048 scores <board> --recent' to find game IDs.

Examples:
  t2048 replay 12`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid game id %q\n", args[0])
		os.Exit(1)
	}

	store, err := storage.Open(dbPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	rec, err := store.GameByID(id)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving game: %v\n", err)
		os.Exit(1)
	}
	if rec == nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: no recorded game with id %d\n", id)
		os.Exit(1)
	}

	eng, err := game.Replay(game.Record{
		Variant: rec.Variant,
		Seed:    rec.Seed,
		Moves:   rec.Moves,
	})
	if err != nil {
		store.Close()
		var unknown *game.UnknownVariantError
		if errors.As(err, &unknown) {
			fmt.Fprintf(os.Stderr, "Error: game %d was played on board %q, which no longer exists\n", id, unknown.ID)
		} else {
			fmt.Fprintf(os.Stderr, "Error replaying game: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Game %d - %s, seed %d, %d moves, played %s\n",
		rec.ID, rec.Variant, rec.Seed, len(rec.Moves), rec.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Println()
	fmt.Println(game.BoardText(eng))
	fmt.Println()
	fmt.Printf("Score: %d  Max tile: %d  Won: %t  Over: %t\n", eng.Score(), eng.MaxTile(), eng.Won(), eng.Over())

	if eng.Score() != rec.Score {
		fmt.Printf("Mismatch: recorded score was %d\n", rec.Score)
		store.Close()
		os.Exit(1)
	}
	fmt.Println("Replay matches the recorded score.")
}
