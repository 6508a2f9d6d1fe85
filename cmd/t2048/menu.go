package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a board picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a board.
After a game you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter        - Select board
  Tab          - High scores
  Q            - Quit

Examples:
  t2048 menu
  t2048 menu --fps 30
  t2048 menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	err := menuLoop(store, runtimeConfig())

	if store != nil {
		store.Close()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// menuLoop shows the menu until the player quits, running the chosen
// board or the scoreboard in between.
func menuLoop(store *storage.Store, cfg core.RuntimeConfig) error {
	seeded := flagSeed != 0

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Keep any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		if menuResult.VariantID == "" {
			return nil
		}

		g, err := registry.Create(menuResult.VariantID)
		if err != nil {
			logger.Error("creating game", "variant", menuResult.VariantID, "err", err)
			continue
		}

		// --seed only fixes the first game
		if !seeded {
			cfg.Seed = time.Now().UnixNano()
		}
		seeded = false

		backToMenu, err := tui.Run(g, store, cfg)
		if err != nil {
			return err
		}
		if !backToMenu {
			return nil
		}
	}
}
