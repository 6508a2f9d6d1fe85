package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available boards",
	Long:  `Shows every board preset with its size and target tile.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Println("No boards available.")
		return
	}

	fmt.Println("Available boards:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, v := range variants {
		maxIDLen = max(maxIDLen, len(v.ID))
	}

	fmt.Printf("  %-*s  %-5s  %-7s  %s\n", maxIDLen, "ID", "Size", "Target", "Title")
	fmt.Printf("  %-*s  %-5s  %-7s  %s\n", maxIDLen, "--", "----", "------", "-----")

	for _, info := range variants {
		v, ok := game.VariantByID(info.ID)
		if !ok {
			continue
		}
		target := "-"
		if v.Board.WinValue > 0 {
			target = fmt.Sprint(v.Board.WinValue)
		}
		size := fmt.Sprintf("%dx%d", v.Board.Size, v.Board.Size)
		fmt.Printf("  %-*s  %-5s  %-7s  %s\n", maxIDLen, v.ID, size, target, v.Title)
	}

	fmt.Println()
	fmt.Println("Run 't2048 play <id>' to play a board.")
}
