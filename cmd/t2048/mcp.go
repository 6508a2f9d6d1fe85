package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/transport/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the game to AI agents over MCP (stdio)",
	Long: `Run a Model Context Protocol server on stdin/stdout.

The server plays one game and exposes the tools new_game, move,
game_state and list_variants. Finished games that scored are saved to
the scores database like games played in the terminal.

Logs go to stderr so they never mix with the protocol on stdout.

Example MCP client configuration:
  {"command": "t2048", "args": ["mcp"]}`,
	Run: runMCP,
}

func runMCP(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	srv, err := mcp.NewServer(store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating MCP server: %v\n", err)
		os.Exit(1)
	}

	if err := srv.ServeStdio(); err != nil {
		logger.Error("MCP server stopped", "err", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}
