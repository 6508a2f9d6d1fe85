// Package mcp exposes a 2048 board to AI agents over the Model Context Protocol.
//
// MCP Tools:
//   - new_game: Start a new game, optionally on another variant or seed
//   - move: Slide the tiles up, down, left or right
//   - game_state: Show the board, score and status
//   - list_variants: List the boards that new_game accepts
//
// Every tool answers with plain text: the board as aligned rows of numbers
// ("." for empty cells) followed by the score, best score and status line.
//
// The server holds a single game guarded by a mutex. When a store is given,
// finished games that scored are saved with their seed and moves, so they
// can be replayed with "t2048 replay".
//
// Usage:
//
//	srv, err := mcp.NewServer(store, logger)
//	if err != nil {
//		return err
//	}
//	return srv.ServeStdio()
package mcp
