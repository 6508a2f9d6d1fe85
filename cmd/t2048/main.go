// t2048 is the 2048 sliding tile game for the terminal, with remote play
// over SSH, WebSocket and MCP.
//
// Usage:
//
//	t2048 list              - List available boards
//	t2048 play [board]      - Play a board (menu if omitted)
//	t2048 menu              - Start menu to pick boards interactively
//	t2048 scores <board>    - Show high scores for a board
//	t2048 replay <id>       - Replay a recorded game
//	t2048 serve             - Start SSH and WebSocket servers
//	t2048 mcp               - Serve MCP over stdio
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible games
//	--db <path>          - Set database path (default: from config)
//	--config <path>      - Use a specific config file
//	--log-level <level>  - Override the configured log level
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - Slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 sliding tile puzzle for the terminal.

Slide the board with the arrow keys; equal tiles merge into their sum.
Reach the target tile to win, keep going for a higher score.

Available commands:
  list     - Show all available boards
  play     - Play a specific board directly
  menu     - Interactive board picker menu
  scores   - View high scores
  replay   - Replay a recorded game
  serve    - Start SSH and WebSocket servers for remote play
  mcp      - Serve the game to AI agents over MCP (stdio)

Examples:
  t2048 list
  t2048 play 2048_mini
  t2048 menu
  t2048 serve --ssh :2222 --http :8080
  t2048 scores 2048`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default: storage.db_path from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
}

// setup loads the config, builds the logger and applies the classic board.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	appConfig = cfg

	level := cfg.LogLevel()
	if flagLogLevel != "" {
		level, err = log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
		Level:           level,
	})

	if err := game.SetClassicConfig(cfg.Engine()); err != nil {
		return fmt.Errorf("config: board: %w", err)
	}
	logger.Debug("config loaded", "size", cfg.Board.Size, "win", cfg.Board.WinValue, "db", dbPath())
	return nil
}

// dbPath returns the --db flag, falling back to the configured path.
func dbPath() string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return appConfig.Storage.DBPath
}

// openStore opens the score database. Play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open(dbPath())
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "path", dbPath(), "err", err)
		return nil
	}
	return store
}
