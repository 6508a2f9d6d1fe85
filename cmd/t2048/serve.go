package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/transport/websocket"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH and WebSocket servers",
	Long: `Start servers that let users play remotely.

SSH: each connection gets its own session with the board picker menu.
WebSocket: each connection to /ws?variant=<board> plays one board with
JSON commands ({"type":"move","direction":"left"}, {"type":"new_game"},
{"type":"state"}).

Scores from SSH sessions are stored per-server (all users share the same
leaderboard). Pass an empty address to disable a server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.t2048/host_key

Examples:
  t2048 serve                            # SSH on :23234, WebSocket on :8080
  t2048 serve --ssh :2222 --http ""      # SSH only, on port 2222
  t2048 serve --host-key ./my_host_key   # Use specific host key
  t2048 serve --db ./scores.db           # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default: server.ssh_address from config)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "WebSocket server address (default: server.http_address from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default: from config)")
}

func runServe(cmd *cobra.Command, _ []string) {
	serverCfg := appConfig.Server
	if cmd.Flags().Changed("ssh") {
		serverCfg.SSHAddress = flagSSHAddr
	}
	if cmd.Flags().Changed("http") {
		serverCfg.HTTPAddress = flagHTTPAddr
	}
	if flagHostKey != "" {
		serverCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		serverCfg.IdleTimeoutMinutes = flagIdleTimeout
	}

	if serverCfg.SSHAddress == "" && serverCfg.HTTPAddress == "" {
		fmt.Fprintln(os.Stderr, "Error: both servers are disabled")
		os.Exit(1)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if serverCfg.SSHAddress != "" {
		sshCfg := tui.SSHConfigFrom(serverCfg)
		sshCfg.TickRate = flagFPS

		sshServer, err := tui.NewSSHServer(sshCfg, store, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
			os.Exit(1)
		}
		logger.Info("connect with ssh", "address", sshServer.Addr(), "idle_timeout", sshCfg.IdleTimeout.Round(time.Minute))
		g.Go(func() error {
			return sshServer.ListenAndServe(ctx)
		})
	}

	if serverCfg.HTTPAddress != "" {
		wsServer := websocket.NewServer(logger)
		g.Go(func() error {
			return wsServer.ListenAndServe(ctx, serverCfg.HTTPAddress)
		})
	}

	logger.Info("press Ctrl+C to stop")
	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "err", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}
