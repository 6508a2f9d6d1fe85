package mcp

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Server is an MCP server playing one 2048 game.
type Server struct {
	store     *storage.Store
	logger    *log.Logger
	mcpServer *server.MCPServer

	mu      sync.Mutex
	variant string
	seed    int64
	moves   []engine.Direction
	eng     *engine.Engine
	best    int
	saved   bool // current game already stored
}

// NewServer creates the MCP server and starts a classic game.
// The store may be nil, in which case nothing is saved.
func NewServer(store *storage.Store, logger *log.Logger) (*Server, error) {
	s := &Server{
		store:  store,
		logger: logger.WithPrefix("mcp"),
	}
	if err := s.start(game.ClassicID, time.Now().UnixNano()); err != nil {
		return nil, err
	}

	s.initMCPServer()
	return s, nil
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"2048",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`2048 - MCP Interface

GAME OBJECTIVE:
Slide numbered tiles on the grid. Equal tiles that collide merge into their sum,
and the merged value is added to the score. Reach the target tile to win; the game
ends when no move can change the board.

AVAILABLE TOOLS:
- game_state: Show the board, score and status
- move: Slide all tiles up/down/left/right
- new_game: Start over, optionally on another variant
- list_variants: List the available boards

After every successful move a new 2 or 4 appears on a random empty cell.
A move that changes nothing does not spawn a tile and does not count.`),
	)

	s.registerTools()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new game. Keeps the best score of the session.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"variant": map[string]interface{}{
					"type":        "string",
					"description": "Board to play (see list_variants). Defaults to the current one",
				},
				"seed": map[string]interface{}{
					"type":        "number",
					"description": "Seed for tile spawns, for a reproducible game (optional)",
				},
			},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide every tile in one direction, merging equal neighbours",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to slide",
				},
			},
			Required: []string{"direction"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, score and status",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_variants",
		Description: "List the boards new_game accepts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListVariants)
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	s.logger.Info("MCP stdio server ready")
	return server.ServeStdio(s.mcpServer)
}

// start replaces the current game. Callers hold mu, except NewServer.
func (s *Server) start(variant string, seed int64) error {
	cfg, ok := game.BoardConfig(variant)
	if !ok {
		return &game.UnknownVariantError{ID: variant}
	}
	eng, err := engine.NewSeeded(cfg, seed)
	if err != nil {
		return err
	}

	if s.eng != nil {
		s.best = max(s.best, s.eng.Score())
	}
	eng.SetBestScore(s.best)

	s.variant = variant
	s.seed = seed
	s.moves = nil
	s.eng = eng
	s.saved = false
	return nil
}

// save stores the current game once, if it scored.
func (s *Server) save() {
	if s.saved || s.store == nil || s.eng.Score() == 0 {
		return
	}
	s.saved = true

	rec := storage.GameRecord{
		Variant: s.variant,
		Seed:    s.seed,
		Moves:   engine.EncodeMoves(s.moves),
		Score:   s.eng.Score(),
		MaxTile: s.eng.MaxTile(),
		Won:     s.eng.Won(),
	}
	if _, err := s.store.SaveGame(rec); err != nil {
		s.logger.Error("save game", "variant", s.variant, "err", err)
		return
	}
	if _, err := s.store.SaveScore(rec.Variant, rec.Score, rec.MaxTile); err != nil {
		s.logger.Error("save score", "variant", s.variant, "err", err)
	}
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	s.mu.Lock()
	defer s.mu.Unlock()

	variant, _ := args["variant"].(string)
	if variant == "" {
		variant = s.variant
	}
	seed := time.Now().UnixNano()
	if raw, ok := args["seed"].(float64); ok {
		seed = int64(raw)
	}

	if _, ok := game.VariantByID(variant); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown variant %q, see list_variants", variant)), nil
	}

	s.save()
	if err := s.start(variant, seed); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Info("new game", "variant", variant, "seed", seed)

	return mcp.NewToolResultText("New game started\n\n" + s.formatState()), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	direction, _ := args["direction"].(string)

	dir, ok := engine.ParseDirection(direction)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown direction %q, use up/down/left/right", direction)), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.eng.Over() {
		return mcp.NewToolResultError("game over, call new_game to play again\n\n" + s.formatState()), nil
	}

	wasWon := s.eng.Won()
	res := s.eng.Move(dir)
	if res.Moved {
		s.moves = append(s.moves, dir)
	}

	var b strings.Builder
	b.WriteString(formatMoveResult(dir, res))
	if s.eng.Won() && !wasWon {
		b.WriteString("You reached the target tile! Keep moving to play on.\n")
	}
	if s.eng.Over() {
		s.save()
	}
	b.WriteString("\n")
	b.WriteString(s.formatState())
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return mcp.NewToolResultText(s.formatState()), nil
}

func (s *Server) handleListVariants(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, info := range registry.List() {
		v, ok := game.VariantByID(info.ID)
		if !ok {
			continue
		}
		target := "endless"
		if v.Board.WinValue > 0 {
			target = fmt.Sprintf("target %d", v.Board.WinValue)
		}
		fmt.Fprintf(&b, "%s: %dx%d, %s - %s\n", v.ID, v.Board.Size, v.Board.Size, target, v.Description)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// formatState renders the board and the status lines. Callers hold mu.
func (s *Server) formatState() string {
	sess := s.eng.Session()

	var b strings.Builder
	fmt.Fprintf(&b, "Variant: %s | Score: %d | Best: %d | Moves: %d\n\n",
		s.variant, sess.Score, max(sess.BestScore, sess.Score), s.eng.MoveCount())
	b.WriteString(game.BoardText(s.eng))
	b.WriteString("\n\n")

	switch {
	case sess.Over:
		fmt.Fprintf(&b, "Status: game over (max tile %d)\n", s.eng.MaxTile())
	case sess.Won:
		b.WriteString("Status: won, still playing\n")
	default:
		b.WriteString("Status: playing\n")
	}
	return b.String()
}

func formatMoveResult(dir engine.Direction, res engine.MoveResult) string {
	if !res.Moved {
		return fmt.Sprintf("✗ %s: nothing moved\n", dir)
	}

	line := fmt.Sprintf("✓ %s", dir)
	if res.Merges > 0 {
		line += fmt.Sprintf(": +%d (%d merges)", res.Gained, res.Merges)
	}
	if res.Spawned != nil {
		line += fmt.Sprintf(", new %d at (%d,%d)", res.Spawned.Value, res.SpawnedAt.X, res.SpawnedAt.Y)
	}
	return line + "\n"
}
