package mcp

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

type handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func newTestServer(t *testing.T, store *storage.Store) *Server {
	t.Helper()
	s, err := NewServer(store, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewServer() failed: %v", err)
	}
	return s
}

func call(t *testing.T, h handler, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}

	result, err := h(context.Background(), request)
	if err != nil {
		t.Fatalf("%s failed: %v", name, err)
	}
	if result == nil {
		t.Fatalf("%s returned nil result", name)
	}
	return result
}

func text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("Expected content in result")
	}
	content, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return content.Text
}

// moveUntilMoved tries every direction until one changes the board.
func moveUntilMoved(t *testing.T, s *Server) string {
	t.Helper()
	for _, dir := range []string{"left", "right", "up", "down"} {
		out := text(t, call(t, s.handleMove, "move", map[string]interface{}{"direction": dir}))
		if strings.HasPrefix(out, "✓") {
			return out
		}
	}
	t.Fatal("No direction moved")
	return ""
}

func TestNewServer(t *testing.T) {
	s := newTestServer(t, nil)

	if s.MCPServer() == nil {
		t.Fatal("Expected MCP server to be initialized")
	}
	if s.MCPServer() != s.mcpServer {
		t.Error("MCPServer() should return the server the tools were registered on")
	}
	if s.variant != game.ClassicID {
		t.Errorf("Expected classic variant, got %q", s.variant)
	}
	if s.eng == nil || s.eng.Size() != 4 {
		t.Error("Expected a started 4x4 game")
	}
}

func TestHandleGameState(t *testing.T) {
	s := newTestServer(t, nil)

	out := text(t, call(t, s.handleGameState, "game_state", nil))
	for _, want := range []string{"Variant: 2048", "Score: 0", "Moves: 0", "Status: playing"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in state, got:\n%s", want, out)
		}
	}

	// Header, blank line, four board rows, blank line, status
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 8 {
		t.Errorf("Expected 8 lines, got %d:\n%s", len(lines), out)
	}
}

func TestHandleMove(t *testing.T) {
	s := newTestServer(t, nil)
	call(t, s.handleNewGame, "new_game", map[string]interface{}{"seed": float64(9)})

	out := moveUntilMoved(t, s)
	if !strings.Contains(out, "Moves: 1") {
		t.Errorf("Expected one counted move, got:\n%s", out)
	}
	if !strings.Contains(out, "new ") {
		t.Errorf("Expected the spawned tile to be reported, got:\n%s", out)
	}
	if len(s.moves) != 1 {
		t.Errorf("Expected 1 recorded move, got %d", len(s.moves))
	}
}

func TestHandleMoveErrors(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing direction", map[string]interface{}{}},
		{"bad direction", map[string]interface{}{"direction": "diagonal"}},
		{"wrong type", map[string]interface{}{"direction": 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := call(t, s.handleMove, "move", tt.args)
			if !result.IsError {
				t.Error("Expected an error result")
			}
		})
	}
}

func TestHandleNewGame(t *testing.T) {
	s := newTestServer(t, nil)

	out := text(t, call(t, s.handleNewGame, "new_game", map[string]interface{}{
		"variant": "2048_mini",
		"seed":    float64(5),
	}))
	if !strings.HasPrefix(out, "New game started") {
		t.Errorf("Unexpected reply:\n%s", out)
	}
	if s.variant != "2048_mini" || s.eng.Size() != 3 {
		t.Errorf("Expected a 3x3 mini game, got %q size %d", s.variant, s.eng.Size())
	}

	// Without a variant the current one is kept
	call(t, s.handleNewGame, "new_game", nil)
	if s.variant != "2048_mini" {
		t.Errorf("Expected variant to stay 2048_mini, got %q", s.variant)
	}

	result := call(t, s.handleNewGame, "new_game", map[string]interface{}{"variant": "tetris"})
	if !result.IsError {
		t.Error("Expected an error for an unknown variant")
	}
	if s.variant != "2048_mini" {
		t.Error("Unknown variant should leave the current game alone")
	}
}

func TestNewGameSeedReproducible(t *testing.T) {
	s := newTestServer(t, nil)
	args := map[string]interface{}{"variant": "2048", "seed": float64(1234)}

	call(t, s.handleNewGame, "new_game", args)
	first := game.BoardText(s.eng)
	call(t, s.handleNewGame, "new_game", args)
	second := game.BoardText(s.eng)

	if first != second {
		t.Errorf("Same seed gave different boards:\n%s\n\n%s", first, second)
	}
}

func TestBestScoreKept(t *testing.T) {
	s := newTestServer(t, nil)
	call(t, s.handleNewGame, "new_game", map[string]interface{}{"variant": "2048_mini", "seed": float64(2)})

	dirs := []string{"left", "up", "right", "down"}
	for i := 0; i < 200 && s.eng.Score() == 0 && !s.eng.Over(); i++ {
		call(t, s.handleMove, "move", map[string]interface{}{"direction": dirs[i%len(dirs)]})
	}
	score := s.eng.Score()
	if score == 0 {
		t.Skip("seeded game never scored")
	}

	call(t, s.handleNewGame, "new_game", nil)
	if got := s.eng.Session().BestScore; got != score {
		t.Errorf("BestScore = %d, expected %d", got, score)
	}
}

func TestSavesFinishedGame(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	s := newTestServer(t, store)
	call(t, s.handleNewGame, "new_game", map[string]interface{}{"variant": "2048_mini", "seed": float64(3)})

	dirs := []string{"left", "up", "right", "down"}
	for i := 0; i < 200 && s.eng.Score() == 0 && !s.eng.Over(); i++ {
		call(t, s.handleMove, "move", map[string]interface{}{"direction": dirs[i%len(dirs)]})
	}
	score := s.eng.Score()
	if score == 0 {
		t.Skip("seeded game never scored")
	}

	call(t, s.handleNewGame, "new_game", nil)

	games, err := store.RecentGames("2048_mini", 10)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("Expected 1 saved game, got %d", len(games))
	}

	replayed, err := game.Replay(game.Record{Variant: games[0].Variant, Seed: games[0].Seed, Moves: games[0].Moves})
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if replayed.Score() != score {
		t.Errorf("Replayed score = %d, expected %d", replayed.Score(), score)
	}

	// A fresh game with no score is not saved
	call(t, s.handleNewGame, "new_game", nil)
	if games, _ := store.RecentGames("2048_mini", 10); len(games) != 1 {
		t.Errorf("Expected still 1 saved game, got %d", len(games))
	}
}

func TestHandleListVariants(t *testing.T) {
	s := newTestServer(t, nil)

	out := text(t, call(t, s.handleListVariants, "list_variants", nil))
	for _, want := range []string{"2048: 4x4, target 2048", "2048_mini: 3x3, target 256", "2048_endless: 4x4, endless"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in:\n%s", want, out)
		}
	}
}

func TestFormatMoveResult(t *testing.T) {
	s := newTestServer(t, nil)
	call(t, s.handleNewGame, "new_game", map[string]interface{}{"seed": float64(1)})

	res := s.eng.Move(0)
	out := formatMoveResult(0, res)
	if res.Moved && !strings.HasPrefix(out, "✓ up") {
		t.Errorf("Unexpected move summary %q", out)
	}
	if !res.Moved && out != "✗ up: nothing moved\n" {
		t.Errorf("Unexpected no-move summary %q", out)
	}
}
