package websocket

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := NewServer(log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("Failed to read message: %v", err)
	}
	return msg
}

func send(t *testing.T, conn *websocket.Conn, cmd Command) Message {
	t.Helper()
	if err := conn.WriteJSON(cmd); err != nil {
		t.Fatalf("Failed to send command: %v", err)
	}
	return readMessage(t, conn)
}

func TestInitialState(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, "?variant=2048_mini&seed=7")

	msg := readMessage(t, conn)
	if msg.Event != EventState {
		t.Fatalf("Expected event %q, got %q (%s)", EventState, msg.Event, msg.Error)
	}
	if msg.Variant != "2048_mini" {
		t.Errorf("Expected variant 2048_mini, got %q", msg.Variant)
	}
	if msg.Result != nil {
		t.Error("Initial state should carry no move result")
	}
	if msg.State == nil {
		t.Fatal("Initial state missing snapshot")
	}
	if msg.State.Size != 3 {
		t.Errorf("Expected size 3, got %d", msg.State.Size)
	}

	tiles := 0
	for _, row := range msg.State.Board {
		for _, v := range row {
			if v != 0 {
				tiles++
			}
		}
	}
	if tiles != 2 {
		t.Errorf("Expected 2 starting tiles, got %d", tiles)
	}
}

func TestDefaultVariant(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, "")

	msg := readMessage(t, conn)
	if msg.Variant != "2048" || msg.State.Size != 4 {
		t.Errorf("Expected the classic 4x4 board, got %q size %d", msg.Variant, msg.State.Size)
	}
}

func TestSeededConnectionsMatch(t *testing.T) {
	ts := newTestServer(t)
	a := readMessage(t, dial(t, ts, "?variant=2048&seed=42"))
	b := readMessage(t, dial(t, ts, "?variant=2048&seed=42"))

	for y := range a.State.Board {
		for x := range a.State.Board[y] {
			if a.State.Board[y][x] != b.State.Board[y][x] {
				t.Fatalf("Boards differ at (%d,%d) for the same seed", x, y)
			}
		}
	}
}

func TestMove(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, "?variant=2048&seed=3")
	readMessage(t, conn)

	// A board with two tiles can always move in some direction
	moved := false
	for _, dir := range []string{"left", "right", "up", "down"} {
		msg := send(t, conn, Command{Type: CommandMove, Direction: dir})
		if msg.Event != EventState {
			t.Fatalf("move %s: expected state event, got %q (%s)", dir, msg.Event, msg.Error)
		}
		if msg.Result == nil {
			t.Fatalf("move %s: missing result", dir)
		}
		if msg.Result.Moved {
			moved = true
			if msg.State.Moves != 1 {
				t.Errorf("Expected 1 move after the first successful move, got %d", msg.State.Moves)
			}
			break
		}
	}
	if !moved {
		t.Error("No direction moved on a fresh board")
	}
}

func TestNewGame(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, "?variant=2048_mini&seed=11")
	readMessage(t, conn)

	for _, dir := range []string{"left", "right", "up", "down"} {
		if msg := send(t, conn, Command{Type: CommandMove, Direction: dir}); msg.Result.Moved {
			break
		}
	}

	msg := send(t, conn, Command{Type: CommandNewGame})
	if msg.Event != EventState {
		t.Fatalf("Expected state event, got %q (%s)", msg.Event, msg.Error)
	}
	if msg.State.Moves != 0 {
		t.Errorf("Expected 0 moves after new_game, got %d", msg.State.Moves)
	}
	if msg.State.Session.Score != 0 || msg.State.Session.Over || msg.State.Session.Won {
		t.Errorf("Expected a fresh session, got %+v", msg.State.Session)
	}
}

func TestStateCommand(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, "?variant=2048_big&seed=1")
	first := readMessage(t, conn)

	msg := send(t, conn, Command{Type: CommandState})
	if msg.Event != EventState || msg.Result != nil {
		t.Fatalf("Expected a bare state event, got %+v", msg)
	}
	if msg.State.Size != first.State.Size || msg.State.MaxTile != first.State.MaxTile {
		t.Error("state command should not change the board")
	}
}

func TestBadCommands(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, "?variant=2048")
	readMessage(t, conn)

	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"unknown type", Command{Type: "jump"}, "unknown command"},
		{"bad direction", Command{Type: CommandMove, Direction: "sideways"}, "unknown direction"},
		{"missing direction", Command{Type: CommandMove}, "unknown direction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := send(t, conn, tt.cmd)
			if msg.Event != EventError {
				t.Fatalf("Expected error event, got %q", msg.Event)
			}
			if !strings.Contains(msg.Error, tt.want) {
				t.Errorf("Expected error containing %q, got %q", tt.want, msg.Error)
			}
		})
	}

	// Malformed JSON is answered, not fatal
	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("Failed to send raw message: %v", err)
	}
	if msg := readMessage(t, conn); msg.Event != EventError {
		t.Errorf("Expected error event for malformed JSON, got %q", msg.Event)
	}

	// The connection is still usable afterwards
	if msg := send(t, conn, Command{Type: CommandState}); msg.Event != EventState {
		t.Errorf("Expected state event after errors, got %q", msg.Event)
	}
}

func TestUnknownVariant(t *testing.T) {
	ts := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?variant=tetris"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("Expected dial to fail for an unknown variant")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 response, got %v", resp)
	}
}

func TestBadSeed(t *testing.T) {
	ts := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?seed=abc"

	if _, _, err := websocket.DefaultDialer.Dial(wsURL, nil); err == nil {
		t.Fatal("Expected dial to fail for a non-numeric seed")
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}

func TestClientCount(t *testing.T) {
	srv := NewServer(log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn := dial(t, ts, "?variant=2048_mini")
	readMessage(t, conn)
	if n := srv.ClientCount(); n != 1 {
		t.Fatalf("Expected 1 client, got %d", n)
	}

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for srv.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("Client was not unregistered after closing")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
