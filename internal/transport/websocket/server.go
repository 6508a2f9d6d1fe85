package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/game"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Replies queued per connection before it is dropped.
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Command types accepted from clients.
const (
	CommandMove    = "move"
	CommandNewGame = "new_game"
	CommandState   = "state"
)

// Event types sent to clients.
const (
	EventState = "state"
	EventError = "error"
)

// Command is a message sent by a client.
type Command struct {
	Type      string `json:"type"`
	Direction string `json:"direction,omitempty"`
}

// Message is a reply sent to a client.
type Message struct {
	Event   string             `json:"event"`
	Variant string             `json:"variant,omitempty"`
	Result  *engine.MoveResult `json:"result,omitempty"`
	State   *engine.Snapshot   `json:"state,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// Server accepts WebSocket connections and plays one board per connection.
type Server struct {
	logger *log.Logger

	mu      sync.Mutex
	clients map[*Client]struct{}
}

// Client is one connection and the board it plays.
type Client struct {
	server  *Server
	conn    *websocket.Conn
	send    chan []byte
	variant string
	eng     *engine.Engine
}

// NewServer creates a WebSocket server.
func NewServer(logger *log.Logger) *Server {
	return &Server{
		logger:  logger.WithPrefix("ws"),
		clients: make(map[*Client]struct{}),
	}
}

// Handler returns the HTTP handler serving /ws and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	return mux
}

// ServeWS upgrades the request and starts a game for the new connection.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	eng, variant, err := newEngine(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	client := &Client{
		server:  s,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		variant: variant,
		eng:     eng,
	}
	s.register(client)

	client.reply(client.stateMessage(nil))

	go client.writePump()
	go client.readPump()
}

// newEngine builds the engine for the variant and seed in the query string.
func newEngine(r *http.Request) (*engine.Engine, string, error) {
	q := r.URL.Query()

	variant := q.Get("variant")
	if variant == "" {
		variant = game.ClassicID
	}
	cfg, ok := game.BoardConfig(variant)
	if !ok {
		return nil, "", fmt.Errorf("unknown variant %q", variant)
	}

	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, "", fmt.Errorf("bad seed %q", raw)
		}
		eng, err := engine.NewSeeded(cfg, seed)
		return eng, variant, err
	}

	eng, err := engine.New(cfg, nil)
	return eng, variant, err
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("starting WebSocket server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := httpServer.Shutdown(shutdownCtx)
	s.closeAll()
	return err
}

// ClientCount returns the number of open connections.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) register(c *Client) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	n := len(s.clients)
	s.mu.Unlock()

	s.logger.Info("client connected", "variant", c.variant, "remote", c.conn.RemoteAddr().String(), "clients", n)
}

func (s *Server) unregister(c *Client) {
	s.mu.Lock()
	_, ok := s.clients[c]
	delete(s.clients, c)
	n := len(s.clients)
	s.mu.Unlock()

	if ok {
		s.logger.Info("client disconnected", "variant", c.variant, "score", c.eng.Score(), "clients", n)
	}
}

// closeAll drops every connection; hijacked connections outlive http.Server.Shutdown.
func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.conn.Close()
	}
}

// handle applies one command to the client's engine and returns the reply.
func (c *Client) handle(data []byte) *Message {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return errorMessage("invalid command: %v", err)
	}

	switch cmd.Type {
	case CommandMove:
		dir, ok := engine.ParseDirection(cmd.Direction)
		if !ok {
			return errorMessage("unknown direction %q", cmd.Direction)
		}
		res := c.eng.Move(dir)
		return c.stateMessage(&res)

	case CommandNewGame:
		sess := c.eng.Session()
		c.eng.SetBestScore(max(sess.BestScore, sess.Score))
		c.eng.NewGame()
		return c.stateMessage(nil)

	case CommandState:
		return c.stateMessage(nil)

	default:
		return errorMessage("unknown command %q", cmd.Type)
	}
}

func (c *Client) stateMessage(res *engine.MoveResult) *Message {
	snap := c.eng.Snapshot()
	return &Message{
		Event:   EventState,
		Variant: c.variant,
		Result:  res,
		State:   &snap,
	}
}

func errorMessage(format string, args ...any) *Message {
	return &Message{Event: EventError, Error: fmt.Sprintf(format, args...)}
}

// reply queues a message for the write pump. A client that stops reading
// is disconnected rather than allowed to block the engine.
func (c *Client) reply(msg *Message) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		c.server.logger.Error("marshal reply", "err", err)
		return true
	}

	select {
	case c.send <- data:
		return true
	default:
		c.server.logger.Warn("send buffer full, dropping client", "variant", c.variant)
		return false
	}
}

// readPump reads commands from the connection and answers each in order.
func (c *Client) readPump() {
	defer func() {
		c.server.unregister(c)
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.server.logger.Warn("read failed", "variant", c.variant, "err", err)
			}
			return
		}

		if !c.reply(c.handle(data)) {
			return
		}
	}
}

// writePump writes queued replies and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// readPump is done with the connection
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
