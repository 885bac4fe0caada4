// Package spectate streams a running game to read-only websocket clients.
// The game loop publishes snapshots and events; every connected client gets
// them as JSON text frames. Slow clients lose their oldest frames instead of
// holding up the game.
package spectate

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Message is the envelope of every frame sent to spectators.
type Message struct {
	Type string          `json:"type"` // "snapshot" or "event"
	Kind string          `json:"kind,omitempty"`
	Data json.RawMessage `json:"data"`
}

// Config holds hub settings.
type Config struct {
	// Buffer is the number of frames queued per client before the oldest
	// are dropped.
	Buffer int

	// Logger receives connection logs. Defaults to a stderr logger.
	Logger *log.Logger
}

// Hub fans published frames out to websocket clients.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	latest  []byte // last snapshot frame, sent to new clients first
	closed  bool

	buffer   int
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHub creates a hub with no clients.
func NewHub(cfg Config) *Hub {
	if cfg.Buffer < 1 {
		cfg.Buffer = 64
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("spectate")
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		buffer:  cfg.Buffer,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Publish sends a state snapshot to every client. It never blocks on the
// network.
func (h *Hub) Publish(v any) {
	frame, err := encode(Message{Type: "snapshot"}, v)
	if err != nil {
		h.logger.Warn("cannot encode snapshot", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = frame
	h.broadcastLocked(frame)
}

// PublishEvent sends a game event to every client.
func (h *Hub) PublishEvent(kind string, v any) {
	frame, err := encode(Message{Type: "event", Kind: kind}, v)
	if err != nil {
		h.logger.Warn("cannot encode event", "kind", kind, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastLocked(frame)
}

func encode(msg Message, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	msg.Data = data
	return json.Marshal(msg)
}

func (h *Hub) broadcastLocked(frame []byte) {
	for c := range h.clients {
		c.send(frame)
	}
}

// Latest returns the last published snapshot frame, or nil.
func (h *Hub) Latest() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request to a websocket and streams frames until
// the client goes away or the hub is closed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := newClient(conn, h.buffer)
	if !h.add(c) {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closing")
		//nolint:errcheck // Best-effort close frame
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		conn.Close()
		return
	}
	h.logger.Info("spectator joined", "remote", r.RemoteAddr, "clients", h.Clients())

	go c.writeLoop()
	c.readLoop()

	h.remove(c)
	h.logger.Info("spectator left", "remote", r.RemoteAddr, "dropped", c.dropped())
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.latest != nil {
		c.send(h.latest)
	}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}

// Handler returns a mux serving the websocket at /ws and the latest
// snapshot as plain JSON at /snapshot.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/snapshot", func(w http.ResponseWriter, _ *http.Request) {
		frame := h.Latest()
		if frame == nil {
			http.Error(w, "no game running", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck // Client may have gone away
		w.Write(frame)
	})
	return mux
}
