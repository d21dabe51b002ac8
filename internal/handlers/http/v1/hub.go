package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

const (
	// DefaultClientBuffer is how many rolls may queue for one stream client
	// before it is dropped
	DefaultClientBuffer = 16

	writeWait = 10 * time.Second
)

// HubConfig configures the roll stream hub
type HubConfig struct {
	Logger *zap.Logger
	// ClientBuffer defaults to DefaultClientBuffer
	ClientBuffer int
	// AllowedOrigins limits browser origins; empty allows any
	AllowedOrigins []string
}

// Validate ensures all required dependencies are present
func (c *HubConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Logger == nil {
		vb.RequiredField("Logger")
	}
	if c.ClientBuffer < 0 {
		vb.InvalidField("ClientBuffer", "must not be negative")
	}

	return vb.Build()
}

// Hub fans shared rolls out to websocket clients. A client whose buffer is
// full is disconnected rather than slowing the others down.
type Hub struct {
	logger   *zap.Logger
	buffer   int
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*streamClient]struct{}
}

type streamClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a roll stream hub
func NewHub(cfg *HubConfig) (*Hub, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	buffer := cfg.ClientBuffer
	if buffer == 0 {
		buffer = DefaultClientBuffer
	}

	origins := cfg.AllowedOrigins
	return &Hub{
		logger: cfg.Logger,
		buffer: buffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(origins) == 0 {
					return true
				}
				return slices.Contains(origins, r.Header.Get("Origin"))
			},
		},
		clients: make(map[*streamClient]struct{}),
	}, nil
}

// Subscribe streams every dnd5e.EventRollShared published on bus and returns
// the subscription ID
func (h *Hub) Subscribe(bus events.EventBus) string {
	return bus.SubscribeFunc(dnd5e.EventRollShared, 0, h.handleRollShared)
}

func (h *Hub) handleRollShared(_ context.Context, event events.Event) error {
	roll, ok := event.Source().(*dnd5e.SharedRollResult)
	if !ok || roll == nil {
		h.logger.Warn("ignoring shared roll event without a roll",
			zap.String("event_type", event.Type()),
		)
		return nil
	}
	h.Publish(*roll)
	return nil
}

// Publish queues a roll for every connected client
func (h *Hub) Publish(roll dnd5e.SharedRollResult) {
	data, err := json.Marshal(roll)
	if err != nil {
		h.logger.Error("failed to encode roll for stream", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("dropping slow stream client")
			h.dropLocked(c)
		}
	}
}

// ClientCount returns the number of connected stream clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		h.dropLocked(c)
	}
}

// ServeHTTP upgrades the request to a websocket and streams rolls until the
// client goes away
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &streamClient{
		conn: conn,
		send: make(chan []byte, h.buffer),
	}
	h.add(c)

	go c.writePump(h.logger)
	c.readPump()
	h.remove(c)
}

func (h *Hub) add(c *streamClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) remove(c *streamClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c)
}

// dropLocked must be called with h.mu held. Closing send ends the write
// pump, which closes the connection.
func (h *Hub) dropLocked(c *streamClient) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// readPump discards client messages and returns once the connection fails
func (c *streamClient) readPump() {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *streamClient) writePump(logger *zap.Logger) {
	defer c.conn.Close()

	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logger.Debug("stream write failed", zap.Error(err))
			return
		}
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
