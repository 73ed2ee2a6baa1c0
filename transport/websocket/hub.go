package websocket

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

const sendBuffer = 16

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// enqueue drops the message when the client is not keeping up.
func (that *client) enqueue(data []byte) bool {
	select {
	case that.send <- data:
		return true
	default:
		return false
	}
}

// Hub fans game events out to every connected client.
type Hub struct {
	logger *slog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "ws-hub"),
		clients: make(map[*client]struct{}),
	}
}

// Publish broadcasts an event. It never blocks on a slow client.
func (that *Hub) Publish(event string, payload any) {
	log := that.logger.With("method", "Publish", "event", event)

	data, err := encode(event, payload)
	if err != nil {
		log.Error("failed to marshal event", "error", err)
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	for c := range that.clients {
		if !c.enqueue(data) {
			log.Warn("client is too slow, event dropped")
		}
	}
}

func (that *Hub) register(c *client) {
	that.mu.Lock()
	that.clients[c] = struct{}{}
	that.mu.Unlock()
}

func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	if _, ok := that.clients[c]; ok {
		delete(that.clients, c)
		close(c.send)
	}
	that.mu.Unlock()
}

// Clients is the number of connected clients.
func (that *Hub) Clients() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.clients)
}

// Close drops every connection; their read loops then unregister them.
func (that *Hub) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for c := range that.clients {
		_ = c.conn.Close()
	}
}
