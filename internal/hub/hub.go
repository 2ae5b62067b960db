package hub

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var (
	ErrClientClosed   = errors.New("client closed")
	ErrSendBufferFull = errors.New("send buffer full")
)

// Client is one connected page session. Everything the session shows is
// pushed through Send.
type Client struct {
	ID   string
	Send chan []byte

	mu     sync.Mutex
	closed bool
}

func NewClient(id string, bufferSize int) *Client {
	return &Client{
		ID:   id,
		Send: make(chan []byte, bufferSize),
	}
}

// Push queues data without blocking.
func (c *Client) Push(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}
	select {
	case c.Send <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// Hub is the registry of connected sessions.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	// Registrations and removals share one channel so they apply in the
	// order they were made.
	ops  chan membership
	done chan struct{}

	logger *slog.Logger
}

type membership struct {
	client *Client
	join   bool
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		ops:     make(chan membership, 32),
		done:    make(chan struct{}),
		logger:  logger.With("component", "hub"),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAllClients()
			return

		case op := <-h.ops:
			if op.join {
				h.addClient(op.client)
			} else {
				h.removeClient(op.client)
			}
		}
	}
}

// Register adds client. Once the hub has stopped the client is closed
// immediately.
func (h *Hub) Register(client *Client) {
	if h.Stopped() {
		client.close()
		return
	}
	select {
	case h.ops <- membership{client: client, join: true}:
	case <-h.done:
		client.close()
	}
}

func (h *Hub) Unregister(client *Client) {
	if h.Stopped() {
		client.close()
		return
	}
	select {
	case h.ops <- membership{client: client}:
	case <-h.done:
		client.close()
	}
}

// Stopped reports whether Run has returned.
func (h *Hub) Stopped() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = struct{}{}
	h.logger.Debug("client registered", "client_id", client.ID, "total", len(h.clients))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	client.close()
	h.logger.Debug("client unregistered", "client_id", client.ID, "total", len(h.clients))
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.close()
	}
	h.clients = make(map[*Client]struct{})
}
