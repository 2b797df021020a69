package websocket

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Notification represents a message sent over WebSocket
type Notification struct {
	Type         string      `json:"type"`
	Title        string      `json:"title,omitempty"`
	Message      string      `json:"message"`
	Data         interface{} `json:"data,omitempty"`
	Recipient    string      `json:"recipient,omitempty"`
	RequiresAuth bool        `json:"requiresAuth,omitempty"`
}

// Client represents a connected WebSocket client. Recipient is empty until the client authenticates.
type Client struct {
	Recipient string
	Conn      *websocket.Conn
	writeMu   sync.Mutex
}

// Authenticated reports whether the client is bound to a recipient
func (c *Client) Authenticated() bool {
	return c.Recipient != ""
}

// WriteJSON serializes writes; gorilla connections allow one concurrent writer
func (c *Client) WriteJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}

// Hub maintains the set of active clients keyed by recipient ("customer:1000", "employee:1003")
type Hub struct {
	clients                map[string]map[*Client]bool
	unauthenticatedClients map[*Client]bool
	register               chan *Client
	unregister             chan *Client
	done                   chan struct{}
	mu                     sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:                make(map[string]map[*Client]bool),
		unauthenticatedClients: make(map[*Client]bool),
		register:               make(chan *Client),
		unregister:             make(chan *Client),
		done:                   make(chan struct{}),
	}
}

// Run starts the hub's event loop until Stop is called
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
			client.Conn.Close()
		case <-h.done:
			return
		}
	}
}

// Stop ends the event loop
func (h *Hub) Stop() {
	close(h.done)
}

// enqueueRegister hands the client to the event loop. It reports false once the hub is stopped.
func (h *Hub) enqueueRegister(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// enqueueUnregister hands the client to the event loop, or closes it directly once the hub is stopped
func (h *Hub) enqueueUnregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
		h.remove(client)
		client.Conn.Close()
	}
}

func (h *Hub) add(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !client.Authenticated() {
		h.unauthenticatedClients[client] = true
		return
	}
	if h.clients[client.Recipient] == nil {
		h.clients[client.Recipient] = make(map[*Client]bool)
	}
	h.clients[client.Recipient][client] = true
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.unauthenticatedClients, client)
	if conns, ok := h.clients[client.Recipient]; ok {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.clients, client.Recipient)
		}
	}
}

// SendToUser sends a message to every connection of a recipient
func (h *Hub) SendToUser(recipient string, notification Notification) error {
	h.mu.RLock()
	conns := make([]*Client, 0, len(h.clients[recipient]))
	for client := range h.clients[recipient] {
		conns = append(conns, client)
	}
	h.mu.RUnlock()

	if len(conns) == 0 {
		return fmt.Errorf("user not connected")
	}

	notification.Recipient = recipient
	var lastErr error
	for _, client := range conns {
		if err := client.WriteJSON(notification); err != nil {
			log.Debug().Err(err).Str("recipient", recipient).Msg("websocket write failed")
			lastErr = err
		}
	}
	return lastErr
}

// IsConnected reports whether the recipient has at least one open connection
func (h *Hub) IsConnected(recipient string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[recipient]) > 0
}

// AuthenticateClient binds a client to recipient, dropping any earlier binding
func (h *Hub) AuthenticateClient(client *Client, recipient string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.unauthenticatedClients, client)
	if conns, ok := h.clients[client.Recipient]; ok && client.Recipient != recipient {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.clients, client.Recipient)
		}
	}
	client.Recipient = recipient
	if h.clients[recipient] == nil {
		h.clients[recipient] = make(map[*Client]bool)
	}
	h.clients[recipient][client] = true
}
