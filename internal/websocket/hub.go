package websocket

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrClientClosed is returned when sending to a closed or dropped client
var ErrClientClosed = errors.New("client is closed")

// ClientInterface is what the hub needs from a connection
type ClientInterface interface {
	ID() string
	UserID() uuid.UUID
	// Send must not block
	Send(data []byte) error
	Close() error
}

// Hub fans ledger events out to the connections of their owner.
// Users never receive each other's events.
type Hub struct {
	mu    sync.RWMutex
	users map[uuid.UUID]map[string]ClientInterface
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{users: make(map[uuid.UUID]map[string]ClientInterface)}
}

// Register adds a client under its user
func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	conns, ok := h.users[client.UserID()]
	if !ok {
		conns = make(map[string]ClientInterface)
		h.users[client.UserID()] = conns
	}
	conns[client.ID()] = client
	h.mu.Unlock()

	log.Debug().Str("user_id", client.UserID().String()).Str("client_id", client.ID()).Msg("WebSocket client registered")
}

// Unregister removes a client; unknown clients are ignored
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.users[client.UserID()]
	if _, ok := conns[client.ID()]; !ok {
		return
	}
	delete(conns, client.ID())
	if len(conns) == 0 {
		delete(h.users, client.UserID())
	}
}

// Broadcast encodes event once and queues it on every connection of userID.
// Clients that cannot take it are unregistered.
func (h *Hub) Broadcast(userID uuid.UUID, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().Err(err).Str("event_type", event.Type).Msg("Failed to encode event")
		return
	}

	h.mu.RLock()
	targets := make([]ClientInterface, 0, len(h.users[userID]))
	for _, c := range h.users[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.Send(data); err != nil {
			h.Unregister(c)
		}
	}
	if len(targets) > 0 {
		log.Debug().Str("user_id", userID.String()).Str("event_type", event.Type).Int("clients", len(targets)).Msg("Event broadcast")
	}
}

// ClientCount returns the number of connections of a user
func (h *Hub) ClientCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID])
}

// TotalClientCount returns the number of connections across all users
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, conns := range h.users {
		n += len(conns)
	}
	return n
}
