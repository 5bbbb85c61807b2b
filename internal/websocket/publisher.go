package websocket

import "github.com/google/uuid"

// EventPublisher is how services announce ledger changes
type EventPublisher interface {
	Publish(userID uuid.UUID, event Event)
}

var _ EventPublisher = (*Hub)(nil)

// Publish delivers event to the user's open connections
func (h *Hub) Publish(userID uuid.UUID, event Event) {
	h.Broadcast(userID, event)
}
