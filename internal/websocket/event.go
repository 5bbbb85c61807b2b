package websocket

import (
	"encoding/json"
	"time"
)

// EventType is the change that happened to an entity
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
)

// EntityType names the ledger record an event is about
type EntityType string

const (
	EntityTypeEntry    EntityType = "entry"
	EntityTypeCategory EntityType = "category"
	EntityTypeBudget   EntityType = "budget"
)

// Event is the frame pushed to clients, e.g.
//
//	{"type":"entry.created","entity":"entry","payload":{...},"timestamp":"..."}
//
// Clients refetch what the event invalidates; payloads are informational.
type Event struct {
	Type      string      `json:"type"`
	Entity    EntityType  `json:"entity"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent stamps an event with the current time
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      string(entityType) + "." + string(eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func EntryCreated(entry interface{}) Event { return NewEvent(EventTypeCreated, EntityTypeEntry, entry) }
func EntryUpdated(entry interface{}) Event { return NewEvent(EventTypeUpdated, EntityTypeEntry, entry) }
func EntryDeleted(ref interface{}) Event   { return NewEvent(EventTypeDeleted, EntityTypeEntry, ref) }

func CategoryCreated(category interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeCategory, category)
}

func CategoryUpdated(category interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeCategory, category)
}

// CategoryDeleted also means the category's entries and budgets are gone
func CategoryDeleted(ref interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeCategory, ref)
}

// BudgetUpdated covers both creating and replacing a budget since writes are upserts
func BudgetUpdated(budget interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeBudget, budget)
}

func BudgetDeleted(ref interface{}) Event { return NewEvent(EventTypeDeleted, EntityTypeBudget, ref) }
