package websocket

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_Publish(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	client := newMockClient("client-1", userID)
	hub.Register(client)

	var publisher EventPublisher = hub
	publisher.Publish(userID, CategoryCreated(map[string]interface{}{"id": float64(7), "name": "Food"}))

	messages := client.GetMessages()
	require.Len(t, messages, 1)

	var decoded Event
	require.NoError(t, json.Unmarshal(messages[0], &decoded))
	assert.Equal(t, "category.created", decoded.Type)
	assert.Equal(t, EntityTypeCategory, decoded.Entity)
}
