package models

import (
	"time"

	"github.com/google/uuid"
)

// WebSocketMessageType represents message type constants
type WebSocketMessageType string

const (
	EventMessage       WebSocketMessageType = "event"
	SubscribeMessage   WebSocketMessageType = "subscribe"
	UnsubscribeMessage WebSocketMessageType = "unsubscribe"
	ErrorMessage       WebSocketMessageType = "error"
)

// AllBlocks subscribes a client to events of every block.
const AllBlocks = "*"

// StandardMessage is the envelope of every websocket frame, in both
// directions. Subscribe and unsubscribe requests name the block in BlockID.
type StandardMessage struct {
	ID        string                 `json:"id"`
	Type      WebSocketMessageType   `json:"type"`
	Event     string                 `json:"event,omitempty"`
	BlockID   string                 `json:"block_id,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

func NewStandardMessage(msgType WebSocketMessageType, event string, payload map[string]interface{}) *StandardMessage {
	return &StandardMessage{
		ID:        uuid.New().String(),
		Type:      msgType,
		Event:     event,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// ForBlock sets the block the message is about.
func (m *StandardMessage) ForBlock(blockID string) *StandardMessage {
	m.BlockID = blockID
	return m
}
