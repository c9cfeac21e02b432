package models

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Event is an outbox row. It is written in the same transaction as the block
// change it describes and published later by the event dispatcher.
type Event struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Event        string         `gorm:"not null" json:"event"`
	Version      int            `gorm:"not null" json:"version"`
	BlockID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"block_id"`
	ActorID      string         `gorm:"not null" json:"actor_id"`
	Timestamp    time.Time      `gorm:"not null" json:"timestamp"`
	Data         datatypes.JSON `gorm:"not null" json:"data"`
	Status       string         `gorm:"not null;default:'pending'" json:"status"`
	Dispatched   bool           `gorm:"not null;default:false;index" json:"dispatched"`
	DispatchedAt *time.Time     `json:"dispatched_at,omitempty"`
}

func NewEvent(event string, blockID uuid.UUID, actorID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Event:     event,
		Version:   1,
		BlockID:   blockID,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Data:      datatypes.JSON(dataBytes),
		Status:    "pending",
	}, nil
}
