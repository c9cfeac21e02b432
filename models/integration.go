package models

import (
	"time"

	"github.com/google/uuid"
)

// Integration is a client allowed to call the API. It authenticates with its
// id and secret and receives a bearer token.
type Integration struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"unique;not null" json:"name"`
	SecretHash string    `gorm:"not null" json:"-"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
