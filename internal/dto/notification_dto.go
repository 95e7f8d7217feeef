package dto

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an ephemeral review-feed message pushed over the
// websocket; nothing is persisted.
type Notification struct {
	ID        uuid.UUID              `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
