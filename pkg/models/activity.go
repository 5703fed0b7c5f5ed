package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity is one timestamped interaction with a contact. Append-only
// elsewhere; read here to build prompt context.
type Activity struct {
	ID          uuid.UUID `json:"id"`
	ContactID   uuid.UUID `json:"contact_id"`
	Type        string    `json:"type"` // email_open, email_click, reply, call, meeting
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
