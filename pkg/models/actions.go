package models

import (
	"time"

	"github.com/google/uuid"
)

// ScheduledAction is a follow-up intent inserted as an engagement side
// effect. Append-only; executed by another part of the product.
type ScheduledAction struct {
	ID           uuid.UUID `json:"id"`
	ContactID    uuid.UUID `json:"contact_id"`
	ActionType   string    `json:"action_type"`
	Reason       string    `json:"reason,omitempty"`
	ScheduledFor time.Time `json:"scheduled_for"`
	CreatedAt    time.Time `json:"created_at"`
}

// CampaignTrigger enrolls a contact in a campaign. Append-only.
type CampaignTrigger struct {
	ID        uuid.UUID `json:"id"`
	ContactID uuid.UUID `json:"contact_id"`
	Campaign  string    `json:"campaign"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ComplianceAction records a suppression or disengagement decision.
// Append-only.
type ComplianceAction struct {
	ID        uuid.UUID `json:"id"`
	ContactID uuid.UUID `json:"contact_id"`
	Action    string    `json:"action"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
