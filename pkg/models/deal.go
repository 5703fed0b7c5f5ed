package models

import (
	"time"

	"github.com/google/uuid"
)

// Deal pipeline stages.
const (
	DealStageQualification = "qualification"
	DealStageProposal      = "proposal"
	DealStageNegotiation   = "negotiation"
	DealStageClosedWon     = "closed_won"
	DealStageClosedLost    = "closed_lost"
)

// Deal is a sales-pipeline record linked to a contact. Read-only in this
// service.
type Deal struct {
	ID          uuid.UUID  `json:"id"`
	ContactID   uuid.UUID  `json:"contact_id"`
	Title       string     `json:"title"`
	Stage       string     `json:"stage"`
	Value       float64    `json:"value"`
	Probability int        `json:"probability"`
	CloseDate   *time.Time `json:"close_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
