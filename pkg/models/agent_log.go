package models

import (
	"time"

	"github.com/google/uuid"
)

// AgentKind identifies one of the content-generation agents.
type AgentKind string

const (
	AgentColdEmail          AgentKind = "cold_email"
	AgentFollowUp           AgentKind = "follow_up"
	AgentReactivation       AgentKind = "reactivation"
	AgentNegotiationCoach   AgentKind = "negotiation_coach"
	AgentVideoScript        AgentKind = "video_script"
	AgentDocumentSummarizer AgentKind = "document_summarizer"
	AgentEnrichment         AgentKind = "enrichment"
)

// AgentLog is an append-only execution trace per contact/agent run.
type AgentLog struct {
	ID        uuid.UUID  `json:"id"`
	ContactID *uuid.UUID `json:"contact_id,omitempty"`
	Agent     AgentKind  `json:"agent"`
	Status    string     `json:"status"` // completed, failed
	Degraded  bool       `json:"degraded"`
	Input     string     `json:"input,omitempty"`
	Output    string     `json:"output,omitempty"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

const (
	AgentRunCompleted = "completed"
	AgentRunFailed    = "failed"
)
