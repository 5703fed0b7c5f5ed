// Package models contains domain types for smartcrm-engine.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Contact statuses mutated by the engagement and disengagement paths.
// Contacts are created elsewhere in the product and never deleted here.
const (
	ContactStatusActive      = "active"
	ContactStatusNurture     = "nurture"
	ContactStatusDisengaged  = "disengaged"
	ContactStatusDoNotEmail  = "do_not_email"
	ContactStatusHotProspect = "hot_prospect"
)

// Contact is a CRM contact row.
type Contact struct {
	ID              uuid.UUID  `json:"id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           string     `json:"email"`
	Company         string     `json:"company"`
	Title           string     `json:"title"`
	Status          string     `json:"status"`
	InterestLevel   string     `json:"interest_level"`
	EngagementScore int        `json:"engagement_score"`
	Notes           string     `json:"notes,omitempty"`
	LastActivityAt  *time.Time `json:"last_activity_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// FullName returns the contact's display name.
func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// DaysInactive returns whole days since the last recorded activity, or -1
// when no activity has ever been recorded.
func (c *Contact) DaysInactive(now time.Time) int {
	if c.LastActivityAt == nil {
		return -1
	}
	return int(now.Sub(*c.LastActivityAt).Hours() / 24)
}
