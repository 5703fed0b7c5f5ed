package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/smartcrm/engine/pkg/apperrors"
	"github.com/smartcrm/engine/pkg/repositories"
)

const (
	defaultTriggerLimit = 25
	maxTriggerLimit     = 100
)

// triggerQueries are the six fixed polling shapes exposed to Zapier-style
// integrations, keyed by trigger name.
var triggerQueries = map[string]repositories.TriggerQuery{
	"new_contacts": {
		BaseSQL:    `SELECT id, first_name, last_name, email, company, status, created_at FROM contacts`,
		SortColumn: "created_at",
	},
	"updated_deals": {
		BaseSQL:    `SELECT id, contact_id, title, stage, value, updated_at FROM deals`,
		SortColumn: "updated_at",
	},
	"hot_leads": {
		BaseSQL:    `SELECT id, first_name, last_name, email, company, engagement_score, updated_at FROM contacts WHERE engagement_score >= 80`,
		SortColumn: "updated_at",
		HasWhere:   true,
	},
	"stale_contacts": {
		BaseSQL:    `SELECT id, first_name, last_name, email, company, last_activity_at FROM contacts WHERE last_activity_at < now() - interval '30 days'`,
		SortColumn: "last_activity_at",
		HasWhere:   true,
	},
	"recent_activities": {
		BaseSQL:    `SELECT id, contact_id, type, description, created_at FROM activities`,
		SortColumn: "created_at",
	},
	"closed_won_deals": {
		BaseSQL:    `SELECT id, contact_id, title, value, updated_at FROM deals WHERE stage = 'closed_won'`,
		SortColumn: "updated_at",
		HasWhere:   true,
	},
}

// TriggerPage is one page of polling results. NextCursor is the literal
// sort-column value of the last row; passing it back yields the next,
// strictly older page.
type TriggerPage struct {
	Items      []map[string]any `json:"items"`
	NextCursor string           `json:"nextCursor"`
}

// TriggerService serves the polling trigger endpoint.
type TriggerService interface {
	// Poll returns one page for the named trigger. Unknown names return
	// apperrors.ErrUnknownTrigger.
	Poll(ctx context.Context, trigger, cursor string, limit int) (*TriggerPage, error)
}

type triggerService struct {
	repo   repositories.TriggerRepository
	logger *zap.Logger
}

// NewTriggerService creates a new TriggerService.
func NewTriggerService(repo repositories.TriggerRepository, logger *zap.Logger) TriggerService {
	return &triggerService{
		repo:   repo,
		logger: logger.Named("triggers"),
	}
}

var _ TriggerService = (*triggerService)(nil)

func (s *triggerService) Poll(ctx context.Context, trigger, cursor string, limit int) (*TriggerPage, error) {
	query, ok := triggerQueries[trigger]
	if !ok {
		return nil, apperrors.ErrUnknownTrigger
	}

	if limit <= 0 {
		limit = defaultTriggerLimit
	}
	if limit > maxTriggerLimit {
		limit = maxTriggerLimit
	}

	items, nextCursor, err := s.repo.Poll(ctx, query, cursor, limit)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("trigger polled",
		zap.String("trigger", trigger),
		zap.Int("rows", len(items)),
		zap.String("next_cursor", nextCursor))

	return &TriggerPage{Items: items, NextCursor: nextCursor}, nil
}

// KnownTriggers lists the supported trigger names (for error messages).
func KnownTriggers() []string {
	names := make([]string, 0, len(triggerQueries))
	for name := range triggerQueries {
		names = append(names, name)
	}
	return names
}
