package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/smartcrm/engine/pkg/database"
	"github.com/smartcrm/engine/pkg/models"
)

// ActionRepository appends engagement side-effect rows. Each insert stands
// alone; the engagement scorer deliberately groups nothing in a transaction.
type ActionRepository interface {
	InsertScheduledAction(ctx context.Context, action *models.ScheduledAction) error
	InsertCampaignTrigger(ctx context.Context, trigger *models.CampaignTrigger) error
	InsertComplianceAction(ctx context.Context, action *models.ComplianceAction) error
}

type actionRepository struct {
	db *database.DB
}

// NewActionRepository creates a new ActionRepository.
func NewActionRepository(db *database.DB) ActionRepository {
	return &actionRepository{db: db}
}

var _ ActionRepository = (*actionRepository)(nil)

func (r *actionRepository) InsertScheduledAction(ctx context.Context, action *models.ScheduledAction) error {
	query := `
		INSERT INTO scheduled_actions (contact_id, action_type, reason, scheduled_for, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		action.ContactID, action.ActionType, action.Reason, action.ScheduledFor, time.Now(),
	).Scan(&action.ID, &action.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert scheduled action: %w", err)
	}
	return nil
}

func (r *actionRepository) InsertCampaignTrigger(ctx context.Context, trigger *models.CampaignTrigger) error {
	query := `
		INSERT INTO campaign_triggers (contact_id, campaign, reason, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		trigger.ContactID, trigger.Campaign, trigger.Reason, time.Now(),
	).Scan(&trigger.ID, &trigger.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert campaign trigger: %w", err)
	}
	return nil
}

func (r *actionRepository) InsertComplianceAction(ctx context.Context, action *models.ComplianceAction) error {
	query := `
		INSERT INTO compliance_actions (contact_id, action, reason, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		action.ContactID, action.Action, action.Reason, time.Now(),
	).Scan(&action.ID, &action.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert compliance action: %w", err)
	}
	return nil
}
