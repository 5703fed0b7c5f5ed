package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/smartcrm/engine/pkg/database"
	"github.com/smartcrm/engine/pkg/models"
)

// ActivityRepository provides read access to the interaction log.
type ActivityRepository interface {
	ListRecent(ctx context.Context, contactID uuid.UUID, limit int) ([]*models.Activity, error)
}

type activityRepository struct {
	db *database.DB
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *database.DB) ActivityRepository {
	return &activityRepository{db: db}
}

var _ ActivityRepository = (*activityRepository)(nil)

func (r *activityRepository) ListRecent(ctx context.Context, contactID uuid.UUID, limit int) ([]*models.Activity, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, contact_id, type, description, created_at
		FROM activities
		WHERE contact_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, contactID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.ContactID, &a.Type, &a.Description, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, &a)
	}
	return activities, rows.Err()
}
