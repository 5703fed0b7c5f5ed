package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/smartcrm/engine/pkg/apperrors"
	"github.com/smartcrm/engine/pkg/database"
	"github.com/smartcrm/engine/pkg/models"
)

// DealRepository provides read access to deals.
type DealRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Deal, error)
	ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.Deal, error)
}

type dealRepository struct {
	db *database.DB
}

// NewDealRepository creates a new DealRepository.
func NewDealRepository(db *database.DB) DealRepository {
	return &dealRepository{db: db}
}

var _ DealRepository = (*dealRepository)(nil)

const dealColumns = `id, contact_id, title, stage, value, probability, close_date,
       created_at, updated_at`

func (r *dealRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`

	var d models.Deal
	err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.ContactID, &d.Title, &d.Stage, &d.Value, &d.Probability,
		&d.CloseDate, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}
	return &d, nil
}

func (r *dealRepository) ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE contact_id = $1 ORDER BY updated_at DESC`

	rows, err := r.db.Query(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to query deals: %w", err)
	}
	defer rows.Close()

	var deals []*models.Deal
	for rows.Next() {
		var d models.Deal
		if err := rows.Scan(
			&d.ID, &d.ContactID, &d.Title, &d.Stage, &d.Value, &d.Probability,
			&d.CloseDate, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		deals = append(deals, &d)
	}
	return deals, rows.Err()
}
