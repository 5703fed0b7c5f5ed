// Package repositories provides pgx-backed data access for smartcrm-engine.
// The schema is owned by the wider product; this service only reads and
// writes the rows its agents need.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/smartcrm/engine/pkg/apperrors"
	"github.com/smartcrm/engine/pkg/database"
	"github.com/smartcrm/engine/pkg/models"
)

// ContactRepository provides data access for contacts.
type ContactRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	GetByEmail(ctx context.Context, email string) (*models.Contact, error)
	UpdateEngagement(ctx context.Context, id uuid.UUID, score int, status string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type contactRepository struct {
	db *database.DB
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(db *database.DB) ContactRepository {
	return &contactRepository{db: db}
}

var _ ContactRepository = (*contactRepository)(nil)

const contactColumns = `id, first_name, last_name, email, company, title, status,
       interest_level, engagement_score, notes, last_activity_at,
       created_at, updated_at`

func scanContact(row pgx.Row) (*models.Contact, error) {
	var c models.Contact
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Company, &c.Title,
		&c.Status, &c.InterestLevel, &c.EngagementScore, &c.Notes,
		&c.LastActivityAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan contact: %w", err)
	}
	return &c, nil
}

func (r *contactRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`
	return scanContact(r.db.QueryRow(ctx, query, id))
}

func (r *contactRepository) GetByEmail(ctx context.Context, email string) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE lower(email) = lower($1)`
	return scanContact(r.db.QueryRow(ctx, query, email))
}

func (r *contactRepository) UpdateEngagement(ctx context.Context, id uuid.UUID, score int, status string) error {
	query := `
		UPDATE contacts
		SET engagement_score = $2, status = $3, updated_at = $4
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, score, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update contact engagement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *contactRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE contacts SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update contact status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
