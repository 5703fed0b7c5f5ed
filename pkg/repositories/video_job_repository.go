package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/smartcrm/engine/pkg/database"
	"github.com/smartcrm/engine/pkg/models"
)

// VideoJobRepository inserts pending video jobs. The lifecycle beyond
// pending belongs to the external video generation service.
type VideoJobRepository interface {
	Insert(ctx context.Context, job *models.VideoJob) error
}

type videoJobRepository struct {
	db *database.DB
}

// NewVideoJobRepository creates a new VideoJobRepository.
func NewVideoJobRepository(db *database.DB) VideoJobRepository {
	return &videoJobRepository{db: db}
}

var _ VideoJobRepository = (*videoJobRepository)(nil)

func (r *videoJobRepository) Insert(ctx context.Context, job *models.VideoJob) error {
	if job.Status == "" {
		job.Status = models.VideoJobPending
	}

	now := time.Now()
	query := `
		INSERT INTO video_jobs (contact_id, script, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		job.ContactID, job.Script, job.Status, now, now,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert video job: %w", err)
	}
	return nil
}
