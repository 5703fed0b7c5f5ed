package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smartcrm/engine/pkg/database"
	"github.com/smartcrm/engine/pkg/models"
)

// AgentLogRepository appends agent execution traces.
type AgentLogRepository interface {
	Insert(ctx context.Context, log *models.AgentLog) error
	ListByContact(ctx context.Context, contactID uuid.UUID, limit int) ([]*models.AgentLog, error)
}

type agentLogRepository struct {
	db *database.DB
}

// NewAgentLogRepository creates a new AgentLogRepository.
func NewAgentLogRepository(db *database.DB) AgentLogRepository {
	return &agentLogRepository{db: db}
}

var _ AgentLogRepository = (*agentLogRepository)(nil)

func (r *agentLogRepository) Insert(ctx context.Context, log *models.AgentLog) error {
	query := `
		INSERT INTO agent_logs (contact_id, agent, status, degraded, input, output, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		log.ContactID,
		log.Agent,
		log.Status,
		log.Degraded,
		log.Input,
		log.Output,
		log.Error,
		time.Now(),
	).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert agent log: %w", err)
	}
	return nil
}

func (r *agentLogRepository) ListByContact(ctx context.Context, contactID uuid.UUID, limit int) ([]*models.AgentLog, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, contact_id, agent, status, degraded, input, output, error, created_at
		FROM agent_logs
		WHERE contact_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, contactID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query agent logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.AgentLog
	for rows.Next() {
		var l models.AgentLog
		if err := rows.Scan(&l.ID, &l.ContactID, &l.Agent, &l.Status, &l.Degraded,
			&l.Input, &l.Output, &l.Error, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan agent log: %w", err)
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
