package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/smartcrm/engine/pkg/database"
)

// TriggerQuery describes one fixed polling shape. The SQL is a constant
// chosen by the trigger service; only the cursor and limit are bound.
type TriggerQuery struct {
	// BaseSQL selects the row shape, including any fixed WHERE conditions.
	BaseSQL string
	// SortColumn orders the page, always descending. The pagination cursor
	// is the literal value of the last row's sort column.
	SortColumn string
	// HasWhere reports whether BaseSQL already contains a WHERE clause.
	HasWhere bool
}

// TriggerRepository pages over trigger query shapes with a naive
// monotonic cursor. There is no gap or duplicate protection beyond the
// database's own ordering guarantee.
type TriggerRepository interface {
	Poll(ctx context.Context, q TriggerQuery, cursor string, limit int) ([]map[string]any, string, error)
}

type triggerRepository struct {
	db *database.DB
}

// NewTriggerRepository creates a new TriggerRepository.
func NewTriggerRepository(db *database.DB) TriggerRepository {
	return &triggerRepository{db: db}
}

var _ TriggerRepository = (*triggerRepository)(nil)

func (r *triggerRepository) Poll(ctx context.Context, q TriggerQuery, cursor string, limit int) ([]map[string]any, string, error) {
	sql := q.BaseSQL
	args := []any{}

	if cursor != "" {
		clause := "WHERE"
		if q.HasWhere {
			clause = "AND"
		}
		sql = fmt.Sprintf("%s %s %s < $1::timestamptz", sql, clause, q.SortColumn)
		args = append(args, cursor)
	}

	sql = fmt.Sprintf("%s ORDER BY %s DESC LIMIT $%d", sql, q.SortColumn, len(args)+1)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to poll trigger rows: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	items := make([]map[string]any, 0, limit)
	nextCursor := ""

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, "", fmt.Errorf("failed to read trigger row: %w", err)
		}

		item := make(map[string]any, len(fields))
		for i, fd := range fields {
			item[string(fd.Name)] = values[i]
			if string(fd.Name) == q.SortColumn {
				nextCursor = formatCursorValue(values[i])
			}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed to iterate trigger rows: %w", err)
	}

	return items, nextCursor, nil
}

// formatCursorValue renders a sort-column value as the literal cursor
// string the caller passes back on the next poll.
func formatCursorValue(v any) string {
	switch val := v.(type) {
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
