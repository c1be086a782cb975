package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/secondary"
)

// ActivityEventRepository implements secondary.ActivityEventRepository with SQLite.
type ActivityEventRepository struct {
	db *sql.DB
}

// NewActivityEventRepository creates a new SQLite activity event repository.
func NewActivityEventRepository(db *sql.DB) *ActivityEventRepository {
	return &ActivityEventRepository{db: db}
}

// Create persists a new event, assigning a time-ordered ID when none is set.
func (r *ActivityEventRepository) Create(ctx context.Context, event *secondary.ActivityEventRecord) error {
	if event.ID == "" {
		event.ID = uuid.Must(uuid.NewV7()).String()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO activity_events (id, user_id, date_key, activity, score, recorded_at) VALUES (?, ?, ?, ?, ?, ?)",
		event.ID, event.UserID, event.DateKey, event.Activity, event.Score, event.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity event: %w", err)
	}

	return nil
}

// List retrieves events matching the given filters, newest first.
func (r *ActivityEventRepository) List(ctx context.Context, filters secondary.ActivityEventFilters) ([]*secondary.ActivityEventRecord, error) {
	var (
		where []string
		args  []any
	)
	if filters.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, filters.UserID)
	}
	if filters.Since != "" {
		where = append(where, "date_key >= ?")
		args = append(args, filters.Since)
	}
	if filters.Activity != "" {
		where = append(where, "activity = ?")
		args = append(args, filters.Activity)
	}

	query := "SELECT id, user_id, date_key, activity, score, recorded_at FROM activity_events"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date_key DESC, id DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity events: %w", err)
	}
	defer rows.Close()

	var events []*secondary.ActivityEventRecord
	for rows.Next() {
		e := &secondary.ActivityEventRecord{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.DateKey, &e.Activity, &e.Score, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// Ensure ActivityEventRepository implements the interface
var _ secondary.ActivityEventRepository = (*ActivityEventRepository)(nil)
