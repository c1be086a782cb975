// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/record"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/secondary"
)

// DailyRecordRepository implements secondary.DailyRecordRepository with SQLite.
// Each (user, date) row holds one JSON document; writes are RFC 7396 merge patches.
type DailyRecordRepository struct {
	db *sql.DB
}

// NewDailyRecordRepository creates a new SQLite daily record repository.
func NewDailyRecordRepository(db *sql.DB) *DailyRecordRepository {
	return &DailyRecordRepository{db: db}
}

// Get retrieves a user's record for a date key. Returns (nil, nil) if none exists.
func (r *DailyRecordRepository) Get(ctx context.Context, userID, dateKey string) (*record.DailyRecord, error) {
	var doc string
	err := r.db.QueryRowContext(ctx,
		"SELECT doc FROM daily_records WHERE user_id = ? AND date_key = ?",
		userID, dateKey,
	).Scan(&doc)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily record: %w", err)
	}

	var rec record.DailyRecord
	if err := json.Unmarshal([]byte(doc), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode daily record: %w", err)
	}
	return &rec, nil
}

// Merge merge-writes a partial record in a single statement.
// Absent fields are left untouched and nested objects merge key by key.
func (r *DailyRecordRepository) Merge(ctx context.Context, userID, dateKey string, patch *record.DailyRecord) error {
	if patch == nil {
		return fmt.Errorf("merge patch must not be nil")
	}

	data, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("failed to encode merge patch: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO daily_records (user_id, date_key, doc) VALUES (?, ?, json(?))
		ON CONFLICT(user_id, date_key) DO UPDATE SET
			doc = json_patch(daily_records.doc, excluded.doc),
			updated_at = CURRENT_TIMESTAMP`,
		userID, dateKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to merge daily record: %w", err)
	}

	return nil
}

// Ensure DailyRecordRepository implements the interface
var _ secondary.DailyRecordRepository = (*DailyRecordRepository)(nil)
