package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/calendar"
	"github.com/vedantadhau820-alt/IdentityOS/internal/core/record"
	"github.com/vedantadhau820-alt/IdentityOS/internal/core/stats"
	"github.com/vedantadhau820-alt/IdentityOS/internal/metrics"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/secondary"
)

// Lookup is the outcome of a record read.
type Lookup struct {
	Status stats.ReadStatus
	Record *record.DailyRecord
	Err    error // set when Status is ReadUnknown
}

// Exists reports whether a record was found. An unknown read counts as absent.
func (l Lookup) Exists() bool {
	return l.Status == stats.ReadFound
}

// RecordStore is the daily record store boundary.
// Reads never fail: a failed read is reported as ReadUnknown and logged.
type RecordStore struct {
	repo   secondary.DailyRecordRepository
	logger *slog.Logger
}

// NewRecordStore creates a RecordStore over repo.
func NewRecordStore(repo secondary.DailyRecordRepository, logger *slog.Logger) *RecordStore {
	return &RecordStore{repo: repo, logger: logger}
}

// Read fetches a user's record for a date key.
func (s *RecordStore) Read(ctx context.Context, userID, dateKey string) Lookup {
	rec, err := s.repo.Get(ctx, userID, dateKey)

	var l Lookup
	switch {
	case err != nil:
		s.logger.Warn("daily record read failed", "path", calendar.DocumentPath(userID, dateKey), "error", err)
		l = Lookup{Status: stats.ReadUnknown, Err: err}
	case rec == nil:
		l = Lookup{Status: stats.ReadAbsent}
	default:
		l = Lookup{Status: stats.ReadFound, Record: rec}
	}

	metrics.StoreReads.WithLabelValues(string(l.Status)).Inc()
	return l
}

// Merge merge-writes a partial record into a user's document for a date key.
func (s *RecordStore) Merge(ctx context.Context, userID, dateKey string, patch *record.DailyRecord) error {
	if err := s.repo.Merge(ctx, userID, dateKey, patch); err != nil {
		metrics.StoreWriteFailures.Inc()
		return fmt.Errorf("failed to merge %s: %w", calendar.DocumentPath(userID, dateKey), err)
	}
	return nil
}
