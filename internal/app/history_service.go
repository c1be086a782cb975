package app

import (
	"context"
	"fmt"

	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/secondary"
)

// DefaultHistoryDays is the history window when none is given.
const DefaultHistoryDays = 7

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	users     primary.IdentityService
	eventRepo secondary.ActivityEventRepository
	cal       *Calendar
}

// NewHistoryService creates a new HistoryService with injected dependencies.
func NewHistoryService(users primary.IdentityService, eventRepo secondary.ActivityEventRepository, cal *Calendar) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		users:     users,
		eventRepo: eventRepo,
		cal:       cal,
	}
}

// ListHistory retrieves completion events in the window ending today.
func (s *HistoryServiceImpl) ListHistory(ctx context.Context, filters primary.HistoryFilters) ([]*primary.HistoryEntry, error) {
	userID, err := s.users.GetOrCreateUserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user id: %w", err)
	}

	days := filters.Days
	if days <= 0 {
		days = DefaultHistoryDays
	}

	records, err := s.eventRepo.List(ctx, secondary.ActivityEventFilters{
		UserID:   userID,
		Since:    s.cal.DaysAgo(days - 1),
		Activity: filters.Activity,
		Limit:    filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	entries := make([]*primary.HistoryEntry, len(records))
	for i, r := range records {
		entries[i] = s.recordToEntry(r)
	}
	return entries, nil
}

// Helper methods

func (s *HistoryServiceImpl) recordToEntry(r *secondary.ActivityEventRecord) *primary.HistoryEntry {
	return &primary.HistoryEntry{
		ID:         r.ID,
		DateKey:    r.DateKey,
		Activity:   r.Activity,
		Score:      r.Score,
		RecordedAt: r.RecordedAt,
	}
}

// Ensure HistoryServiceImpl implements the interface
var _ primary.HistoryService = (*HistoryServiceImpl)(nil)
