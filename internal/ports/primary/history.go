package primary

import "context"

// HistoryService defines the primary port for the completion history.
type HistoryService interface {
	// ListHistory retrieves completion events matching the given filters.
	ListHistory(ctx context.Context, filters HistoryFilters) ([]*HistoryEntry, error)
}

// HistoryEntry represents one confirmed completion at the port boundary.
type HistoryEntry struct {
	ID         string
	DateKey    string
	Activity   string
	Score      int
	RecordedAt string
}

// HistoryFilters contains filter options for querying history.
type HistoryFilters struct {
	Days     int // window ending today, inclusive
	Activity string
	Limit    int
}
