package secondary

import "context"

// ActivityEventRepository defines the interface for the completion audit trail.
// One event is written per confirmed completion.
type ActivityEventRepository interface {
	// Create persists a new event. The ID is assigned by the implementation when empty.
	Create(ctx context.Context, event *ActivityEventRecord) error

	// List retrieves events matching the given filters, newest first.
	List(ctx context.Context, filters ActivityEventFilters) ([]*ActivityEventRecord, error)
}

// ActivityEventRecord represents a completion event as stored in persistence.
type ActivityEventRecord struct {
	ID         string
	UserID     string
	DateKey    string
	Activity   string
	Score      int
	RecordedAt string
}

// ActivityEventFilters contains filter options for querying events.
type ActivityEventFilters struct {
	UserID   string
	Since    string // inclusive date key
	Activity string
	Limit    int
}
