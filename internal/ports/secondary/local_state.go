// Package secondary defines the secondary ports (driven adapters) for the application.
package secondary

import "context"

// LocalStateStore defines the secondary port for device-local key/value state.
type LocalStateStore interface {
	// Load reads the persisted state. A missing file yields an empty state, not an error.
	Load(ctx context.Context) (*LocalStateRecord, error)

	// Save replaces the persisted state.
	Save(ctx context.Context, state *LocalStateRecord) error
}

// LocalStateRecord represents the local state document.
type LocalStateRecord struct {
	UserID           string         `yaml:"identityUserId,omitempty"`
	Courage          int            `yaml:"courageUnderFear"`
	PersonalBests    map[string]int `yaml:"personalBests,omitempty"`
	WorkoutStartedAt string         `yaml:"workoutStartedAt,omitempty"` // RFC 3339, empty when no workout runs
}

// Clone returns a deep copy of the record.
func (r *LocalStateRecord) Clone() *LocalStateRecord {
	if r == nil {
		return &LocalStateRecord{}
	}
	c := *r
	if r.PersonalBests != nil {
		c.PersonalBests = make(map[string]int, len(r.PersonalBests))
		for k, v := range r.PersonalBests {
			c.PersonalBests[k] = v
		}
	}
	return &c
}
