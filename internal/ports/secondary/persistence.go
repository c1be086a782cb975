// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/record"
)

// DailyRecordRepository defines the secondary port for the per-day document store.
type DailyRecordRepository interface {
	// Get retrieves a user's record for a date key.
	// Returns (nil, nil) when no document exists; any other failure is an error.
	Get(ctx context.Context, userID, dateKey string) (*record.DailyRecord, error)

	// Merge merge-writes a partial record into the day's document.
	// Fields absent from the patch are left untouched; nested objects merge key by key.
	Merge(ctx context.Context, userID, dateKey string, patch *record.DailyRecord) error
}

// AssetCacheRepository defines the secondary port for the versioned offline asset cache.
type AssetCacheRepository interface {
	// PutAll stores every entry of one version atomically.
	PutAll(ctx context.Context, entries []*AssetRecord) error

	// Get retrieves a cached asset. Returns (nil, nil) on a miss.
	Get(ctx context.Context, version, path string) (*AssetRecord, error)

	// Versions lists the versions that currently hold entries.
	Versions(ctx context.Context) ([]string, error)

	// DeleteVersion removes every entry of a version and returns how many were removed.
	DeleteVersion(ctx context.Context, version string) (int, error)

	// Count returns the number of entries held for a version.
	Count(ctx context.Context, version string) (int, error)
}

// AssetRecord represents one cached response as stored in persistence.
type AssetRecord struct {
	Version     string
	Path        string
	ContentType string
	Body        []byte
	CachedAt    string
}
