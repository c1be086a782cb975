package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/secondary"
)

// AssetCacheRepository implements secondary.AssetCacheRepository with SQLite.
type AssetCacheRepository struct {
	db *sql.DB
}

// NewAssetCacheRepository creates a new SQLite asset cache repository.
func NewAssetCacheRepository(db *sql.DB) *AssetCacheRepository {
	return &AssetCacheRepository{db: db}
}

// PutAll stores every entry in one transaction. Existing entries are replaced.
func (r *AssetCacheRepository) PutAll(ctx context.Context, entries []*secondary.AssetRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		body := e.Body
		if body == nil {
			body = []byte{}
		}
		_, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO asset_cache (version, path, content_type, body) VALUES (?, ?, ?, ?)",
			e.Version, e.Path, e.ContentType, body,
		)
		if err != nil {
			return fmt.Errorf("failed to cache %s: %w", e.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit asset cache: %w", err)
	}
	return nil
}

// Get retrieves a cached asset. Returns (nil, nil) on a miss.
func (r *AssetCacheRepository) Get(ctx context.Context, version, path string) (*secondary.AssetRecord, error) {
	var cachedAt time.Time

	rec := &secondary.AssetRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT version, path, content_type, body, cached_at FROM asset_cache WHERE version = ? AND path = ?",
		version, path,
	).Scan(&rec.Version, &rec.Path, &rec.ContentType, &rec.Body, &cachedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached asset: %w", err)
	}

	rec.CachedAt = cachedAt.Format(time.RFC3339)
	return rec, nil
}

// Versions lists the versions that currently hold entries.
func (r *AssetCacheRepository) Versions(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT version FROM asset_cache ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to list cache versions: %w", err)
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan cache version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// DeleteVersion removes every entry of a version.
func (r *AssetCacheRepository) DeleteVersion(ctx context.Context, version string) (int, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM asset_cache WHERE version = ?", version)
	if err != nil {
		return 0, fmt.Errorf("failed to delete cache version: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(n), nil
}

// Count returns the number of entries held for a version.
func (r *AssetCacheRepository) Count(ctx context.Context, version string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM asset_cache WHERE version = ?", version).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count cached assets: %w", err)
	}
	return n, nil
}

// Ensure AssetCacheRepository implements the interface
var _ secondary.AssetCacheRepository = (*AssetCacheRepository)(nil)
