package db

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_daily_records",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_activity_events",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_asset_cache",
		Up:      migrationV3,
	},
}

func createVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// CurrentVersion returns the highest applied migration, or 0.
func CurrentVersion(db *sql.DB) (int, error) {
	var v int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return v, nil
}

// RunMigrations executes all pending migrations
func RunMigrations(db *sql.DB, logger *slog.Logger) error {
	if err := createVersionTable(db); err != nil {
		return err
	}

	currentVersion, err := CurrentVersion(db)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		logger.Info("running migration", "version", migration.Version, "name", migration.Name)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the per-day record table
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS daily_records (
			user_id TEXT NOT NULL,
			date_key TEXT NOT NULL,
			doc TEXT NOT NULL DEFAULT '{}' CHECK(json_valid(doc)),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, date_key)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create daily_records table: %w", err)
	}
	return nil
}

// migrationV2 adds the completion history
func migrationV2(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS activity_events (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			date_key TEXT NOT NULL,
			activity TEXT NOT NULL CHECK(activity IN ('stability', 'workout', 'social', 'observer')),
			score INTEGER NOT NULL DEFAULT 0,
			recorded_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_activity_events_user_date ON activity_events(user_id, date_key);
	`)
	if err != nil {
		return fmt.Errorf("failed to create activity_events table: %w", err)
	}

	// Backfill one event per completed activity already stored
	scoreKeys := []struct{ activity, scoreKey string }{
		{"stability", "strategicScore"},
		{"workout", "workoutScore"},
		{"social", "socialScore"},
		{"observer", "observerScore"},
	}
	for _, k := range scoreKeys {
		_, err = tx.Exec(fmt.Sprintf(`
			INSERT INTO activity_events (id, user_id, date_key, activity, score, recorded_at)
			SELECT lower(hex(randomblob(16))), user_id, date_key, '%s',
				COALESCE(json_extract(doc, '$.%s'), 0),
				COALESCE(updated_at, CURRENT_TIMESTAMP)
			FROM daily_records
			WHERE json_extract(doc, '$.%s') = 1
		`, k.activity, k.scoreKey, k.activity))
		if err != nil {
			return fmt.Errorf("failed to backfill %s events: %w", k.activity, err)
		}
	}
	return nil
}

// migrationV3 adds the offline asset cache
func migrationV3(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS asset_cache (
			version TEXT NOT NULL,
			path TEXT NOT NULL,
			content_type TEXT NOT NULL,
			body BLOB NOT NULL,
			cached_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (version, path)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create asset_cache table: %w", err)
	}
	return nil
}
