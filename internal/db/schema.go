package db

import (
	"database/sql"
	"log/slog"
)

// SchemaSQL is the complete modern schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(). If repository code references a column that
// doesn't exist here, tests fail immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Bump the migration count checked by TestInitSchema_MatchesMigrations
const SchemaSQL = `
-- Daily records (one JSON document per user per local day)
CREATE TABLE IF NOT EXISTS daily_records (
	user_id TEXT NOT NULL,
	date_key TEXT NOT NULL,
	doc TEXT NOT NULL DEFAULT '{}' CHECK(json_valid(doc)),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (user_id, date_key)
);

-- Activity events (append-only completion history)
CREATE TABLE IF NOT EXISTS activity_events (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	date_key TEXT NOT NULL,
	activity TEXT NOT NULL CHECK(activity IN ('stability', 'workout', 'social', 'observer')),
	score INTEGER NOT NULL DEFAULT 0,
	recorded_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activity_events_user_date ON activity_events(user_id, date_key);

-- Offline asset cache (versioned static resources)
CREATE TABLE IF NOT EXISTS asset_cache (
	version TEXT NOT NULL,
	path TEXT NOT NULL,
	content_type TEXT NOT NULL,
	body BLOB NOT NULL,
	cached_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (version, path)
);
`

// InitSchema brings a database up to the current schema. Fresh databases get
// SchemaSQL directly with every migration marked applied; existing databases
// run pending migrations.
func InitSchema(db *sql.DB, logger *slog.Logger) error {
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		return RunMigrations(db, logger)
	}

	var legacyCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = 'daily_records'").Scan(&legacyCount)
	if err != nil {
		return err
	}
	if legacyCount > 0 {
		// daily_records predates version tracking
		if err := createVersionTable(db); err != nil {
			return err
		}
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (1)"); err != nil {
			return err
		}
		return RunMigrations(db, logger)
	}

	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(db); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
