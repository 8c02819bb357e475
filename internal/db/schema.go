package db

import "database/sql"

// SchemaSQL is the complete schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// All tests use this schema via GetSchemaSQL() so repository code that
// references a missing column fails with "no such column" during tests.
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Builds (one row per generated data partition)
CREATE TABLE IF NOT EXISTS builds (
	id TEXT PRIMARY KEY,
	config_path TEXT NOT NULL,
	compatibility_version TEXT NOT NULL,
	hardware_build TEXT NOT NULL,
	regular_sector_size TEXT NOT NULL,
	item_count INTEGER NOT NULL DEFAULT 0,
	document_path TEXT NOT NULL,
	document_digest TEXT NOT NULL,
	factory_image_path TEXT,
	upgrade_image_path TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_builds_config ON builds(config_path);
CREATE INDEX IF NOT EXISTS idx_builds_hardware ON builds(hardware_build);
`

// InitSchema creates the database schema on a fresh database and migrates
// an existing one.
func InitSchema(db *sql.DB) error {
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		return RunMigrations(db)
	}

	// Fresh install - create the modern schema and mark every migration applied
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
