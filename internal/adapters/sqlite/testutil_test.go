// Package sqlite_test contains integration tests for SQLite repositories.
//
// All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements here.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/dpgen/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedBuild inserts a build row with an explicit timestamp.
func seedBuild(t *testing.T, db *sql.DB, id, configPath, hardwareBuild, createdAt string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO builds (id, config_path, compatibility_version, hardware_build,
		regular_sector_size, item_count, document_path, document_digest, created_at)
		VALUES (?, ?, '4.4.0', ?, '4096', 1, 'output/doc.json', 'abc', ?)`,
		id, configPath, hardwareBuild, createdAt)
	if err != nil {
		t.Fatalf("failed to seed build: %v", err)
	}
}
