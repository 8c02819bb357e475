// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/dpgen/internal/ports/secondary"
)

// BuildRepository implements secondary.BuildRepository with SQLite.
type BuildRepository struct {
	db *sql.DB
}

// NewBuildRepository creates a new SQLite build repository.
func NewBuildRepository(db *sql.DB) *BuildRepository {
	return &BuildRepository{db: db}
}

const buildColumns = `id, config_path, compatibility_version, hardware_build, regular_sector_size,
	item_count, document_path, document_digest, factory_image_path, upgrade_image_path, created_at`

// Create persists a new build record.
func (r *BuildRepository) Create(ctx context.Context, build *secondary.BuildRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO builds (id, config_path, compatibility_version, hardware_build, regular_sector_size,
			item_count, document_path, document_digest, factory_image_path, upgrade_image_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		build.ID, build.ConfigPath, build.CompatibilityVersion, build.HardwareBuild, build.RegularSectorSize,
		build.ItemCount, build.DocumentPath, build.DocumentDigest,
		nullString(build.FactoryImagePath), nullString(build.UpgradeImagePath),
	)
	if err != nil {
		return fmt.Errorf("failed to create build: %w", err)
	}

	return nil
}

// GetByID retrieves a build by its ID.
func (r *BuildRepository) GetByID(ctx context.Context, id string) (*secondary.BuildRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+buildColumns+" FROM builds WHERE id = ?", id)

	record, err := scanBuild(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("build %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get build: %w", err)
	}

	return record, nil
}

// List retrieves builds matching the given filters, newest first.
func (r *BuildRepository) List(ctx context.Context, filters secondary.BuildFilters) ([]*secondary.BuildRecord, error) {
	query := "SELECT " + buildColumns + " FROM builds WHERE 1=1"
	args := []any{}

	if filters.ConfigPath != "" {
		query += " AND config_path = ?"
		args = append(args, filters.ConfigPath)
	}
	if filters.HardwareBuild != "" {
		query += " AND hardware_build = ?"
		args = append(args, filters.HardwareBuild)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list builds: %w", err)
	}
	defer rows.Close()

	var builds []*secondary.BuildRecord
	for rows.Next() {
		record, err := scanBuild(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan build: %w", err)
		}
		builds = append(builds, record)
	}

	return builds, rows.Err()
}

// GetNextID returns the next available build ID.
func (r *BuildRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 7) AS INTEGER)), 0) FROM builds",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next build ID: %w", err)
	}

	return fmt.Sprintf("BUILD-%04d", maxID+1), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBuild(row rowScanner) (*secondary.BuildRecord, error) {
	var (
		factory   sql.NullString
		upgrade   sql.NullString
		createdAt time.Time
	)

	record := &secondary.BuildRecord{}
	err := row.Scan(
		&record.ID, &record.ConfigPath, &record.CompatibilityVersion, &record.HardwareBuild,
		&record.RegularSectorSize, &record.ItemCount, &record.DocumentPath, &record.DocumentDigest,
		&factory, &upgrade, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	record.FactoryImagePath = factory.String
	record.UpgradeImagePath = upgrade.String
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ secondary.BuildRepository = (*BuildRepository)(nil)
