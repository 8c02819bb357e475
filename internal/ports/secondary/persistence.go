package secondary

import "context"

// BuildRepository defines the secondary port for the build history.
type BuildRepository interface {
	// Create persists a new build record.
	Create(ctx context.Context, build *BuildRecord) error

	// GetByID retrieves a build by its ID.
	GetByID(ctx context.Context, id string) (*BuildRecord, error)

	// List retrieves builds matching the given filters, newest first.
	List(ctx context.Context, filters BuildFilters) ([]*BuildRecord, error)

	// GetNextID returns the next available build ID.
	GetNextID(ctx context.Context) (string, error)
}

// BuildRecord represents a completed build as stored in persistence.
type BuildRecord struct {
	ID                   string
	ConfigPath           string
	CompatibilityVersion string
	HardwareBuild        string
	RegularSectorSize    string
	ItemCount            int
	DocumentPath         string
	DocumentDigest       string
	FactoryImagePath     string
	UpgradeImagePath     string
	CreatedAt            string
}

// BuildFilters contains filter options for querying builds.
type BuildFilters struct {
	ConfigPath    string
	HardwareBuild string
	Limit         int
}
