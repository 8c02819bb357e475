package primary

import "context"

// HistoryService defines the primary port for reading past builds.
type HistoryService interface {
	// ListBuilds lists builds with optional filters, newest first.
	ListBuilds(ctx context.Context, filters BuildFilters) ([]*Build, error)

	// GetBuild retrieves a build by ID.
	GetBuild(ctx context.Context, buildID string) (*Build, error)
}

// Build represents a recorded build at the port boundary.
type Build struct {
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

// BuildFilters contains filter options for listing builds.
type BuildFilters struct {
	ConfigPath    string
	HardwareBuild string
	Limit         int
}
