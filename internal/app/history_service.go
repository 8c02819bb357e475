package app

import (
	"context"
	"fmt"

	"github.com/example/dpgen/internal/ports/primary"
	"github.com/example/dpgen/internal/ports/secondary"
)

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	buildRepo secondary.BuildRepository
}

// NewHistoryService creates a new HistoryService with injected dependencies.
func NewHistoryService(buildRepo secondary.BuildRepository) *HistoryServiceImpl {
	return &HistoryServiceImpl{buildRepo: buildRepo}
}

// ListBuilds lists builds with optional filters, newest first.
func (s *HistoryServiceImpl) ListBuilds(ctx context.Context, filters primary.BuildFilters) ([]*primary.Build, error) {
	records, err := s.buildRepo.List(ctx, secondary.BuildFilters{
		ConfigPath:    filters.ConfigPath,
		HardwareBuild: filters.HardwareBuild,
		Limit:         filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list builds: %w", err)
	}

	builds := make([]*primary.Build, len(records))
	for i, r := range records {
		builds[i] = recordToBuild(r)
	}
	return builds, nil
}

// GetBuild retrieves a build by ID.
func (s *HistoryServiceImpl) GetBuild(ctx context.Context, buildID string) (*primary.Build, error) {
	record, err := s.buildRepo.GetByID(ctx, buildID)
	if err != nil {
		return nil, err
	}
	return recordToBuild(record), nil
}

func recordToBuild(r *secondary.BuildRecord) *primary.Build {
	return &primary.Build{
		ID:                   r.ID,
		ConfigPath:           r.ConfigPath,
		CompatibilityVersion: r.CompatibilityVersion,
		HardwareBuild:        r.HardwareBuild,
		RegularSectorSize:    r.RegularSectorSize,
		ItemCount:            r.ItemCount,
		DocumentPath:         r.DocumentPath,
		DocumentDigest:       r.DocumentDigest,
		FactoryImagePath:     r.FactoryImagePath,
		UpgradeImagePath:     r.UpgradeImagePath,
		CreatedAt:            r.CreatedAt,
	}
}

var _ primary.HistoryService = (*HistoryServiceImpl)(nil)
