package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/dpgen/internal/ports/primary"
)

// HistoryAdapter is a thin adapter that translates CLI operations to HistoryService calls.
type HistoryAdapter struct {
	service primary.HistoryService
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter with the given service.
func NewHistoryAdapter(service primary.HistoryService, out io.Writer) *HistoryAdapter {
	return &HistoryAdapter{
		service: service,
		out:     out,
	}
}

// List lists recorded builds, newest first.
func (a *HistoryAdapter) List(ctx context.Context, filters primary.BuildFilters) error {
	builds, err := a.service.ListBuilds(ctx, filters)
	if err != nil {
		return err
	}

	if len(builds) == 0 {
		fmt.Fprintln(a.out, "No builds found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-12s %-22s %-9s %-12s %-6s %s\n", "ID", "CREATED", "VERSION", "HARDWARE", "ITEMS", "CONFIG")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────────")
	for _, b := range builds {
		fmt.Fprintf(a.out, "%-12s %-22s %-9s %-12s %-6d %s\n", b.ID, b.CreatedAt, b.CompatibilityVersion, b.HardwareBuild, b.ItemCount, b.ConfigPath)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays details for a single build.
func (a *HistoryAdapter) Show(ctx context.Context, buildID string) error {
	b, err := a.service.GetBuild(ctx, buildID)
	if err != nil {
		return fmt.Errorf("failed to get build: %w", err)
	}

	fmt.Fprintf(a.out, "\nBuild:    %s\n", b.ID)
	fmt.Fprintf(a.out, "Created:  %s\n", b.CreatedAt)
	fmt.Fprintf(a.out, "Config:   %s\n", b.ConfigPath)
	fmt.Fprintf(a.out, "Version:  %s\n", b.CompatibilityVersion)
	fmt.Fprintf(a.out, "Hardware: %s\n", b.HardwareBuild)
	fmt.Fprintf(a.out, "Sector:   %s\n", b.RegularSectorSize)
	fmt.Fprintf(a.out, "Items:    %d\n", b.ItemCount)
	fmt.Fprintf(a.out, "Document: %s\n", b.DocumentPath)
	fmt.Fprintf(a.out, "SHA-256:  %s\n", b.DocumentDigest)
	if b.FactoryImagePath != "" {
		fmt.Fprintf(a.out, "Factory:  %s\n", b.FactoryImagePath)
	}
	if b.UpgradeImagePath != "" {
		fmt.Fprintf(a.out, "Upgrade:  %s\n", b.UpgradeImagePath)
	}
	fmt.Fprintln(a.out)

	return nil
}
