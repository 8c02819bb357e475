// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/dpgen/internal/ports/primary"
)

// separator frames build summaries the way the host apps frame their output.
var separator = strings.Repeat("-", 102)

// PartitionAdapter is a thin adapter that translates CLI operations to PartitionService calls.
type PartitionAdapter struct {
	service primary.PartitionService
	out     io.Writer
}

// NewPartitionAdapter creates a new PartitionAdapter with the given service.
func NewPartitionAdapter(service primary.PartitionService, out io.Writer) *PartitionAdapter {
	return &PartitionAdapter{
		service: service,
		out:     out,
	}
}

// BuildOptions carries the flags of the build command.
type BuildOptions struct {
	DocumentPath         string
	CompatibilityVersion string
	EncoderPath          string
	ImageGeneratorPath   string
	Verbose              bool
}

// Build generates the data partition images for a config file.
func (a *PartitionAdapter) Build(ctx context.Context, configPath string, opts BuildOptions) error {
	resp, err := a.service.Build(ctx, primary.BuildRequest{
		ConfigPath:           configPath,
		EncoderPath:          opts.EncoderPath,
		ImageGeneratorPath:   opts.ImageGeneratorPath,
		DocumentPath:         opts.DocumentPath,
		CompatibilityVersion: opts.CompatibilityVersion,
		Verbose:              opts.Verbose,
		Progress:             a.progress(opts.Verbose),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s\n\nData image generation successful for %s.\n Created files:\n", separator, configPath)
	fmt.Fprintf(a.out, " - %s\n", resp.DocumentPath)
	fmt.Fprintf(a.out, " - %s\n", resp.FactoryImagePath)
	fmt.Fprintf(a.out, " - %s\n", resp.UpgradeImagePath)
	fmt.Fprintf(a.out, "%s\n\n", separator)
	fmt.Fprintf(a.out, "%s Build %s: version %s (upgrade %s), %d items\n",
		color.New(color.FgGreen).Sprint("✓"), resp.BuildID, resp.CompatibilityVersion, resp.UpgradeCode, resp.ItemCount)
	return nil
}

// Check regenerates the item document and compares it with a reference file.
// A drifted reference is rewritten and reported as a warning, not an error.
func (a *PartitionAdapter) Check(ctx context.Context, configPath, referencePath, encoderPath, version string, verbose bool) (*primary.CheckResponse, error) {
	resp, err := a.service.Check(ctx, primary.CheckRequest{
		ConfigPath:           configPath,
		ReferencePath:        referencePath,
		EncoderPath:          encoderPath,
		CompatibilityVersion: version,
		Progress:             a.progress(verbose),
	})
	if err != nil {
		return nil, err
	}

	if resp.Identical {
		fmt.Fprintf(a.out, "%s %s is up to date\n", color.New(color.FgGreen).Sprint("✓"), resp.ReferencePath)
		return resp, nil
	}

	fmt.Fprintf(a.out, "%s file %s was out of date and has been updated. Check the differences with \"git diff\"\n",
		color.New(color.FgYellow).Sprint("⚠"), resp.ReferencePath)
	return resp, nil
}

// progress prints build steps. Source files are always announced; the rest,
// including host app output, only in verbose mode.
func (a *PartitionAdapter) progress(verbose bool) primary.ProgressFunc {
	return func(p primary.Progress) {
		if p.Phase == primary.PhaseSource {
			fmt.Fprintf(a.out, "%s\n%s\n%s\n\n", separator, p.Message, separator)
			return
		}
		if !verbose {
			return
		}
		fmt.Fprintln(a.out, p.Message)
		if p.Detail != "" {
			fmt.Fprintln(a.out, p.Detail)
		}
	}
}
