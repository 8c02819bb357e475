package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/dpgen/internal/core/compat"
	"github.com/example/dpgen/internal/core/item"
	"github.com/example/dpgen/internal/core/manifest"
	"github.com/example/dpgen/internal/ports/secondary"
)

var (
	// ErrEncoderFailed reports a non-zero exit from the control encoder host app.
	ErrEncoderFailed = errors.New("control encoder host app failed")
	// ErrVersionNotFound reports encoder help output without a host app version.
	ErrVersionNotFound = errors.New("control encoder host app version not available")
	// ErrImageGenerationFailed reports a non-zero exit from the image generator.
	ErrImageGenerationFailed = errors.New("data partition generator failed")
)

// EncoderClient drives the control encoder host app (vfctrl_json).
type EncoderClient struct {
	invoker secondary.Invoker
}

// NewEncoderClient creates a new EncoderClient.
func NewEncoderClient(invoker secondary.Invoker) *EncoderClient {
	return &EncoderClient{invoker: invoker}
}

// Version asks the host app for its version through --help.
func (c *EncoderClient) Version(ctx context.Context, path string) (compat.Version, error) {
	result, err := c.invoker.Invoke(ctx, path, "--help")
	if err != nil {
		return compat.Version{}, err
	}
	if result.ExitCode != 0 {
		return compat.Version{}, fmt.Errorf("%w: %s --help returned %d\nOutput:\n%s", ErrEncoderFailed, path, result.ExitCode, result.Output)
	}

	raw, ok := compat.FromHostOutput(result.Output)
	if !ok {
		return compat.Version{}, fmt.Errorf("%w\nCommand output: %s", ErrVersionNotFound, result.Output)
	}
	return compat.Parse(raw)
}

// Encode runs one command through the host app and parses the item it prints.
// The raw output is returned alongside for verbose reporting.
func (c *EncoderClient) Encode(ctx context.Context, path string, args []string) (item.Item, string, error) {
	result, err := c.invoker.Invoke(ctx, path, args...)
	if err != nil {
		return item.Item{}, "", err
	}
	if result.ExitCode != 0 {
		return item.Item{}, result.Output, fmt.Errorf("%w: %w: returned %d\nOutput:\n%s",
			ErrEncoderFailed, item.ErrControlEncodingFailed, result.ExitCode, result.Output)
	}

	it, err := item.ParseEncoderOutput(result.Output)
	if err != nil {
		return item.Item{}, result.Output, fmt.Errorf("command %s failed: %w\nCommand output: %s", strings.Join(args, " "), err, result.Output)
	}
	return it, result.Output, nil
}

// ImageGenerator drives the data partition generator host app.
type ImageGenerator struct {
	invoker secondary.Invoker
}

// NewImageGenerator creates a new ImageGenerator.
func NewImageGenerator(invoker secondary.Invoker) *ImageGenerator {
	return &ImageGenerator{invoker: invoker}
}

// FactoryArgs returns the generator arguments for the factory image.
func FactoryArgs(m *manifest.Manifest, documentPath, outPath string, verbose bool) []string {
	args := []string{
		"--regular-sector-size", m.RegularSectorSize,
		"--hardware-build", m.HardwareBuild,
		"--spi-spec-bin", m.SpecBinaryPath,
		"--factory", documentPath,
		"-o", outPath,
	}
	if verbose {
		args = append(args, "--verbose")
	}
	return args
}

// UpgradeArgs returns the generator arguments for the upgrade image.
func UpgradeArgs(m *manifest.Manifest, documentPath, outPath string, verbose bool) []string {
	args := []string{
		"--regular-sector-size", m.RegularSectorSize,
		"--upgrade", m.CompatibilityVersion.UpgradeCodeString(),
		documentPath,
		"-o", outPath,
	}
	if verbose {
		args = append(args, "--verbose")
	}
	return args
}

// Generate runs the generator and returns its output.
func (g *ImageGenerator) Generate(ctx context.Context, path, image string, args []string) (string, error) {
	result, err := g.invoker.Invoke(ctx, path, args...)
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return result.Output, fmt.Errorf("%w: %s image returned %d\nOutput:\n%s", ErrImageGenerationFailed, image, result.ExitCode, result.Output)
	}
	return result.Output, nil
}
