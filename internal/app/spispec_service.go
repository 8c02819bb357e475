package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/dpgen/internal/core/partition"
	"github.com/example/dpgen/internal/core/spispec"
	"github.com/example/dpgen/internal/ports/primary"
	"github.com/example/dpgen/internal/ports/secondary"
)

// SpispecServiceImpl implements the SpispecService interface.
type SpispecServiceImpl struct {
	files secondary.FileStore
}

// NewSpispecService creates a new SpispecService with injected dependencies.
func NewSpispecService(files secondary.FileStore) *SpispecServiceImpl {
	return &SpispecServiceImpl{files: files}
}

// Encode converts a spispec text file into its binary form. An empty binPath
// writes next to the source with a .bin extension.
func (s *SpispecServiceImpl) Encode(ctx context.Context, specPath, binPath string) (*primary.EncodeSpispecResponse, error) {
	exists, err := s.files.FileExists(ctx, specPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check spispec file: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", partition.ErrSpecFileNotFound, specPath)
	}

	if binPath == "" {
		binPath = partition.SpecBinaryPath(specPath)
	}

	size, err := encodeSpecFile(ctx, s.files, specPath, binPath)
	if err != nil {
		return nil, err
	}

	return &primary.EncodeSpispecResponse{BinPath: binPath, Size: size}, nil
}

// Decode reads an encoded spispec and renders it back as spispec text.
func (s *SpispecServiceImpl) Decode(ctx context.Context, binPath string) (string, error) {
	data, err := s.files.ReadFile(ctx, binPath)
	if err != nil {
		return "", err
	}

	spec, err := spispec.Decode(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", binPath, err)
	}

	var sb strings.Builder
	if err := spec.WriteText(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

var _ primary.SpispecService = (*SpispecServiceImpl)(nil)
