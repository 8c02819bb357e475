package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/dpgen/internal/ports/primary"
)

// SpispecAdapter is a thin adapter that translates CLI operations to SpispecService calls.
type SpispecAdapter struct {
	service primary.SpispecService
	out     io.Writer
}

// NewSpispecAdapter creates a new SpispecAdapter with the given service.
func NewSpispecAdapter(service primary.SpispecService, out io.Writer) *SpispecAdapter {
	return &SpispecAdapter{
		service: service,
		out:     out,
	}
}

// Encode converts a spispec text file into its binary form.
func (a *SpispecAdapter) Encode(ctx context.Context, specPath, binPath string) error {
	resp, err := a.service.Encode(ctx, specPath, binPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Encoded %s -> %s (%d bytes)\n", color.New(color.FgGreen).Sprint("✓"), specPath, resp.BinPath, resp.Size)
	return nil
}

// Decode prints an encoded spispec as spispec text.
func (a *SpispecAdapter) Decode(ctx context.Context, binPath string) error {
	text, err := a.service.Decode(ctx, binPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "// decoded from %s\n", binPath)
	fmt.Fprint(a.out, text)
	return nil
}
