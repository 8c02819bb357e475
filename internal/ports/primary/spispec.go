package primary

import "context"

// SpispecService defines the primary port for standalone spispec conversion.
type SpispecService interface {
	// Encode converts a spispec text file into its binary form.
	Encode(ctx context.Context, specPath, binPath string) (*EncodeSpispecResponse, error)

	// Decode reads an encoded spispec and returns it rendered as spispec text.
	Decode(ctx context.Context, binPath string) (string, error)
}

// EncodeSpispecResponse contains the result of an encode.
type EncodeSpispecResponse struct {
	BinPath string
	Size    int
}
