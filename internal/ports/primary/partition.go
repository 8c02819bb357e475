package primary

import "context"

// PartitionService defines the primary port for data partition builds.
type PartitionService interface {
	// Build assembles the item document, encodes the spispec and generates the
	// factory and upgrade images.
	Build(ctx context.Context, req BuildRequest) (*BuildResponse, error)

	// Check regenerates the item document for a config and compares it with a
	// committed reference, rewriting the reference when they differ.
	Check(ctx context.Context, req CheckRequest) (*CheckResponse, error)
}

// BuildRequest contains parameters for a build.
type BuildRequest struct {
	ConfigPath string
	// EncoderPath and ImageGeneratorPath locate the host apps.
	EncoderPath        string
	ImageGeneratorPath string
	// DocumentPath overrides output/output_<stem>_v<version>.json (optional).
	DocumentPath string
	// CompatibilityVersion overrides the version reported by the host app (optional).
	CompatibilityVersion string
	Verbose              bool
	// Progress receives one event per build step (optional).
	Progress ProgressFunc
}

// BuildResponse contains the result of a build.
type BuildResponse struct {
	BuildID              string
	CompatibilityVersion string
	UpgradeCode          string
	ItemCount            int
	DocumentPath         string
	SpecBinaryPath       string
	FactoryImagePath     string
	UpgradeImagePath     string
}

// CheckRequest contains parameters for a reference check.
type CheckRequest struct {
	ConfigPath           string
	ReferencePath        string
	EncoderPath          string
	CompatibilityVersion string
	Progress             ProgressFunc
}

// CheckResponse reports whether the reference matched.
type CheckResponse struct {
	Identical bool
	// Updated is true when the reference was overwritten with the fresh document.
	Updated       bool
	ReferencePath string
}

// Progress describes one step of a build.
type Progress struct {
	// Phase is one of the Phase* constants.
	Phase   string
	Message string
	// Detail carries tool output in verbose mode.
	Detail string
}

// ProgressFunc is called synchronously for each build step.
type ProgressFunc func(Progress)

// Build phases reported through ProgressFunc.
const (
	PhaseVersion  = "version"
	PhaseSource   = "source"
	PhaseCommand  = "command"
	PhaseDocument = "document"
	PhaseSpispec  = "spispec"
	PhaseImage    = "image"
)
