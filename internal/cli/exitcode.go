package cli

import (
	"errors"

	"github.com/example/dpgen/internal/app"
	"github.com/example/dpgen/internal/config"
	"github.com/example/dpgen/internal/core/autostart"
	"github.com/example/dpgen/internal/core/compat"
	"github.com/example/dpgen/internal/core/item"
	"github.com/example/dpgen/internal/core/partition"
	"github.com/example/dpgen/internal/core/spispec"
)

// Process exit codes. Scripts in firmware build pipelines match on these values.
const (
	ExitGeneric                = 1
	ExitInvalidConfigName      = 1
	ExitConfigNotFound         = 2
	ExitInvalidEncoderName     = 3
	ExitEncoderNotFound        = 4
	ExitImageGeneratorNotFound = 5
	ExitVersionNotFound        = 6
	ExitMissingSectorSize      = 7
	ExitMissingHardwareBuild   = 8
	ExitMissingSpispecPath     = 9
	ExitSpispecNotFound        = 10
	ExitSourceNotFound         = 11
	ExitBadExtension           = 12
	ExitInvalidCommand         = 13
	ExitEncoderFailed          = 14
	ExitImageGenerationFailed  = 16
	ExitInvalidVersion         = 17
	ExitIllegalOrder           = 18
	ExitMalformedSpec          = 19
)

var exitCodes = []struct {
	err  error
	code int
}{
	{config.ErrInvalidConfigName, ExitInvalidConfigName},
	{config.ErrConfigNotFound, ExitConfigNotFound},
	{config.ErrInvalidEncoderName, ExitInvalidEncoderName},
	{config.ErrEncoderNotFound, ExitEncoderNotFound},
	{config.ErrImageGeneratorNotFound, ExitImageGeneratorNotFound},
	{app.ErrVersionNotFound, ExitVersionNotFound},
	{partition.ErrSpecFileNotFound, ExitSpispecNotFound},
	{partition.ErrSourceFileNotFound, ExitSourceNotFound},
	{partition.ErrUnsupportedSourceExtension, ExitBadExtension},
	// encoder failures wrap the control encoding error too, so they go first
	{app.ErrEncoderFailed, ExitEncoderFailed},
	{autostart.ErrReadCommand, ExitInvalidCommand},
	{item.ErrControlEncodingFailed, ExitInvalidCommand},
	{item.ErrUnterminatedQuote, ExitInvalidCommand},
	{app.ErrImageGenerationFailed, ExitImageGenerationFailed},
	{compat.ErrInvalidVersion, ExitInvalidVersion},
	{autostart.ErrIllegalCommandOrder, ExitIllegalOrder},
	{spispec.ErrMalformedSpec, ExitMalformedSpec},
	{spispec.ErrUnsupportedValue, ExitMalformedSpec},
	{spispec.ErrUnsupportedFeature, ExitMalformedSpec},
}

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var fieldErr *partition.MissingFieldError
	if errors.As(err, &fieldErr) {
		switch fieldErr.Field {
		case partition.FieldRegularSectorSize:
			return ExitMissingSectorSize
		case partition.FieldHardwareBuild:
			return ExitMissingHardwareBuild
		case partition.FieldSpispecPath:
			return ExitMissingSpispecPath
		}
	}

	for _, e := range exitCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return ExitGeneric
}
