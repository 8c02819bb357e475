package spispec

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedSpec reports a line whose values do not match the schema.
	ErrMalformedSpec = errors.New("malformed spispec")

	// ErrUnsupportedValue reports an enum name missing from EnumValues.
	ErrUnsupportedValue = errors.New("unsupported spispec value")

	// ErrUnsupportedFeature reports an irregular sector layout, which the firmware cannot use.
	ErrUnsupportedFeature = errors.New("SECTOR_LAYOUT_IRREGULAR is not supported")
)

// LineError locates an encoding failure in the spispec text.
type LineError struct {
	// Line is the 1-based line number in the source text.
	Line int
	// Index is the schema line index (comments and blanks excluded).
	Index int
	Err   error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("spispec line %d (entry %d): %v", e.Line, e.Index, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
