// Package compat handles the compatibility version shared by a data partition and the
// firmware that reads it.
package compat

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Limits imposed by the 3-nibble upgrade code.
const (
	MaxMajor = 0xFF
	MaxMinor = 0x0F
	MaxPatch = 0x0F
)

// ErrInvalidVersion reports a version outside {0-255}.{0-15}.{0-15} or equal to 0.0.0.
var ErrInvalidVersion = errors.New("compatibility version must have format {0-255}.{0-15}.{0-15} and be different from 0.0.0")

var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// hostVersionPattern matches the version line printed by the control host app.
var hostVersionPattern = regexp.MustCompile(`Host app version: v(\d+\.\d+\.\d+)`)

// Version is an immutable major.minor.patch triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse parses and validates a "major.minor.patch" string.
func Parse(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("%w: given %q", ErrInvalidVersion, s)
	}

	parts := [3]int{}
	for i := range parts {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Version{}, fmt.Errorf("%w: given %q", ErrInvalidVersion, s)
		}
		parts[i] = n
	}

	v := Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}
	if err := v.Validate(); err != nil {
		return Version{}, fmt.Errorf("%w: given %q", ErrInvalidVersion, s)
	}
	return v, nil
}

// FromHostOutput extracts the version reported by the control host app help text.
// The boolean is false when no version line is present.
func FromHostOutput(output string) (string, bool) {
	m := hostVersionPattern.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Validate checks the range invariant.
func (v Version) Validate() error {
	if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
		return ErrInvalidVersion
	}
	if v.Major > MaxMajor || v.Minor > MaxMinor || v.Patch > MaxPatch {
		return ErrInvalidVersion
	}
	if v.Major+v.Minor+v.Patch == 0 {
		return ErrInvalidVersion
	}
	return nil
}

// String returns "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// UpgradeCode packs the version as two hex digits of major and one each of minor and patch.
func (v Version) UpgradeCode() uint16 {
	return uint16(v.Major)<<8 | uint16(v.Minor)<<4 | uint16(v.Patch)
}

// UpgradeCodeString formats the upgrade code as passed to the image generator, e.g. "0x221".
func (v Version) UpgradeCodeString() string {
	return fmt.Sprintf("0x%02X%01X%01X", v.Major, v.Minor, v.Patch)
}

// FileTag returns the version with dots replaced, as used in output file names.
func (v Version) FileTag() string {
	return fmt.Sprintf("%d_%d_%d", v.Major, v.Minor, v.Patch)
}
