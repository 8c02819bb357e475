// Package partition contains the pure rules for a data partition build configuration.
// This is part of the Functional Core - no I/O, only pure functions.
package partition

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Required configuration field names, as written in the config file.
const (
	FieldRegularSectorSize = "regular_sector_size"
	FieldHardwareBuild     = "hardware_build"
	FieldSpispecPath       = "spispec_path"
)

var (
	// ErrMissingField reports an absent required configuration field.
	ErrMissingField = errors.New("missing configuration field")
	// ErrSpecFileNotFound reports a spispec path that does not name a file.
	ErrSpecFileNotFound = errors.New("spispec file not found")
	// ErrSourceFileNotFound reports an item file that does not exist.
	ErrSourceFileNotFound = errors.New("input file not found")
	// ErrUnsupportedSourceExtension reports an item file that is neither .txt nor .bin.
	ErrUnsupportedSourceExtension = errors.New("wrong file extension, .txt or .bin expected")
)

// MissingFieldError names the absent field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("no %s in configuration", strings.ReplaceAll(e.Field, "_", " "))
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// SourceFile is one entry of the ordered item file list.
type SourceFile struct {
	Path string
}

// Config is the declarative description of one data partition.
// Sector size and hardware build are kept verbatim since they are forwarded to the
// image generator as written.
type Config struct {
	// CompatibilityVersion optionally pins the version; empty means ask the host app.
	CompatibilityVersion string
	RegularSectorSize    string
	HardwareBuild        string
	SpispecPath          string
	ItemFiles            []SourceFile
	// BaseDir is the directory relative paths are resolved against.
	BaseDir string
}

// CheckConfig verifies that every required field is present.
func CheckConfig(cfg Config) error {
	required := []struct {
		name  string
		value string
	}{
		{FieldRegularSectorSize, cfg.RegularSectorSize},
		{FieldHardwareBuild, cfg.HardwareBuild},
		{FieldSpispecPath, cfg.SpispecPath},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &MissingFieldError{Field: r.name}
		}
	}
	return nil
}

// Resolve returns p joined to BaseDir unless p is already absolute.
func (c Config) Resolve(p string) string {
	if filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// SourceKind classifies an item file.
type SourceKind int

const (
	// SourceCommandLog is a text file of control commands, one per line.
	SourceCommandLog SourceKind = iota + 1
	// SourceBootLog is a binary keyword-detector boot log.
	SourceBootLog
)

// String returns the kind name.
func (k SourceKind) String() string {
	switch k {
	case SourceCommandLog:
		return "command log"
	case SourceBootLog:
		return "boot log"
	default:
		return "unknown"
	}
}

// ClassifySource maps an item file extension to its kind.
func ClassifySource(path string) (SourceKind, error) {
	switch ext := filepath.Ext(path); ext {
	case ".txt":
		return SourceCommandLog, nil
	case ".bin":
		return SourceBootLog, nil
	default:
		return 0, fmt.Errorf("%w: %q has extension %q", ErrUnsupportedSourceExtension, path, ext)
	}
}

// SpecBinaryPath returns where the encoded spispec is written: the spispec path with
// its .spispec extension replaced by .bin.
func SpecBinaryPath(spispecPath string) string {
	ext := filepath.Ext(spispecPath)
	if ext == ".spispec" {
		return strings.TrimSuffix(spispecPath, ext) + ".bin"
	}
	return spispecPath + ".bin"
}
