// Package config loads data partition configurations and the tool settings
// needed to reach the external host apps.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/dpgen/internal/core/partition"
)

var (
	// ErrInvalidConfigName reports a config file that is not .json, .yaml or .yml.
	ErrInvalidConfigName = errors.New("invalid config file name, .json, .yaml or .yml expected")
	// ErrConfigNotFound reports a config path that does not name a file.
	ErrConfigNotFound = errors.New("config file not found")
)

// scalar is a config value kept as written. JSON numbers and YAML plain scalars
// are accepted alongside strings, so both 4096 and "4096" load as "4096".
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = scalar(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected a string or number, got %s", data)
	}
	*s = scalar(num.String())
	return nil
}

func (s *scalar) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", value.Line)
	}
	*s = scalar(value.Value)
	return nil
}

// itemFile accepts either a bare path or an object with a "path" key.
type itemFile struct {
	Path string `json:"path" yaml:"path"`
}

func (f *itemFile) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &f.Path)
	}
	type plain itemFile
	return json.Unmarshal(data, (*plain)(f))
}

func (f *itemFile) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		f.Path = value.Value
		return nil
	}
	type plain itemFile
	return value.Decode((*plain)(f))
}

// File is the on-disk shape of a partition config.
type File struct {
	CompatibilityVersion string     `json:"compatibility_version,omitempty" yaml:"compatibility_version,omitempty"`
	RegularSectorSize    scalar     `json:"regular_sector_size" yaml:"regular_sector_size"`
	HardwareBuild        scalar     `json:"hardware_build" yaml:"hardware_build"`
	SpispecPath          string     `json:"spispec_path" yaml:"spispec_path"`
	ItemFiles            []itemFile `json:"item_files" yaml:"item_files"`
}

// CheckName verifies the config file extension.
func CheckName(path string) error {
	switch filepath.Ext(path) {
	case ".json", ".yaml", ".yml":
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidConfigName, path)
	}
}

// Parse decodes config data; ext selects the format.
func Parse(data []byte, ext string) (*File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	return &f, nil
}

// Partition converts the file into a partition.Config rooted at baseDir.
func (f *File) Partition(baseDir string) partition.Config {
	cfg := partition.Config{
		CompatibilityVersion: strings.TrimSpace(f.CompatibilityVersion),
		RegularSectorSize:    strings.TrimSpace(string(f.RegularSectorSize)),
		HardwareBuild:        strings.TrimSpace(string(f.HardwareBuild)),
		SpispecPath:          strings.TrimSpace(f.SpispecPath),
		BaseDir:              baseDir,
	}
	for _, item := range f.ItemFiles {
		cfg.ItemFiles = append(cfg.ItemFiles, partition.SourceFile{Path: item.Path})
	}
	return cfg
}
