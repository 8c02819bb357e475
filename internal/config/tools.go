package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Environment variables consulted when a tool path flag is not given.
const (
	EncoderEnv        = "DPGEN_VFCTRL_BIN"
	ImageGeneratorEnv = "DPGEN_DPGEN_BIN"
)

// Default host app names, looked up on PATH.
const (
	DefaultEncoder        = "vfctrl_json"
	DefaultImageGenerator = "data_partition_generator"
)

var (
	// ErrInvalidEncoderName reports an encoder binary whose name is not vfctrl_json.
	ErrInvalidEncoderName = errors.New("invalid control encoder name, vfctrl_json expected")
	// ErrEncoderNotFound reports a control encoder that cannot be executed.
	ErrEncoderNotFound = errors.New("control encoder host app not found")
	// ErrImageGeneratorNotFound reports an image generator that cannot be executed.
	ErrImageGeneratorNotFound = errors.New("data partition generator host app not found")
)

// Tools names the external host apps a build invokes.
type Tools struct {
	Encoder        string
	ImageGenerator string
}

// ResolveTools picks each tool path from its flag, then its environment
// variable, then the default name.
func ResolveTools(encoderFlag, imageGeneratorFlag string) Tools {
	return Tools{
		Encoder:        firstNonEmpty(encoderFlag, os.Getenv(EncoderEnv), DefaultEncoder),
		ImageGenerator: firstNonEmpty(imageGeneratorFlag, os.Getenv(ImageGeneratorEnv), DefaultImageGenerator),
	}
}

// Validate checks the encoder name and that both tools can be executed.
// Resolved absolute paths replace the configured ones.
func (t *Tools) Validate() error {
	if err := t.ValidateEncoder(); err != nil {
		return err
	}
	return t.ValidateImageGenerator()
}

// ValidateEncoder checks the encoder name and resolves its path.
func (t *Tools) ValidateEncoder() error {
	if !strings.Contains(filepath.Base(t.Encoder), DefaultEncoder) {
		return fmt.Errorf("%w: %s", ErrInvalidEncoderName, t.Encoder)
	}
	encoder, err := exec.LookPath(t.Encoder)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrEncoderNotFound, t.Encoder)
	}
	t.Encoder = encoder
	return nil
}

// ValidateImageGenerator resolves the image generator path.
func (t *Tools) ValidateImageGenerator() error {
	generator, err := exec.LookPath(t.ImageGenerator)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrImageGeneratorNotFound, t.ImageGenerator)
	}
	t.ImageGenerator = generator
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
