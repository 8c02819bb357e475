package app

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/example/dpgen/internal/config"
	"github.com/example/dpgen/internal/core/autostart"
	"github.com/example/dpgen/internal/core/compat"
	"github.com/example/dpgen/internal/core/item"
	"github.com/example/dpgen/internal/core/manifest"
	"github.com/example/dpgen/internal/core/partition"
	"github.com/example/dpgen/internal/core/spispec"
	"github.com/example/dpgen/internal/ports/primary"
	"github.com/example/dpgen/internal/ports/secondary"
)

// PartitionServiceImpl implements the PartitionService interface.
type PartitionServiceImpl struct {
	assembler *ItemAssembler
	encoder   *EncoderClient
	generator *ImageGenerator
	files     secondary.FileStore
	buildRepo secondary.BuildRepository
}

// NewPartitionService creates a new PartitionService with injected dependencies.
func NewPartitionService(
	invoker secondary.Invoker,
	files secondary.FileStore,
	buildRepo secondary.BuildRepository,
) *PartitionServiceImpl {
	encoder := NewEncoderClient(invoker)
	return &PartitionServiceImpl{
		assembler: NewItemAssembler(encoder),
		encoder:   encoder,
		generator: NewImageGenerator(invoker),
		files:     files,
		buildRepo: buildRepo,
	}
}

// assembly is a manifest together with its encoded spispec.
type assembly struct {
	manifest   *manifest.Manifest
	specBinary []byte
}

// Build generates the item document, the spispec binary and both images.
func (s *PartitionServiceImpl) Build(ctx context.Context, req primary.BuildRequest) (*primary.BuildResponse, error) {
	configPath, err := filepath.Abs(req.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	a, err := s.assemble(ctx, configPath, req.EncoderPath, req.CompatibilityVersion, req.Progress)
	if err != nil {
		return nil, err
	}
	m := a.manifest

	doc, err := m.Render()
	if err != nil {
		return nil, err
	}

	docPath := req.DocumentPath
	if docPath == "" {
		docPath = partition.DefaultDocumentPath(configPath, m.CompatibilityVersion)
	}
	if err := s.files.WriteFile(ctx, docPath, doc); err != nil {
		return nil, fmt.Errorf("failed to write item document: %w", err)
	}
	emit(req.Progress, primary.Progress{Phase: primary.PhaseDocument, Message: "Wrote " + docPath})

	if err := s.files.WriteFile(ctx, m.SpecBinaryPath, a.specBinary); err != nil {
		return nil, fmt.Errorf("failed to write spispec binary: %w", err)
	}
	emit(req.Progress, primary.Progress{Phase: primary.PhaseSpispec, Message: fmt.Sprintf("Wrote %s (%d bytes)", m.SpecBinaryPath, len(a.specBinary))})

	factoryPath, upgradePath := partition.ImagePaths(docPath)
	images := []struct {
		name string
		path string
		args []string
	}{
		{"factory", factoryPath, FactoryArgs(m, docPath, factoryPath, req.Verbose)},
		{"upgrade", upgradePath, UpgradeArgs(m, docPath, upgradePath, req.Verbose)},
	}
	for _, img := range images {
		emit(req.Progress, primary.Progress{
			Phase:   primary.PhaseImage,
			Message: "Run command " + strings.Join(append([]string{req.ImageGeneratorPath}, img.args...), " "),
		})
		output, err := s.generator.Generate(ctx, req.ImageGeneratorPath, img.name, img.args)
		if err != nil {
			return nil, err
		}
		emit(req.Progress, primary.Progress{Phase: primary.PhaseImage, Message: "Generated " + img.path, Detail: output})
	}

	buildID, err := s.buildRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate build ID: %w", err)
	}
	record := &secondary.BuildRecord{
		ID:                   buildID,
		ConfigPath:           configPath,
		CompatibilityVersion: m.CompatibilityVersion.String(),
		HardwareBuild:        m.HardwareBuild,
		RegularSectorSize:    m.RegularSectorSize,
		ItemCount:            len(m.Items),
		DocumentPath:         docPath,
		DocumentDigest:       manifest.Digest(doc),
		FactoryImagePath:     factoryPath,
		UpgradeImagePath:     upgradePath,
	}
	if err := s.buildRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record build: %w", err)
	}

	return &primary.BuildResponse{
		BuildID:              buildID,
		CompatibilityVersion: m.CompatibilityVersion.String(),
		UpgradeCode:          m.CompatibilityVersion.UpgradeCodeString(),
		ItemCount:            len(m.Items),
		DocumentPath:         docPath,
		SpecBinaryPath:       m.SpecBinaryPath,
		FactoryImagePath:     factoryPath,
		UpgradeImagePath:     upgradePath,
	}, nil
}

// Check regenerates the item document and compares it byte for byte with the
// reference. A differing or missing reference is overwritten with the fresh document.
func (s *PartitionServiceImpl) Check(ctx context.Context, req primary.CheckRequest) (*primary.CheckResponse, error) {
	configPath, err := filepath.Abs(req.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	a, err := s.assemble(ctx, configPath, req.EncoderPath, req.CompatibilityVersion, req.Progress)
	if err != nil {
		return nil, err
	}
	doc, err := a.manifest.Render()
	if err != nil {
		return nil, err
	}

	resp := &primary.CheckResponse{ReferencePath: req.ReferencePath}

	exists, err := s.files.FileExists(ctx, req.ReferencePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check reference: %w", err)
	}
	if exists {
		reference, err := s.files.ReadFile(ctx, req.ReferencePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read reference: %w", err)
		}
		if bytes.Equal(reference, doc) {
			resp.Identical = true
			return resp, nil
		}
	}

	if err := s.files.WriteFile(ctx, req.ReferencePath, doc); err != nil {
		return nil, fmt.Errorf("failed to update reference: %w", err)
	}
	resp.Updated = true
	emit(req.Progress, primary.Progress{Phase: primary.PhaseDocument, Message: "Updated " + req.ReferencePath})

	return resp, nil
}

// assemble loads the config, encodes the spispec, resolves the compatibility
// version and converts every item file, in order, into a manifest. The spispec is
// encoded before any host app runs so a bad spec fails without side effects.
func (s *PartitionServiceImpl) assemble(
	ctx context.Context,
	configPath, encoderPath, versionOverride string,
	progress primary.ProgressFunc,
) (*assembly, error) {
	cfg, err := s.loadConfig(ctx, configPath)
	if err != nil {
		return nil, err
	}

	if err := partition.CheckConfig(*cfg); err != nil {
		return nil, fmt.Errorf("%w in %s", err, configPath)
	}

	specPath := cfg.Resolve(cfg.SpispecPath)
	exists, err := s.files.FileExists(ctx, specPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check spispec file: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", partition.ErrSpecFileNotFound, specPath)
	}
	specBinary, err := encodeSpec(ctx, s.files, specPath)
	if err != nil {
		return nil, err
	}

	version, err := s.resolveVersion(ctx, encoderPath, versionOverride, cfg.CompatibilityVersion)
	if err != nil {
		return nil, err
	}
	emit(progress, primary.Progress{Phase: primary.PhaseVersion, Message: "Compatibility version " + version.String()})

	var (
		items []item.Item
		state = autostart.StateInit
	)
	for _, src := range cfg.ItemFiles {
		path := cfg.Resolve(src.Path)
		emit(progress, primary.Progress{Phase: primary.PhaseSource, Message: "Parsing file " + path})

		exists, err := s.files.FileExists(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to check input file: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", partition.ErrSourceFileNotFound, path)
		}

		kind, err := partition.ClassifySource(path)
		if err != nil {
			return nil, err
		}

		data, err := s.files.ReadFile(ctx, path)
		if err != nil {
			return nil, err
		}

		switch kind {
		case partition.SourceCommandLog:
			var fileItems []item.Item
			fileItems, state, err = s.assembler.AssembleCommandLog(ctx, encoderPath, path, bytes.NewReader(data), state, progress)
			if err != nil {
				return nil, err
			}
			items = append(items, fileItems...)
		case partition.SourceBootLog:
			it, err := s.assembler.AssembleBootLog(path, bytes.NewReader(data))
			if err != nil {
				return nil, err
			}
			items = append(items, it)
		}
	}

	return &assembly{
		manifest: &manifest.Manifest{
			CompatibilityVersion: version,
			RegularSectorSize:    cfg.RegularSectorSize,
			HardwareBuild:        cfg.HardwareBuild,
			Items:                items,
			SpecBinaryPath:       partition.SpecBinaryPath(specPath),
		},
		specBinary: specBinary,
	}, nil
}

// resolveVersion prefers the request override, then the config file, then
// the version reported by the control encoder.
func (s *PartitionServiceImpl) resolveVersion(ctx context.Context, encoderPath, override, configured string) (compat.Version, error) {
	for _, candidate := range []string{override, configured} {
		if candidate != "" {
			return compat.Parse(candidate)
		}
	}
	return s.encoder.Version(ctx, encoderPath)
}

func (s *PartitionServiceImpl) loadConfig(ctx context.Context, configPath string) (*partition.Config, error) {
	if err := config.CheckName(configPath); err != nil {
		return nil, err
	}

	exists, err := s.files.FileExists(ctx, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
	}

	data, err := s.files.ReadFile(ctx, configPath)
	if err != nil {
		return nil, err
	}
	f, err := config.Parse(data, filepath.Ext(configPath))
	if err != nil {
		return nil, err
	}

	cfg := f.Partition(filepath.Dir(configPath))
	return &cfg, nil
}

// encodeSpec reads and encodes the spispec at specPath.
func encodeSpec(ctx context.Context, files secondary.FileStore, specPath string) ([]byte, error) {
	text, err := files.ReadFile(ctx, specPath)
	if err != nil {
		return nil, err
	}
	encoded, err := spispec.Encode(bytes.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", specPath, err)
	}
	return encoded, nil
}

// encodeSpecFile encodes the spispec at specPath into binPath and returns the encoded size.
func encodeSpecFile(ctx context.Context, files secondary.FileStore, specPath, binPath string) (int, error) {
	encoded, err := encodeSpec(ctx, files, specPath)
	if err != nil {
		return 0, err
	}
	if err := files.WriteFile(ctx, binPath, encoded); err != nil {
		return 0, fmt.Errorf("failed to write spispec binary: %w", err)
	}
	return len(encoded), nil
}

var _ primary.PartitionService = (*PartitionServiceImpl)(nil)
