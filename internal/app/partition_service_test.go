package app

import (
	"context"
	"errors"
	"strings"
	"testing"

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

const (
	testConfigPath = "/work/dp/usb_config.json"
	testConfig     = `{
    "regular_sector_size": "4096",
    "hardware_build": "0x12345678",
    "spispec_path": "flash.spispec",
    "item_files": [
        {"path": "input/cmds.txt"},
        {"path": "input/kwd.bin"}
    ]
}`
	testCommands = `# autostart
SET_MIC_START_STATUS 1
SET_USB_VENDOR_STRING "Acme Audio Co"
SET_I2S_START_STATUS 1
`
)

type partitionFixture struct {
	service  *PartitionServiceImpl
	invoker  *mockInvoker
	files    *mockFileStore
	builds   *mockBuildRepository
	progress []primary.Progress
}

func newPartitionFixture() *partitionFixture {
	f := &partitionFixture{
		invoker: &mockInvoker{invokeFn: fakeHostApps("2.2.1")},
		files:   newMockFileStore(),
		builds:  newMockBuildRepository(),
	}
	f.files.put(testConfigPath, testConfig)
	f.files.put("/work/dp/flash.spispec", testSpispec)
	f.files.put("/work/dp/input/cmds.txt", testCommands)
	f.files.put("/work/dp/input/kwd.bin", "\x01\x02\x03")
	f.service = NewPartitionService(f.invoker, f.files, f.builds)
	return f
}

func (f *partitionFixture) buildRequest() primary.BuildRequest {
	return primary.BuildRequest{
		ConfigPath:         testConfigPath,
		EncoderPath:        testEncoder,
		ImageGeneratorPath: testGenerator,
		Progress:           func(p primary.Progress) { f.progress = append(f.progress, p) },
	}
}

func TestBuild_EndToEnd(t *testing.T) {
	f := newPartitionFixture()

	resp, err := f.service.Build(context.Background(), f.buildRequest())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	wantDoc := "/work/dp/output/output_usb_config_v2_2_1.json"
	wantFactory := "/work/dp/output/data_partition_factory_usb_v2_2_1.bin"
	wantUpgrade := "/work/dp/output/data_partition_upgrade_usb_v2_2_1.bin"

	if resp.BuildID != "BUILD-0001" {
		t.Errorf("BuildID = %q, want BUILD-0001", resp.BuildID)
	}
	if resp.CompatibilityVersion != "2.2.1" || resp.UpgradeCode != "0x0221" {
		t.Errorf("version = %s / %s, want 2.2.1 / 0x0221", resp.CompatibilityVersion, resp.UpgradeCode)
	}
	if resp.ItemCount != 4 {
		t.Errorf("ItemCount = %d, want 4", resp.ItemCount)
	}
	if resp.DocumentPath != wantDoc {
		t.Errorf("DocumentPath = %q, want %q", resp.DocumentPath, wantDoc)
	}
	if resp.FactoryImagePath != wantFactory || resp.UpgradeImagePath != wantUpgrade {
		t.Errorf("images = %q, %q", resp.FactoryImagePath, resp.UpgradeImagePath)
	}

	// Item document holds three commands then the boot log, in order
	doc, ok := f.files.get(wantDoc)
	if !ok {
		t.Fatal("item document was not written")
	}
	parsed, err := manifest.ParseDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	wantTypes := []item.Type{item.TypeControlCommand, item.TypeControlCommand, item.TypeControlCommand, item.TypeBootLog}
	if len(parsed.Items) != len(wantTypes) {
		t.Fatalf("document has %d items, want %d", len(parsed.Items), len(wantTypes))
	}
	for i, want := range wantTypes {
		if parsed.Items[i].Type != want {
			t.Errorf("item %d type = %v, want %v", i, parsed.Items[i].Type, want)
		}
	}
	if parsed.HardwareBuild != "0x12345678" || parsed.RegularSectorSize != "4096" {
		t.Errorf("document header = %q/%q", parsed.HardwareBuild, parsed.RegularSectorSize)
	}

	// Spispec binary matches a direct encode
	wantBin, err := spispec.Encode(strings.NewReader(testSpispec))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	gotBin, ok := f.files.get("/work/dp/flash.bin")
	if !ok || gotBin != string(wantBin) {
		t.Errorf("spispec binary missing or different (%d bytes, want %d)", len(gotBin), len(wantBin))
	}

	// Image generator invocations
	gen := f.invoker.callsTo(testGenerator)
	if len(gen) != 2 {
		t.Fatalf("expected 2 generator calls, got %d", len(gen))
	}
	wantFactoryArgs := []string{
		"--regular-sector-size", "4096",
		"--hardware-build", "0x12345678",
		"--spi-spec-bin", "/work/dp/flash.bin",
		"--factory", wantDoc,
		"-o", wantFactory,
	}
	wantUpgradeArgs := []string{
		"--regular-sector-size", "4096",
		"--upgrade", "0x0221",
		wantDoc,
		"-o", wantUpgrade,
	}
	if strings.Join(gen[0].Args, " ") != strings.Join(wantFactoryArgs, " ") {
		t.Errorf("factory args = %q\nwant %q", gen[0].Args, wantFactoryArgs)
	}
	if strings.Join(gen[1].Args, " ") != strings.Join(wantUpgradeArgs, " ") {
		t.Errorf("upgrade args = %q\nwant %q", gen[1].Args, wantUpgradeArgs)
	}

	// History
	if len(f.builds.builds) != 1 {
		t.Fatalf("expected 1 recorded build, got %d", len(f.builds.builds))
	}
	record := f.builds.builds[0]
	if record.DocumentDigest != manifest.Digest([]byte(doc)) {
		t.Errorf("recorded digest %q does not match document", record.DocumentDigest)
	}
	if record.ConfigPath != testConfigPath || record.ItemCount != 4 {
		t.Errorf("record = %+v", record)
	}

	// Progress covers every phase
	seen := map[string]bool{}
	for _, p := range f.progress {
		seen[p.Phase] = true
	}
	for _, phase := range []string{primary.PhaseVersion, primary.PhaseSource, primary.PhaseCommand, primary.PhaseDocument, primary.PhaseSpispec, primary.PhaseImage} {
		if !seen[phase] {
			t.Errorf("no progress reported for phase %s", phase)
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	first := newPartitionFixture()
	second := newPartitionFixture()

	r1, err := first.service.Build(context.Background(), first.buildRequest())
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	r2, err := second.service.Build(context.Background(), second.buildRequest())
	if err != nil {
		t.Fatalf("second Build failed: %v", err)
	}

	d1, _ := first.files.get(r1.DocumentPath)
	d2, _ := second.files.get(r2.DocumentPath)
	if d1 != d2 {
		t.Error("identical inputs produced different documents")
	}
}

func TestBuild_VersionSources(t *testing.T) {
	tests := []struct {
		name        string
		override    string
		configured  string
		hostVersion string
		want        string
		wantHelp    bool
	}{
		{name: "host app", hostVersion: "4.4.0", want: "4.4.0", wantHelp: true},
		{name: "request override", override: "3.1.2", hostVersion: "4.4.0", want: "3.1.2"},
		{name: "config file", configured: "1.0.15", hostVersion: "4.4.0", want: "1.0.15"},
		{name: "override beats config", override: "3.1.2", configured: "1.0.15", want: "3.1.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPartitionFixture()
			f.invoker.invokeFn = fakeHostApps(tt.hostVersion)
			if tt.configured != "" {
				f.files.put(testConfigPath, strings.Replace(testConfig, "{", `{"compatibility_version": "`+tt.configured+`",`, 1))
			}
			req := f.buildRequest()
			req.CompatibilityVersion = tt.override

			resp, err := f.service.Build(context.Background(), req)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if resp.CompatibilityVersion != tt.want {
				t.Errorf("CompatibilityVersion = %s, want %s", resp.CompatibilityVersion, tt.want)
			}

			helpCalled := false
			for _, c := range f.invoker.callsTo(testEncoder) {
				if len(c.Args) == 1 && c.Args[0] == "--help" {
					helpCalled = true
				}
			}
			if helpCalled != tt.wantHelp {
				t.Errorf("--help called = %v, want %v", helpCalled, tt.wantHelp)
			}
		})
	}
}

func TestBuild_Verbose(t *testing.T) {
	f := newPartitionFixture()
	req := f.buildRequest()
	req.Verbose = true

	if _, err := f.service.Build(context.Background(), req); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, c := range f.invoker.callsTo(testGenerator) {
		if c.Args[len(c.Args)-1] != "--verbose" {
			t.Errorf("generator args %q should end with --verbose", c.Args)
		}
	}
}

func TestBuild_DocumentPathOverride(t *testing.T) {
	f := newPartitionFixture()
	req := f.buildRequest()
	req.DocumentPath = "/tmp/out/custom_config.json"

	resp, err := f.service.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, ok := f.files.get("/tmp/out/custom_config.json"); !ok {
		t.Error("document not written to override path")
	}
	if resp.FactoryImagePath != "/tmp/out/data_partition_factory_custom.bin" {
		t.Errorf("FactoryImagePath = %q", resp.FactoryImagePath)
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(f *partitionFixture, req *primary.BuildRequest)
		wantErr error
	}{
		{
			name:    "config name",
			setup:   func(f *partitionFixture, req *primary.BuildRequest) { req.ConfigPath = "/work/dp/usb_config.txt" },
			wantErr: config.ErrInvalidConfigName,
		},
		{
			name:    "config missing",
			setup:   func(f *partitionFixture, req *primary.BuildRequest) { req.ConfigPath = "/work/dp/other.json" },
			wantErr: config.ErrConfigNotFound,
		},
		{
			name: "missing hardware build",
			setup: func(f *partitionFixture, req *primary.BuildRequest) {
				f.files.put(testConfigPath, `{"regular_sector_size": "4096", "spispec_path": "flash.spispec"}`)
			},
			wantErr: partition.ErrMissingField,
		},
		{
			name:    "spispec missing",
			setup:   func(f *partitionFixture, req *primary.BuildRequest) { delete(f.files.files, "/work/dp/flash.spispec") },
			wantErr: partition.ErrSpecFileNotFound,
		},
		{
			name:    "source missing",
			setup:   func(f *partitionFixture, req *primary.BuildRequest) { delete(f.files.files, "/work/dp/input/kwd.bin") },
			wantErr: partition.ErrSourceFileNotFound,
		},
		{
			name: "bad source extension",
			setup: func(f *partitionFixture, req *primary.BuildRequest) {
				f.files.put(testConfigPath, strings.Replace(testConfig, "input/kwd.bin", "input/kwd.log", 1))
				f.files.put("/work/dp/input/kwd.log", "x")
			},
			wantErr: partition.ErrUnsupportedSourceExtension,
		},
		{
			name:    "invalid override version",
			setup:   func(f *partitionFixture, req *primary.BuildRequest) { req.CompatibilityVersion = "256.0.0" },
			wantErr: compat.ErrInvalidVersion,
		},
		{
			name: "version not in help",
			setup: func(f *partitionFixture, req *primary.BuildRequest) {
				f.invoker.invokeFn = func(name string, args []string) (*secondary.InvokeResult, error) {
					return &secondary.InvokeResult{Output: "usage: vfctrl_json\n"}, nil
				}
			},
			wantErr: ErrVersionNotFound,
		},
		{
			name: "order violated across files",
			setup: func(f *partitionFixture, req *primary.BuildRequest) {
				f.files.put(testConfigPath, strings.Replace(testConfig, `{"path": "input/kwd.bin"}`, `{"path": "input/late.txt"}`, 1))
				f.files.put("/work/dp/input/late.txt", "SET_MCLK_IN_TO_PDM_CLK_DIVIDER 2\n")
			},
			wantErr: autostart.ErrIllegalCommandOrder,
		},
		{
			name: "malformed spispec",
			setup: func(f *partitionFixture, req *primary.BuildRequest) {
				f.files.put("/work/dp/flash.spispec", "0xEF4017,\n256,\n")
			},
			wantErr: spispec.ErrMalformedSpec,
		},
		{
			name: "image generator fails",
			setup: func(f *partitionFixture, req *primary.BuildRequest) {
				hosts := fakeHostApps("2.2.1")
				f.invoker.invokeFn = func(name string, args []string) (*secondary.InvokeResult, error) {
					if name == testGenerator {
						return &secondary.InvokeResult{ExitCode: 2, Output: "bad sector size"}, nil
					}
					return hosts(name, args)
				}
			},
			wantErr: ErrImageGenerationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPartitionFixture()
			req := f.buildRequest()
			tt.setup(f, &req)

			_, err := f.service.Build(context.Background(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Build() error = %v, want %v", err, tt.wantErr)
			}
			if len(f.builds.builds) != 0 {
				t.Error("failed build should not be recorded")
			}
		})
	}
}

func TestCheck(t *testing.T) {
	const referencePath = "/work/dp/json/usb_config.json"

	// Produce the expected document with a build first
	reference := newPartitionFixture()
	resp, err := reference.service.Build(context.Background(), reference.buildRequest())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	fresh, _ := reference.files.get(resp.DocumentPath)

	tests := []struct {
		name          string
		existing      *string
		wantIdentical bool
		wantUpdated   bool
	}{
		{name: "identical", existing: &fresh, wantIdentical: true},
		{name: "drifted", existing: ptr("{}\n"), wantUpdated: true},
		{name: "missing", wantUpdated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPartitionFixture()
			if tt.existing != nil {
				f.files.put(referencePath, *tt.existing)
			}

			got, err := f.service.Check(context.Background(), primary.CheckRequest{
				ConfigPath:    testConfigPath,
				ReferencePath: referencePath,
				EncoderPath:   testEncoder,
			})
			if err != nil {
				t.Fatalf("Check failed: %v", err)
			}
			if got.Identical != tt.wantIdentical || got.Updated != tt.wantUpdated {
				t.Errorf("Check() = %+v, want identical=%v updated=%v", got, tt.wantIdentical, tt.wantUpdated)
			}

			after, _ := f.files.get(referencePath)
			if after != fresh {
				t.Error("reference should hold the fresh document after Check")
			}
			if len(f.invoker.callsTo(testGenerator)) != 0 {
				t.Error("Check should not generate images")
			}
			if len(f.builds.builds) != 0 {
				t.Error("Check should not record a build")
			}
		})
	}
}

func TestMalformedSpispecFailsBeforeHostApps(t *testing.T) {
	runs := []struct {
		name string
		run  func(f *partitionFixture) error
	}{
		{
			name: "build",
			run: func(f *partitionFixture) error {
				_, err := f.service.Build(context.Background(), f.buildRequest())
				return err
			},
		},
		{
			name: "check",
			run: func(f *partitionFixture) error {
				_, err := f.service.Check(context.Background(), primary.CheckRequest{
					ConfigPath:    testConfigPath,
					ReferencePath: "/work/dp/json/usb_config.json",
					EncoderPath:   testEncoder,
				})
				return err
			},
		},
	}

	for _, tt := range runs {
		t.Run(tt.name, func(t *testing.T) {
			f := newPartitionFixture()
			f.files.put("/work/dp/flash.spispec", "0xEF4017,\n256,\n")
			before := len(f.files.files)

			if err := tt.run(f); !errors.Is(err, spispec.ErrMalformedSpec) {
				t.Fatalf("error = %v, want ErrMalformedSpec", err)
			}
			if len(f.invoker.calls) != 0 {
				t.Errorf("expected no host app calls, got %d", len(f.invoker.calls))
			}
			if len(f.files.files) != before {
				t.Error("no file should be written when the spispec is malformed")
			}
		})
	}
}

func ptr(s string) *string { return &s }
