package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/example/dpgen/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement the interfaces
var (
	_ secondary.Invoker         = (*mockInvoker)(nil)
	_ secondary.FileStore       = (*mockFileStore)(nil)
	_ secondary.BuildRepository = (*mockBuildRepository)(nil)
)

const (
	testEncoder   = "/opt/host/vfctrl_json"
	testGenerator = "/opt/host/data_partition_generator"
)

// invocation records one host app run.
type invocation struct {
	Name string
	Args []string
}

// mockInvoker implements secondary.Invoker for testing.
type mockInvoker struct {
	calls    []invocation
	invokeFn func(name string, args []string) (*secondary.InvokeResult, error)
}

func (m *mockInvoker) Invoke(ctx context.Context, name string, args ...string) (*secondary.InvokeResult, error) {
	m.calls = append(m.calls, invocation{Name: name, Args: args})
	if m.invokeFn != nil {
		return m.invokeFn(name, args)
	}
	return &secondary.InvokeResult{}, nil
}

// callsTo returns the recorded invocations of one binary.
func (m *mockInvoker) callsTo(name string) []invocation {
	var out []invocation
	for _, c := range m.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

const hostSeparator = "------------------------------------------------------------------------------------------------------"

// encoderOutput mimics the block the control encoder prints for one command.
func encoderOutput(data ...int) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%3d", b)
	}
	return "\n\n" + hostSeparator + "\nCopy the lines below into the data partition JSON file\n" +
		hostSeparator + "\n\n" +
		"        {\n            \"type\": 3, \"bytes\": [\n                " + strings.Join(parts, ", ") +
		"\n            ]\n        },\n" + hostSeparator + "\n\n"
}

// fakeHostApps behaves like the two host apps. Each encoded command yields
// the bytes {len(args), len(args[0])} so tests can tell commands apart.
func fakeHostApps(version string) func(name string, args []string) (*secondary.InvokeResult, error) {
	return func(name string, args []string) (*secondary.InvokeResult, error) {
		switch name {
		case testEncoder:
			if len(args) == 1 && args[0] == "--help" {
				return &secondary.InvokeResult{Output: "usage: vfctrl_json [options] COMMAND\nHost app version: v" + version + "\n"}, nil
			}
			return &secondary.InvokeResult{Output: encoderOutput(len(args), len(args[0]))}, nil
		case testGenerator:
			return &secondary.InvokeResult{Output: "image written\n"}, nil
		default:
			return nil, fmt.Errorf("unexpected binary %s", name)
		}
	}
}

// mockFileStore implements secondary.FileStore in memory, keyed by cleaned path.
type mockFileStore struct {
	files    map[string][]byte
	writeErr error
}

func newMockFileStore() *mockFileStore {
	return &mockFileStore{files: make(map[string][]byte)}
}

func (m *mockFileStore) put(path, content string) {
	m.files[filepath.Clean(path)] = []byte(content)
}

func (m *mockFileStore) get(path string) (string, bool) {
	data, ok := m.files[filepath.Clean(path)]
	return string(data), ok
}

func (m *mockFileStore) ReadFile(ctx context.Context, path string) ([]byte, error) {
	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, fmt.Errorf("failed to read %s: %w", path, fs.ErrNotExist)
	}
	return data, nil
}

func (m *mockFileStore) WriteFile(ctx context.Context, path string, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.files[filepath.Clean(path)] = append([]byte(nil), data...)
	return nil
}

func (m *mockFileStore) FileExists(ctx context.Context, path string) (bool, error) {
	_, ok := m.files[filepath.Clean(path)]
	return ok, nil
}

// mockBuildRepository implements secondary.BuildRepository for testing.
type mockBuildRepository struct {
	builds    []*secondary.BuildRecord
	createErr error
	listErr   error
}

func newMockBuildRepository() *mockBuildRepository {
	return &mockBuildRepository{}
}

func (m *mockBuildRepository) Create(ctx context.Context, build *secondary.BuildRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.builds = append(m.builds, build)
	return nil
}

func (m *mockBuildRepository) GetByID(ctx context.Context, id string) (*secondary.BuildRecord, error) {
	for _, b := range m.builds {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, errors.New("build not found")
}

func (m *mockBuildRepository) List(ctx context.Context, filters secondary.BuildFilters) ([]*secondary.BuildRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.BuildRecord
	for i := len(m.builds) - 1; i >= 0; i-- {
		b := m.builds[i]
		if filters.ConfigPath != "" && b.ConfigPath != filters.ConfigPath {
			continue
		}
		if filters.HardwareBuild != "" && b.HardwareBuild != filters.HardwareBuild {
			continue
		}
		result = append(result, b)
		if filters.Limit > 0 && len(result) == filters.Limit {
			break
		}
	}
	return result, nil
}

func (m *mockBuildRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("BUILD-%04d", len(m.builds)+1), nil
}

// testSpispec is a complete, valid spispec text.
const testSpispec = `// Winbond W25Q64
0xEF4017,
256,
32768,
3,
2,
0x9F,
0,
3,
0x00FFFFFF,
0x20,
4096,
0x06,
0x04,
PROT_TYPE_SR,
{0x00, 0x3C, 0x00, 0x00},
0x02,
0xEB,
1,
SECTOR_LAYOUT_REGULAR,
{4096, 0, 0},
0x05,
0x01,
0x01,
`
