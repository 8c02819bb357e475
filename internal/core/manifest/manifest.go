// Package manifest holds the fully assembled partition description and renders the
// item document consumed by the image generator.
package manifest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/dpgen/internal/core/compat"
	"github.com/example/dpgen/internal/core/item"
)

const (
	indentUnit   = "    "
	bytesPerLine = 16
)

// Manifest is the output of one build, handed to the image generator and discarded.
type Manifest struct {
	CompatibilityVersion compat.Version
	RegularSectorSize    string
	HardwareBuild        string
	Items                []item.Item
	SpecBinaryPath       string
}

// Render writes the item document. The layout is fixed so identical manifests always
// produce identical bytes.
func (m *Manifest) Render() ([]byte, error) {
	var buf bytes.Buffer

	header := []struct {
		key   string
		value string
	}{
		{"compatibility_version", m.CompatibilityVersion.String()},
		{"regular_sector_size", m.RegularSectorSize},
		{"hardware_build", m.HardwareBuild},
	}

	buf.WriteString("{\n")
	for _, h := range header {
		quoted, err := json.Marshal(h.value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", h.key, err)
		}
		fmt.Fprintf(&buf, "%s\"%s\": %s,\n", indent(1), h.key, quoted)
	}

	fmt.Fprintf(&buf, "%s\"items\": [\n", indent(1))
	for i, it := range m.Items {
		renderItem(&buf, it)
		if i < len(m.Items)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	fmt.Fprintf(&buf, "%s]\n}\n", indent(1))

	return buf.Bytes(), nil
}

func renderItem(buf *bytes.Buffer, it item.Item) {
	fmt.Fprintf(buf, "%s{\n", indent(2))
	fmt.Fprintf(buf, "%s\"type\": %d, \"bytes\": [\n", indent(3), int(it.Type))

	var rows []string
	for start := 0; start < len(it.Bytes); start += bytesPerLine {
		end := min(start+bytesPerLine, len(it.Bytes))
		values := make([]string, 0, end-start)
		for _, b := range it.Bytes[start:end] {
			values = append(values, fmt.Sprintf("%3d", b))
		}
		rows = append(rows, indent(4)+strings.Join(values, ", "))
	}
	if len(rows) > 0 {
		buf.WriteString(strings.Join(rows, ",\n"))
		buf.WriteString("\n")
	}

	fmt.Fprintf(buf, "%s]\n", indent(3))
	fmt.Fprintf(buf, "%s}", indent(2))
}

func indent(level int) string {
	return strings.Repeat(indentUnit, level)
}

// Digest returns the hex SHA-256 of a rendered document.
func Digest(doc []byte) string {
	sum := sha256.Sum256(doc)
	return hex.EncodeToString(sum[:])
}
