package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/example/dpgen/internal/core/compat"
	"github.com/example/dpgen/internal/core/item"
)

type documentItem struct {
	Type  int   `json:"type"`
	Bytes []int `json:"bytes"`
}

type document struct {
	CompatibilityVersion string         `json:"compatibility_version"`
	RegularSectorSize    string         `json:"regular_sector_size"`
	HardwareBuild        string         `json:"hardware_build"`
	Items                []documentItem `json:"items"`
}

// ParseDocument reads a rendered item document back into a Manifest.
// SpecBinaryPath is not part of the document and is left empty.
func ParseDocument(data []byte) (*Manifest, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse item document: %w", err)
	}

	version, err := compat.Parse(doc.CompatibilityVersion)
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		CompatibilityVersion: version,
		RegularSectorSize:    doc.RegularSectorSize,
		HardwareBuild:        doc.HardwareBuild,
		Items:                make([]item.Item, len(doc.Items)),
	}
	for i, di := range doc.Items {
		data := make([]byte, len(di.Bytes))
		for j, b := range di.Bytes {
			if b < 0 || b > 0xFF {
				return nil, fmt.Errorf("item %d byte %d out of range: %d", i, j, b)
			}
			data[j] = byte(b)
		}
		m.Items[i] = item.Item{Type: item.Type(di.Type), Bytes: data}
	}

	return m, nil
}
