package item

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrControlEncodingFailed reports a control command the host app could not encode.
var ErrControlEncodingFailed = errors.New("control command encoding failed")

// minSeparatorLen is the shortest dash run treated as a block separator.
const minSeparatorLen = 20

// encodedBlock is the JSON object printed by the host app for one command.
type encodedBlock struct {
	Type  *int  `json:"type"`
	Bytes []int `json:"bytes"`
}

// ParseEncoderOutput extracts the single item the control host app prints between its
// second and third separator lines.
func ParseEncoderOutput(output string) (Item, error) {
	block, ok := itemBlock(output)
	if !ok {
		return Item{}, fmt.Errorf("%w: no item block in output", ErrControlEncodingFailed)
	}

	block = strings.TrimSuffix(strings.TrimSpace(block), ",")
	var decoded encodedBlock
	if err := json.Unmarshal([]byte(block), &decoded); err != nil {
		return Item{}, fmt.Errorf("%w: unreadable item block: %v", ErrControlEncodingFailed, err)
	}
	if decoded.Type == nil || decoded.Bytes == nil {
		return Item{}, fmt.Errorf("%w: item block lacks type or bytes", ErrControlEncodingFailed)
	}

	data := make([]byte, len(decoded.Bytes))
	for i, b := range decoded.Bytes {
		if b < 0 || b > 0xFF {
			return Item{}, fmt.Errorf("%w: byte %d out of range: %d", ErrControlEncodingFailed, i, b)
		}
		data[i] = byte(b)
	}

	return Item{Type: Type(*decoded.Type), Bytes: data}, nil
}

// itemBlock returns the text after the second separator line, up to the third if present.
func itemBlock(output string) (string, bool) {
	var (
		seen  int
		block []string
	)
	for _, line := range strings.Split(output, "\n") {
		if isSeparator(line) {
			seen++
			if seen == 3 {
				break
			}
			continue
		}
		if seen == 2 {
			block = append(block, line)
		}
	}
	if seen < 2 || strings.TrimSpace(strings.Join(block, "")) == "" {
		return "", false
	}
	return strings.Join(block, "\n"), true
}

func isSeparator(line string) bool {
	line = strings.TrimSpace(line)
	return len(line) >= minSeparatorLen && strings.Trim(line, "-") == ""
}
