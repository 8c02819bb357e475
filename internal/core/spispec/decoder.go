package spispec

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Decode walks Schema over an encoded specification and recovers each field.
// Padding must be zero and the stream must end on the final padded field.
func Decode(b []byte) (*Spec, error) {
	spec := &Spec{Lines: make([][]Field, 0, len(Schema))}
	pos := 0
	cursor := 0

	take := func(n int) ([]byte, error) {
		if pos+n > len(b) {
			return nil, fmt.Errorf("%w: truncated at offset %d, need %d bytes", ErrMalformedSpec, pos, n)
		}
		chunk := b[pos : pos+n]
		pos += n
		return chunk, nil
	}
	skipPadding := func() error {
		pad, err := take((4 - cursor) % 4)
		if err != nil {
			return err
		}
		for _, p := range pad {
			if p != 0 {
				return fmt.Errorf("%w: non-zero padding at offset %d", ErrMalformedSpec, pos-len(pad))
			}
		}
		cursor = 0
		return nil
	}

	for index, kinds := range Schema {
		fields := make([]Field, len(kinds))
		for i, kind := range kinds {
			if kind.aligned() {
				if err := skipPadding(); err != nil {
					return nil, err
				}
			} else {
				cursor = (cursor + 1) % 4
			}

			chunk, err := take(kind.width())
			if err != nil {
				return nil, err
			}

			f := Field{Kind: kind}
			switch kind {
			case Byte:
				f.Value = uint32(chunk[0])
			case Word:
				f.Value = binary.LittleEndian.Uint32(chunk)
			case Enum:
				f.Value = binary.LittleEndian.Uint32(chunk)
				f.Name = enumName(index, f.Value)
				if f.Name == "" {
					return nil, fmt.Errorf("%w: entry %d enum value %d", ErrUnsupportedValue, index, f.Value)
				}
			case Reserved32:
				for _, c := range chunk {
					if c != 0 {
						return nil, ErrUnsupportedFeature
					}
				}
			}
			fields[i] = f
		}
		spec.Lines = append(spec.Lines, fields)
	}

	if err := skipPadding(); err != nil {
		return nil, err
	}
	if pos != len(b) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedSpec, len(b)-pos)
	}

	return spec, nil
}

func enumName(index int, value uint32) string {
	for _, name := range enumNames[index] {
		if EnumValues[name] == value {
			return name
		}
	}
	return ""
}

// WriteText renders the spec back into spispec text, one schema line per row.
// Words are written in hex, bytes in decimal.
func (s *Spec) WriteText(w io.Writer) error {
	for _, fields := range s.Lines {
		values := make([]string, len(fields))
		for i, f := range fields {
			switch f.Kind {
			case Enum:
				values[i] = f.Name
			case Word:
				values[i] = fmt.Sprintf("0x%X", f.Value)
			default:
				values[i] = strconv.FormatUint(uint64(f.Value), 10)
			}
		}
		line := strings.Join(values, ", ")
		if len(fields) > 1 {
			line = "{" + line + "}"
		}
		if _, err := fmt.Fprintf(w, "%s,\n", line); err != nil {
			return err
		}
	}
	return nil
}
