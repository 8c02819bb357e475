package spispec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Field is one typed value of the specification.
type Field struct {
	Kind  FieldKind
	Value uint32
	// Name is the symbolic value of an Enum field.
	Name string
}

// Spec is a parsed specification: one slice of fields per schema line.
type Spec struct {
	Lines [][]Field
}

// Encode reads spispec text and returns its binary encoding.
func Encode(r io.Reader) ([]byte, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read spispec: %w", err)
	}
	return EncodeLines(lines)
}

// EncodeLines encodes spispec text already split into lines.
func EncodeLines(lines []string) ([]byte, error) {
	spec, err := Parse(lines)
	if err != nil {
		return nil, err
	}
	return spec.MarshalBinary()
}

// Parse checks every line against Schema and returns the typed fields.
func Parse(lines []string) (*Spec, error) {
	spec := &Spec{Lines: make([][]Field, 0, len(Schema))}

	for n, raw := range lines {
		line := strings.TrimSpace(raw)
		if isSkipped(line) {
			continue
		}

		index := len(spec.Lines)
		if index >= len(Schema) {
			return nil, &LineError{Line: n + 1, Index: index,
				Err: fmt.Errorf("%w: expected %d entries", ErrMalformedSpec, len(Schema))}
		}

		fields, err := parseLine(line, Schema[index])
		if err != nil {
			return nil, &LineError{Line: n + 1, Index: index, Err: err}
		}
		spec.Lines = append(spec.Lines, fields)
	}

	if len(spec.Lines) != len(Schema) {
		return nil, fmt.Errorf("%w: found %d entries, expected %d", ErrMalformedSpec, len(spec.Lines), len(Schema))
	}

	return spec, nil
}

// MarshalBinary writes the fields with alignment padding. The result length is a
// multiple of 4.
func (s *Spec) MarshalBinary() ([]byte, error) {
	var out []byte
	cursor := 0

	for _, fields := range s.Lines {
		for _, f := range fields {
			if f.Kind.aligned() {
				out = appendPadding(out, cursor)
				cursor = 0
			} else {
				cursor = (cursor + 1) % 4
			}

			switch f.Kind {
			case Byte:
				out = append(out, byte(f.Value))
			case Word, Enum:
				out = binary.LittleEndian.AppendUint32(out, f.Value)
			case Reserved32:
				if f.Value != 0 {
					return nil, ErrUnsupportedFeature
				}
				out = append(out, make([]byte, Reserved32.width())...)
			default:
				return nil, fmt.Errorf("%w: unknown field kind %v", ErrMalformedSpec, f.Kind)
			}
		}
	}

	return appendPadding(out, cursor), nil
}

// isSkipped reports blank and comment lines.
func isSkipped(line string) bool {
	return line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#")
}

// appendPadding adds zero bytes until the stream is 4-byte aligned.
func appendPadding(out []byte, cursor int) []byte {
	return append(out, make([]byte, (4-cursor)%4)...)
}

// parseLine splits a C-initializer style line ("{0x1, 2}," etc.) into typed fields.
func parseLine(line string, kinds []FieldKind) ([]Field, error) {
	compact := strings.NewReplacer(" ", "", "\t", "", "{", "", "}", "").Replace(line)
	values := strings.Split(compact, ",")
	// A trailing comma ends C initializer rows.
	if len(values) > 0 && values[len(values)-1] == "" {
		values = values[:len(values)-1]
	}
	if len(values) != len(kinds) {
		return nil, fmt.Errorf("%w: got %d values, expected %d (%s)", ErrMalformedSpec, len(values), len(kinds), kindList(kinds))
	}

	fields := make([]Field, len(kinds))
	for i, kind := range kinds {
		f, err := parseValue(values[i], kind)
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}
	return fields, nil
}

func parseValue(s string, kind FieldKind) (Field, error) {
	if kind == Enum {
		if s == SectorLayoutIrregular {
			return Field{}, ErrUnsupportedFeature
		}
		v, ok := EnumValues[s]
		if !ok {
			return Field{}, fmt.Errorf("%w: unknown enum %q", ErrUnsupportedValue, s)
		}
		return Field{Kind: Enum, Value: v, Name: s}, nil
	}

	bits := 32
	switch kind {
	case Byte:
		bits = 8
	case Reserved32:
		bits = 64
	}
	v, err := ParseNumber(s, bits)
	if err != nil {
		return Field{}, fmt.Errorf("%w: %s value %q: %v", ErrMalformedSpec, kind, s, err)
	}
	if kind == Reserved32 && v != 0 {
		return Field{}, ErrUnsupportedFeature
	}
	return Field{Kind: kind, Value: uint32(v)}, nil
}

// ParseNumber parses a decimal or 0x-prefixed hexadecimal literal that fits in bits.
func ParseNumber(s string, bits int) (uint64, error) {
	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		digits = s[2:]
	}
	return strconv.ParseUint(digits, base, bits)
}

func kindList(kinds []FieldKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ",")
}
