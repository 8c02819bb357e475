// Package spispec encodes the line-oriented flash hardware specification into the
// fixed binary layout read by the firmware, and decodes it back.
// This is part of the Functional Core - no I/O beyond the supplied readers.
package spispec

import "fmt"

// FieldKind is the wire type of one spispec value.
type FieldKind int

const (
	// Word is a 4-byte little-endian value, 4-byte aligned.
	Word FieldKind = iota
	// Byte is a single unaligned byte.
	Byte
	// Enum is a symbolic name stored as a 4-byte aligned word.
	Enum
	// Reserved32 is a 32-byte aligned block that must be zero.
	Reserved32
)

// String returns the kind name used in error messages.
func (k FieldKind) String() string {
	switch k {
	case Word:
		return "word"
	case Byte:
		return "byte"
	case Enum:
		return "enum"
	case Reserved32:
		return "reserved32"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// width returns the encoded size in bytes.
func (k FieldKind) width() int {
	switch k {
	case Byte:
		return 1
	case Reserved32:
		return 32
	default:
		return 4
	}
}

// aligned reports whether the kind is padded to a 4-byte boundary before writing.
func (k FieldKind) aligned() bool {
	return k != Byte
}

// Schema is the ordered list of field kinds per non-comment spispec line.
// The layout mirrors fl_QuadDeviceSpec as consumed by the flash library.
var Schema = [][]FieldKind{
	{Word},                   // 0  device id
	{Word},                   // 1  page size
	{Word},                   // 2  num pages
	{Word},                   // 3  address size
	{Word},                   // 4  clock divider
	{Byte},                   // 5  read id command
	{Byte},                   // 6  read id dummy bytes
	{Byte},                   // 7  read id size
	{Word},                   // 8  read id mask
	{Byte},                   // 9  sector erase command
	{Word},                   // 10 sector erase size
	{Byte},                   // 11 write enable command
	{Byte},                   // 12 write disable command
	{Enum},                   // 13 protection type
	{Byte, Byte, Byte, Byte}, // 14 protection commands
	{Word},                   // 15 program page command
	{Byte},                   // 16 read command
	{Byte},                   // 17 read dummy bytes
	{Enum},                   // 18 sector layout
	{Word, Byte, Reserved32}, // 19 sector sizes
	{Byte},                   // 20 read status command
	{Word},                   // 21 write status command
	{Byte},                   // 22 busy bit mask
}

// Enum values understood by the firmware.
const (
	ProtTypeNone          = "PROT_TYPE_NONE"
	ProtTypeSR            = "PROT_TYPE_SR"
	ProtTypeSECS          = "PROT_TYPE_SECS"
	ProtTypeSR2X          = "PROT_TYPE_SR_2X"
	SectorLayoutRegular   = "SECTOR_LAYOUT_REGULAR"
	SectorLayoutIrregular = "SECTOR_LAYOUT_IRREGULAR"
)

// EnumValues maps symbolic enum names to their encoded value.
var EnumValues = map[string]uint32{
	ProtTypeNone:          0,
	ProtTypeSR:            1,
	ProtTypeSECS:          2,
	ProtTypeSR2X:          3,
	SectorLayoutRegular:   0,
	SectorLayoutIrregular: 1,
}

// enumNames lists the names valid on each enum-bearing schema line, used by Decode to
// turn a value back into a name. Protection type and sector layout share values.
var enumNames = map[int][]string{
	13: {ProtTypeNone, ProtTypeSR, ProtTypeSECS, ProtTypeSR2X},
	18: {SectorLayoutRegular},
}
