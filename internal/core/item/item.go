// Package item defines the normalized configuration entries stored in a data partition,
// and the pure parsing steps that produce them.
package item

import "fmt"

// Type is the item type marker understood by the image generator and the firmware.
type Type int

const (
	// TypeBootLog wraps a keyword-detector boot log verbatim.
	TypeBootLog Type = 2
	// TypeControlCommand is a control command encoded by the host app.
	TypeControlCommand Type = 3
)

// String returns a readable name for the type.
func (t Type) String() string {
	switch t {
	case TypeBootLog:
		return "boot-log"
	case TypeControlCommand:
		return "control-command"
	default:
		return fmt.Sprintf("type-%d", int(t))
	}
}

// Item is one persisted configuration entry.
type Item struct {
	Type  Type
	Bytes []byte
	// Source describes where the item came from ("file.txt:12"); not persisted.
	Source string
}

// NewBootLog wraps raw boot-log bytes as an item without modification.
func NewBootLog(data []byte, source string) Item {
	return Item{Type: TypeBootLog, Bytes: data, Source: source}
}
