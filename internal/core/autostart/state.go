// Package autostart contains the ordering rules for commands replayed from flash at boot.
// This is part of the Functional Core - no I/O, only pure functions.
package autostart

// State is a boot-sequencing phase reached by issuing a barrier command.
type State int

const (
	StateInit State = iota
	StateMicCompleted
	StateSerialCompleted
	StateUsbCompleted
	StateI2sCompleted
	StateDone
)

var stateNames = map[State]string{
	StateInit:            "INIT",
	StateMicCompleted:    "MIC_COMPLETED",
	StateSerialCompleted: "SERIAL_COMPLETED",
	StateUsbCompleted:    "USB_COMPLETED",
	StateI2sCompleted:    "I2S_COMPLETED",
	StateDone:            "DONE",
}

// String returns the state name.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Rank is the execution order of the state. States only move to a higher rank.
func (s State) Rank() int {
	return int(s)
}

// Command names subject to ordering.
const (
	CmdMclkInToPdmClkDivider  = "SET_MCLK_IN_TO_PDM_CLK_DIVIDER"
	CmdSysClkToMclkOutDivider = "SET_SYS_CLK_TO_MCLK_OUT_DIVIDER"
	CmdMicStartStatus         = "SET_MIC_START_STATUS"
	CmdUsbSerialNumber        = "SET_USB_SERIAL_NUMBER"
	CmdUsbVendorID            = "SET_USB_VENDOR_ID"
	CmdUsbProductID           = "SET_USB_PRODUCT_ID"
	CmdUsbBcdDevice           = "SET_USB_BCD_DEVICE"
	CmdUsbVendorString        = "SET_USB_VENDOR_STRING"
	CmdUsbProductString       = "SET_USB_PRODUCT_STRING"
	CmdUsbToDeviceRate        = "SET_USB_TO_DEVICE_RATE"
	CmdDeviceToUsbRate        = "SET_DEVICE_TO_USB_RATE"
	CmdUsbToDeviceBitRes      = "SET_USB_TO_DEVICE_BIT_RES"
	CmdDeviceToUsbBitRes      = "SET_DEVICE_TO_USB_BIT_RES"
	CmdUsbStartStatus         = "SET_USB_START_STATUS"
	CmdI2sRate                = "SET_I2S_RATE"
	CmdI2sStartStatus         = "SET_I2S_START_STATUS"
)

// ReadCommandPrefix marks device read commands, which have no meaning in a replay log.
const ReadCommandPrefix = "GET_"

// Barrier describes a command that completes a boot phase.
type Barrier struct {
	// From lists the states the barrier may be issued in.
	From []State
	// To is the state reached once the barrier is issued.
	To State
}

// Barriers is the transition table: barrier command -> legal predecessors and next state.
var Barriers = map[string]Barrier{
	CmdMicStartStatus:  {From: []State{StateInit}, To: StateMicCompleted},
	CmdUsbSerialNumber: {From: []State{StateMicCompleted}, To: StateSerialCompleted},
	CmdUsbStartStatus:  {From: []State{StateSerialCompleted}, To: StateUsbCompleted},
	CmdI2sStartStatus:  {From: []State{StateMicCompleted, StateUsbCompleted}, To: StateI2sCompleted},
}

// Gates maps each ordered command to the phase it belongs to. The command is legal
// only while the current state ranks strictly below its gate.
var Gates = map[string]State{
	CmdMclkInToPdmClkDivider:  StateMicCompleted,
	CmdSysClkToMclkOutDivider: StateMicCompleted,
	CmdMicStartStatus:         StateMicCompleted,
	CmdUsbSerialNumber:        StateSerialCompleted,
	CmdUsbVendorID:            StateUsbCompleted,
	CmdUsbProductID:           StateUsbCompleted,
	CmdUsbBcdDevice:           StateUsbCompleted,
	CmdUsbVendorString:        StateUsbCompleted,
	CmdUsbProductString:       StateUsbCompleted,
	CmdUsbToDeviceRate:        StateUsbCompleted,
	CmdDeviceToUsbRate:        StateUsbCompleted,
	CmdUsbToDeviceBitRes:      StateUsbCompleted,
	CmdDeviceToUsbBitRes:      StateUsbCompleted,
	CmdUsbStartStatus:         StateUsbCompleted,
	CmdI2sRate:                StateI2sCompleted,
	CmdI2sStartStatus:         StateI2sCompleted,
}
