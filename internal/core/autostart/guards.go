package autostart

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIllegalCommandOrder reports an autostart command issued out of sequence.
	ErrIllegalCommandOrder = errors.New("illegal autostart command order")

	// ErrReadCommand reports a read command in a replay log.
	ErrReadCommand = errors.New("read command cannot be added to data partition")
)

// OrderError is returned when a command is rejected by the guard.
type OrderError struct {
	Command string
	State   State
	Reason  string
	kind    error
}

func (e *OrderError) Error() string {
	return e.Reason
}

func (e *OrderError) Unwrap() error { return e.kind }

// GuardContext provides the context needed to check one command.
type GuardContext struct {
	Command string
	State   State
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
	// Next is the state after the command; equal to the input state for non-barriers.
	Next State
	err  error
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	kind := r.err
	if kind == nil {
		kind = ErrIllegalCommandOrder
	}
	return &OrderError{Reason: r.Reason, kind: kind}
}

// CanIssue evaluates whether a command may be issued in the current state.
// Rules:
//   - read commands are never allowed
//   - commands outside Gates pass through unchanged
//   - a gated command is allowed only while the state ranks below its gate
//   - a barrier is allowed only from one of its declared predecessor states
func CanIssue(ctx GuardContext) GuardResult {
	if strings.HasPrefix(ctx.Command, ReadCommandPrefix) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("Read command %s cannot be added to data partition", ctx.Command),
			Next:    ctx.State,
			err:     ErrReadCommand,
		}
	}

	gate, gated := Gates[ctx.Command]
	if !gated {
		return GuardResult{Allowed: true, Next: ctx.State}
	}

	if ctx.State.Rank() >= gate.Rank() {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s is issued in the wrong order: state %s already reached (must come before %s)", ctx.Command, ctx.State, gate),
			Next:    ctx.State,
		}
	}

	barrier, isBarrier := Barriers[ctx.Command]
	if !isBarrier {
		return GuardResult{Allowed: true, Next: ctx.State}
	}

	for _, from := range barrier.From {
		if ctx.State == from {
			return GuardResult{Allowed: true, Next: barrier.To}
		}
	}

	return GuardResult{
		Allowed: false,
		Reason:  fmt.Sprintf("%s must be issued %s (current state %s)", ctx.Command, predecessorHint(ctx.Command), ctx.State),
		Next:    ctx.State,
	}
}

// Advance applies a command to the state, returning the next state or an *OrderError.
func Advance(state State, command string) (State, error) {
	result := CanIssue(GuardContext{Command: command, State: state})
	if !result.Allowed {
		err := result.Error().(*OrderError)
		err.Command = command
		err.State = state
		return state, err
	}
	return result.Next, nil
}

// predecessorHint names the commands that must precede a barrier.
func predecessorHint(command string) string {
	switch command {
	case CmdMicStartStatus:
		return "as first autostart command"
	case CmdUsbSerialNumber:
		return "after " + CmdMicStartStatus
	case CmdUsbStartStatus:
		return "after " + CmdUsbSerialNumber
	case CmdI2sStartStatus:
		return "after either " + CmdMicStartStatus + " or " + CmdUsbStartStatus
	default:
		return "in a legal order"
	}
}
