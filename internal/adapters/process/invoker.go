// Package process runs the companion host apps as subprocesses.
package process

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/example/dpgen/internal/ports/secondary"
)

// Invoker implements secondary.Invoker with os/exec.
type Invoker struct {
	// Dir is the working directory for every run; empty means the current directory.
	Dir string
}

// NewInvoker creates a new process invoker.
func NewInvoker(dir string) *Invoker {
	return &Invoker{Dir: dir}
}

// Invoke runs name with args, waits for it and captures combined output.
func (i *Invoker) Invoke(ctx context.Context, name string, args ...string) (*secondary.InvokeResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = i.Dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &secondary.InvokeResult{ExitCode: exitErr.ExitCode(), Output: string(output)}, nil
		}
		return nil, fmt.Errorf("failed to run %s: %w", name, err)
	}

	return &secondary.InvokeResult{ExitCode: 0, Output: string(output)}, nil
}

var _ secondary.Invoker = (*Invoker)(nil)
