// Package secondary defines the secondary ports (driven adapters) for the application.
package secondary

import "context"

// InvokeResult is the outcome of one external tool run.
type InvokeResult struct {
	ExitCode int
	// Output is stdout and stderr combined, in the order written.
	Output string
}

// Invoker defines the secondary port for running the companion host apps.
// Implementations block until the process exits. A non-zero exit is reported through
// ExitCode, not as an error; the error is reserved for failing to run at all.
type Invoker interface {
	Invoke(ctx context.Context, name string, args ...string) (*InvokeResult, error)
}
