// Package worker defines the execution port the scheduler dispatches
// assignments through. The port is an opaque asynchronous call: the core
// performs no retry of its own, and score fields are an external contract
// supplied by whatever evaluator backs the implementation.
package worker

import (
	"context"
	"fmt"

	"github.com/genwave/genwave/runtime/wave"
)

// Executor runs one assignment and reports where the output landed together
// with its evaluation scores.
type Executor interface {
	Run(ctx context.Context, assignment *wave.Assignment, w *wave.Wave) (*wave.Outcome, error)
}

// ExecutionError wraps a single failed worker call. The scheduler absorbs it
// into the assignment's result; it never aborts the wave.
type ExecutionError struct {
	AgentID string
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("agent %s execution failed: %v", e.AgentID, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
