// Package memory provides an in-process worker used by tests, examples and
// as a drop-in while a real generation capability is being wired.
package memory

import (
	"context"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/genwave/genwave/runtime/wave"
)

// Handler computes the outcome for one assignment.
type Handler func(ctx context.Context, assignment *wave.Assignment, w *wave.Wave) (*wave.Outcome, error)

// Service is a scripted in-memory worker. Without a custom handler it writes
// nothing and reports a deterministic outcome derived from the assignment,
// which is enough for scheduling and accounting tests.
type Service struct {
	handler Handler
	delay   time.Duration

	mu    sync.Mutex
	calls []string
}

// Option customises the service.
type Option func(*Service)

// WithHandler installs a custom outcome handler.
func WithHandler(handler Handler) Option {
	return func(s *Service) {
		s.handler = handler
	}
}

// WithDelay makes every call take at least the given duration.
func WithDelay(delay time.Duration) Option {
	return func(s *Service) {
		s.delay = delay
	}
}

// New creates a new in-memory worker.
func New(options ...Option) *Service {
	s := &Service{}
	for _, option := range options {
		option(s)
	}
	return s
}

// Run implements worker.Executor.
func (s *Service) Run(ctx context.Context, assignment *wave.Assignment, w *wave.Wave) (*wave.Outcome, error) {
	s.mu.Lock()
	s.calls = append(s.calls, assignment.AgentID)
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.handler != nil {
		return s.handler(ctx, assignment, w)
	}
	return &wave.Outcome{
		Location:        path.Join(assignment.Context.OutputDir, fmt.Sprintf("iteration-%d", assignment.Iteration)),
		QualityScore:    80,
		UniquenessScore: 80,
	}, nil
}

// Calls returns the agent ids dispatched so far, in arrival order.
func (s *Service) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}
