package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/genwave/genwave/internal/clock"
	"github.com/genwave/genwave/runtime/wave"
	"github.com/genwave/genwave/service/event"
	"github.com/genwave/genwave/service/ledger"
	"github.com/genwave/genwave/service/tracker"
	"github.com/genwave/genwave/service/worker"
	"github.com/genwave/genwave/tracing"
)

// Config represents scheduler configuration.
type Config struct {
	// MaxConcurrency bounds how many worker calls run at once. Requested
	// per-wave concurrency is capped to this value regardless of wave size.
	MaxConcurrency int
}

// DefaultConfig returns the default scheduler configuration.
func DefaultConfig() Config {
	return Config{MaxConcurrency: 5}
}

// WaveError reports an error that escaped batch orchestration itself, as
// opposed to an individual assignment failure which is absorbed into its
// result. Results gathered before the failure are attached.
type WaveError struct {
	WaveID  string
	Results []wave.Result
	Err     error
}

func (e *WaveError) Error() string {
	return fmt.Sprintf("wave %s execution failed after %d results: %v", e.WaveID, len(e.Results), e.Err)
}

func (e *WaveError) Unwrap() error {
	return e.Err
}

// Service executes planned waves: it reserves the wave's context budget,
// dispatches assignments in consecutive bounded batches, and collects
// results with per-assignment failure isolation.
//
// All scheduler-owned state (ledger, tracker) is mutated only by the
// coordinating flow; worker goroutines report back over a channel and the
// coordinator applies the resulting transitions.
type Service struct {
	config  Config
	ledger  *ledger.Service
	worker  worker.Executor
	tracker *tracker.Service
}

// Option customises the scheduler service.
type Option func(*Service)

// WithConfig overrides the configuration.
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithLedger sets the context ledger (required).
func WithLedger(l *ledger.Service) Option {
	return func(s *Service) {
		s.ledger = l
	}
}

// WithWorker sets the worker execution port (required).
func WithWorker(w worker.Executor) Option {
	return func(s *Service) {
		s.worker = w
	}
}

// WithTracker sets the lifecycle tracker; a private one is created when the
// caller does not supply any.
func WithTracker(t *tracker.Service) Option {
	return func(s *Service) {
		s.tracker = t
	}
}

// New creates a new scheduler service.
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(s)
	}
	if s.worker == nil {
		return nil, fmt.Errorf("worker executor is required")
	}
	if s.ledger == nil {
		return nil, fmt.Errorf("ledger is required")
	}
	if s.tracker == nil {
		s.tracker = tracker.New()
	}
	if s.config.MaxConcurrency <= 0 {
		s.config.MaxConcurrency = DefaultConfig().MaxConcurrency
	}
	return s, nil
}

// Tracker exposes the lifecycle tracker for observers.
func (s *Service) Tracker() *tracker.Service {
	return s.tracker
}

// settlement is what a worker goroutine reports back to the coordinator.
type settlement struct {
	index    int
	outcome  *wave.Outcome
	err      error
	elapsed  time.Duration
	panicked any
}

// Execute runs a planned wave to completion and returns one result per
// assignment, in assignment order.
//
// The ledger reservation is released on every exit path; release is
// idempotent so a wave that failed before completing its bookkeeping does
// not corrupt the accounting.
func (s *Service) Execute(ctx context.Context, w *wave.Wave) (results []wave.Result, err error) {
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("scheduler.Execute %s", w.ID))
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{
		"wave.id":          w.ID,
		"wave.assignments": strconv.Itoa(len(w.Assignments)),
	})

	if status := w.GetStatus(); status != wave.StatusPlanned {
		return nil, fmt.Errorf("wave %s is %s, want %s", w.ID, status, wave.StatusPlanned)
	}

	// A failed reservation means the wave never starts.
	if err = s.ledger.Reserve(w.ID, w.ContextBudget); err != nil {
		return nil, fmt.Errorf("cannot start wave %s: %w", w.ID, err)
	}
	defer s.ledger.Release(w.ID)

	w.Begin()
	s.publishWaveEvent(ctx, w, event.TypeWaveStarted)
	for _, assignment := range w.Assignments {
		s.tracker.Begin(assignment)
	}

	concurrency := s.effectiveConcurrency(w)
	results = make([]wave.Result, 0, len(w.Assignments))

	for start := 0; start < len(w.Assignments); start += concurrency {
		// Batch N+1 is dispatched only after batch N has fully settled.
		if ctxErr := ctx.Err(); ctxErr != nil {
			w.Fail(results)
			s.publishWaveEvent(ctx, w, event.TypeWaveFailed)
			err = &WaveError{WaveID: w.ID, Results: results, Err: ctxErr}
			return results, err
		}
		end := start + concurrency
		if end > len(w.Assignments) {
			end = len(w.Assignments)
		}
		batchResults, batchErr := s.runBatch(ctx, w, start, w.Assignments[start:end])
		results = append(results, batchResults...)
		if batchErr != nil {
			w.Fail(results)
			s.publishWaveEvent(ctx, w, event.TypeWaveFailed)
			err = &WaveError{WaveID: w.ID, Results: results, Err: batchErr}
			return results, err
		}
	}

	w.Complete(results)
	s.publishWaveEvent(ctx, w, event.TypeWaveCompleted)
	return results, nil
}

// effectiveConcurrency resolves the wave's requested concurrency against the
// configured hard cap.
func (s *Service) effectiveConcurrency(w *wave.Wave) int {
	concurrency := w.MaxConcurrency
	if concurrency <= 0 || concurrency > s.config.MaxConcurrency {
		concurrency = s.config.MaxConcurrency
	}
	return concurrency
}

// runBatch dispatches every assignment of the batch concurrently, waits for
// all of them to settle, and zips results back by position rather than by
// arrival. One assignment's failure does not cancel its batch-mates; a panic
// escaping a worker call is a batch-level failure.
func (s *Service) runBatch(ctx context.Context, w *wave.Wave, offset int, batch []*wave.Assignment) ([]wave.Result, error) {
	settlements := make(chan settlement, len(batch))
	for i, assignment := range batch {
		s.tracker.Transition(assignment.AgentID, tracker.StateStarting, "dispatching worker")
		s.tracker.Transition(assignment.AgentID, tracker.StateInProgress, "worker running")
		go func(index int, assignment *wave.Assignment) {
			started := clock.Now()
			defer func() {
				if r := recover(); r != nil {
					settlements <- settlement{index: index, panicked: r, elapsed: clock.Now().Sub(started)}
				}
			}()
			outcome, runErr := s.worker.Run(ctx, assignment, w)
			settlements <- settlement{index: index, outcome: outcome, err: runErr, elapsed: clock.Now().Sub(started)}
		}(i, assignment)
	}

	settled := make([]*settlement, len(batch))
	for range batch {
		settle := <-settlements
		settled[settle.index] = &settle
	}

	var batchErr error
	results := make([]wave.Result, 0, len(batch))
	for i, assignment := range batch {
		settle := settled[i]
		if settle.panicked != nil {
			batchErr = fmt.Errorf("worker panicked on agent %s: %v", assignment.AgentID, settle.panicked)
			s.tracker.Finish(wave.NewFailedResult(assignment, batchErr, settle.elapsed))
			log.Printf("wave %s batch %d: %v", w.ID, offset, batchErr)
			continue
		}
		s.tracker.Transition(assignment.AgentID, tracker.StateCompleting, "recording result")
		var result wave.Result
		if settle.err != nil {
			result = wave.NewFailedResult(assignment, settle.err, settle.elapsed)
			s.publishAssignmentEvent(ctx, w, result, event.TypeAssignmentFailed)
		} else {
			result = wave.NewResult(assignment, settle.outcome, settle.elapsed)
			s.publishAssignmentEvent(ctx, w, result, event.TypeAssignmentCompleted)
		}
		s.tracker.Finish(result)
		results = append(results, result)
	}
	return results, batchErr
}

func (s *Service) publishWaveEvent(ctx context.Context, w *wave.Wave, eventType string) {
	service := event.FromContext(ctx)
	if service == nil {
		return
	}
	publisher := event.PublisherOf[wave.Result](service)
	eCtx := &event.Context{WaveID: w.ID, EventType: eventType}
	if err := publisher.Publish(ctx, event.NewEvent(eCtx, wave.Result{})); err != nil {
		log.Printf("failed to publish %s event: %v", eventType, err)
	}
}

func (s *Service) publishAssignmentEvent(ctx context.Context, w *wave.Wave, result wave.Result, eventType string) {
	service := event.FromContext(ctx)
	if service == nil {
		return
	}
	publisher := event.PublisherOf[wave.Result](service)
	eCtx := &event.Context{WaveID: w.ID, AgentID: result.AgentID, EventType: eventType}
	if err := publisher.Publish(ctx, event.NewEvent(eCtx, result)); err != nil {
		log.Printf("failed to publish %s event: %v", eventType, err)
	}
}
