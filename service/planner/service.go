package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/genwave/genwave/internal/idgen"
	"github.com/genwave/genwave/model"
	"github.com/genwave/genwave/runtime/wave"
)

// Config represents planner configuration. The estimate factors implement a
// deliberately simple linear cost model; they are tunable policy, not a
// physical measurement.
type Config struct {
	// DefaultBatchSize is the wave size used by BATCH mode when the caller
	// does not set one, and by every INFINITE-mode wave.
	DefaultBatchSize int

	// BaseUnitContext is the context cost of one rank-1 assignment.
	BaseUnitContext int

	// BaseUnitSeconds is the duration of one rank-1 assignment.
	BaseUnitSeconds int

	// MaxConcurrency caps how many assignments of a wave run at once.
	MaxConcurrency int
}

// DefaultConfig returns the default planner configuration.
func DefaultConfig() Config {
	return Config{
		DefaultBatchSize: 5,
		BaseUnitContext:  5000,
		BaseUnitSeconds:  120,
		MaxConcurrency:   5,
	}
}

// Service produces wave plans: sets of non-duplicating task assignments
// sized by the execution mode and priced against the sophistication level.
// Plan mutates no global state.
type Service struct {
	config Config
}

// Option customises the planner.
type Option func(*Service)

// WithConfig overrides the whole configuration.
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// New creates a new planner service.
func New(options ...Option) *Service {
	s := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(s)
	}
	return s
}

// Plan turns a specification, execution mode and prior-work history into a
// planned wave for the given sophistication level.
func (s *Service) Plan(ctx context.Context, spec *model.Specification, mode model.Mode, history model.History, level model.SophisticationLevel, outputDir string) (*wave.Plan, error) {
	if spec == nil {
		return nil, fmt.Errorf("specification cannot be nil")
	}
	if len(spec.Dimensions) == 0 {
		return nil, fmt.Errorf("specification %s has no innovation dimensions", spec.Name)
	}

	size := s.waveSize(mode, len(history))
	if size <= 0 {
		return nil, fmt.Errorf("mode %s with count %d leaves nothing to plan", mode.Type, mode.Count)
	}

	waveID := fmt.Sprintf("wave-%s", idgen.New())
	assignments := make([]*wave.Assignment, 0, size)

	used := history.UsedDimensions()
	nextIteration := history.NextNumber()
	for i := 0; i < size; i++ {
		focus := s.pickDimension(spec.Dimensions, used, i)
		// Marking the dimension used immediately keeps assignments of the
		// same wave from colliding.
		used[focus] = true

		assignment := wave.NewAssignment(waveID, nextIteration+i, focus)
		assignment.Context = s.taskContext(spec, history, level, outputDir)
		assignment.Context.FailureHandling = mode.FailureHandling
		assignment.Standards = standards(spec, level, focus)
		assignments = append(assignments, assignment)
	}

	w := wave.New(waveID, level.Rank, assignments, s.config.MaxConcurrency)
	w.ContextBudget = s.estimateContext(size, level)
	w.EstimatedDuration = s.estimateDuration(level)
	return &wave.Plan{Wave: w, Level: level}, nil
}

// waveSize applies the mode sizing rules. INFINITE returns a fixed batch per
// call; looping waves is the orchestrator's job, not the planner's.
func (s *Service) waveSize(mode model.Mode, existing int) int {
	batch := mode.BatchSize
	if batch <= 0 {
		batch = s.config.DefaultBatchSize
	}
	switch mode.Type {
	case model.ModeSingle:
		return 1
	case model.ModeBatch:
		remaining := mode.Count - existing
		if remaining < batch {
			return remaining
		}
		return batch
	case model.ModeInfinite:
		return batch
	default:
		return 0
	}
}

// pickDimension rotates through the dimensions not yet present in history.
// Once every dimension has been explored the unfiltered list is used again,
// so dimensions repeat across waves after exhaustion.
func (s *Service) pickDimension(dimensions []string, used map[string]bool, i int) string {
	available := make([]string, 0, len(dimensions))
	for _, dimension := range dimensions {
		if !used[dimension] {
			available = append(available, dimension)
		}
	}
	if len(available) == 0 {
		available = dimensions
	}
	return available[i%len(available)]
}

func (s *Service) taskContext(spec *model.Specification, history model.History, level model.SophisticationLevel, outputDir string) wave.TaskContext {
	return wave.TaskContext{
		SpecSummary:   spec.Summary(),
		ExistingWork:  history.Summary(10),
		DomainContext: fmt.Sprintf("domain %s, output format %s", spec.Domain, spec.Output.Format),
		Goal:          fmt.Sprintf("produce one %s iteration at level %d (%s)", spec.Output.Format, level.Rank, level.Name),
		OutputDir:     outputDir,
	}
}

func (s *Service) estimateContext(size int, level model.SophisticationLevel) int {
	return int(float64(size*s.config.BaseUnitContext) * float64(level.Rank) * 1.5)
}

func (s *Service) estimateDuration(level model.SophisticationLevel) time.Duration {
	seconds := float64(s.config.BaseUnitSeconds) * float64(level.Rank) * 1.3
	return time.Duration(seconds * float64(time.Second))
}
