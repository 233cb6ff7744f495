package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/genwave/genwave/internal/clock"
	"github.com/genwave/genwave/internal/idgen"
	"github.com/genwave/genwave/model"
	"github.com/genwave/genwave/runtime/wave"
	"github.com/genwave/genwave/service/dao/history"
	historymem "github.com/genwave/genwave/service/dao/history/memory"
	"github.com/genwave/genwave/service/ledger"
	"github.com/genwave/genwave/service/planner"
	"github.com/genwave/genwave/service/scheduler"
	"github.com/genwave/genwave/tracing"
)

// Config represents orchestrator configuration.
type Config struct {
	// LedgerThreshold is the utilisation fraction at which INFINITE mode
	// stops starting new waves.
	LedgerThreshold float64
}

// DefaultConfig returns the default orchestrator configuration.
func DefaultConfig() Config {
	return Config{LedgerThreshold: 0.8}
}

// Error reports a run that stopped before reaching its goal. Work completed
// before the failure is preserved on the attached output.
type Error struct {
	Output *Output
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("orchestration stopped after %d waves: %v", len(e.Output.Waves), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StopReason explains why a run finished.
type StopReason string

const (
	// StopGoalReached means the mode's iteration goal was met.
	StopGoalReached StopReason = "goalReached"
	// StopBudgetThreshold means the ledger crossed the configured threshold.
	StopBudgetThreshold StopReason = "budgetThreshold"
)

// Output is the aggregate outcome of one orchestration run.
type Output struct {
	SpecID     string        `json:"specId"`
	Mode       model.Mode    `json:"mode"`
	OutputDir  string        `json:"outputDir"`
	Waves      []*wave.Wave  `json:"waves"`
	Results    []wave.Result `json:"results"`
	History    model.History `json:"history"`
	StopReason StopReason    `json:"stopReason,omitempty"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Succeeded counts successful results.
func (o *Output) Succeeded() int {
	count := 0
	for _, result := range o.Results {
		if result.Success {
			count++
		}
	}
	return count
}

// Service drives a full run: it loads prior-work history, plans waves at
// climbing sophistication levels, hands them to the scheduler and records
// successful iterations back into history between waves.
type Service struct {
	config    Config
	planner   *planner.Service
	scheduler *scheduler.Service
	ledger    *ledger.Service
	history   history.Store
}

// Option customises the orchestrator.
type Option func(*Service)

// WithConfig overrides the configuration.
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithPlanner sets the wave planner; defaults to a planner with default
// configuration.
func WithPlanner(p *planner.Service) Option {
	return func(s *Service) {
		s.planner = p
	}
}

// WithScheduler sets the wave scheduler (required).
func WithScheduler(sch *scheduler.Service) Option {
	return func(s *Service) {
		s.scheduler = sch
	}
}

// WithLedger sets the shared context ledger (required).
func WithLedger(l *ledger.Service) Option {
	return func(s *Service) {
		s.ledger = l
	}
}

// WithHistoryStore sets the history store; defaults to in-memory.
func WithHistoryStore(store history.Store) Option {
	return func(s *Service) {
		s.history = store
	}
}

// New creates a new orchestrator service.
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(s)
	}
	if s.scheduler == nil {
		return nil, fmt.Errorf("scheduler is required")
	}
	if s.ledger == nil {
		return nil, fmt.Errorf("ledger is required")
	}
	if s.planner == nil {
		s.planner = planner.New()
	}
	if s.history == nil {
		s.history = historymem.New()
	}
	if s.config.LedgerThreshold <= 0 {
		s.config.LedgerThreshold = DefaultConfig().LedgerThreshold
	}
	return s, nil
}

// Run executes waves until the mode's goal is reached, the context budget
// threshold is crossed (INFINITE), or an error escapes wave orchestration.
// A failed assignment never aborts the run; its iteration is simply not
// recorded and the dimension it held becomes available again.
func (s *Service) Run(ctx context.Context, spec *model.Specification, mode model.Mode, outputDir string) (output *Output, err error) {
	ctx, span := tracing.StartSpan(ctx, "orchestrator.Run")
	defer func() { tracing.EndSpan(span, err) }()

	if spec == nil {
		return nil, fmt.Errorf("specification cannot be nil")
	}
	if len(spec.Levels) == 0 {
		return nil, fmt.Errorf("specification %s has no sophistication levels", spec.Name)
	}
	if outputDir == "" {
		return nil, fmt.Errorf("output directory cannot be empty")
	}
	span.WithAttributes(map[string]string{
		"spec.id":   spec.ID,
		"mode.type": string(mode.Type),
	})

	prior, err := s.history.Load(ctx, outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for %s: %w", outputDir, err)
	}
	if err = prior.Validate(); err != nil {
		return nil, fmt.Errorf("invalid history for %s: %w", outputDir, err)
	}

	started := clock.Now()
	output = &Output{
		SpecID:    spec.ID,
		Mode:      mode,
		OutputDir: outputDir,
		History:   prior,
	}

	// Wave reservations are released as each wave ends, so the run keeps its
	// own growing reservation of everything consumed so far. Without it the
	// ledger would read empty between waves and INFINITE mode would never
	// reach its threshold.
	runID := fmt.Sprintf("run-%s", idgen.New())
	consumed := 0
	defer s.ledger.Release(runID)

	for waveIndex := 0; ; waveIndex++ {
		if done, reason := s.shouldStop(mode, waveIndex, output); done {
			output.StopReason = reason
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			output.Elapsed = clock.Now().Sub(started)
			err = &Error{Output: output, Err: ctxErr}
			return output, err
		}

		// Each wave climbs one sophistication level; past the last defined
		// level the run stays there.
		level := spec.Level(waveIndex + 1)
		plan, planErr := s.planner.Plan(ctx, spec, mode, output.History, level, outputDir)
		if planErr != nil {
			output.Elapsed = clock.Now().Sub(started)
			err = &Error{Output: output, Err: planErr}
			return output, err
		}

		results, execErr := s.scheduler.Execute(ctx, plan.Wave)
		output.Waves = append(output.Waves, plan.Wave)
		output.Results = append(output.Results, results...)
		if recordErr := s.recordSuccesses(ctx, output, results, plan.Wave); recordErr != nil {
			output.Elapsed = clock.Now().Sub(started)
			err = &Error{Output: output, Err: recordErr}
			return output, err
		}
		if execErr != nil {
			if mode.Type == model.ModeInfinite && errors.Is(execErr, ledger.ErrCapacityExceeded) {
				output.StopReason = StopBudgetThreshold
				break
			}
			output.Elapsed = clock.Now().Sub(started)
			err = &Error{Output: output, Err: execErr}
			return output, err
		}

		consumed += plan.Wave.ContextBudget
		if reserveErr := s.ledger.Reserve(runID, consumed); reserveErr != nil {
			// the budget is spent; stop starting waves but keep the work
			output.StopReason = StopBudgetThreshold
			break
		}
		log.Printf("wave %s finished: %d/%d succeeded, ledger %.0f%% used",
			plan.Wave.ID, succeededOf(results), len(results), s.ledger.Status().Utilization*100)
	}

	output.Elapsed = clock.Now().Sub(started)
	span.WithAttributes(map[string]string{
		"waves":     strconv.Itoa(len(output.Waves)),
		"succeeded": strconv.Itoa(output.Succeeded()),
	})
	return output, nil
}

// shouldStop applies the per-mode termination rules before each wave.
func (s *Service) shouldStop(mode model.Mode, waveIndex int, output *Output) (bool, StopReason) {
	switch mode.Type {
	case model.ModeSingle:
		if waveIndex >= 1 {
			return true, StopGoalReached
		}
	case model.ModeBatch:
		if len(output.History) >= mode.Count {
			return true, StopGoalReached
		}
	case model.ModeInfinite:
		if s.ledger.IsOverThreshold(s.config.LedgerThreshold) {
			return true, StopBudgetThreshold
		}
	}
	return false, ""
}

// recordSuccesses appends one history record per successful result,
// renumbered to keep history gap-free when some assignments of the wave
// failed.
func (s *Service) recordSuccesses(ctx context.Context, output *Output, results []wave.Result, w *wave.Wave) error {
	byAgent := make(map[string]*wave.Assignment, len(w.Assignments))
	for _, assignment := range w.Assignments {
		byAgent[assignment.AgentID] = assignment
	}
	records := make([]model.IterationRecord, 0, len(results))
	next := output.History.NextNumber()
	for _, result := range results {
		if !result.Success {
			continue
		}
		record := model.IterationRecord{
			Number:          next,
			Location:        result.Location,
			QualityScore:    result.QualityScore,
			UniquenessScore: result.UniquenessScore,
		}
		if assignment := byAgent[result.AgentID]; assignment != nil {
			record.Summary = fmt.Sprintf("level %d, focus %s", w.Level, assignment.InnovationFocus)
			record.Dimensions = []string{assignment.InnovationFocus}
		}
		records = append(records, record)
		next++
	}
	if len(records) == 0 {
		return nil
	}
	if err := s.history.Append(ctx, output.OutputDir, records...); err != nil {
		return fmt.Errorf("failed to record iterations: %w", err)
	}
	output.History = append(output.History, records...)
	return nil
}

func succeededOf(results []wave.Result) int {
	count := 0
	for _, result := range results {
		if result.Success {
			count++
		}
	}
	return count
}
