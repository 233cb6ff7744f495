package wave

import (
	"sync"
	"time"

	"github.com/genwave/genwave/internal/clock"
	"github.com/genwave/genwave/model"
)

// Status represents the current Status of a wave
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "inProgress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Wave is one batch-scheduled round of concurrent generation assignments
// sharing a context budget. Results are populated if and only if the wave
// reached a terminal status.
type Wave struct {
	ID             string        `json:"id"`
	Level          int           `json:"level"`
	Assignments    []*Assignment `json:"assignments"`
	MaxConcurrency int           `json:"maxConcurrency"`

	// ContextBudget is the ledger reservation this wave holds while running.
	ContextBudget     int           `json:"contextBudget"`
	EstimatedDuration time.Duration `json:"estimatedDuration,omitempty"`

	Status      Status     `json:"status"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Results     []Result   `json:"results,omitempty"`

	mu sync.RWMutex
}

// Plan bundles a fully populated, not-yet-running wave with the level it was
// planned against.
type Plan struct {
	Wave  *Wave                     `json:"wave"`
	Level model.SophisticationLevel `json:"level"`
}

// New creates a planned wave.
func New(id string, level int, assignments []*Assignment, maxConcurrency int) *Wave {
	return &Wave{
		ID:             id,
		Level:          level,
		Assignments:    assignments,
		MaxConcurrency: maxConcurrency,
		Status:         StatusPlanned,
	}
}

// Begin transitions the wave to inProgress and stamps the start time.
func (w *Wave) Begin() {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := clock.Now()
	w.StartedAt = &now
	w.Status = StatusInProgress
}

// Complete marks the wave completed and attaches its results.
func (w *Wave) Complete(results []Result) {
	w.finish(StatusCompleted, results)
}

// Fail marks the wave failed, keeping whatever results had been gathered.
func (w *Wave) Fail(results []Result) {
	w.finish(StatusFailed, results)
}

// Cancel marks the wave cancelled before completion.
func (w *Wave) Cancel(results []Result) {
	w.finish(StatusCancelled, results)
}

func (w *Wave) finish(status Status, results []Result) {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := clock.Now()
	w.CompletedAt = &now
	w.Status = status
	w.Results = results
}

// GetStatus returns the wave status.
func (w *Wave) GetStatus() Status {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.Status
}

// Elapsed returns the wall time between start and completion, zero when the
// wave has not finished.
func (w *Wave) Elapsed() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.StartedAt == nil || w.CompletedAt == nil {
		return 0
	}
	return w.CompletedAt.Sub(*w.StartedAt)
}
