package tracker

import (
	"sync"
	"time"

	"github.com/genwave/genwave/internal/clock"
	"github.com/genwave/genwave/runtime/wave"
)

// AgentState represents the current State of one assignment's agent
type AgentState string

const (
	StateAssigned   AgentState = "assigned"
	StateStarting   AgentState = "starting"
	StateInProgress AgentState = "inProgress"
	StateCompleting AgentState = "completing"
	StateCompleted  AgentState = "completed"
	StateFailed     AgentState = "failed"
)

// checkpointProgress maps each lifecycle checkpoint to its progress
// percentage. Progress is monotonically non-decreasing; a transition never
// lowers the recorded value.
var checkpointProgress = map[AgentState]int{
	StateAssigned:   0,
	StateStarting:   5,
	StateInProgress: 20,
	StateCompleting: 90,
	StateCompleted:  100,
	StateFailed:     100,
}

// AgentStatus is the live view of one in-flight assignment.
type AgentStatus struct {
	AgentID    string     `json:"agentId"`
	Iteration  int        `json:"iteration"`
	State      AgentState `json:"state"`
	Progress   int        `json:"progress"`
	Note       string     `json:"note,omitempty"`
	StartedAt  time.Time  `json:"startedAt"`
	LastUpdate time.Time  `json:"lastUpdate"`
}

// Metrics aggregates tracker counters. MeanProgress is 100 when nothing is
// in flight and MeanCompletionSeconds is 0 when nothing has finished, by
// convention.
type Metrics struct {
	Active                int     `json:"active"`
	Completed             int     `json:"completed"`
	Failed                int     `json:"failed"`
	MeanProgress          float64 `json:"meanProgress"`
	MeanCompletionSeconds float64 `json:"meanCompletionSeconds"`
}

// Service is the per-wave agent lifecycle registry: explicit state owned by
// one coordinator instance and passed by handle, never an ambient singleton.
// It is purely observational bookkeeping and gates no scheduling decision.
type Service struct {
	mu        sync.RWMutex
	active    map[string]*AgentStatus
	completed []wave.Result
	failed    int
}

// New creates an empty tracker.
func New() *Service {
	return &Service{active: make(map[string]*AgentStatus)}
}

// Begin registers an assignment in the assigned state.
func (s *Service) Begin(assignment *wave.Assignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := clock.Now()
	s.active[assignment.AgentID] = &AgentStatus{
		AgentID:    assignment.AgentID,
		Iteration:  assignment.Iteration,
		State:      StateAssigned,
		Progress:   checkpointProgress[StateAssigned],
		StartedAt:  now,
		LastUpdate: now,
	}
}

// Transition moves an in-flight agent to the given checkpoint, refreshing
// lastUpdate and raising (never lowering) its progress percentage.
func (s *Service) Transition(agentID string, state AgentState, note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.active[agentID]
	if !ok {
		return
	}
	status.State = state
	if progress := checkpointProgress[state]; progress > status.Progress {
		status.Progress = progress
	}
	status.Note = note
	status.LastUpdate = clock.Now()
}

// Finish moves an agent from the in-flight registry to the completed list.
func (s *Service) Finish(result wave.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, result.AgentID)
	s.completed = append(s.completed, result)
	if !result.Success {
		s.failed++
	}
}

// Statuses returns a snapshot of all in-flight assignments.
func (s *Service) Statuses() []AgentStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]AgentStatus, 0, len(s.active))
	for _, status := range s.active {
		out = append(out, *status)
	}
	return out
}

// Completed returns a snapshot of finished results.
func (s *Service) Completed() []wave.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]wave.Result(nil), s.completed...)
}

// AllComplete reports whether no assignment remains in flight.
func (s *Service) AllComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.active) == 0
}

// Metrics returns aggregate counters over in-flight and finished agents.
func (s *Service) Metrics() Metrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metrics := Metrics{
		Active:    len(s.active),
		Completed: len(s.completed) - s.failed,
		Failed:    s.failed,
	}

	if len(s.active) == 0 {
		metrics.MeanProgress = 100
	} else {
		total := 0
		for _, status := range s.active {
			total += status.Progress
		}
		metrics.MeanProgress = float64(total) / float64(len(s.active))
	}

	if len(s.completed) > 0 {
		var total time.Duration
		for _, result := range s.completed {
			total += result.Elapsed
		}
		metrics.MeanCompletionSeconds = total.Seconds() / float64(len(s.completed))
	}
	return metrics
}
