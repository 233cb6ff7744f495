package ledger

import (
	"errors"
	"fmt"
	"sync"
)

// ErrCapacityExceeded is returned when a reservation would overrun the total
// context capacity. Reservations never partially apply.
var ErrCapacityExceeded = errors.New("ledger: capacity exceeded")

// Service tracks the context budget shared by concurrently active waves.
// Each wave holds at most one reservation, keyed by wave id, taken at wave
// start and released exactly once at wave end. The scheduler mutates the
// ledger only from its coordinating flow; the internal lock additionally
// keeps snapshots safe for concurrent readers.
type Service struct {
	mu           sync.RWMutex
	total        int
	used         int
	reservations map[string]int
}

// Status is a point-in-time snapshot of ledger accounting.
type Status struct {
	Total       int     `json:"total"`
	Used        int     `json:"used"`
	Remaining   int     `json:"remaining"`
	Utilization float64 `json:"utilization"`
}

// New creates a ledger with the given total capacity.
func New(totalCapacity int) *Service {
	return &Service{
		total:        totalCapacity,
		reservations: make(map[string]int),
	}
}

// Reserve records a wave's allocation. It fails with ErrCapacityExceeded when
// used+amount would overrun the total; on failure nothing is applied.
func (s *Service) Reserve(waveID string, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-reserving the same wave replaces its allocation, so the capacity
	// check counts the replacement, not both.
	previous := s.reservations[waveID]
	if s.used-previous+amount > s.total {
		return fmt.Errorf("%w: wave %s requested %d, %d of %d in use",
			ErrCapacityExceeded, waveID, amount, s.used-previous, s.total)
	}
	s.reservations[waveID] = amount
	s.used += amount - previous
	return nil
}

// Release removes a wave's reservation. It is idempotent: releasing an
// unknown or already-released wave id is a no-op.
func (s *Service) Release(waveID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	amount, ok := s.reservations[waveID]
	if !ok {
		return
	}
	delete(s.reservations, waveID)
	s.used -= amount
}

// Status returns a snapshot of current accounting.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status := Status{
		Total:     s.total,
		Used:      s.used,
		Remaining: s.total - s.used,
	}
	if s.total > 0 {
		status.Utilization = float64(s.used) / float64(s.total)
	}
	return status
}

// IsOverThreshold reports whether used/total has reached the given fraction.
// The orchestrator uses it to decide graceful shutdown before planning
// another wave.
func (s *Service) IsOverThreshold(fraction float64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.total == 0 {
		return true
	}
	return float64(s.used)/float64(s.total) >= fraction
}

// Reservation returns the amount currently held for a wave, zero when none.
func (s *Service) Reservation(waveID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reservations[waveID]
}
