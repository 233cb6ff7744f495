package wave

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/genwave/genwave/internal/clock"
)

func TestWave_lifecycle(t *testing.T) {
	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	current := base
	clock.NowFunc = func() time.Time { return current }
	defer func() { clock.NowFunc = time.Now }()

	w := New("wave-1", 1, []*Assignment{NewAssignment("wave-1", 1, "motion")}, 5)
	assert.Equal(t, StatusPlanned, w.GetStatus())
	assert.False(t, w.GetStatus().IsTerminal())
	assert.Equal(t, time.Duration(0), w.Elapsed())

	w.Begin()
	assert.Equal(t, StatusInProgress, w.GetStatus())

	current = base.Add(90 * time.Second)
	results := []Result{{AgentID: w.Assignments[0].AgentID, Iteration: 1, Success: true}}
	w.Complete(results)
	assert.Equal(t, StatusCompleted, w.GetStatus())
	assert.True(t, w.GetStatus().IsTerminal())
	assert.Equal(t, 90*time.Second, w.Elapsed())
	assert.Equal(t, results, w.Results)
}

func TestWave_failKeepsResults(t *testing.T) {
	w := New("wave-1", 1, nil, 5)
	w.Begin()
	partial := []Result{{AgentID: "a", Iteration: 1, Success: true}}
	w.Fail(partial)
	assert.Equal(t, StatusFailed, w.GetStatus())
	assert.Equal(t, partial, w.Results)
}

func TestNewResult(t *testing.T) {
	assignment := NewAssignment("wave-1", 4, "typography")
	outcome := &Outcome{Location: "out/iteration-4", QualityScore: 85, UniquenessScore: 70}

	result := NewResult(assignment, outcome, 3*time.Second)
	assert.True(t, result.Success)
	assert.Equal(t, assignment.AgentID, result.AgentID)
	assert.Equal(t, 4, result.Iteration)
	assert.Equal(t, "out/iteration-4", result.Location)
	assert.Equal(t, 85, result.QualityScore)

	failed := NewFailedResult(assignment, errors.New("ran out of ideas"), time.Second)
	assert.False(t, failed.Success)
	assert.Contains(t, failed.Error, "ran out of ideas")
}
