package wave

import (
	"time"
)

// Outcome is what a worker reports back on success: where the output landed
// and how an external evaluator scored it. Score semantics are an external
// contract; the core only aggregates the values.
type Outcome struct {
	Location        string `json:"location"`
	QualityScore    int    `json:"qualityScore"`
	UniquenessScore int    `json:"uniquenessScore"`
}

// Result is the terminal record of one assignment. Elapsed is always set;
// Location and scores are meaningful only when Success is true, Error only
// when it is false.
type Result struct {
	AgentID         string        `json:"agentId"`
	Iteration       int           `json:"iteration"`
	Success         bool          `json:"success"`
	Location        string        `json:"location,omitempty"`
	QualityScore    int           `json:"qualityScore,omitempty"`
	UniquenessScore int           `json:"uniquenessScore,omitempty"`
	Error           string        `json:"error,omitempty"`
	Elapsed         time.Duration `json:"elapsed"`
}

// NewResult builds a success result from a worker outcome.
func NewResult(assignment *Assignment, outcome *Outcome, elapsed time.Duration) Result {
	return Result{
		AgentID:         assignment.AgentID,
		Iteration:       assignment.Iteration,
		Success:         true,
		Location:        outcome.Location,
		QualityScore:    outcome.QualityScore,
		UniquenessScore: outcome.UniquenessScore,
		Elapsed:         elapsed,
	}
}

// NewFailedResult builds a failure result; the error is recorded, never
// propagated past the assignment boundary.
func NewFailedResult(assignment *Assignment, err error, elapsed time.Duration) Result {
	result := Result{
		AgentID:   assignment.AgentID,
		Iteration: assignment.Iteration,
		Elapsed:   elapsed,
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}
