package wave

import (
	"fmt"

	"github.com/genwave/genwave/internal/idgen"
	"github.com/genwave/genwave/model"
)

// Assignment is one worker's contract within a wave: a unique agent id, the
// iteration it produces, the innovation dimension it must focus on, and the
// context and standards bundles derived from the specification.
type Assignment struct {
	AgentID         string `json:"agentId"`
	Iteration       int    `json:"iteration"`
	InnovationFocus string `json:"innovationFocus"`

	Context   TaskContext      `json:"context"`
	Standards QualityStandards `json:"standards"`
}

// TaskContext is the briefing bundle handed to a worker.
type TaskContext struct {
	SpecSummary   string `json:"specSummary"`
	ExistingWork  string `json:"existingWork"`
	DomainContext string `json:"domainContext"`
	Goal          string `json:"goal"`
	OutputDir     string `json:"outputDir"`

	// FailureHandling is advisory metadata for the worker layer; the core
	// scheduler does not act on it.
	FailureHandling *model.FailureHandling `json:"failureHandling,omitempty"`
}

// QualityStandards groups the requirement lists an assignment must satisfy.
type QualityStandards struct {
	Functional     []string `json:"functional,omitempty"`
	Design         []string `json:"design,omitempty"`
	Performance    []string `json:"performance,omitempty"`
	Uniqueness     []string `json:"uniqueness,omitempty"`
	DomainSpecific []string `json:"domainSpecific,omitempty"`
}

// NewAssignment creates an assignment with a generated agent id.
func NewAssignment(waveID string, iteration int, focus string) *Assignment {
	return &Assignment{
		AgentID:         fmt.Sprintf("%s-agent-%s", waveID, idgen.New()),
		Iteration:       iteration,
		InnovationFocus: focus,
	}
}
