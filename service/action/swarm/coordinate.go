package swarm

import (
	"context"
	"fmt"

	"github.com/genwave/genwave/model/types"
	"github.com/genwave/genwave/runtime/wave"
	"github.com/genwave/genwave/service/ledger"
)

// CoordinateInput executes a prepared set of assignments as one wave.
type CoordinateInput struct {
	WaveID         string             `json:"waveId,omitempty"`
	Level          int                `json:"level,omitempty"`
	Assignments    []*wave.Assignment `json:"assignments"`
	MaxConcurrency int                `json:"maxConcurrency,omitempty"`
	ContextBudget  int                `json:"contextBudget"`
}

// Validate checks the request.
func (i *CoordinateInput) Validate() error {
	if len(i.Assignments) == 0 {
		return fmt.Errorf("at least one assignment is required")
	}
	for index, assignment := range i.Assignments {
		if assignment == nil || assignment.AgentID == "" {
			return fmt.Errorf("assignment %d has no agent id", index)
		}
	}
	return nil
}

// CoordinateOutput carries per-assignment results in assignment order and
// the post-wave ledger snapshot.
type CoordinateOutput struct {
	WaveID  string        `json:"waveId"`
	Status  wave.Status   `json:"status"`
	Results []wave.Result `json:"results"`
	Ledger  ledger.Status `json:"ledger"`
}

func (s *Service) coordinateAgents(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*CoordinateInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*CoordinateOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	if err := input.Validate(); err != nil {
		return err
	}

	waveID := input.WaveID
	if waveID == "" {
		waveID = input.Assignments[0].AgentID + "-wave"
	}
	w := wave.New(waveID, input.Level, input.Assignments, input.MaxConcurrency)
	w.ContextBudget = input.ContextBudget

	results, err := s.scheduler.Execute(ctx, w)
	output.WaveID = w.ID
	output.Status = w.GetStatus()
	output.Results = results
	output.Ledger = s.ledger.Status()
	return err
}
