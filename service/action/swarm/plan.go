package swarm

import (
	"context"
	"fmt"
	"time"

	"github.com/genwave/genwave/model"
	"github.com/genwave/genwave/model/types"
	"github.com/genwave/genwave/runtime/wave"
)

// PlanInput requests the next wave plan without executing it.
type PlanInput struct {
	Spec      *model.Specification `json:"spec"`
	History   model.History        `json:"history,omitempty"`
	Level     int                  `json:"level"`
	Mode      model.Mode           `json:"mode"`
	OutputDir string               `json:"outputDir"`
}

// Validate checks the request.
func (i *PlanInput) Validate() error {
	if i.Spec == nil {
		return fmt.Errorf("spec is required")
	}
	if i.Level <= 0 {
		return fmt.Errorf("level must be positive")
	}
	return nil
}

// PlanOutput carries the planned wave and its estimates.
type PlanOutput struct {
	Wave              *wave.Wave                `json:"wave"`
	Level             model.SophisticationLevel `json:"level"`
	ContextEstimate   int                       `json:"contextEstimate"`
	EstimatedDuration time.Duration             `json:"estimatedDuration"`
}

func (s *Service) planWave(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*PlanInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*PlanOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	if err := input.Validate(); err != nil {
		return err
	}
	if err := input.History.Validate(); err != nil {
		return err
	}

	mode := input.Mode
	if mode.Type == "" {
		mode.Type = model.ModeSingle
	}
	level := input.Spec.Level(input.Level)
	plan, err := s.planner.Plan(ctx, input.Spec, mode, input.History, level, input.OutputDir)
	if err != nil {
		return err
	}
	output.Wave = plan.Wave
	output.Level = plan.Level
	output.ContextEstimate = plan.Wave.ContextBudget
	output.EstimatedDuration = plan.Wave.EstimatedDuration
	return nil
}
