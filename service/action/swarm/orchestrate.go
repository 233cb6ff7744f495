package swarm

import (
	"context"
	"fmt"

	"github.com/genwave/genwave/model"
	"github.com/genwave/genwave/model/types"
	"github.com/genwave/genwave/runtime/orchestrator"
)

// OrchestrateInput requests a complete generation run. Either Spec (inline)
// or Location (a storage URL) identifies the specification.
type OrchestrateInput struct {
	Spec      *model.Specification   `json:"spec,omitempty"`
	Location  string                 `json:"location,omitempty"`
	OutputDir string                 `json:"outputDir"`
	Mode      model.Mode             `json:"mode"`
	Failure   *model.FailureHandling `json:"failureHandling,omitempty"`
}

// Validate checks the request.
func (i *OrchestrateInput) Validate() error {
	if i.Spec == nil && i.Location == "" {
		return fmt.Errorf("either spec or location is required")
	}
	if i.OutputDir == "" {
		return fmt.Errorf("outputDir is required")
	}
	switch i.Mode.Type {
	case model.ModeSingle, model.ModeInfinite:
	case model.ModeBatch:
		if i.Mode.Count <= 0 {
			return fmt.Errorf("mode BATCH requires a positive count")
		}
	default:
		return fmt.Errorf("unknown mode type %q", i.Mode.Type)
	}
	return nil
}

// OrchestrateOutput is the aggregate outcome of the run.
type OrchestrateOutput struct {
	*orchestrator.Output
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

func (s *Service) orchestrate(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*OrchestrateInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*OrchestrateOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	if err := input.Validate(); err != nil {
		return err
	}

	spec := input.Spec
	if spec == nil {
		loaded, err := s.specs.Load(ctx, input.Location)
		if err != nil {
			return err
		}
		spec = loaded
	} else if result := s.validate(spec); !result.Valid() {
		return result
	}

	mode := input.Mode
	if mode.FailureHandling == nil {
		mode.FailureHandling = input.Failure
	}

	runOutput, err := s.orchestrator.Run(ctx, spec, mode, input.OutputDir)
	if runOutput != nil {
		output.Output = runOutput
		output.Succeeded = runOutput.Succeeded()
		output.Failed = len(runOutput.Results) - output.Succeeded
	}
	return err
}
