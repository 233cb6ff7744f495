package swarm

import (
	"context"
	"fmt"

	"github.com/genwave/genwave/model"
	"github.com/genwave/genwave/model/types"
	"github.com/genwave/genwave/service/specsource"
)

// ValidateInput carries a specification to validate: inline, as raw content,
// or by storage location.
type ValidateInput struct {
	Spec     *model.Specification `json:"spec,omitempty"`
	Content  string               `json:"content,omitempty"`
	Format   string               `json:"format,omitempty"`
	Location string               `json:"location,omitempty"`
}

// ValidateOutput reports the validation verdict, the decoded specification
// and the domain defaults a run would apply.
type ValidateOutput struct {
	Valid    bool                         `json:"valid"`
	Errors   []specsource.ValidationError `json:"errors,omitempty"`
	Spec     *model.Specification         `json:"spec,omitempty"`
	Defaults model.DomainDefaults         `json:"defaults"`
}

func (s *Service) validateSpec(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*ValidateInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ValidateOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}

	spec := input.Spec
	switch {
	case spec != nil:
	case input.Content != "":
		parsed, err := specsource.Parse([]byte(input.Content), "."+input.Format)
		if err != nil {
			if result, ok := err.(specsource.ValidationResult); ok {
				output.Errors = result.Errors
				return nil
			}
			return err
		}
		spec = parsed
	case input.Location != "":
		loaded, err := s.specs.Load(ctx, input.Location)
		if err != nil {
			if result, ok := err.(specsource.ValidationResult); ok {
				output.Errors = result.Errors
				return nil
			}
			return err
		}
		spec = loaded
	default:
		return fmt.Errorf("one of spec, content or location is required")
	}

	result := s.validate(spec)
	output.Errors = result.Errors
	output.Valid = result.Valid()
	if output.Valid {
		output.Spec = spec
		output.Defaults = model.DefaultsFor(spec.Domain)
	}
	return nil
}

func (s *Service) validate(spec *model.Specification) specsource.ValidationResult {
	return specsource.Validate(spec)
}
