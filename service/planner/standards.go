package planner

import (
	"fmt"

	"github.com/genwave/genwave/model"
	"github.com/genwave/genwave/runtime/wave"
)

// standards merges the specification's global output standards, the level's
// quality expectations, the static domain tables and three uniqueness
// statements synthesized from the assigned dimension.
func standards(spec *model.Specification, level model.SophisticationLevel, focus string) wave.QualityStandards {
	defaults := model.DefaultsFor(spec.Domain)
	return wave.QualityStandards{
		Functional:     append([]string(nil), spec.Output.QualityStandards...),
		Design:         append([]string(nil), level.QualityExpectations...),
		Performance:    defaults.Performance,
		Uniqueness:     uniquenessStatements(focus, level),
		DomainSpecific: defaults.Requirements,
	}
}

func uniquenessStatements(focus string, level model.SophisticationLevel) []string {
	return []string{
		fmt.Sprintf("explore the %q dimension in a way no prior iteration has", focus),
		fmt.Sprintf("differentiate visibly from sibling assignments of this wave through %s", focus),
		fmt.Sprintf("express %q at the %s tier rather than repeating a lower-tier treatment", focus, level.Name),
	}
}
