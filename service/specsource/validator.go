package specsource

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/genwave/genwave/model"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult holds all validation errors for a specification.
type ValidationResult struct {
	Errors []ValidationError
}

// Valid returns true if no validation errors were found.
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Error returns a combined error message from all validation errors.
func (r ValidationResult) Error() string {
	if r.Valid() {
		return ""
	}
	messages := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		messages[i] = e.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// MinDimensions is the smallest dimension count that still lets the planner
// avoid duplicate focuses within a default-sized wave's first rotation.
const MinDimensions = 3

// Validate checks a specification for required fields and structural
// correctness. All problems are collected; the caller decides whether any of
// them is fatal.
func Validate(spec *model.Specification) ValidationResult {
	var result ValidationResult
	fail := func(field, message string) {
		result.Errors = append(result.Errors, ValidationError{Field: field, Message: message})
	}
	if spec == nil {
		fail("spec", "required")
		return result
	}

	if spec.ID == "" {
		fail("id", "required")
	} else if _, err := uuid.Parse(spec.ID); err != nil {
		fail("id", fmt.Sprintf("not a valid UUID: %q", spec.ID))
	}
	if spec.Name == "" {
		fail("name", "required")
	}
	if spec.Version == "" {
		fail("version", "required")
	} else if !semverPattern.MatchString(spec.Version) {
		fail("version", fmt.Sprintf("invalid version %q (expected MAJOR.MINOR.PATCH)", spec.Version))
	}
	if spec.Domain == "" {
		fail("domain", "required")
	}
	if spec.Output.Format == "" {
		fail("output.format", "required")
	}

	if len(spec.Dimensions) < MinDimensions {
		fail("dimensions", fmt.Sprintf("need at least %d innovation dimensions, got %d", MinDimensions, len(spec.Dimensions)))
	}
	seen := make(map[string]bool)
	for i, dimension := range spec.Dimensions {
		if strings.TrimSpace(dimension) == "" {
			fail(fmt.Sprintf("dimensions[%d]", i), "empty")
		} else if seen[dimension] {
			fail(fmt.Sprintf("dimensions[%d]", i), fmt.Sprintf("duplicate dimension %q", dimension))
		}
		seen[dimension] = true
	}

	if len(spec.Levels) == 0 {
		fail("levels", "at least one sophistication level is required")
	}
	for i, level := range spec.Levels {
		if level.Rank != i+1 {
			fail(fmt.Sprintf("levels[%d].rank", i), fmt.Sprintf("got %d, want sequential rank %d", level.Rank, i+1))
		}
		if level.Name == "" {
			fail(fmt.Sprintf("levels[%d].name", i), "required")
		}
	}
	return result
}
