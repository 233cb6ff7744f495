package model

import (
	"fmt"
	"strings"
)

// IterationRecord is one row of prior-work history: a completed generation
// unit with the dimensions it exercised and its evaluation scores (0-100).
// History is append-only; the planner reads it to avoid repeating dimensions
// and to describe existing work to new assignments.
type IterationRecord struct {
	Number          int      `json:"number"`
	Location        string   `json:"location"`
	Summary         string   `json:"summary,omitempty"`
	Dimensions      []string `json:"dimensions,omitempty"`
	QualityScore    int      `json:"qualityScore"`
	UniquenessScore int      `json:"uniquenessScore"`
}

// History is the ordered list of iteration records for one output directory.
type History []IterationRecord

// UsedDimensions returns the set of dimensions exercised anywhere in history.
func (h History) UsedDimensions() map[string]bool {
	used := make(map[string]bool)
	for _, record := range h {
		for _, dimension := range record.Dimensions {
			used[dimension] = true
		}
	}
	return used
}

// NextNumber returns the iteration number the next record must carry.
// Numbers are 1-based, strictly increasing and gap-free.
func (h History) NextNumber() int {
	if len(h) == 0 {
		return 1
	}
	return h[len(h)-1].Number + 1
}

// Summary renders a short excerpt of existing work for assignment context.
func (h History) Summary(max int) string {
	if len(h) == 0 {
		return "no prior iterations"
	}
	start := 0
	if max > 0 && len(h) > max {
		start = len(h) - max
	}
	var b strings.Builder
	for _, record := range h[start:] {
		fmt.Fprintf(&b, "#%d %s", record.Number, record.Summary)
		if len(record.Dimensions) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(record.Dimensions, ", "))
		}
		b.WriteString("; ")
	}
	return strings.TrimSuffix(b.String(), "; ")
}

// Validate checks the gap-free numbering invariant.
func (h History) Validate() error {
	for i, record := range h {
		if record.Number != i+1 {
			return fmt.Errorf("history record %d has number %d, want %d", i, record.Number, i+1)
		}
	}
	return nil
}
