// Package history persists the append-only iteration history of an output
// directory. Implementations live in the memory, fs and bolt subpackages.
package history

import (
	"context"
	"fmt"

	"github.com/genwave/genwave/model"
)

// Store persists iteration history keyed by output directory.
type Store interface {
	// Load returns the recorded history for the directory; an unknown
	// directory yields an empty history, not an error.
	Load(ctx context.Context, outputDir string) (model.History, error)

	// Append adds records to the directory's history. Records must continue
	// the gap-free 1-based numbering or the call fails without writing.
	Append(ctx context.Context, outputDir string, records ...model.IterationRecord) error
}

// ValidateAppend checks that records extend existing with gap-free numbering.
func ValidateAppend(existing model.History, records []model.IterationRecord) error {
	next := existing.NextNumber()
	for i, record := range records {
		if record.Number != next+i {
			return fmt.Errorf("record %d has number %d, want %d", i, record.Number, next+i)
		}
	}
	return nil
}
