package genwave

import (
	"fmt"

	"github.com/genwave/genwave/service/planner"
	"github.com/genwave/genwave/service/scheduler"
)

// Config is the serialisable engine configuration. The zero value is not
// useful on its own; DefaultConfig supplies the defaults every nested section
// inherits.
type Config struct {
	// ContextCapacity is the total context budget shared by all waves of the
	// engine's ledger.
	ContextCapacity int `json:"contextCapacity" yaml:"contextCapacity"`

	// LedgerThreshold is the utilisation fraction at which INFINITE-mode runs
	// stop starting new waves.
	LedgerThreshold float64 `json:"ledgerThreshold" yaml:"ledgerThreshold"`

	Planner   planner.Config   `json:"planner" yaml:"planner"`
	Scheduler scheduler.Config `json:"scheduler" yaml:"scheduler"`
}

// DefaultConfig returns a Config with the package defaults.
func DefaultConfig() *Config {
	return &Config{
		ContextCapacity: 1_000_000,
		LedgerThreshold: 0.8,
		Planner:         planner.DefaultConfig(),
		Scheduler:       scheduler.DefaultConfig(),
	}
}

// Validate reports invalid settings.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.ContextCapacity <= 0 {
		return fmt.Errorf("contextCapacity must be > 0")
	}
	if c.LedgerThreshold <= 0 || c.LedgerThreshold > 1 {
		return fmt.Errorf("ledgerThreshold must be in (0, 1]")
	}
	if c.Scheduler.MaxConcurrency <= 0 {
		return fmt.Errorf("scheduler.maxConcurrency must be > 0")
	}
	return nil
}
