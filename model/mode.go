package model

// ModeType selects how many waves an orchestration run schedules.
type ModeType string

const (
	// ModeSingle produces exactly one assignment in one wave.
	ModeSingle ModeType = "SINGLE"
	// ModeBatch produces Count assignments across as many waves as needed.
	ModeBatch ModeType = "BATCH"
	// ModeInfinite keeps scheduling waves until the context ledger crosses
	// the configured shutdown threshold.
	ModeInfinite ModeType = "INFINITE"
)

// Mode is the caller-supplied execution mode for one orchestration run.
type Mode struct {
	Type      ModeType `json:"type" yaml:"type"`
	Count     int      `json:"count,omitempty" yaml:"count,omitempty"`
	BatchSize int      `json:"batchSize,omitempty" yaml:"batchSize,omitempty"`

	// FailureHandling, when set, is forwarded verbatim into every planned
	// assignment's task context.
	FailureHandling *FailureHandling `json:"failureHandling,omitempty" yaml:"failureHandling,omitempty"`
}

// FailureHandling carries the caller's retry/timeout preferences. The core
// scheduler accepts these values and forwards them inside each assignment's
// task context, but does not enforce them itself; enforcement (if any) lives
// in the worker adapter.
type FailureHandling struct {
	MaxRetries          int  `json:"maxRetries,omitempty" yaml:"maxRetries,omitempty"`
	TimeoutMs           int  `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty"`
	GracefulDegradation bool `json:"gracefulDegradation,omitempty" yaml:"gracefulDegradation,omitempty"`
}
