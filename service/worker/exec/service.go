// Package exec adapts a local command line as the worker execution port.
// The assignment travels to the command as JSON in the environment and the
// command reports its outcome as a JSON object on the last line of stdout:
//
//	{"location":"out/iteration-3.html","qualityScore":84,"uniquenessScore":71}
//
// Retry and timeout preferences from the assignment's failure-handling
// metadata are honored here, at the adapter boundary, not in the scheduler.
package exec

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"

	"github.com/genwave/genwave/runtime/wave"
	"github.com/genwave/genwave/service/worker"
)

// Config represents exec worker configuration.
type Config struct {
	// Command is the shell command executed once per assignment.
	Command string

	// Env is merged into the command environment on top of the assignment
	// variables.
	Env map[string]string

	// TimeoutMs bounds one command run; overridden per assignment by the
	// caller-supplied failure handling when present.
	TimeoutMs int
}

// DefaultConfig returns the default exec worker configuration.
func DefaultConfig() Config {
	return Config{TimeoutMs: 120000}
}

// Service runs one local command per assignment via gosh.
type Service struct {
	config Config
}

// New creates a new exec worker.
func New(config Config) (*Service, error) {
	if config.Command == "" {
		return nil, fmt.Errorf("exec worker requires a command")
	}
	if config.TimeoutMs <= 0 {
		config.TimeoutMs = DefaultConfig().TimeoutMs
	}
	return &Service{config: config}, nil
}

// Run implements worker.Executor.
func (s *Service) Run(ctx context.Context, assignment *wave.Assignment, w *wave.Wave) (*wave.Outcome, error) {
	payload, err := json.Marshal(assignment)
	if err != nil {
		return nil, &worker.ExecutionError{AgentID: assignment.AgentID, Err: err}
	}

	env := map[string]string{
		"GENWAVE_ASSIGNMENT": string(payload),
		"GENWAVE_WAVE_ID":    w.ID,
		"GENWAVE_OUTPUT_DIR": assignment.Context.OutputDir,
	}
	for k, v := range s.config.Env {
		env[k] = v
	}

	session, err := gosh.New(ctx, local.New(runner.WithEnvironment(env)))
	if err != nil {
		return nil, &worker.ExecutionError{AgentID: assignment.AgentID, Err: err}
	}
	defer session.Close()

	timeoutMs := s.config.TimeoutMs
	if fh := assignment.Context.FailureHandling; fh != nil && fh.TimeoutMs > 0 {
		timeoutMs = fh.TimeoutMs
	}

	attempts := 1
	if fh := assignment.Context.FailureHandling; fh != nil && fh.MaxRetries > 0 {
		attempts += fh.MaxRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		stdout, status, runErr := session.Run(ctx, s.config.Command, runner.WithTimeout(timeoutMs))
		if runErr != nil {
			lastErr = runErr
			continue
		}
		if status != 0 {
			lastErr = fmt.Errorf("command exited with status %d: %s", status, strings.TrimSpace(stdout))
			continue
		}
		outcome, parseErr := ParseOutcome(stdout)
		if parseErr != nil {
			lastErr = parseErr
			continue
		}
		return outcome, nil
	}
	return nil, &worker.ExecutionError{AgentID: assignment.AgentID, Err: lastErr}
}

// ParseOutcome extracts the outcome JSON from the last non-empty stdout line.
func ParseOutcome(stdout string) (*wave.Outcome, error) {
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "{") {
			break
		}
		outcome := &wave.Outcome{}
		if err := json.Unmarshal([]byte(line), outcome); err != nil {
			return nil, fmt.Errorf("malformed outcome line %q: %w", line, err)
		}
		if outcome.Location == "" {
			return nil, fmt.Errorf("outcome line %q has no location", line)
		}
		return outcome, nil
	}
	return nil, fmt.Errorf("no outcome JSON found on stdout")
}
