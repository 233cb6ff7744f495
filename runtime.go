package genwave

import (
	"context"
	"fmt"

	"github.com/genwave/genwave/service/action/swarm"
	"github.com/genwave/genwave/service/event"
	"github.com/genwave/genwave/service/executor"
	"github.com/genwave/genwave/service/ledger"
	"github.com/genwave/genwave/service/tracker"
)

// Runtime is the caller-facing operation surface. Operations can be invoked
// generically by name with loosely-typed payloads (for transports) or through
// the typed convenience methods.
type Runtime struct {
	executor     *executor.Service
	ledger       *ledger.Service
	tracker      *tracker.Service
	eventService *event.Service
}

// Execute dispatches an operation by service and method name. The payload is
// converted into the operation's input type, so decoded JSON maps work
// directly.
func (r *Runtime) Execute(ctx context.Context, service, method string, payload interface{}) (interface{}, error) {
	if r.eventService != nil {
		ctx = event.WithService(ctx, r.eventService)
	}
	return r.executor.Execute(ctx, service, method, payload)
}

// Orchestrate runs a complete generation session.
func (r *Runtime) Orchestrate(ctx context.Context, input *swarm.OrchestrateInput) (*swarm.OrchestrateOutput, error) {
	output, err := r.Execute(ctx, "swarm", "orchestrate", input)
	if err != nil {
		return nil, err
	}
	return output.(*swarm.OrchestrateOutput), nil
}

// PlanWave plans the next wave without executing it.
func (r *Runtime) PlanWave(ctx context.Context, input *swarm.PlanInput) (*swarm.PlanOutput, error) {
	output, err := r.Execute(ctx, "swarm", "planWave", input)
	if err != nil {
		return nil, err
	}
	return output.(*swarm.PlanOutput), nil
}

// CoordinateAgents executes a prepared wave of assignments.
func (r *Runtime) CoordinateAgents(ctx context.Context, input *swarm.CoordinateInput) (*swarm.CoordinateOutput, error) {
	output, err := r.Execute(ctx, "swarm", "coordinateAgents", input)
	if err != nil {
		return nil, err
	}
	return output.(*swarm.CoordinateOutput), nil
}

// MonitorContext reports ledger and agent lifecycle status.
func (r *Runtime) MonitorContext(ctx context.Context, input *swarm.MonitorInput) (*swarm.MonitorOutput, error) {
	output, err := r.Execute(ctx, "swarm", "monitorContext", input)
	if err != nil {
		return nil, err
	}
	return output.(*swarm.MonitorOutput), nil
}

// ValidateSpec validates a user specification.
func (r *Runtime) ValidateSpec(ctx context.Context, input *swarm.ValidateInput) (*swarm.ValidateOutput, error) {
	output, err := r.Execute(ctx, "swarm", "validateSpec", input)
	if err != nil {
		return nil, err
	}
	return output.(*swarm.ValidateOutput), nil
}

// Ledger returns the shared context ledger for observers.
func (r *Runtime) Ledger() *ledger.Service {
	return r.ledger
}

// Tracker returns the agent lifecycle tracker for observers.
func (r *Runtime) Tracker() *tracker.Service {
	return r.tracker
}

// String implements fmt.Stringer for debug logging.
func (r *Runtime) String() string {
	status := r.ledger.Status()
	return fmt.Sprintf("runtime(ledger %d/%d)", status.Used, status.Total)
}
