package swarm

import (
	"fmt"
	"reflect"

	"github.com/viant/x"

	"github.com/genwave/genwave/extension"
	"github.com/genwave/genwave/model/types"
	"github.com/genwave/genwave/runtime/orchestrator"
	"github.com/genwave/genwave/service/ledger"
	"github.com/genwave/genwave/service/planner"
	"github.com/genwave/genwave/service/scheduler"
	"github.com/genwave/genwave/service/specsource"
)

const name = "swarm"

// Service exposes the five swarm operations over the generic operation
// contract, so any transport able to carry JSON structs can drive a run.
type Service struct {
	orchestrator *orchestrator.Service
	planner      *planner.Service
	scheduler    *scheduler.Service
	ledger       *ledger.Service
	specs        *specsource.Service
}

// Option customises the service.
type Option func(*Service)

// WithOrchestrator sets the run orchestrator (required).
func WithOrchestrator(o *orchestrator.Service) Option {
	return func(s *Service) {
		s.orchestrator = o
	}
}

// WithPlanner sets the wave planner; defaults to a default-configured one.
func WithPlanner(p *planner.Service) Option {
	return func(s *Service) {
		s.planner = p
	}
}

// WithScheduler sets the wave scheduler (required).
func WithScheduler(sch *scheduler.Service) Option {
	return func(s *Service) {
		s.scheduler = sch
	}
}

// WithLedger sets the shared context ledger (required).
func WithLedger(l *ledger.Service) Option {
	return func(s *Service) {
		s.ledger = l
	}
}

// WithSpecSource sets the specification loader; defaults to an afs-backed one.
func WithSpecSource(specs *specsource.Service) Option {
	return func(s *Service) {
		s.specs = specs
	}
}

// New creates the swarm action service.
func New(options ...Option) (*Service, error) {
	s := &Service{}
	for _, option := range options {
		option(s)
	}
	if s.orchestrator == nil {
		return nil, fmt.Errorf("orchestrator is required")
	}
	if s.scheduler == nil {
		return nil, fmt.Errorf("scheduler is required")
	}
	if s.ledger == nil {
		return nil, fmt.Errorf("ledger is required")
	}
	if s.planner == nil {
		s.planner = planner.New()
	}
	if s.specs == nil {
		s.specs = specsource.New()
	}
	return s, nil
}

// Name returns the service name.
func (s *Service) Name() string {
	return name
}

// Methods returns the service method signatures.
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "orchestrate",
			Description: "Runs a complete generation session for a specification, looping waves until the mode's goal or the context budget threshold is reached.",
			Input:       reflect.TypeOf(&OrchestrateInput{}),
			Output:      reflect.TypeOf(&OrchestrateOutput{}),
		},
		{
			Name:        "planWave",
			Description: "Plans the next wave of non-duplicating assignments from a specification and prior-work history, without executing anything.",
			Input:       reflect.TypeOf(&PlanInput{}),
			Output:      reflect.TypeOf(&PlanOutput{}),
		},
		{
			Name:        "coordinateAgents",
			Description: "Executes a planned wave of assignments in bounded concurrent batches against the shared context ledger.",
			Input:       reflect.TypeOf(&CoordinateInput{}),
			Output:      reflect.TypeOf(&CoordinateOutput{}),
		},
		{
			Name:        "monitorContext",
			Description: "Reports ledger utilisation, per-agent lifecycle status and aggregate progress metrics.",
			Input:       reflect.TypeOf(&MonitorInput{}),
			Output:      reflect.TypeOf(&MonitorOutput{}),
		},
		{
			Name:        "validateSpec",
			Description: "Validates a user specification and reports the domain defaults it would run with.",
			Input:       reflect.TypeOf(&ValidateInput{}),
			Output:      reflect.TypeOf(&ValidateOutput{}),
		},
	}
}

// Method returns the executable for the given operation name.
func (s *Service) Method(methodName string) (types.Executable, error) {
	switch methodName {
	case "orchestrate":
		return s.orchestrate, nil
	case "planWave":
		return s.planWave, nil
	case "coordinateAgents":
		return s.coordinateAgents, nil
	case "monitorContext":
		return s.monitorContext, nil
	case "validateSpec":
		return s.validateSpec, nil
	}
	return nil, types.NewMethodNotFoundError(methodName)
}

// InitTypes registers the operation input and output types.
func (s *Service) InitTypes(registry *extension.Types) {
	registry.Register(x.NewType(reflect.TypeOf(OrchestrateInput{}), x.WithName("swarm.OrchestrateInput")))
	registry.Register(x.NewType(reflect.TypeOf(OrchestrateOutput{}), x.WithName("swarm.OrchestrateOutput")))
	registry.Register(x.NewType(reflect.TypeOf(PlanInput{}), x.WithName("swarm.PlanInput")))
	registry.Register(x.NewType(reflect.TypeOf(PlanOutput{}), x.WithName("swarm.PlanOutput")))
	registry.Register(x.NewType(reflect.TypeOf(CoordinateInput{}), x.WithName("swarm.CoordinateInput")))
	registry.Register(x.NewType(reflect.TypeOf(CoordinateOutput{}), x.WithName("swarm.CoordinateOutput")))
	registry.Register(x.NewType(reflect.TypeOf(MonitorInput{}), x.WithName("swarm.MonitorInput")))
	registry.Register(x.NewType(reflect.TypeOf(MonitorOutput{}), x.WithName("swarm.MonitorOutput")))
	registry.Register(x.NewType(reflect.TypeOf(ValidateInput{}), x.WithName("swarm.ValidateInput")))
	registry.Register(x.NewType(reflect.TypeOf(ValidateOutput{}), x.WithName("swarm.ValidateOutput")))
}
