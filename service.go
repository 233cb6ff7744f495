package genwave

import (
	"fmt"

	"github.com/viant/x"

	"github.com/genwave/genwave/extension"
	"github.com/genwave/genwave/model/types"
	"github.com/genwave/genwave/runtime/orchestrator"
	"github.com/genwave/genwave/service/action/swarm"
	"github.com/genwave/genwave/service/dao/history"
	historymem "github.com/genwave/genwave/service/dao/history/memory"
	"github.com/genwave/genwave/service/event"
	"github.com/genwave/genwave/service/executor"
	"github.com/genwave/genwave/service/ledger"
	"github.com/genwave/genwave/service/planner"
	"github.com/genwave/genwave/service/scheduler"
	"github.com/genwave/genwave/service/specsource"
	"github.com/genwave/genwave/service/tracker"
	"github.com/genwave/genwave/service/worker"
	workermem "github.com/genwave/genwave/service/worker/memory"
)

// Service is the engine facade: it wires the ledger, planner, scheduler,
// tracker and orchestrator together and exposes them through a Runtime.
type Service struct {
	config            *Config
	worker            worker.Executor
	historyStore      history.Store
	eventService      *event.Service
	specs             *specsource.Service
	extensionTypes    []*x.Type
	extensionServices []types.Service

	actions *extension.Actions
	runtime *Runtime
}

// New creates a fully wired engine service.
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(s)
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) init() error {
	if err := s.config.Validate(); err != nil {
		return err
	}
	s.ensureBaseSetup()

	contextLedger := ledger.New(s.config.ContextCapacity)
	lifecycle := tracker.New()

	sched, err := scheduler.New(
		scheduler.WithConfig(s.config.Scheduler),
		scheduler.WithWorker(s.worker),
		scheduler.WithLedger(contextLedger),
		scheduler.WithTracker(lifecycle),
	)
	if err != nil {
		return err
	}

	wavePlanner := planner.New(planner.WithConfig(s.config.Planner))
	orch, err := orchestrator.New(
		orchestrator.WithConfig(orchestrator.Config{LedgerThreshold: s.config.LedgerThreshold}),
		orchestrator.WithPlanner(wavePlanner),
		orchestrator.WithScheduler(sched),
		orchestrator.WithLedger(contextLedger),
		orchestrator.WithHistoryStore(s.historyStore),
	)
	if err != nil {
		return err
	}

	swarmService, err := swarm.New(
		swarm.WithOrchestrator(orch),
		swarm.WithPlanner(wavePlanner),
		swarm.WithScheduler(sched),
		swarm.WithLedger(contextLedger),
		swarm.WithSpecSource(s.specs),
	)
	if err != nil {
		return fmt.Errorf("failed to assemble swarm service: %w", err)
	}

	s.actions = extension.NewActions(s.extensionTypes...)
	s.actions.Register(swarmService)
	for _, service := range s.extensionServices {
		s.actions.Register(service)
	}

	s.runtime = &Runtime{
		executor:     executor.New(s.actions),
		ledger:       contextLedger,
		tracker:      lifecycle,
		eventService: s.eventService,
	}
	return nil
}

func (s *Service) ensureBaseSetup() {
	if s.worker == nil {
		s.worker = workermem.New()
	}
	if s.historyStore == nil {
		s.historyStore = historymem.New()
	}
	if s.specs == nil {
		s.specs = specsource.New()
	}
}

// Runtime returns the operation surface.
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Actions exposes the service registry for transports and embedders.
func (s *Service) Actions() *extension.Actions {
	return s.actions
}

// RegisterExtensionTypes adds Go types to the registry after construction.
func (s *Service) RegisterExtensionTypes(extensionTypes ...*x.Type) {
	for i := range extensionTypes {
		s.actions.Types().Register(extensionTypes[i])
	}
}

// RegisterExtensionServices registers additional operation services.
func (s *Service) RegisterExtensionServices(services ...types.Service) {
	for i := range services {
		s.actions.Register(services[i])
	}
}

// Shutdown releases background resources such as event listeners.
func (s *Service) Shutdown() {
	if s.eventService != nil {
		s.eventService.Shutdown()
	}
}
