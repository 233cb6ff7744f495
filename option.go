package genwave

import (
	"github.com/viant/x"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/genwave/genwave/model/types"
	"github.com/genwave/genwave/service/dao/history"
	"github.com/genwave/genwave/service/event"
	"github.com/genwave/genwave/service/specsource"
	"github.com/genwave/genwave/service/worker"
	"github.com/genwave/genwave/tracing"
)

// Option customises the engine service.
type Option func(s *Service)

// WithConfig replaces the whole configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithWorker sets the generation worker the scheduler dispatches to. Without
// it the engine uses the in-process scripted worker, which is only useful for
// tests and dry runs.
func WithWorker(w worker.Executor) Option {
	return func(s *Service) {
		s.worker = w
	}
}

// WithHistoryStore sets the iteration history store; defaults to in-memory.
func WithHistoryStore(store history.Store) Option {
	return func(s *Service) {
		s.historyStore = store
	}
}

// WithEventService attaches an event service; wave and assignment lifecycle
// events are published to it during execution.
func WithEventService(service *event.Service) Option {
	return func(s *Service) {
		s.eventService = service
	}
}

// WithSpecSource sets the specification loader.
func WithSpecSource(specs *specsource.Service) Option {
	return func(s *Service) {
		s.specs = specs
	}
}

// WithExtensionTypes pre-registers Go types in the type registry.
func WithExtensionTypes(extensionTypes ...*x.Type) Option {
	return func(s *Service) {
		s.extensionTypes = append(s.extensionTypes, extensionTypes...)
	}
}

// WithExtensionServices registers additional operation services next to the
// built-in swarm service.
func WithExtensionServices(services ...types.Service) Option {
	return func(s *Service) {
		s.extensionServices = append(s.extensionServices, services...)
	}
}

// WithTracing configures OpenTelemetry tracing with the stdout exporter. If
// outputFile is empty traces go to stdout. Safe to call multiple times; the
// first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing with a custom span
// exporter (OTLP, Jaeger, Zipkin and so on).
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
