package event

import (
	"reflect"
	"sync"

	"github.com/genwave/genwave/service/messaging/memory"
)

// Service hands out one typed publisher per payload type, each backed by its
// own in-memory queue. Listeners registered through SetListenerOf share the
// publisher's queue.
type Service struct {
	mux             sync.RWMutex
	typedPublishers map[reflect.Type]any
	typedListeners  map[reflect.Type]any
	queueConfig     memory.Config
}

// Option customises the event service.
type Option func(*Service)

// WithQueueConfig overrides the per-type queue configuration.
func WithQueueConfig(config memory.Config) Option {
	return func(s *Service) {
		s.queueConfig = config
	}
}

// New creates a new event service.
func New(options ...Option) *Service {
	s := &Service{
		typedPublishers: make(map[reflect.Type]any),
		typedListeners:  make(map[reflect.Type]any),
		queueConfig:     memory.DefaultConfig(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func keyOf[T any]() reflect.Type {
	var t T
	rType := reflect.TypeOf(&t).Elem()
	for rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	return rType
}

// PublisherOf returns the publisher for the payload type, creating it and
// its queue on first use.
func PublisherOf[T any](s *Service) *Publisher[T] {
	key := keyOf[T]()
	s.mux.RLock()
	existing, ok := s.typedPublishers[key]
	s.mux.RUnlock()
	if ok {
		return existing.(*Publisher[T])
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if existing, ok = s.typedPublishers[key]; ok {
		return existing.(*Publisher[T])
	}
	publisher := NewPublisher[T](memory.NewQueue[Event[T]](s.queueConfig))
	s.typedPublishers[key] = publisher
	return publisher
}

// SetListenerOf installs (replacing any previous) a handler for the payload
// type and starts consuming.
func SetListenerOf[T any](s *Service, handler func(*Event[T])) {
	key := keyOf[T]()
	publisher := PublisherOf[T](s)
	s.mux.Lock()
	defer s.mux.Unlock()
	if previous, ok := s.typedListeners[key]; ok {
		previous.(*Listener[T]).Stop()
	}
	listener := NewListener[T](publisher, handler)
	s.typedListeners[key] = listener
	listener.Start()
}

// Shutdown stops all listeners.
func (s *Service) Shutdown() {
	s.mux.Lock()
	defer s.mux.Unlock()
	for _, listener := range s.typedListeners {
		if stoppable, ok := listener.(interface{ Stop() }); ok {
			stoppable.Stop()
		}
	}
}
