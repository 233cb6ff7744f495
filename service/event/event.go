package event

import (
	"context"
	"time"
)

// Lifecycle event types published by the scheduler while a wave runs.
const (
	TypeWaveStarted         = "wave.started"
	TypeWaveCompleted       = "wave.completed"
	TypeWaveFailed          = "wave.failed"
	TypeAssignmentCompleted = "assignment.completed"
	TypeAssignmentFailed    = "assignment.failed"
)

// Context identifies what an event is about.
type Context struct {
	WaveID    string `json:"waveId"`
	AgentID   string `json:"agentId,omitempty"`
	EventType string `json:"eventType"`
}

// Event is a typed lifecycle notification.
type Event[T any] struct {
	Context   *Context  `json:"context"`
	CreatedAt time.Time `json:"createdAt"`
	Data      T         `json:"data"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent[T any](eventContext *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   eventContext,
		CreatedAt: time.Now(),
		Data:      data,
	}
}

type serviceKeyT struct{}

// Key is the context key under which an event service travels. Components
// publish lifecycle events only when a service is attached, so eventing is
// entirely opt-in.
var Key serviceKeyT

// WithService embeds the event service in ctx.
func WithService(ctx context.Context, service *Service) context.Context {
	return context.WithValue(ctx, Key, service)
}

// FromContext extracts the event service, nil when absent.
func FromContext(ctx context.Context) *Service {
	if value := ctx.Value(Key); value != nil {
		if service, ok := value.(*Service); ok {
			return service
		}
	}
	return nil
}
