package event

import (
	"context"
	"errors"
)

// Listener consumes events from a publisher's queue and invokes a handler
// for each one on a dedicated goroutine.
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	cancel    context.CancelFunc
}

// NewListener creates a stopped listener.
func NewListener[T any](publisher *Publisher[T], handler func(*Event[T])) *Listener[T] {
	return &Listener[T]{publisher: publisher, handler: handler}
}

// Start begins consuming events until Stop is called.
func (l *Listener[T]) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	go func() {
		for {
			event, err := l.publisher.Consume(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				continue
			}
			l.handler(event)
		}
	}()
}

// Stop terminates the consuming goroutine.
func (l *Listener[T]) Stop() {
	if l.cancel != nil {
		l.cancel()
	}
}
