package executor

import (
	"context"
	"fmt"
	"reflect"

	"github.com/viant/structology/conv"

	"github.com/genwave/genwave/extension"
	"github.com/genwave/genwave/model/types"
	"github.com/genwave/genwave/tracing"
)

// Listener observes every dispatched call after it completes, regardless of
// outcome. A function type rather than an interface so call sites can pass a
// literal.
type Listener func(service, method string, input, output interface{}, err error)

// Service dispatches loosely-typed requests (typically decoded JSON maps) to
// registered services, converting payloads into the operation's declared
// input type before invocation.
type Service struct {
	actions   *extension.Actions
	converter *conv.Converter
	listener  Listener
}

// Option customises the executor.
type Option func(*Service)

// WithListener installs a post-call observer.
func WithListener(listener Listener) Option {
	return func(s *Service) {
		s.listener = listener
	}
}

// New creates a dispatcher over the given registry.
func New(actions *extension.Actions, options ...Option) *Service {
	converterOptions := conv.DefaultOptions()
	converterOptions.ClonePointerData = true
	converterOptions.IgnoreUnmapped = true
	s := &Service{
		actions:   actions,
		converter: conv.NewConverter(converterOptions),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Execute resolves the named operation, converts the payload into its input
// type and invokes it, returning the populated output.
func (s *Service) Execute(ctx context.Context, service, method string, payload interface{}) (output interface{}, err error) {
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("%s.%s", service, method))
	defer func() { tracing.EndSpan(span, err) }()

	target := s.actions.Lookup(service)
	if target == nil {
		return nil, fmt.Errorf("service %v not found", service)
	}
	signature := target.Methods().Lookup(method)
	if signature == nil {
		return nil, types.NewMethodNotFoundError(method)
	}
	executable, err := target.Method(method)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve method %v.%v: %w", service, method, err)
	}

	input := instantiate(signature.Input)
	if payload != nil {
		if err = s.converter.Convert(payload, input); err != nil {
			return nil, fmt.Errorf("failed to convert input for %v.%v: %w", service, method, err)
		}
	}
	output = instantiate(signature.Output)
	err = executable(ctx, input, output)
	if s.listener != nil {
		s.listener(service, method, input, output, err)
	}
	if err != nil {
		return nil, err
	}
	return output, nil
}

// instantiate allocates a zero value of the signature type; signatures
// declare pointer types by convention.
func instantiate(t reflect.Type) interface{} {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return reflect.New(t).Interface()
}
