package types

import (
	"context"
	"reflect"
)

// Service is a named group of invocable operations. The five swarm
// operations are exposed through this contract so callers (CLI, RPC
// adapters) stay independent of the concrete implementations.
type Service interface {
	Name() string
	Methods() Signatures
	Method(name string) (Executable, error)
}

// Executable invokes one operation: input and output are pointers to the
// types declared by the operation's signature.
type Executable func(ctx context.Context, input, output interface{}) error

// Signature describes one operation of a service.
type Signature struct {
	Name        string
	Description string
	Input       reflect.Type
	Output      reflect.Type
}

// Signatures is the ordered list of a service's operations.
type Signatures []Signature

// Lookup returns the signature with the given name, or nil.
func (s Signatures) Lookup(name string) *Signature {
	for i := range s {
		if s[i].Name == name {
			return &s[i]
		}
	}
	return nil
}
