package extension

import (
	"sync"

	"github.com/viant/x"

	"github.com/genwave/genwave/model/types"
)

// DataTypeIniter lets a service register the Go types its signatures use.
type DataTypeIniter interface {
	InitTypes(types *Types)
}

// Actions is the registry of exposed services.
type Actions struct {
	types    *Types
	services map[string]types.Service
	mux      sync.RWMutex
}

// Types returns the shared type registry.
func (a *Actions) Types() *Types {
	return a.types
}

// Lookup returns a registered service by name, or nil.
func (a *Actions) Lookup(name string) types.Service {
	a.mux.RLock()
	defer a.mux.RUnlock()
	return a.services[name]
}

// Services lists the registered service names.
func (a *Actions) Services() []string {
	a.mux.RLock()
	defer a.mux.RUnlock()
	names := make([]string, 0, len(a.services))
	for name := range a.services {
		names = append(names, name)
	}
	return names
}

// Register adds a service, replacing any previous one of the same name.
func (a *Actions) Register(service types.Service) {
	a.mux.Lock()
	defer a.mux.Unlock()
	if initer, ok := service.(DataTypeIniter); ok {
		initer.InitTypes(a.types)
	}
	a.services[service.Name()] = service
}

// NewActions creates a service registry, optionally pre-seeded with types.
func NewActions(goTypes ...*x.Type) *Actions {
	ret := &Actions{
		types:    NewTypes(),
		services: make(map[string]types.Service),
	}
	for _, t := range goTypes {
		if t != nil {
			ret.types.Register(t)
		}
	}
	return ret
}
