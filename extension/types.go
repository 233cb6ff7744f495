package extension

import (
	"reflect"
	"strings"

	"github.com/viant/x"
)

// Types is the registry of Go types that operation inputs and outputs may
// reference by name, for example when a transport carries type names rather
// than concrete values.
type Types struct {
	x.Registry
}

// Lookup resolves a type name, honouring a leading slice or map modifier
// ("[]swarm.PlanInput", "map[string]swarm.PlanInput").
func (t *Types) Lookup(name string) *x.Type {
	modifier := ""
	if idx := strings.LastIndex(name, "]"); idx != -1 {
		modifier = name[:idx+1]
		name = name[idx+1:]
	}
	ret := t.Registry.Lookup(name)
	if ret == nil {
		return nil
	}
	rType := ret.Type
	switch strings.TrimSpace(modifier) {
	case "[]":
		rType = reflect.SliceOf(rType)
	case "map[string]":
		rType = reflect.MapOf(reflect.TypeOf(""), rType)
	}
	if rType != ret.Type {
		return x.NewType(rType)
	}
	return ret
}

// NewTypes creates a type registry.
func NewTypes(options ...x.RegistryOption) *Types {
	return &Types{Registry: *x.NewRegistry(options...)}
}
