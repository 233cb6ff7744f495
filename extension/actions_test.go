package extension

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/x"

	"github.com/genwave/genwave/model/types"
)

type stubService struct{ typesSeen bool }

func (s *stubService) Name() string              { return "stub" }
func (s *stubService) Methods() types.Signatures { return nil }
func (s *stubService) Method(name string) (types.Executable, error) {
	return nil, types.NewMethodNotFoundError(name)
}
func (s *stubService) InitTypes(registry *Types) { s.typesSeen = true }

type sample struct {
	Name string
}

func TestActions_Register(t *testing.T) {
	actions := NewActions()
	assert.Nil(t, actions.Lookup("stub"))

	service := &stubService{}
	actions.Register(service)
	assert.Same(t, service, actions.Lookup("stub"))
	assert.True(t, service.typesSeen)
	assert.Equal(t, []string{"stub"}, actions.Services())
}

func TestTypes_Lookup(t *testing.T) {
	registry := NewTypes()
	registry.Register(x.NewType(reflect.TypeOf(sample{}), x.WithName("extension.sample")))

	resolved := registry.Lookup("extension.sample")
	assert.NotNil(t, resolved)
	assert.Equal(t, reflect.TypeOf(sample{}), resolved.Type)

	sliced := registry.Lookup("[]extension.sample")
	assert.NotNil(t, sliced)
	assert.Equal(t, reflect.SliceOf(reflect.TypeOf(sample{})), sliced.Type)

	mapped := registry.Lookup("map[string]extension.sample")
	assert.NotNil(t, mapped)
	assert.Equal(t, reflect.MapOf(reflect.TypeOf(""), reflect.TypeOf(sample{})), mapped.Type)

	assert.Nil(t, registry.Lookup("extension.unknown"))
}
