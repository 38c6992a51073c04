package registry

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"

	"github.com/vk/avrotype/internal/typename"
)

// Type is a single registered Go type.
type Type struct {
	// Name is the fully-qualified name, e.g. "com.acme.User".
	Name string
	// Module is the name of the source that declared the type.
	Module string
	// Type is the Go type values of this type have.
	Type reflect.Type
	// New, when set, constructs a default instance. Types without a
	// constructor are instantiated from their zero value.
	New func() any
}

// SimpleName returns the last segment of the fully-qualified name.
func (t *Type) SimpleName() string { return typename.Simple(t.Name) }

// Source is a named collection of types.
type Source interface {
	Name() string
	// Lookup finds a type by its exact fully-qualified name.
	Lookup(fullName string) (*Type, bool)
	// Types enumerates every declared type. Sources backed by something
	// other than memory may fail to enumerate.
	Types() ([]*Type, error)
}

// Option configures a type at registration time.
type Option func(*Type)

// WithConstructor sets the function used to create default instances.
func WithConstructor(fn func() any) Option {
	return func(t *Type) { t.New = fn }
}

// Module is an in-memory Source populated through explicit registration.
type Module struct {
	name  string
	mu    sync.RWMutex
	types map[string]*Type
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{
		name:  name,
		types: make(map[string]*Type),
	}
}

// Register adds the Go type T under the given fully-qualified name.
func Register[T any](m *Module, name string, opts ...Option) *Module {
	return m.RegisterType(name, reflect.TypeFor[T](), opts...)
}

// RegisterType adds rType under the given fully-qualified name. It panics
// if the name is empty or already registered in this module.
func (m *Module) RegisterType(name string, rType reflect.Type, opts ...Option) *Module {
	if name == "" || rType == nil {
		panic(fmt.Sprintf("module '%s': type name and reflect type are required", m.name))
	}
	t := &Type{Name: name, Module: m.name, Type: rType}
	for _, opt := range opts {
		opt(t)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.types[name]; exists {
		panic(fmt.Sprintf("type with name '%s' already registered in module '%s'", name, m.name))
	}
	slog.Debug("Registering type.", "module", m.name, "name", name, "go_type", rType.String())
	m.types[name] = t
	return m
}

// Name implements Source.
func (m *Module) Name() string { return m.name }

// Lookup implements Source.
func (m *Module) Lookup(fullName string) (*Type, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.types[fullName]
	return t, ok
}

// Types implements Source. The result is sorted by name.
func (m *Module) Types() ([]*Type, error) {
	m.mu.RLock()
	out := make([]*Type, 0, len(m.types))
	for _, t := range m.types {
		out = append(out, t)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Len returns the number of registered types.
func (m *Module) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.types)
}
