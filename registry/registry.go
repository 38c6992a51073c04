package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/vk/avrotype/internal/typename"
)

// Registry orders type sources and searches them by name.
type Registry struct {
	mu        sync.RWMutex
	core      Source
	preferred string
	sources   []Source
	byName    map[string]Source
	aliases   map[string]string
	logger    *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for scan diagnostics.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) { r.logger = logger }
}

// WithPreferred designates the source searched before the core source.
func WithPreferred(name string) RegistryOption {
	return func(r *Registry) { r.preferred = name }
}

// New creates a registry around the core source. A nil core uses Core().
func New(core Source, opts ...RegistryOption) *Registry {
	if core == nil {
		core = Core()
	}
	r := &Registry{
		core:    core,
		byName:  map[string]Source{core.Name(): core},
		aliases: make(map[string]string),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load makes src available to subsequent searches. It panics if a source
// with the same name is already loaded.
func (r *Registry) Load(src Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[src.Name()]; exists {
		panic(fmt.Sprintf("source with name '%s' already loaded", src.Name()))
	}
	r.logger.Debug("Loading type source.", "source", src.Name())
	r.byName[src.Name()] = src
	r.sources = append(r.sources, src)
}

// SetPreferred designates the source searched before the core source. An
// empty name clears the preference.
func (r *Registry) SetPreferred(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preferred = name
}

// Alias makes searches for from behave as searches for to. Both names are
// normalized, so either side may use a container spelling such as "T?".
//
// Resolvers cache what they resolve: an alias must be registered before
// its name is first resolved, or that resolver keeps the earlier result.
func (r *Registry) Alias(from, to string) {
	from, to = typename.Normalize(from), typename.Normalize(to)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger.Debug("Registering alias.", "from", from, "to", to)
	r.aliases[from] = to
}

// AliasTarget returns the name an alias points to, following chains of
// aliases. It fails when an alias reaches itself, either directly or
// through the element of a container name such as "[]T".
func (r *Registry) AliasTarget(name string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	target, ok := r.aliases[name]
	if !ok {
		return name, false, nil
	}
	if r.aliasLoop(name, map[string]bool{}) {
		return "", false, fmt.Errorf("alias '%s' refers back to itself", name)
	}
	for {
		next, ok := r.aliases[target]
		if !ok {
			return target, true, nil
		}
		target = next
	}
}

func (r *Registry) aliasLoop(name string, path map[string]bool) bool {
	if path[name] {
		return true
	}
	target, ok := r.aliases[name]
	if !ok {
		return false
	}
	path[name] = true
	defer delete(path, name)
	for next := target; ; {
		if r.aliasLoop(next, path) {
			return true
		}
		prefix, elem := typename.Split(next)
		if prefix == typename.None {
			return false
		}
		next = elem
	}
}

// Source returns the loaded source with the given name.
func (r *Registry) Source(name string) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src, ok := r.byName[name]
	return src, ok
}

// Sources returns the core source followed by the loaded sources in load
// order.
func (r *Registry) Sources() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Source, 0, len(r.sources)+1)
	out = append(out, r.core)
	return append(out, r.sources...)
}

// Find searches for name. The search order is:
//
//  1. the preferred source, by exact fully-qualified name, when one is set,
//     loaded and distinct from the core source;
//  2. the core source, by exact fully-qualified name;
//  3. every loaded source in load order. A fully-qualified match wins over
//     simple-name matches; a simple name declared by more than one source is
//     rejected with an AmbiguousError.
//
// Sources that fail to enumerate their types are logged and skipped.
func (r *Registry) Find(name string) (*Type, error) {
	target, aliased, err := r.AliasTarget(name)
	if err != nil {
		return nil, err
	}
	if aliased {
		name = target
	}

	r.mu.RLock()
	preferred := r.byName[r.preferred]
	if r.preferred == "" || r.preferred == r.core.Name() {
		preferred = nil
	}
	core := r.core
	loaded := append([]Source(nil), r.sources...)
	r.mu.RUnlock()

	if preferred != nil {
		if t, ok := preferred.Lookup(name); ok {
			return t, nil
		}
	}
	if t, ok := core.Lookup(name); ok {
		return t, nil
	}

	var bySimple []*Type
	for _, src := range loaded {
		types, err := src.Types()
		if err != nil {
			r.logger.Warn("Skipping type source that failed to enumerate.", "source", src.Name(), "error", err)
			continue
		}
		for _, t := range types {
			switch {
			case t.Name == name:
				return t, nil
			case t.SimpleName() == name:
				bySimple = append(bySimple, t)
			}
		}
	}

	switch len(bySimple) {
	case 0:
		return nil, &NotFoundError{Name: name}
	case 1:
		return bySimple[0], nil
	default:
		candidates := make([]string, 0, len(bySimple))
		for _, t := range bySimple {
			candidates = append(candidates, t.Module+":"+t.Name)
		}
		return nil, &AmbiguousError{Name: name, Candidates: candidates}
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry. Generated registration code
// loads its sources here.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New(Core())
	})
	return defaultRegistry
}
