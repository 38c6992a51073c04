package resolver

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/vk/avrotype/internal/typename"
	"github.com/vk/avrotype/registry"
	"golang.org/x/sync/singleflight"
)

// Scanner finds registered types by normalized name. *registry.Registry is
// the standard implementation.
type Scanner interface {
	Find(name string) (*registry.Type, error)
}

// Resolver maps schemas and type names to handles, caching every name it
// resolves successfully for the lifetime of the resolver.
type Resolver struct {
	scanner Scanner
	logger  *slog.Logger

	cache  sync.Map // normalized name -> *Handle
	flight singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
	scans  atomic.Int64
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// New creates a resolver with an empty cache over scanner.
func New(scanner Scanner, opts ...Option) *Resolver {
	r := &Resolver{
		scanner: scanner,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultResolver *Resolver
)

// Default returns the process-wide resolver backed by registry.Default().
func Default() *Resolver {
	defaultOnce.Do(func() {
		defaultResolver = New(registry.Default())
	})
	return defaultResolver
}

// Stats is a snapshot of cache activity.
type Stats struct {
	Hits   int64
	Misses int64
	// Scans counts calls into the Scanner, successful or not.
	Scans int64
}

// Stats returns the current cache counters.
func (r *Resolver) Stats() Stats {
	return Stats{Hits: r.hits.Load(), Misses: r.misses.Load(), Scans: r.scans.Load()}
}

// Resolve returns the handle for a type name. Names are normalized first,
// so "Nullable<int32>", "int32?" and "*int32" share one cache entry.
// Composite names resolve their element and wrap it. Failures are never
// cached: a later call scans again.
func (r *Resolver) Resolve(raw string) (*Handle, error) {
	name := typename.Normalize(raw)
	if h, ok := r.cache.Load(name); ok {
		r.hits.Add(1)
		return h.(*Handle), nil
	}
	r.misses.Add(1)

	v, err, _ := r.flight.Do(name, func() (any, error) {
		// Another flight for this name may have completed between the
		// lookup above and joining this one.
		if h, ok := r.cache.Load(name); ok {
			return h, nil
		}
		h, err := r.compute(name)
		if err != nil {
			return nil, err
		}
		actual, _ := r.cache.LoadOrStore(name, h)
		return actual, nil
	})
	if err != nil {
		r.logger.Debug("Type resolution failed.", "name", name, "error", err)
		return nil, err
	}
	return v.(*Handle), nil
}

// aliasTargeter is implemented by scanners that know type aliases, such as
// *registry.Registry. Aliases are applied before composite names are split,
// so both an alias key and its target may be composite.
type aliasTargeter interface {
	AliasTarget(name string) (string, bool, error)
}

func (r *Resolver) compute(name string) (*Handle, error) {
	if a, ok := r.scanner.(aliasTargeter); ok {
		target, aliased, err := a.AliasTarget(name)
		if err != nil {
			return nil, err
		}
		if aliased && target != name {
			r.logger.Debug("Following type alias.", "name", name, "target", target)
			return r.Resolve(target)
		}
	}

	prefix, elemName := typename.Split(name)
	if prefix != typename.None {
		elem, err := r.Resolve(elemName)
		if err != nil {
			return nil, err
		}
		switch prefix {
		case typename.Pointer:
			return Wrap(elem, Optional), nil
		case typename.Slice:
			return Wrap(elem, List), nil
		default:
			return Wrap(elem, Map), nil
		}
	}

	r.scans.Add(1)
	t, err := r.scanner.Find(name)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, &NotFoundError{Name: name}
	}
	h := fromRegistry(t)
	r.logger.Debug("Type resolved.", "name", name, "type", h.Name(), "module", t.Module)
	return h, nil
}
