package object

import (
	"maps"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/log"
)

// Constructor creates a new instance with a reference count of 1.
type Constructor func() Object

// Registry maps class names to constructors.
type Registry struct {
	mu     sync.RWMutex
	ctors  map[string]Constructor
	logger *zerolog.Logger
}

// NewRegistry creates an empty registry. A nil logger uses the object
// component logger.
func NewRegistry(logger *zerolog.Logger) *Registry {
	if logger == nil {
		logger = log.Component("object")
	}
	return &Registry{ctors: make(map[string]Constructor), logger: logger}
}

var defaultRegistry = NewRegistry(nil)

// DefaultRegistry returns the process registry filled by class packages.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a constructor under name.
func (r *Registry) Register(name string, ctor Constructor) error {
	if name == "" || ctor == nil {
		return errors.Wrap(errors.ErrInvalidArgument, "object: register needs a name and a constructor")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.ctors[name]; dup {
		return errors.Wrapf(errors.ErrDuplicateClass, "object: %s", name)
	}
	r.ctors[name] = ctor
	r.logger.Debug().Str(log.ObjectKey, name).Msg("class registered")
	return nil
}

// MustRegister is Register that panics on error. Use from init.
func (r *Registry) MustRegister(name string, ctor Constructor) {
	if err := r.Register(name, ctor); err != nil {
		panic(err)
	}
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[name]
	return ok
}

// Available returns the registered class names, sorted.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.ctors))
}

// New creates an instance of class name.
func (r *Registry) New(name string) (Object, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NewClassNotFound(name)
	}
	o := ctor()
	if isNil(o) {
		return nil, errors.AssertionFailedf("object: constructor for %s returned nil", name)
	}
	if o.Name() != name {
		o.Unref()
		return nil, errors.AssertionFailedf("object: constructor for %s built %s", name, o.Name())
	}
	return o, nil
}

// Create creates an instance of class name that implements T. A nil
// registry uses DefaultRegistry. When the class does not implement T the
// instance is released and ErrTypeMismatch is returned.
func Create[T Object](r *Registry, name string) (T, error) {
	var zero T
	if r == nil {
		r = DefaultRegistry()
	}
	o, err := r.New(name)
	if err != nil {
		return zero, err
	}
	t, ok := o.(T)
	if !ok {
		o.Unref()
		return zero, errors.NewTypeMismatch("create", name, typeName[T](), o.Name())
	}
	return t, nil
}
