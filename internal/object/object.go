// Package object implements the reference-counted, introspectable object
// model: an embeddable Base, typed parameter registration, counted member
// slots, a factory keyed by class name, and structural equality and clone.
package object

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/log"
	"github.com/born-ml/shogun/internal/refcount"
)

// State is the lifecycle state of an object.
type State int32

const (
	// Constructed objects are held only by their creator.
	Constructed State = iota
	// Referenced objects have been shared at least once.
	Referenced
	// Destroyed objects have released their resources. Terminal.
	Destroyed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Constructed:
		return "constructed"
	case Referenced:
		return "referenced"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Object is implemented by every type that embeds Base.
type Object interface {
	Name() string
	ID() uuid.UUID
	Ref() int64
	Unref() int64
	RefCount() int64
	State() State
	Params() []ParamInfo
	String() string

	base() *Base
}

// Destroyer is implemented by objects that hold resources beyond their
// registered parameters. Destroy runs once, after parameters are released.
type Destroyer interface {
	Destroy()
}

// Base carries identity, the reference count and the parameter registry.
// Embed it and call Init from the constructor.
type Base struct {
	self  Object
	name  string
	id    uuid.UUID
	refs  refcount.RefCount
	state atomic.Int32

	mu     sync.RWMutex
	params []*param
	index  map[string]*param

	hooks []func()
}

// Init binds the base to its embedding object. The reference count starts
// at 1, owned by the caller.
func (b *Base) Init(self Object, name string) {
	if self == nil || self.base() != b {
		panic(errors.AssertionFailedf("object: Init(%s) with a foreign self", name))
	}
	b.self = self
	b.name = name
	b.id = uuid.New()
	b.index = make(map[string]*param)
	b.refs.Ref()
	b.state.Store(int32(Constructed))
}

func (b *Base) base() *Base { return b }

// Name returns the class name used by the factory.
func (b *Base) Name() string { return b.name }

// ID returns the instance identifier.
func (b *Base) ID() uuid.UUID { return b.id }

// State returns the lifecycle state.
func (b *Base) State() State { return State(b.state.Load()) }

// RefCount returns the number of owners.
func (b *Base) RefCount() int64 { return b.refs.Count() }

// Ref adds an owner and returns the new count. Referencing a destroyed
// object panics.
func (b *Base) Ref() int64 {
	n, ok := b.refs.TryRef()
	if !ok {
		panic(errors.AssertionFailedf("object: ref of destroyed %s %s", b.name, b.id))
	}
	b.state.CompareAndSwap(int32(Constructed), int32(Referenced))
	return n
}

// Unref drops an owner and returns the new count. The object is destroyed
// when the count reaches zero.
func (b *Base) Unref() int64 {
	n := b.refs.Unref()
	if n == 0 {
		b.destroy()
	}
	return n
}

// OnDestroy registers f to run when the object is destroyed. Hooks run in
// reverse registration order.
func (b *Base) OnDestroy(f func()) {
	b.mu.Lock()
	b.hooks = append(b.hooks, f)
	b.mu.Unlock()
}

func (b *Base) destroy() {
	if !b.state.CompareAndSwap(int32(Constructed), int32(Destroyed)) &&
		!b.state.CompareAndSwap(int32(Referenced), int32(Destroyed)) {
		panic(errors.AssertionFailedf("object: %s %s destroyed twice", b.name, b.id))
	}

	b.mu.RLock()
	params := slices.Clone(b.params)
	hooks := slices.Clone(b.hooks)
	b.mu.RUnlock()

	for _, p := range slices.Backward(params) {
		if p.release != nil {
			p.release()
		}
	}
	if d, ok := b.self.(Destroyer); ok {
		d.Destroy()
	}
	for _, h := range slices.Backward(hooks) {
		h()
	}

	log.Component("object").Debug().
		Str(log.ObjectKey, b.name).
		Str(log.ObjectIDKey, b.id.String()).
		Msg("destroyed")
}

// String returns "Name(id)".
func (b *Base) String() string {
	return fmt.Sprintf("%s(%s)", b.name, b.id)
}
