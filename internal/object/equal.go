package object

import (
	"reflect"

	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/sg"
)

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

type pair struct{ a, b Object }

// Equals reports whether a and b are instances of the same class with equal
// parameters. Containers compare by contents and object parameters compare
// recursively. Two nil objects are equal; nil never equals an object.
func Equals(a, b Object) bool {
	return equals(a, b, make(map[pair]bool))
}

func equals(a, b Object, seen map[pair]bool) bool {
	na, nb := isNil(a), isNil(b)
	if na || nb {
		return na && nb
	}
	if a == b {
		return true
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) || a.Name() != b.Name() {
		return false
	}
	k := pair{a, b}
	if seen[k] {
		return true
	}
	seen[k] = true

	pa, pb := a.Params(), b.Params()
	if len(pa) != len(pb) {
		return false
	}
	for i := range pa {
		if pa[i].Name != pb[i].Name || !valuesEqual(pa[i].Value, pb[i].Value, seen) {
			return false
		}
	}
	return true
}

func valuesEqual(x, y any, seen map[pair]bool) bool {
	nx, ny := isNil(x), isNil(y)
	if nx || ny {
		return nx && ny
	}
	switch xv := x.(type) {
	case Object:
		yv, ok := y.(Object)
		return ok && equals(xv, yv, seen)
	case sg.Dense:
		yv, ok := y.(sg.Dense)
		return ok && reflect.TypeOf(x) == reflect.TypeOf(y) && xv.EqualContents(yv)
	default:
		return reflect.DeepEqual(x, y)
	}
}

// Clone creates a new instance of o's class through r and copies every
// settable parameter. Containers are cloned and object parameters are
// cloned recursively. A nil registry uses DefaultRegistry.
func Clone(r *Registry, o Object) (Object, error) {
	if isNil(o) {
		return nil, errors.Wrap(errors.ErrInvalidArgument, "object: clone of nil")
	}
	if r == nil {
		r = DefaultRegistry()
	}
	c, err := r.New(o.Name())
	if err != nil {
		return nil, err
	}

	src := o.base()
	dst := c.base()
	src.mu.RLock()
	params := src.params
	src.mu.RUnlock()

	for _, p := range params {
		if p.set == nil {
			continue
		}
		q, err := dst.lookup(p.name)
		if err != nil {
			c.Unref()
			return nil, err
		}
		if err := cloneParam(r, p, q); err != nil {
			c.Unref()
			return nil, errors.Wrapf(err, "object: clone %s.%s", o.Name(), p.name)
		}
	}
	return c, nil
}

func cloneParam(r *Registry, from, to *param) error {
	v := from.get()
	switch {
	case isNil(v):
		return to.set(v)
	case from.kind == KindContainer:
		d, err := v.(sg.Dense).CloneDense()
		if err != nil {
			return err
		}
		defer d.(releaser).Release()
		return to.set(d)
	case from.kind == KindObject:
		child, err := Clone(r, v.(Object))
		if err != nil {
			return err
		}
		defer child.Unref()
		return to.set(child)
	default:
		return to.set(v)
	}
}

type releaser interface{ Release() }
