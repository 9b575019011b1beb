package object

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/sg"
)

// Property flags describe how a parameter is used. They are stored and
// exposed; ReadOnly is advisory.
type Property uint8

// Parameter properties.
const (
	ReadOnly Property = 1 << iota
	Hyperparameter
	Gradient
	Model
	Constraint
)

var propertyNames = []string{"read_only", "hyperparameter", "gradient", "model", "constraint"}

// Has reports whether all flags in q are set.
func (p Property) Has(q Property) bool { return p&q == q }

// String lists the set flags, joined by "|".
func (p Property) String() string {
	var names []string
	for i, name := range propertyNames {
		if p&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Kind classifies how a parameter stores its value.
type Kind int

// Parameter kinds.
const (
	KindValue Kind = iota
	KindContainer
	KindObject
	KindComputed
	KindOption
)

// ParamInfo describes a registered parameter and its current value.
type ParamInfo struct {
	Name        string
	Description string
	Properties  Property
	Kind        Kind
	Type        reflect.Type
	Settable    bool
	Value       any
}

type param struct {
	name        string
	description string
	properties  Property
	kind        Kind
	typ         reflect.Type

	get     func() any
	set     func(v any) error
	release func()

	options map[string]int
}

func (p *param) info() ParamInfo {
	return ParamInfo{
		Name:        p.name,
		Description: p.description,
		Properties:  p.properties,
		Kind:        p.kind,
		Type:        p.typ,
		Settable:    p.set != nil,
		Value:       p.get(),
	}
}

func combine(props ...Property) Property {
	var out Property
	for _, p := range props {
		out |= p
	}
	return out
}

func (b *Base) add(p *param) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.index == nil {
		panic(errors.AssertionFailedf("object: register %q before Init", p.name))
	}
	if _, dup := b.index[p.name]; dup {
		panic(errors.AssertionFailedf("object: %s registers %q twice", b.name, p.name))
	}
	b.index[p.name] = p
	b.params = append(b.params, p)
}

func (b *Base) lookup(name string) (*param, error) {
	b.mu.RLock()
	p, ok := b.index[name]
	b.mu.RUnlock()
	if !ok {
		return nil, errors.NewParameterError(b.name, name, errors.ErrParameterNotFound)
	}
	return p, nil
}

// aliaser is a container whose stored value is an alias of the caller's.
type aliaser[T any] interface {
	sg.Dense
	Alias() T
	Release()
}

// Register binds the field at ptr as a settable parameter. Container
// fields (*sg.Vector, *sg.Matrix) store an alias of the value put and
// release the previous one; the object releases the final value when it is
// destroyed.
func Register[T any](b *Base, name string, ptr *T, description string, props ...Property) {
	p := &param{
		name:        name,
		description: description,
		properties:  combine(props...),
		kind:        KindValue,
		typ:         reflect.TypeFor[T](),
		get:         func() any { return *ptr },
	}

	var zero T
	if _, ok := any(zero).(aliaser[T]); ok {
		p.kind = KindContainer
		p.set = func(v any) error {
			t, ok := v.(T)
			if !ok && v != nil {
				return mismatch(b, name, p.typ, v)
			}
			var next T
			if !isNil(t) {
				next = any(t).(aliaser[T]).Alias()
			}
			prev := *ptr
			*ptr = next
			if !isNil(prev) {
				any(prev).(aliaser[T]).Release()
			}
			return nil
		}
		p.release = func() {
			if prev := *ptr; !isNil(prev) {
				any(prev).(aliaser[T]).Release()
			}
		}
	} else {
		p.set = func(v any) error {
			t, ok := v.(T)
			if !ok {
				return mismatch(b, name, p.typ, v)
			}
			*ptr = t
			return nil
		}
	}
	b.add(p)
}

// RegisterObject binds a member slot as a parameter. Putting an object
// references it; the slot is cleared when the owner is destroyed.
func RegisterObject[T Object](b *Base, name string, slot *Slot[T], description string, props ...Property) {
	p := &param{
		name:        name,
		description: description,
		properties:  combine(props...),
		kind:        KindObject,
		typ:         reflect.TypeFor[T](),
		get:         func() any { return slot.Get() },
		release:     slot.Clear,
	}
	p.set = func(v any) error {
		if v == nil || isNil(v) {
			slot.Clear()
			return nil
		}
		t, ok := v.(T)
		if !ok {
			return mismatch(b, name, p.typ, v)
		}
		slot.Set(t)
		return nil
	}
	b.add(p)
}

// RegisterFunc binds a computed, read-only parameter.
func RegisterFunc[T any](b *Base, name string, fn func() T, description string, props ...Property) {
	b.add(&param{
		name:        name,
		description: description,
		properties:  combine(props...) | ReadOnly,
		kind:        KindComputed,
		typ:         reflect.TypeFor[T](),
		get:         func() any { return fn() },
	})
}

// RegisterOptions binds an int field that may also be put by option name.
// Values outside options are rejected with ErrInvalidOption.
func RegisterOptions(b *Base, name string, ptr *int, options map[string]int, description string, props ...Property) {
	opts := maps.Clone(options)
	p := &param{
		name:        name,
		description: description,
		properties:  combine(props...),
		kind:        KindOption,
		typ:         reflect.TypeFor[int](),
		get:         func() any { return *ptr },
		options:     opts,
	}
	p.set = func(v any) error {
		switch t := v.(type) {
		case string:
			n, ok := opts[t]
			if !ok {
				return errors.NewParameterError(b.name, name,
					errors.Wrapf(errors.ErrInvalidOption, "%q not in %v", t, slices.Sorted(maps.Keys(opts))))
			}
			*ptr = n
		case int:
			if !slices.Contains(slices.Collect(maps.Values(opts)), t) {
				return errors.NewParameterError(b.name, name,
					errors.Wrapf(errors.ErrInvalidOption, "%d is not an option value", t))
			}
			*ptr = t
		default:
			return mismatch(b, name, p.typ, v)
		}
		return nil
	}
	b.add(p)
}

func mismatch(b *Base, name string, want reflect.Type, got any) error {
	return errors.NewParameterError(b.name, name,
		errors.NewTypeMismatch("put", name, want.String(), fmt.Sprintf("%T", got)))
}

// isNil reports whether v is nil or a nil pointer, map, slice or func.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// Params returns the registered parameters in registration order.
func (b *Base) Params() []ParamInfo {
	b.mu.RLock()
	params := slices.Clone(b.params)
	b.mu.RUnlock()

	out := make([]ParamInfo, len(params))
	for i, p := range params {
		out[i] = p.info()
	}
	return out
}

// Has reports whether o has a parameter called name.
func Has(o Object, name string) bool {
	_, err := o.base().lookup(name)
	return err == nil
}

// HasTyped reports whether o has a parameter called name registered with
// type T.
func HasTyped[T any](o Object, name string) bool {
	p, err := o.base().lookup(name)
	return err == nil && p.typ == reflect.TypeFor[T]()
}

// Get returns the value of parameter name as T. Object parameters may be
// read as any interface their value implements.
func Get[T any](o Object, name string) (T, error) {
	var zero T
	p, err := o.base().lookup(name)
	if err != nil {
		return zero, err
	}
	v := p.get()
	if isNil(v) {
		want := reflect.TypeFor[T]()
		if want == p.typ || (p.kind == KindObject && want.Kind() == reflect.Interface) {
			return zero, nil
		}
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.NewParameterError(o.Name(), name,
			errors.NewTypeMismatch("get", name, reflect.TypeFor[T]().String(), p.typ.String()))
	}
	return t, nil
}

// Put sets parameter name to v.
func Put[T any](o Object, name string, v T) error {
	p, err := o.base().lookup(name)
	if err != nil {
		return err
	}
	if p.set == nil {
		return errors.NewParameterError(o.Name(), name, errors.ErrNotSettable)
	}
	return p.set(v)
}

// OptionName returns the option name of the current value of an options
// parameter.
func OptionName(o Object, name string) (string, error) {
	p, err := o.base().lookup(name)
	if err != nil {
		return "", err
	}
	if p.kind != KindOption {
		return "", errors.NewParameterError(o.Name(), name, errors.Wrap(errors.ErrInvalidOption, "not an options parameter"))
	}
	cur := p.get().(int)
	for k, v := range p.options {
		if v == cur {
			return k, nil
		}
	}
	return "", errors.NewParameterError(o.Name(), name, errors.Wrapf(errors.ErrInvalidOption, "value %d has no name", cur))
}

// Options returns the sorted option names of an options parameter.
func Options(o Object, name string) ([]string, error) {
	p, err := o.base().lookup(name)
	if err != nil {
		return nil, err
	}
	if p.kind != KindOption {
		return nil, errors.NewParameterError(o.Name(), name, errors.Wrap(errors.ErrInvalidOption, "not an options parameter"))
	}
	return slices.Sorted(maps.Keys(p.options)), nil
}
