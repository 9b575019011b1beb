// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package object provides the managed object model: manual reference
// counting, named and typed parameters, a class factory, structural equality
// and deep clone.
//
// A class embeds Base, calls Init and registers its parameters:
//
//	type Scaler struct {
//	    object.Base
//	    factor float64
//	}
//
//	func NewScaler() *Scaler {
//	    s := &Scaler{factor: 1}
//	    s.Init(s, "Scaler")
//	    object.Register(&s.Base, "factor", &s.factor, "scale factor", object.Hyperparameter)
//	    return s
//	}
//
// Objects start with one reference held by the creator. Ref shares, Unref
// gives a reference back and the last Unref destroys the object, releasing
// container and object parameters.
package object

import (
	"github.com/rs/zerolog"

	internalobject "github.com/born-ml/shogun/internal/object"
)

// Core types.
type (
	// Object is a reference-counted managed object.
	Object = internalobject.Object
	// Base implements Object; embed it and call Init.
	Base = internalobject.Base
	// Destroyer is called once when an object is destroyed.
	Destroyer = internalobject.Destroyer
	// State is the lifecycle state of an object.
	State = internalobject.State
	// Slot holds a counted reference to another object.
	Slot[T Object] = internalobject.Slot[T]
)

// Lifecycle states.
const (
	Constructed State = internalobject.Constructed
	Referenced  State = internalobject.Referenced
	Destroyed   State = internalobject.Destroyed
)

// Parameter metadata.
type (
	// Property flags a parameter.
	Property = internalobject.Property
	// Kind classifies how a parameter stores its value.
	Kind = internalobject.Kind
	// ParamInfo describes a registered parameter.
	ParamInfo = internalobject.ParamInfo
)

// Parameter properties.
const (
	ReadOnly       Property = internalobject.ReadOnly
	Hyperparameter Property = internalobject.Hyperparameter
	Gradient       Property = internalobject.Gradient
	Model          Property = internalobject.Model
	Constraint     Property = internalobject.Constraint
)

// Parameter kinds.
const (
	KindValue     Kind = internalobject.KindValue
	KindContainer Kind = internalobject.KindContainer
	KindObject    Kind = internalobject.KindObject
	KindComputed  Kind = internalobject.KindComputed
	KindOption    Kind = internalobject.KindOption
)

// Capabilities implemented by the built-in classes.
type (
	Features    = internalobject.Features
	DotFeatures = internalobject.DotFeatures
	Labels      = internalobject.Labels
	Kernel      = internalobject.Kernel
	HasKernel   = internalobject.HasKernel
	Machine     = internalobject.Machine
	Tokenizer   = internalobject.Tokenizer
)

// Factory types.
type (
	// Constructor returns a new instance holding one reference.
	Constructor = internalobject.Constructor
	// Registry maps class names to constructors.
	Registry = internalobject.Registry
)

// Register binds the field at ptr as a settable parameter.
func Register[T any](b *Base, name string, ptr *T, description string, props ...Property) {
	internalobject.Register(b, name, ptr, description, props...)
}

// RegisterObject binds a member slot as an object parameter.
func RegisterObject[T Object](b *Base, name string, slot *Slot[T], description string, props ...Property) {
	internalobject.RegisterObject(b, name, slot, description, props...)
}

// RegisterFunc binds a computed, read-only parameter.
func RegisterFunc[T any](b *Base, name string, fn func() T, description string, props ...Property) {
	internalobject.RegisterFunc(b, name, fn, description, props...)
}

// RegisterOptions binds an int field that may be put by option name.
func RegisterOptions(b *Base, name string, ptr *int, options map[string]int, description string, props ...Property) {
	internalobject.RegisterOptions(b, name, ptr, options, description, props...)
}

// Has reports whether o has a parameter called name.
func Has(o Object, name string) bool {
	return internalobject.Has(o, name)
}

// HasTyped reports whether o has a parameter called name of type T.
func HasTyped[T any](o Object, name string) bool {
	return internalobject.HasTyped[T](o, name)
}

// Get reads parameter name as T.
func Get[T any](o Object, name string) (T, error) {
	return internalobject.Get[T](o, name)
}

// Put writes v to parameter name.
func Put[T any](o Object, name string, v T) error {
	return internalobject.Put(o, name, v)
}

// OptionName returns the option name of the current value of name.
func OptionName(o Object, name string) (string, error) {
	return internalobject.OptionName(o, name)
}

// Options lists the option names of parameter name.
func Options(o Object, name string) ([]string, error) {
	return internalobject.Options(o, name)
}

// NewRegistry creates an empty registry. A nil logger uses the default.
func NewRegistry(logger *zerolog.Logger) *Registry {
	return internalobject.NewRegistry(logger)
}

// DefaultRegistry returns the process registry holding the built-in classes.
func DefaultRegistry() *Registry {
	return internalobject.DefaultRegistry()
}

// Create instantiates name from r as a T. A nil registry uses the default.
func Create[T Object](r *Registry, name string) (T, error) {
	return internalobject.Create[T](r, name)
}

// Equals reports whether a and b are structurally equal.
func Equals(a, b Object) bool {
	return internalobject.Equals(a, b)
}

// Clone deep-copies o through r. A nil registry uses the default.
func Clone(r *Registry, o Object) (Object, error) {
	return internalobject.Clone(r, o)
}
