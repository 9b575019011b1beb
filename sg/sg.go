// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package sg

import internalsg "github.com/born-ml/shogun/internal/sg"

// Type constraints for container elements.
type (
	// Element is every Go type a container can hold.
	Element = internalsg.Element
	// Numeric is every Element except bool.
	Numeric = internalsg.Numeric
	// Real is the ordered numeric types.
	Real = internalsg.Real
	// Float is float32 and float64.
	Float = internalsg.Float
)

// PType is the runtime element type tag of a container.
type PType = internalsg.PType

// Element type tags.
const (
	Undefined  PType = internalsg.Undefined
	Bool       PType = internalsg.Bool
	Char       PType = internalsg.Char
	Int8       PType = internalsg.Int8
	Uint8      PType = internalsg.Uint8
	Int16      PType = internalsg.Int16
	Uint16     PType = internalsg.Uint16
	Int32      PType = internalsg.Int32
	Uint32     PType = internalsg.Uint32
	Int64      PType = internalsg.Int64
	Uint64     PType = internalsg.Uint64
	Float32    PType = internalsg.Float32
	Float64    PType = internalsg.Float64
	Complex128 PType = internalsg.Complex128
)

// Device is where container data lives.
type Device = internalsg.Device

// Devices.
const (
	CPU Device = internalsg.CPU
	GPU Device = internalsg.GPU
)

// Container types.
type (
	// Vector is a reference-counted one-dimensional container.
	Vector[T Element] = internalsg.Vector[T]
	// Matrix is a reference-counted column-major container.
	Matrix[T Element] = internalsg.Matrix[T]
	// Dense is the type-erased view used by backends.
	Dense = internalsg.Dense
	// Container is a Dense with typed element access.
	Container[T Element] = internalsg.Container[T]
	// GPUMemory is device memory owned by a GPU backend.
	GPUMemory = internalsg.GPUMemory
)

// Allocation accounting.
type (
	// Allocator admits and frees owned storage.
	Allocator = internalsg.Allocator
	// TrackingAllocator counts live bytes under an optional limit.
	TrackingAllocator = internalsg.TrackingAllocator
	// AllocStats is a TrackingAllocator snapshot.
	AllocStats = internalsg.AllocStats
	// Option configures container construction.
	Option = internalsg.Option
)

// NewVector allocates a zeroed vector of n elements.
func NewVector[T Element](n int, opts ...Option) (*Vector[T], error) {
	return internalsg.NewVector[T](n, opts...)
}

// EmptyVector returns a zero-length vector without storage.
func EmptyVector[T Element]() *Vector[T] {
	return internalsg.EmptyVector[T]()
}

// VectorFrom copies values into a new vector.
func VectorFrom[T Element](values ...T) (*Vector[T], error) {
	return internalsg.VectorFrom(values...)
}

// WrapVector wraps the first n elements of data. With take the vector owns
// data; otherwise it borrows and never frees it.
func WrapVector[T Element](data []T, n int, take bool, opts ...Option) (*Vector[T], error) {
	return internalsg.WrapVector(data, n, take, opts...)
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix[T Element](rows, cols int, opts ...Option) (*Matrix[T], error) {
	return internalsg.NewMatrix[T](rows, cols, opts...)
}

// EmptyMatrix returns a 0x0 matrix without storage.
func EmptyMatrix[T Element]() *Matrix[T] {
	return internalsg.EmptyMatrix[T]()
}

// MatrixFromRows copies row-major nested slices into a new matrix.
func MatrixFromRows[T Element](rows [][]T, opts ...Option) (*Matrix[T], error) {
	return internalsg.MatrixFromRows(rows, opts...)
}

// WrapMatrix wraps column-major data as a rows x cols matrix.
func WrapMatrix[T Element](data []T, rows, cols int, take bool, opts ...Option) (*Matrix[T], error) {
	return internalsg.WrapMatrix(data, rows, cols, take, opts...)
}

// PTypeOf returns the tag for T.
func PTypeOf[T Element]() PType {
	return internalsg.PTypeOf[T]()
}

// NewTrackingAllocator creates an allocator; limit <= 0 means unlimited.
func NewTrackingAllocator(limit int64) *TrackingAllocator {
	return internalsg.NewTrackingAllocator(limit)
}

// DefaultAllocator returns the process allocator.
func DefaultAllocator() Allocator {
	return internalsg.DefaultAllocator()
}

// SetDefaultAllocator replaces the process allocator.
func SetDefaultAllocator(a Allocator) {
	internalsg.SetDefaultAllocator(a)
}

// WithAllocator makes a constructor reserve from a.
func WithAllocator(a Allocator) Option {
	return internalsg.WithAllocator(a)
}
