package sg

import (
	"fmt"

	"github.com/born-ml/shogun/internal/errors"
)

// Device is where container data lives.
type Device int

// Supported devices.
const (
	CPU Device = iota
	GPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case GPU:
		return "GPU"
	default:
		return "Unknown"
	}
}

// GPUMemory is device memory owned by a GPU backend.
type GPUMemory interface {
	// Backend names the engine that allocated the memory.
	Backend() string
	Len() int
	PType() PType
	// Download copies the contents into dst, a []T matching PType.
	Download(dst any) error
	// Release frees the device memory. Called once by the last alias.
	Release()
}

// Dense is the type-erased view of a Vector or Matrix used by backends.
// Vectors report Rows() == Len() and Cols() == 1.
type Dense interface {
	PType() PType
	Len() int
	Rows() int
	Cols() int
	Device() Device
	OnGPU() bool
	// GPUMemory returns the device memory, nil for CPU containers.
	GPUMemory() GPUMemory
	EqualContents(other Dense) bool
	// CloneDense returns an independent CPU copy of a CPU container.
	CloneDense() (Dense, error)
	// CopyTo copies the contents into dst, a []T of the same element type
	// and at least Len() long.
	CopyTo(dst any) error
}

// Container is a Dense with typed access to its elements.
type Container[T Element] interface {
	Dense
	Data() []T
}

// Elements returns the typed CPU data of d.
func Elements[T Element](d Dense) ([]T, error) {
	c, ok := d.(Container[T])
	if !ok {
		return nil, errors.NewTypeMismatch("elements", "", PTypeOf[T]().String(), d.PType().String())
	}
	if c.OnGPU() {
		return nil, errors.Wrap(errors.ErrOnGPU, "elements")
	}
	return c.Data(), nil
}

// Shape returns {Rows, Cols}.
func Shape(d Dense) []int {
	return []int{d.Rows(), d.Cols()}
}

// SameShape reports whether a and b have equal extents.
func SameShape(a, b Dense) bool {
	return a.Rows() == b.Rows() && a.Cols() == b.Cols()
}

func copyTo[T Element](src []T, dst any) error {
	d, ok := dst.([]T)
	if !ok {
		return errors.NewTypeMismatch("copy", "", fmt.Sprintf("%T", dst), fmt.Sprintf("%T", src))
	}
	if len(d) < len(src) {
		return errors.NewShapeError("copy", []int{len(src)}, []int{len(d)})
	}
	copy(d, src)
	return nil
}

func equalData[T Element](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalContents[T Element](self Container[T], other Dense) bool {
	if other == nil || self.OnGPU() || other.OnGPU() || !SameShape(self, other) {
		return false
	}
	data, err := Elements[T](other)
	if err != nil {
		return false
	}
	return equalData(self.Data(), data)
}
