package sg

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/born-ml/shogun/internal/errors"
)

// Vector is a handle to a contiguous run of elements in shared storage.
//
// Handles created by Alias or Matrix.Column share storage with their
// source: writes through one are visible through all of them. Clone is the
// only way to obtain independent storage. Each handle must be released
// once; the last release frees owned storage.
type Vector[T Element] struct {
	st       *storage[T]
	offset   int
	n        int
	released atomic.Bool
}

// NewVector allocates a zeroed, owned vector of n elements.
func NewVector[T Element](n int, opts ...Option) (*Vector[T], error) {
	st, err := newOwnedStorage[T](n, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Vector[T]{st: st, n: n}, nil
}

// EmptyVector returns a vector of length 0 without storage.
func EmptyVector[T Element]() *Vector[T] {
	return &Vector[T]{}
}

// WrapVector wraps the first n elements of data. With take set the vector
// owns data and accounts for it; otherwise data is borrowed and the caller
// must keep it alive for as long as any alias exists.
func WrapVector[T Element](data []T, n int, take bool, opts ...Option) (*Vector[T], error) {
	if n < 0 {
		return nil, errors.Invalidf("sg: negative length %d", n)
	}
	if n > len(data) {
		return nil, errors.Invalidf("sg: cannot wrap %d elements from a buffer of %d", n, len(data))
	}
	if n == 0 && data == nil {
		return EmptyVector[T](), nil
	}
	st, err := wrapStorage(data[:n:n], take, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Vector[T]{st: st, n: n}, nil
}

// VectorFrom returns an owned vector holding a copy of values.
func VectorFrom[T Element](values ...T) (*Vector[T], error) {
	v, err := NewVector[T](len(values))
	if err != nil {
		return nil, err
	}
	copy(v.st.data, values)
	return v, nil
}

func (v *Vector[T]) live() {
	if v.released.Load() {
		panic(errors.Wrap(errors.ErrReleased, "vector"))
	}
}

// Alias returns a new handle sharing v's storage.
func (v *Vector[T]) Alias() *Vector[T] {
	v.live()
	if v.st == nil {
		return EmptyVector[T]()
	}
	v.st.retain()
	return &Vector[T]{st: v.st, offset: v.offset, n: v.n}
}

// Clone returns an owned copy with independent storage.
func (v *Vector[T]) Clone(opts ...Option) (*Vector[T], error) {
	v.live()
	if v.OnGPU() {
		return nil, errors.Wrap(errors.ErrOnGPU, "clone")
	}
	c, err := NewVector[T](v.n, v.inherit(opts)...)
	if err != nil {
		return nil, err
	}
	copy(c.st.data, v.Data())
	return c, nil
}

// CloneDense implements Dense.
func (v *Vector[T]) CloneDense() (Dense, error) {
	c, err := v.Clone()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// inherit prepends v's allocator so copies are accounted where v was.
func (v *Vector[T]) inherit(opts []Option) []Option {
	if v.st != nil && v.st.alloc != nil {
		return append([]Option{WithAllocator(v.st.alloc)}, opts...)
	}
	return opts
}

// Release drops this handle's reference. Further calls are no-ops.
func (v *Vector[T]) Release() {
	if !v.released.CompareAndSwap(false, true) {
		return
	}
	if v.st != nil {
		v.st.release()
	}
}

// Released reports whether Release was called on this handle.
func (v *Vector[T]) Released() bool { return v.released.Load() }

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.n }

// Rows returns Len.
func (v *Vector[T]) Rows() int { return v.n }

// Cols returns 1.
func (v *Vector[T]) Cols() int { return 1 }

// PType returns the element type tag.
func (v *Vector[T]) PType() PType { return PTypeOf[T]() }

// Owns reports whether the storage is freed by the last alias.
func (v *Vector[T]) Owns() bool { return v.st != nil && v.st.owns }

// RefCount returns the number of live handles sharing the storage.
func (v *Vector[T]) RefCount() int64 {
	if v.st == nil {
		return 0
	}
	return v.st.refs.Count()
}

// OnGPU reports whether the data lives in GPU memory.
func (v *Vector[T]) OnGPU() bool { return v.st != nil && v.st.gpu != nil }

// Device returns where the data lives.
func (v *Vector[T]) Device() Device {
	if v.OnGPU() {
		return GPU
	}
	return CPU
}

// GPUMemory returns the device memory of a GPU vector.
func (v *Vector[T]) GPUMemory() GPUMemory {
	if v.st == nil {
		return nil
	}
	return v.st.gpu
}

// Data returns the elements. It panics for GPU-resident vectors.
func (v *Vector[T]) Data() []T {
	v.live()
	if v.st == nil {
		return nil
	}
	if v.st.gpu != nil {
		panic(errors.Wrap(errors.ErrOnGPU, "vector data"))
	}
	return v.st.data[v.offset : v.offset+v.n : v.offset+v.n]
}

func (v *Vector[T]) check(i int) error {
	if v.released.Load() {
		return errors.Wrap(errors.ErrReleased, "vector")
	}
	if i < 0 || i >= v.n {
		return errors.NewIndexError([]int{i}, []int{v.n})
	}
	if v.OnGPU() {
		return errors.Wrap(errors.ErrOnGPU, "vector access")
	}
	return nil
}

// At returns element i. Out-of-range indices panic with an *errors.IndexError.
func (v *Vector[T]) At(i int) T {
	if err := v.check(i); err != nil {
		panic(err)
	}
	return v.st.data[v.offset+i]
}

// Set assigns element i. Out-of-range indices panic with an *errors.IndexError.
func (v *Vector[T]) Set(i int, x T) {
	if err := v.check(i); err != nil {
		panic(err)
	}
	v.st.data[v.offset+i] = x
}

// Get is At returning an error instead of panicking.
func (v *Vector[T]) Get(i int) (T, error) {
	if err := v.check(i); err != nil {
		var zero T
		return zero, err
	}
	return v.st.data[v.offset+i], nil
}

// Put is Set returning an error instead of panicking.
func (v *Vector[T]) Put(i int, x T) error {
	if err := v.check(i); err != nil {
		return err
	}
	v.st.data[v.offset+i] = x
	return nil
}

// Fill sets every element to x.
func (v *Vector[T]) Fill(x T) {
	data := v.Data()
	for i := range data {
		data[i] = x
	}
}

// Zero sets every element to the zero value.
func (v *Vector[T]) Zero() {
	clear(v.Data())
}

// Equals reports whether other has the same length and elements.
func (v *Vector[T]) Equals(other *Vector[T]) bool {
	if other == nil {
		return false
	}
	return equalContents[T](v, other)
}

// EqualContents implements Dense.
func (v *Vector[T]) EqualContents(other Dense) bool {
	return equalContents[T](v, other)
}

// CopyTo implements Dense.
func (v *Vector[T]) CopyTo(dst any) error {
	if v.OnGPU() {
		return v.st.gpu.Download(dst)
	}
	return copyTo(v.Data(), dst)
}

// AttachGPU returns a GPU-resident vector of the same length backed by mem.
// The new vector owns mem.
func (v *Vector[T]) AttachGPU(mem GPUMemory) (*Vector[T], error) {
	if mem.PType() != v.PType() {
		return nil, errors.NewTypeMismatch("attach gpu", "", v.PType().String(), mem.PType().String())
	}
	if mem.Len() != v.n {
		return nil, errors.NewShapeError("attach gpu", []int{v.n}, []int{mem.Len()})
	}
	return &Vector[T]{st: gpuStorage[T](mem), n: v.n}, nil
}

// NewHostLike allocates a zeroed CPU vector of the same length.
func (v *Vector[T]) NewHostLike() (*Vector[T], error) {
	return NewVector[T](v.n, v.inherit(nil)...)
}

// String formats the vector for debugging.
func (v *Vector[T]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Vector[%s](%d)", v.PType(), v.n)
	switch {
	case v.released.Load():
		sb.WriteString("<released>")
	case v.OnGPU():
		fmt.Fprintf(&sb, "@GPU(%s)", v.st.gpu.Backend())
	default:
		fmt.Fprintf(&sb, "%v", v.Data())
	}
	return sb.String()
}
