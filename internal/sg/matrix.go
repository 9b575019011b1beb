package sg

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/born-ml/shogun/internal/errors"
)

// Matrix is a column-major rows x cols handle to shared storage.
// Element (i, j) lives at index i + j*rows. Aliasing, cloning and release
// follow the same rules as Vector.
type Matrix[T Element] struct {
	st       *storage[T]
	rows     int
	cols     int
	released atomic.Bool
}

func checkExtents(rows, cols int) (int, error) {
	if rows < 0 || cols < 0 {
		return 0, errors.Invalidf("sg: negative extents %dx%d", rows, cols)
	}
	if cols > 0 && rows > int(^uint(0)>>1)/cols {
		return 0, errors.NewOutOfMemory(-1, 0, 0)
	}
	return rows * cols, nil
}

// NewMatrix allocates a zeroed, owned rows x cols matrix.
func NewMatrix[T Element](rows, cols int, opts ...Option) (*Matrix[T], error) {
	n, err := checkExtents(rows, cols)
	if err != nil {
		return nil, err
	}
	st, err := newOwnedStorage[T](n, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Matrix[T]{st: st, rows: rows, cols: cols}, nil
}

// EmptyMatrix returns a 0x0 matrix without storage.
func EmptyMatrix[T Element]() *Matrix[T] {
	return &Matrix[T]{}
}

// WrapMatrix wraps column-major data as a rows x cols matrix. Ownership
// follows WrapVector.
func WrapMatrix[T Element](data []T, rows, cols int, take bool, opts ...Option) (*Matrix[T], error) {
	n, err := checkExtents(rows, cols)
	if err != nil {
		return nil, err
	}
	if n > len(data) {
		return nil, errors.Invalidf("sg: cannot wrap %dx%d elements from a buffer of %d", rows, cols, len(data))
	}
	if n == 0 && data == nil {
		return &Matrix[T]{rows: rows, cols: cols}, nil
	}
	st, err := wrapStorage(data[:n:n], take, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Matrix[T]{st: st, rows: rows, cols: cols}, nil
}

// MatrixFromRows builds an owned matrix from row slices, which must all
// have the same length.
func MatrixFromRows[T Element](rows [][]T, opts ...Option) (*Matrix[T], error) {
	r := len(rows)
	c := 0
	if r > 0 {
		c = len(rows[0])
	}
	for i, row := range rows {
		if len(row) != c {
			return nil, errors.Invalidf("sg: row %d has %d elements, want %d", i, len(row), c)
		}
	}
	m, err := NewMatrix[T](r, c, opts...)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		for j, x := range row {
			m.st.data[i+j*r] = x
		}
	}
	return m, nil
}

func (m *Matrix[T]) live() {
	if m.released.Load() {
		panic(errors.Wrap(errors.ErrReleased, "matrix"))
	}
}

// Alias returns a new handle sharing m's storage.
func (m *Matrix[T]) Alias() *Matrix[T] {
	m.live()
	if m.st != nil {
		m.st.retain()
	}
	return &Matrix[T]{st: m.st, rows: m.rows, cols: m.cols}
}

// Clone returns an owned copy with independent storage.
func (m *Matrix[T]) Clone(opts ...Option) (*Matrix[T], error) {
	m.live()
	if m.OnGPU() {
		return nil, errors.Wrap(errors.ErrOnGPU, "clone")
	}
	c, err := NewMatrix[T](m.rows, m.cols, m.inherit(opts)...)
	if err != nil {
		return nil, err
	}
	copy(c.st.data, m.Data())
	return c, nil
}

// CloneDense implements Dense.
func (m *Matrix[T]) CloneDense() (Dense, error) {
	c, err := m.Clone()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (m *Matrix[T]) inherit(opts []Option) []Option {
	if m.st != nil && m.st.alloc != nil {
		return append([]Option{WithAllocator(m.st.alloc)}, opts...)
	}
	return opts
}

// Release drops this handle's reference. Further calls are no-ops.
func (m *Matrix[T]) Release() {
	if !m.released.CompareAndSwap(false, true) {
		return
	}
	if m.st != nil {
		m.st.release()
	}
}

// Released reports whether Release was called on this handle.
func (m *Matrix[T]) Released() bool { return m.released.Load() }

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix[T]) Cols() int { return m.cols }

// Len returns Rows*Cols.
func (m *Matrix[T]) Len() int { return m.rows * m.cols }

// PType returns the element type tag.
func (m *Matrix[T]) PType() PType { return PTypeOf[T]() }

// Owns reports whether the storage is freed by the last alias.
func (m *Matrix[T]) Owns() bool { return m.st != nil && m.st.owns }

// RefCount returns the number of live handles sharing the storage.
func (m *Matrix[T]) RefCount() int64 {
	if m.st == nil {
		return 0
	}
	return m.st.refs.Count()
}

// OnGPU reports whether the data lives in GPU memory.
func (m *Matrix[T]) OnGPU() bool { return m.st != nil && m.st.gpu != nil }

// Device returns where the data lives.
func (m *Matrix[T]) Device() Device {
	if m.OnGPU() {
		return GPU
	}
	return CPU
}

// GPUMemory returns the device memory of a GPU matrix.
func (m *Matrix[T]) GPUMemory() GPUMemory {
	if m.st == nil {
		return nil
	}
	return m.st.gpu
}

// Data returns the column-major elements. It panics for GPU-resident matrices.
func (m *Matrix[T]) Data() []T {
	m.live()
	if m.st == nil {
		return nil
	}
	if m.st.gpu != nil {
		panic(errors.Wrap(errors.ErrOnGPU, "matrix data"))
	}
	return m.st.data
}

func (m *Matrix[T]) check(i, j int) error {
	if m.released.Load() {
		return errors.Wrap(errors.ErrReleased, "matrix")
	}
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return errors.NewIndexError([]int{i, j}, []int{m.rows, m.cols})
	}
	if m.OnGPU() {
		return errors.Wrap(errors.ErrOnGPU, "matrix access")
	}
	return nil
}

// At returns element (i, j). Out-of-range indices panic with an *errors.IndexError.
func (m *Matrix[T]) At(i, j int) T {
	if err := m.check(i, j); err != nil {
		panic(err)
	}
	return m.st.data[i+j*m.rows]
}

// Set assigns element (i, j). Out-of-range indices panic with an *errors.IndexError.
func (m *Matrix[T]) Set(i, j int, x T) {
	if err := m.check(i, j); err != nil {
		panic(err)
	}
	m.st.data[i+j*m.rows] = x
}

// Get is At returning an error instead of panicking.
func (m *Matrix[T]) Get(i, j int) (T, error) {
	if err := m.check(i, j); err != nil {
		var zero T
		return zero, err
	}
	return m.st.data[i+j*m.rows], nil
}

// Put is Set returning an error instead of panicking.
func (m *Matrix[T]) Put(i, j int, x T) error {
	if err := m.check(i, j); err != nil {
		return err
	}
	m.st.data[i+j*m.rows] = x
	return nil
}

// Column returns column j as a vector aliasing the matrix storage.
func (m *Matrix[T]) Column(j int) (*Vector[T], error) {
	m.live()
	if j < 0 || j >= m.cols {
		return nil, errors.NewIndexError([]int{j}, []int{m.cols})
	}
	if m.OnGPU() {
		return nil, errors.Wrap(errors.ErrOnGPU, "column")
	}
	if m.rows == 0 {
		return EmptyVector[T](), nil
	}
	m.st.retain()
	return &Vector[T]{st: m.st, offset: j * m.rows, n: m.rows}, nil
}

// Fill sets every element to x.
func (m *Matrix[T]) Fill(x T) {
	data := m.Data()
	for i := range data {
		data[i] = x
	}
}

// Zero sets every element to the zero value.
func (m *Matrix[T]) Zero() {
	clear(m.Data())
}

// Transpose returns a new owned cols x rows matrix.
func (m *Matrix[T]) Transpose() (*Matrix[T], error) {
	src := m.Data()
	t, err := NewMatrix[T](m.cols, m.rows, m.inherit(nil)...)
	if err != nil {
		return nil, err
	}
	for j := 0; j < m.cols; j++ {
		for i := 0; i < m.rows; i++ {
			t.st.data[j+i*m.cols] = src[i+j*m.rows]
		}
	}
	return t, nil
}

// Equals reports whether other has the same extents and elements.
func (m *Matrix[T]) Equals(other *Matrix[T]) bool {
	if other == nil {
		return false
	}
	return equalContents[T](m, other)
}

// EqualContents implements Dense.
func (m *Matrix[T]) EqualContents(other Dense) bool {
	return equalContents[T](m, other)
}

// CopyTo implements Dense.
func (m *Matrix[T]) CopyTo(dst any) error {
	if m.OnGPU() {
		return m.st.gpu.Download(dst)
	}
	return copyTo(m.Data(), dst)
}

// AttachGPU returns a GPU-resident matrix of the same extents backed by mem.
func (m *Matrix[T]) AttachGPU(mem GPUMemory) (*Matrix[T], error) {
	if mem.PType() != m.PType() {
		return nil, errors.NewTypeMismatch("attach gpu", "", m.PType().String(), mem.PType().String())
	}
	if mem.Len() != m.Len() {
		return nil, errors.NewShapeError("attach gpu", []int{m.Len()}, []int{mem.Len()})
	}
	return &Matrix[T]{st: gpuStorage[T](mem), rows: m.rows, cols: m.cols}, nil
}

// NewHostLike allocates a zeroed CPU matrix with the same extents.
func (m *Matrix[T]) NewHostLike() (*Matrix[T], error) {
	return NewMatrix[T](m.rows, m.cols, m.inherit(nil)...)
}

// String formats the matrix row by row for debugging.
func (m *Matrix[T]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Matrix[%s](%dx%d)", m.PType(), m.rows, m.cols)
	switch {
	case m.released.Load():
		sb.WriteString("<released>")
	case m.OnGPU():
		fmt.Fprintf(&sb, "@GPU(%s)", m.st.gpu.Backend())
	default:
		sb.WriteByte('[')
		for i := 0; i < m.rows; i++ {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte('[')
			for j := 0; j < m.cols; j++ {
				if j > 0 {
					sb.WriteByte(' ')
				}
				fmt.Fprintf(&sb, "%v", m.st.data[i+j*m.rows])
			}
			sb.WriteByte(']')
		}
		sb.WriteByte(']')
	}
	return sb.String()
}
