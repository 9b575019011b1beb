package sg

import (
	"testing"

	"github.com/born-ml/shogun/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPTypeOf(t *testing.T) {
	tests := []struct {
		got  PType
		want PType
		size int
		name string
	}{
		{PTypeOf[bool](), Bool, 1, "bool"},
		{PTypeOf[int8](), Int8, 1, "int8"},
		{PTypeOf[byte](), Uint8, 1, "uint8"},
		{PTypeOf[int16](), Int16, 2, "int16"},
		{PTypeOf[uint16](), Uint16, 2, "uint16"},
		{PTypeOf[int32](), Int32, 4, "int32"},
		{PTypeOf[uint32](), Uint32, 4, "uint32"},
		{PTypeOf[int64](), Int64, 8, "int64"},
		{PTypeOf[uint64](), Uint64, 8, "uint64"},
		{PTypeOf[float32](), Float32, 4, "float32"},
		{PTypeOf[float64](), Float64, 8, "float64"},
		{PTypeOf[complex128](), Complex128, 16, "complex128"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
			assert.Equal(t, tt.size, tt.got.Size())
			assert.Equal(t, tt.name, tt.got.String())
		})
	}

	assert.Equal(t, "char", Char.String())
	assert.False(t, Bool.IsNumeric())
	assert.True(t, Complex128.IsNumeric())
	assert.False(t, Complex128.IsReal())
	assert.True(t, Float32.IsFloat())
	assert.False(t, Int64.IsFloat())
	assert.False(t, Undefined.IsNumeric())
}

func TestVector_Empty(t *testing.T) {
	v := EmptyVector[float64]()
	assert.Equal(t, 0, v.Len())
	assert.False(t, v.Owns())
	assert.Nil(t, v.Data())
	assert.Equal(t, int64(0), v.RefCount())

	a := v.Alias()
	assert.Equal(t, 0, a.Len())
	v.Release()
	a.Release()
}

func TestVector_Sized(t *testing.T) {
	v, err := NewVector[int32](4)
	require.NoError(t, err)
	defer v.Release()

	assert.Equal(t, 4, v.Len())
	assert.True(t, v.Owns())
	assert.Equal(t, Int32, v.PType())
	assert.Equal(t, CPU, v.Device())
	assert.Equal(t, []int32{0, 0, 0, 0}, v.Data())
	assert.Equal(t, int64(1), v.RefCount())
}

func TestVector_NegativeLength(t *testing.T) {
	_, err := NewVector[float64](-1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestVector_CloneIndependence(t *testing.T) {
	a, err := VectorFrom(1.0, 2.0, 3.0)
	require.NoError(t, err)
	defer a.Release()

	b, err := a.Clone()
	require.NoError(t, err)
	defer b.Release()

	assert.True(t, b.Owns())
	assert.True(t, a.Equals(b))

	b.Set(0, 100)
	assert.Equal(t, 1.0, a.At(0))

	a.Set(2, -1)
	assert.Equal(t, 3.0, b.At(2))
	assert.Equal(t, int64(1), a.RefCount())
	assert.Equal(t, int64(1), b.RefCount())
}

func TestVector_AliasPropagation(t *testing.T) {
	a, err := VectorFrom[int64](1, 2, 3)
	require.NoError(t, err)

	b := a.Alias()
	assert.Equal(t, int64(2), a.RefCount())

	a.Set(1, 42)
	assert.Equal(t, int64(42), b.At(1))
	b.Set(0, 7)
	assert.Equal(t, int64(7), a.At(0))

	a.Release()
	assert.Equal(t, int64(1), b.RefCount())
	assert.Equal(t, []int64{7, 42, 3}, b.Data())
	b.Release()
}

func TestVector_ReleaseIdempotent(t *testing.T) {
	alloc := NewTrackingAllocator(0)
	v, err := NewVector[float64](8, WithAllocator(alloc))
	require.NoError(t, err)
	a := v.Alias()

	v.Release()
	v.Release()
	assert.Equal(t, int64(1), a.RefCount())
	assert.Equal(t, int64(0), alloc.Stats().Frees)

	a.Release()
	stats := alloc.Stats()
	assert.Equal(t, int64(1), stats.Allocations)
	assert.Equal(t, int64(1), stats.Frees)
	assert.Equal(t, int64(0), stats.LiveBytes)
	assert.Equal(t, int64(64), stats.PeakBytes)

	assert.True(t, v.Released())
	assert.Panics(t, func() { v.Data() })
	_, err = v.Get(0)
	assert.True(t, errors.Is(err, errors.ErrReleased))
}

func TestVector_BorrowedMemoryNotFreed(t *testing.T) {
	alloc := NewTrackingAllocator(0)
	external := []float64{1, 2, 3, 4}

	v, err := WrapVector(external, 3, false, WithAllocator(alloc))
	require.NoError(t, err)
	assert.False(t, v.Owns())
	assert.Equal(t, 3, v.Len())

	v.Set(0, 10)
	assert.Equal(t, 10.0, external[0])

	a := v.Alias()
	v.Release()
	a.Release()

	// External buffer stays usable and untouched.
	assert.Equal(t, []float64{10, 2, 3, 4}, external)
	external[3] = 5
	assert.Equal(t, 5.0, external[3])
	assert.Equal(t, AllocStats{}, alloc.Stats())
}

func TestVector_TakeOwnership(t *testing.T) {
	alloc := NewTrackingAllocator(0)
	v, err := WrapVector([]int16{1, 2}, 2, true, WithAllocator(alloc))
	require.NoError(t, err)
	assert.True(t, v.Owns())
	assert.Equal(t, int64(4), alloc.Stats().LiveBytes)

	v.Release()
	assert.Equal(t, int64(0), alloc.Stats().LiveBytes)
	assert.Equal(t, int64(1), alloc.Stats().Frees)
}

func TestWrapVector_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []float32
		n    int
	}{
		{"nil data with length", nil, 3},
		{"too short", []float32{1}, 2},
		{"negative", []float32{1}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := WrapVector(tt.data, tt.n, false)
			assert.Nil(t, v)
			assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
		})
	}

	v, err := WrapVector[float32](nil, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Len())
}

func TestVector_OutOfRange(t *testing.T) {
	v, err := VectorFrom(1.0, 2.0)
	require.NoError(t, err)
	defer v.Release()

	for _, i := range []int{-1, 2, 100} {
		_, err := v.Get(i)
		var idx *errors.IndexError
		require.True(t, errors.As(err, &idx), "index %d", i)
		assert.Equal(t, []int{i}, idx.Index)
		assert.Equal(t, []int{2}, idx.Shape)

		assert.True(t, errors.Is(v.Put(i, 0), errors.ErrIndexOutOfRange))
	}

	defer func() {
		r := recover()
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, errors.ErrIndexOutOfRange))
	}()
	v.At(2)
}

func TestVector_OutOfMemory(t *testing.T) {
	alloc := NewTrackingAllocator(100)

	v, err := NewVector[float64](10, WithAllocator(alloc))
	require.NoError(t, err)

	_, err = NewVector[float64](10, WithAllocator(alloc))
	require.Error(t, err)
	var oom *errors.OutOfMemoryError
	require.True(t, errors.As(err, &oom))
	assert.Equal(t, int64(80), oom.Requested)
	assert.Equal(t, int64(80), oom.Live)

	// Clones are accounted against the source allocator.
	_, err = v.Clone()
	assert.True(t, errors.Is(err, errors.ErrOutOfMemory))

	v.Release()
	w, err := NewVector[float64](10, WithAllocator(alloc))
	require.NoError(t, err)
	w.Release()

	_, err = NewVector[complex128](1<<62, WithAllocator(alloc))
	assert.True(t, errors.Is(err, errors.ErrOutOfMemory))
}

func TestVector_FillZero(t *testing.T) {
	v, err := NewVector[uint8](3)
	require.NoError(t, err)
	defer v.Release()

	v.Fill(9)
	assert.Equal(t, []uint8{9, 9, 9}, v.Data())
	v.Zero()
	assert.Equal(t, []uint8{0, 0, 0}, v.Data())
}

func TestVector_EqualContents(t *testing.T) {
	a, _ := VectorFrom[float32](1, 2)
	b, _ := VectorFrom[float32](1, 2)
	c, _ := VectorFrom[float64](1, 2)
	d, _ := VectorFrom[float32](1, 3)

	assert.True(t, a.EqualContents(b))
	assert.False(t, a.EqualContents(c))
	assert.False(t, a.EqualContents(d))
	assert.False(t, a.EqualContents(nil))
	assert.False(t, a.Equals(nil))
}

func TestVector_CopyTo(t *testing.T) {
	v, _ := VectorFrom[int32](4, 5)
	dst := make([]int32, 2)
	require.NoError(t, v.CopyTo(dst))
	assert.Equal(t, []int32{4, 5}, dst)

	assert.True(t, errors.Is(v.CopyTo(make([]float32, 2)), errors.ErrTypeMismatch))
	assert.True(t, errors.Is(v.CopyTo(make([]int32, 1)), errors.ErrShapeMismatch))
}

func TestElements(t *testing.T) {
	v, _ := VectorFrom(1.5, 2.5)

	data, err := Elements[float64](v)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5}, data)

	_, err = Elements[float32](v)
	assert.True(t, errors.Is(err, errors.ErrTypeMismatch))
}

func TestVector_String(t *testing.T) {
	v, _ := VectorFrom[int8](1, 2)
	assert.Equal(t, "Vector[int8](2)[1 2]", v.String())
	v.Release()
	assert.Equal(t, "Vector[int8](2)<released>", v.String())
}
