package cpu

import (
	"testing"

	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/sg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec[T sg.Element](t *testing.T, values ...T) *sg.Vector[T] {
	t.Helper()
	v, err := sg.VectorFrom(values...)
	require.NoError(t, err)
	t.Cleanup(v.Release)
	return v
}

func mat[T sg.Element](t *testing.T, rows [][]T) *sg.Matrix[T] {
	t.Helper()
	m, err := sg.MatrixFromRows(rows)
	require.NoError(t, err)
	t.Cleanup(m.Release)
	return m
}

func TestCPUBackend_New(t *testing.T) {
	backend := New()
	assert.Equal(t, "cpu", backend.Name())
	assert.Equal(t, sg.CPU, backend.Device())
	assert.GreaterOrEqual(t, backend.NumThreads(), 1)

	backend.SetNumThreads(0)
	assert.Equal(t, 1, backend.NumThreads())
}

func TestCPUBackend_Dot(t *testing.T) {
	backend := New()

	got, err := backend.Dot(vec(t, 1.0, 2.0, 3.0), vec(t, 4.0, 5.0, 6.0))
	require.NoError(t, err)
	assert.Equal(t, 32.0, got)

	gotInt, err := backend.Dot(vec[int32](t, 1, 2), vec[int32](t, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, int32(11), gotInt)

	_, err = backend.Dot(vec(t, 1.0), vec(t, 1.0, 2.0))
	assert.True(t, errors.Is(err, errors.ErrShapeMismatch))

	_, err = backend.Dot(vec(t, 1.0), vec[float32](t, 1))
	assert.True(t, errors.Is(err, errors.ErrTypeMismatch))

	_, err = backend.Dot(vec(t, true), vec(t, false))
	assert.True(t, errors.Is(err, errors.ErrUnsupportedType))
}

func TestCPUBackend_Add(t *testing.T) {
	backend := New()

	a := mat(t, [][]float64{{0, 1, 2}, {3, 4, 5}})
	b := mat(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	result, err := sg.NewMatrix[float64](2, 3)
	require.NoError(t, err)
	defer result.Release()

	require.NoError(t, backend.Add(a, b, 1.0, 1.0, result))
	assert.True(t, result.Equals(mat(t, [][]float64{{1, 3, 5}, {7, 9, 11}})))

	require.NoError(t, backend.Add(a, b, 2.0, -1.0, result))
	assert.True(t, result.Equals(mat(t, [][]float64{{-1, 0, 1}, {2, 3, 4}})))

	// In place into the first operand.
	require.NoError(t, backend.Add(a, b, 1.0, 1.0, a))
	assert.Equal(t, 11.0, a.At(1, 2))
}

func TestCPUBackend_AddErrors(t *testing.T) {
	backend := New()
	a := vec(t, 1.0, 2.0)

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"shape", backend.Add(a, vec(t, 1.0), 1.0, 1.0, a), errors.ErrShapeMismatch},
		{"scalar type", backend.Add(a, a, float32(1), 1.0, a), errors.ErrTypeMismatch},
		{"operand type", backend.Add(a, vec[float32](t, 1, 2), 1.0, 1.0, a), errors.ErrTypeMismatch},
		{"bool", backend.Add(vec(t, true), vec(t, true), true, true, vec(t, false)), errors.ErrUnsupportedType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.target), "%v", tt.err)
		})
	}
}

func TestCPUBackend_ElementProdScale(t *testing.T) {
	backend := New()
	a := vec[int64](t, 1, 2, 3)
	b := vec[int64](t, 4, 5, 6)
	r, _ := sg.NewVector[int64](3)
	defer r.Release()

	require.NoError(t, backend.ElementProd(a, b, r))
	assert.Equal(t, []int64{4, 10, 18}, r.Data())

	require.NoError(t, backend.Scale(a, int64(3), r))
	assert.Equal(t, []int64{3, 6, 9}, r.Data())

	c := vec(t, complex(1, 1), complex(0, 2))
	require.NoError(t, backend.Scale(c, complex(0, 1), c))
	assert.Equal(t, []complex128{complex(-1, 1), complex(-2, 0)}, c.Data())
}

func TestCPUBackend_Reductions(t *testing.T) {
	backend := New()
	a := vec[int16](t, 3, -7, 12, 4)

	s, err := backend.Sum(a)
	require.NoError(t, err)
	assert.Equal(t, int16(12), s)

	m, err := backend.Max(a)
	require.NoError(t, err)
	assert.Equal(t, int16(12), m)

	mean, err := backend.Mean(a)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, mean, 1e-12)

	_, err = backend.Max(sg.EmptyVector[float64]())
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
	_, err = backend.Mean(sg.EmptyVector[float64]())
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
	_, err = backend.Max(vec(t, complex(1, 0)))
	assert.True(t, errors.Is(err, errors.ErrUnsupportedType))
}

func TestCPUBackend_Fill(t *testing.T) {
	backend := New()
	v, _ := sg.NewVector[float32](4)
	defer v.Release()

	require.NoError(t, backend.SetConst(v, float32(2.5)))
	assert.Equal(t, []float32{2.5, 2.5, 2.5, 2.5}, v.Data())

	require.NoError(t, backend.RangeFill(v, float32(1)))
	assert.Equal(t, []float32{1, 2, 3, 4}, v.Data())

	flags, _ := sg.NewVector[bool](2)
	require.NoError(t, backend.SetConst(flags, true))
	assert.Equal(t, []bool{true, true}, flags.Data())
	assert.True(t, errors.Is(backend.RangeFill(flags, true), errors.ErrUnsupportedType))

	id, _ := sg.NewMatrix[float64](2, 3)
	id.Fill(7)
	require.NoError(t, backend.Identity(id))
	assert.True(t, id.Equals(mat(t, [][]float64{{1, 0, 0}, {0, 1, 0}})))
}

func TestCPUBackend_MatrixProd(t *testing.T) {
	backend := New()
	a := mat(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := mat(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})

	tests := []struct {
		name           string
		x, y           *sg.Matrix[float64]
		transA, transB bool
		want           [][]float64
	}{
		{"plain", a, b, false, false, [][]float64{{58, 64}, {139, 154}}},
		{"transposed both", b, a, true, true, [][]float64{{58, 139}, {64, 154}}},
		{"a transposed", a, a, true, false, [][]float64{{17, 22, 27}, {22, 29, 36}, {27, 36, 45}}},
		{"b transposed", a, a, false, true, [][]float64{{14, 32}, {32, 77}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := mat(t, tt.want)
			r, err := sg.NewMatrix[float64](want.Rows(), want.Cols())
			require.NoError(t, err)
			defer r.Release()

			require.NoError(t, backend.MatrixProd(tt.x, tt.y, r, tt.transA, tt.transB))
			assert.True(t, r.Equals(want), "got %v", r)
		})
	}

	bad, _ := sg.NewMatrix[float64](2, 2)
	defer bad.Release()
	assert.True(t, errors.Is(backend.MatrixProd(a, a, bad, false, false), errors.ErrShapeMismatch))
	assert.True(t, errors.Is(backend.MatrixProd(a, b, bad, true, false), errors.ErrShapeMismatch))

	// Matrix-vector product.
	x := vec(t, 1.0, 0.0, -1.0)
	y, _ := sg.NewVector[float64](2)
	defer y.Release()
	require.NoError(t, backend.MatrixProd(a, x, y, false, false))
	assert.Equal(t, []float64{-2, -2}, y.Data())

	// The result may not overlap an operand.
	sq := mat(t, [][]float64{{1, 2}, {3, 4}})
	other := mat(t, [][]float64{{1, 0}, {0, 1}})
	assert.True(t, errors.Is(backend.MatrixProd(sq, other, sq, false, false), errors.ErrInvalidArgument))
	assert.True(t, errors.Is(backend.MatrixProd(other, sq, sq, false, false), errors.ErrInvalidArgument))
	col, err := sq.Column(1)
	require.NoError(t, err)
	defer col.Release()
	assert.True(t, errors.Is(backend.MatrixProd(sq, vec(t, 1.0, 1.0), col, false, false), errors.ErrInvalidArgument))
	assert.Equal(t, []float64{1, 3, 2, 4}, sq.Data())
}

func TestOverlaps(t *testing.T) {
	data := []float64{0, 1, 2, 3, 4, 5}
	tests := []struct {
		name string
		x, y []float64
		want bool
	}{
		{"same", data, data, true},
		{"disjoint halves", data[:3], data[3:], false},
		{"partial", data[1:4], data[3:6], true},
		{"contained", data, data[2:3], true},
		{"separate arrays", data, []float64{0, 1}, false},
		{"empty", data[:0], data, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.x, tt.y))
			assert.Equal(t, tt.want, Overlaps(tt.y, tt.x))
		})
	}
}

func TestCPUBackend_ParallelMatchesSequential(t *testing.T) {
	const n = 100_000
	seq, par := New(), New()
	seq.SetNumThreads(1)
	par.SetNumThreads(8)

	a, _ := sg.NewVector[int64](n)
	defer a.Release()
	require.NoError(t, seq.RangeFill(a, int64(0)))

	r1, _ := sg.NewVector[int64](n)
	r2, _ := sg.NewVector[int64](n)
	defer r1.Release()
	defer r2.Release()
	require.NoError(t, seq.Add(a, a, int64(2), int64(1), r1))
	require.NoError(t, par.Add(a, a, int64(2), int64(1), r2))
	assert.True(t, r1.Equals(r2))

	s1, err := seq.Dot(a, a)
	require.NoError(t, err)
	s2, err := par.Dot(a, a)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)

	sum, err := par.Sum(a)
	require.NoError(t, err)
	assert.Equal(t, int64(n*(n-1)/2), sum)
}

func TestCPUBackend_RejectsGPUOperands(t *testing.T) {
	backend := New()
	a := vec[float32](t, 1, 2)
	g, err := a.AttachGPU(&hostMemory{data: []float32{1, 2}})
	require.NoError(t, err)
	defer g.Release()

	_, err = backend.Sum(g)
	assert.True(t, errors.Is(err, errors.ErrOnGPU))
}

type hostMemory struct{ data []float32 }

func (h *hostMemory) Backend() string        { return "host" }
func (h *hostMemory) Len() int               { return len(h.data) }
func (h *hostMemory) PType() sg.PType        { return sg.Float32 }
func (h *hostMemory) Download(dst any) error { copy(dst.([]float32), h.data); return nil }
func (h *hostMemory) Release()               {}
