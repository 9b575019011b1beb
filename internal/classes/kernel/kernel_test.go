package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/shogun/internal/classes/features"
	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/object"
	"github.com/born-ml/shogun/internal/sg"
)

// dense returns features whose vectors are the given points.
func dense(t *testing.T, points ...[]float64) *features.Dense {
	t.Helper()
	rows := len(points[0])
	m, err := sg.NewMatrix[float64](rows, len(points))
	require.NoError(t, err)
	defer m.Release()
	for j, p := range points {
		for i, x := range p {
			m.Set(i, j, x)
		}
	}
	f := features.NewDenseFrom(m)
	t.Cleanup(func() { f.Unref() })
	return f
}

func TestGaussian_Width(t *testing.T) {
	k := NewGaussian()
	defer k.Unref()
	assert.InDelta(t, 1.0, k.Width(), 1e-12)

	require.NoError(t, k.SetWidth(2))
	got, err := object.Get[float64](k, "log_width")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-12)

	require.NoError(t, object.Put(k, "log_width", 2.0))
	w, err := object.Get[float64](k, "width")
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Exp(4), w, 1e-9)

	assert.True(t, errors.Is(k.SetWidth(0), errors.ErrInvalidArgument))
	assert.True(t, errors.Is(object.Put(k, "width", 1.0), errors.ErrNotSettable))
}

func TestGaussian_Compute(t *testing.T) {
	lhs := dense(t, []float64{0, 0}, []float64{1, 0})
	rhs := dense(t, []float64{0, 1}, []float64{1, 0}, []float64{2, 2})

	k := NewGaussianWidth(2)
	defer k.Unref()

	_, err := k.Compute(0, 0)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument), "not set up")

	require.NoError(t, k.Setup(lhs, rhs))
	assert.Equal(t, int64(2), lhs.RefCount())

	v, err := k.Compute(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-0.5), v, 1e-12)
	v, err = k.Compute(1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-12)

	m, err := k.Matrix()
	require.NoError(t, err)
	defer m.Release()
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())
	for i := range 2 {
		for j := range 3 {
			want, err := k.Compute(i, j)
			require.NoError(t, err)
			assert.InDelta(t, want, m.At(i, j), 1e-12, "k(%d,%d)", i, j)
		}
	}

	_, err = k.Compute(2, 0)
	assert.True(t, errors.Is(err, errors.ErrIndexOutOfRange))

	k.Cleanup()
	assert.Equal(t, int64(1), lhs.RefCount())
	assert.Nil(t, k.LHS())
}

func TestLinear_Matrix(t *testing.T) {
	f := dense(t, []float64{1, 2}, []float64{3, 4})
	k := NewLinear()
	defer k.Unref()
	require.NoError(t, k.Setup(f, f))

	m, err := k.Matrix()
	require.NoError(t, err)
	defer m.Release()
	assert.Equal(t, []float64{5, 11, 11, 25}, m.Data())

	v, err := k.Compute(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 11.0, v)
}

func TestKernel_SetupErrors(t *testing.T) {
	k := NewLinear()
	defer k.Unref()

	a := dense(t, []float64{1, 2})
	b := dense(t, []float64{1, 2, 3})
	assert.True(t, errors.Is(k.Setup(a, b), errors.ErrShapeMismatch))
	assert.True(t, errors.Is(k.Setup(nil, a), errors.ErrInvalidArgument))
	assert.Nil(t, k.LHS())
}

func TestGaussian_FactoryAndClone(t *testing.T) {
	k, err := object.Create[object.Kernel](nil, GaussianName)
	require.NoError(t, err)
	defer k.Unref()

	require.NoError(t, object.Put(k, "log_width", 2.0))
	f := dense(t, []float64{1, 2}, []float64{3, 4})
	require.NoError(t, k.Setup(f, f))

	c, err := object.Clone(nil, k)
	require.NoError(t, err)
	defer c.Unref()

	assert.True(t, object.Equals(k, c))
	got, err := object.Get[float64](c, "log_width")
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)

	ck := c.(*Gaussian)
	assert.NotSame(t, k.(*Gaussian).LHS(), ck.LHS(), "features are cloned")
	assert.Equal(t, int64(3), f.RefCount(), "held as both lhs and rhs")

	want, err := k.Compute(0, 1)
	require.NoError(t, err)
	have, err := ck.Compute(0, 1)
	require.NoError(t, err)
	assert.Equal(t, want, have)
}
