//go:build windows

package webgpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/sg"
)

func newBackend(t *testing.T) *Backend {
	t.Helper()
	if !IsAvailable() {
		t.Skip("WebGPU not available")
	}
	b, err := New()
	require.NoError(t, err)
	t.Cleanup(b.Release)
	return b
}

func upload(t *testing.T, b *Backend, values ...float32) *sg.Vector[float32] {
	t.Helper()
	host, err := sg.VectorFrom(values...)
	require.NoError(t, err)
	defer host.Release()

	mem, err := b.Upload(host)
	require.NoError(t, err)
	v, err := host.AttachGPU(mem)
	require.NoError(t, err)
	t.Cleanup(v.Release)
	return v
}

func download(t *testing.T, v *sg.Vector[float32]) []float32 {
	t.Helper()
	out := make([]float32, v.Len())
	require.NoError(t, v.CopyTo(out))
	return out
}

func TestBackend_NameAndDevice(t *testing.T) {
	b := newBackend(t)
	assert.Equal(t, "webgpu", b.Name())
	assert.Equal(t, sg.GPU, b.Device())
}

func TestBackend_UploadRoundTrip(t *testing.T) {
	b := newBackend(t)
	v := upload(t, b, 1, 2, 3, 4)

	assert.True(t, v.OnGPU())
	assert.Equal(t, "webgpu", v.GPUMemory().Backend())
	assert.Equal(t, []float32{1, 2, 3, 4}, download(t, v))
}

func TestBackend_UploadRejectsFloat64(t *testing.T) {
	b := newBackend(t)
	host, err := sg.VectorFrom(1.0, 2.0)
	require.NoError(t, err)
	defer host.Release()

	_, err = b.Upload(host)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedType))
}

func TestBackend_Add(t *testing.T) {
	b := newBackend(t)
	x := upload(t, b, 1, 2, 3)
	y := upload(t, b, 4, 5, 6)
	r := upload(t, b, 0, 0, 0)

	require.NoError(t, b.Add(x, y, float32(2), float32(-1), r))
	assert.Equal(t, []float32{-2, -1, 0}, download(t, r))

	err := b.Add(x, y, 2.0, float32(1), r)
	assert.True(t, errors.Is(err, errors.ErrTypeMismatch))
}

func TestBackend_ElementProdAndScale(t *testing.T) {
	b := newBackend(t)
	x := upload(t, b, 1, 2, 3)
	y := upload(t, b, 4, 5, 6)
	r := upload(t, b, 0, 0, 0)

	require.NoError(t, b.ElementProd(x, y, r))
	assert.Equal(t, []float32{4, 10, 18}, download(t, r))

	require.NoError(t, b.Scale(x, float32(0.5), r))
	assert.Equal(t, []float32{0.5, 1, 1.5}, download(t, r))
}

func TestBackend_RejectsHostOperands(t *testing.T) {
	b := newBackend(t)
	x := upload(t, b, 1, 2)
	host, err := sg.VectorFrom[float32](1, 2)
	require.NoError(t, err)
	defer host.Release()

	err = b.ElementProd(x, host, x)
	assert.True(t, errors.Is(err, errors.ErrDeviceMismatch))
}

func TestBackend_UnsupportedOperations(t *testing.T) {
	b := newBackend(t)
	x := upload(t, b, 1, 2)

	_, err := b.Dot(x, x)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedOperation))
	assert.True(t, errors.Is(b.MatrixProd(x, x, x, false, false), errors.ErrUnsupportedOperation))
	assert.True(t, errors.Is(b.Identity(x), errors.ErrUnsupportedOperation))
}
