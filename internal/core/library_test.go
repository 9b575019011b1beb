package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/shogun/internal/backend/blas"
	"github.com/born-ml/shogun/internal/backend/cpu"
	"github.com/born-ml/shogun/internal/config"
	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/linalg"
	"github.com/born-ml/shogun/internal/log"
	"github.com/born-ml/shogun/internal/object"
	"github.com/born-ml/shogun/internal/sg"
)

// restoreDefaults puts the process defaults back after a test calls Init.
func restoreDefaults(t *testing.T) {
	t.Helper()
	env, alloc, logger := linalg.Default(), sg.DefaultAllocator(), log.Default()
	gpu := newGPU
	t.Cleanup(func() {
		linalg.SetDefault(env)
		sg.SetDefaultAllocator(alloc)
		log.SetDefault(*logger)
		newGPU = gpu
	})
}

func quiet(opts ...config.Option) config.Config {
	return config.Default(append([]config.Option{config.WithLogLevel("disabled")}, opts...)...)
}

func TestInit_Defaults(t *testing.T) {
	restoreDefaults(t)

	lib, err := Init(quiet(config.WithNumThreads(3)))
	require.NoError(t, err)
	defer lib.Close()

	assert.Same(t, lib.Env(), linalg.Default())
	assert.Same(t, lib.Allocator(), sg.DefaultAllocator())
	assert.Same(t, object.DefaultRegistry(), lib.Registry())
	assert.Equal(t, cpu.Name, lib.Env().CPUBackend().Name())
	assert.Equal(t, 3, lib.Env().NumThreads())
	assert.False(t, lib.Env().HasGPU())
	assert.Equal(t, 3, lib.Config().NumThreads)
}

func TestInit_BLASAndLimit(t *testing.T) {
	restoreDefaults(t)

	lib, err := Init(quiet(config.WithBackend(config.BackendBLAS), config.WithMaxAllocBytes(64)))
	require.NoError(t, err)
	defer lib.Close()

	assert.Equal(t, blas.Name, lib.Env().CPUBackend().Name())

	v, err := sg.NewVector[float64](8)
	require.NoError(t, err)
	assert.Equal(t, int64(64), lib.Allocator().Stats().LiveBytes)

	_, err = sg.NewVector[float64](1)
	assert.True(t, errors.Is(err, errors.ErrOutOfMemory))

	v.Release()
	assert.Equal(t, int64(0), lib.Allocator().Stats().LiveBytes)
}

func TestInit_GPU(t *testing.T) {
	restoreDefaults(t)
	mock := linalg.NewMockGPU()
	newGPU = func() (linalg.GPUBackend, error) { return mock, nil }

	lib, err := Init(quiet(config.WithGPU(true)))
	require.NoError(t, err)
	assert.True(t, lib.Env().HasGPU())

	require.NoError(t, lib.Close())
	assert.False(t, lib.Env().HasGPU())
	assert.True(t, mock.Released())
	require.NoError(t, lib.Close())
}

func TestClose_ReleasesSwappedGPU(t *testing.T) {
	restoreDefaults(t)
	first := linalg.NewMockGPU()
	newGPU = func() (linalg.GPUBackend, error) { return first, nil }

	lib, err := Init(quiet(config.WithGPU(true)))
	require.NoError(t, err)

	second := linalg.NewMockGPU()
	prev := lib.Env().SetGPUBackend(second)
	require.Same(t, first, prev)
	prev.Release()

	require.NoError(t, lib.Close())
	assert.True(t, first.Released())
	assert.True(t, second.Released())
}

func TestInit_GPUUnavailable(t *testing.T) {
	restoreDefaults(t)
	newGPU = func() (linalg.GPUBackend, error) {
		return nil, errors.Wrap(errors.ErrGPUUnavailable, "test")
	}

	var buf bytes.Buffer
	lib, err := InitWriter(quiet(config.WithGPU(true), config.WithLogLevel("warn")), &buf)
	require.NoError(t, err)
	defer lib.Close()

	assert.False(t, lib.Env().HasGPU())
	assert.Contains(t, buf.String(), "GPU requested but unavailable")
}

func TestInit_InvalidConfig(t *testing.T) {
	restoreDefaults(t)

	_, err := Init(quiet(config.WithNumThreads(0)))
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	_, err = Init(quiet(config.WithLogLevel("loud")))
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestLibrary_Create(t *testing.T) {
	restoreDefaults(t)

	lib, err := Init(quiet())
	require.NoError(t, err)
	defer lib.Close()

	o, err := lib.Create("GaussianKernel")
	require.NoError(t, err)
	defer o.Unref()
	_, ok := o.(object.Kernel)
	assert.True(t, ok)

	_, err = lib.Create("NoSuchClass")
	assert.True(t, errors.Is(err, errors.ErrClassNotFound))
}
