package linalg

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/shogun/internal/backend/blas"
	"github.com/born-ml/shogun/internal/backend/cpu"
	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/log"
	"github.com/born-ml/shogun/internal/sg"
)

func quietEnv(opts ...EnvOption) *Env {
	return NewEnv(append([]EnvOption{WithLogger(log.Nop())}, opts...)...)
}

func TestNewEnv_Defaults(t *testing.T) {
	env := quietEnv()

	assert.Equal(t, cpu.Name, env.CPUBackend().Name())
	assert.False(t, env.HasGPU())
	assert.Nil(t, env.GPUBackend())
	assert.GreaterOrEqual(t, env.NumThreads(), 1)
}

func TestNewEnv_Options(t *testing.T) {
	mock := NewMockGPU()
	env := quietEnv(WithCPUBackend(blas.New()), WithGPUBackend(mock), WithNumThreads(2))

	assert.Equal(t, blas.Name, env.CPUBackend().Name())
	assert.True(t, env.HasGPU())
	assert.Same(t, mock, env.GPUBackend())
	assert.Equal(t, 2, env.NumThreads())
}

func TestEnv_SetCPUBackend(t *testing.T) {
	env := quietEnv()

	require.NoError(t, env.SetCPUBackend(blas.New()))
	assert.Equal(t, blas.Name, env.CPUBackend().Name())

	err := env.SetCPUBackend(nil)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	err = env.SetCPUBackend(NewMockGPU())
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
	assert.Equal(t, blas.Name, env.CPUBackend().Name(), "failed swap keeps the previous engine")
}

func TestEnv_SetGPUBackend(t *testing.T) {
	env := quietEnv()
	mock := NewMockGPU()

	assert.Nil(t, env.SetGPUBackend(mock))
	assert.True(t, env.HasGPU())

	// Swapping hands the previous engine back without releasing it.
	next := NewMockGPU()
	prev := env.SetGPUBackend(next)
	assert.Same(t, mock, prev)
	assert.False(t, mock.Released())
	assert.Same(t, next, env.GPUBackend())

	assert.Same(t, next, env.SetGPUBackend(nil))
	assert.False(t, env.HasGPU())
	assert.Nil(t, env.GPUBackend())
	assert.False(t, next.Released())
}

func TestEnv_SetNumThreadsForwardsToEngine(t *testing.T) {
	engine := cpu.New()
	env := quietEnv(WithCPUBackend(engine))

	env.SetNumThreads(3)
	assert.Equal(t, 3, env.NumThreads())
	assert.Equal(t, 3, engine.NumThreads())

	env.SetNumThreads(0)
	assert.Equal(t, 1, env.NumThreads())
	assert.Equal(t, 1, engine.NumThreads())

	// A newly installed engine picks up the current hint.
	next := cpu.New()
	env.SetNumThreads(4)
	require.NoError(t, env.SetCPUBackend(next))
	assert.Equal(t, 4, next.NumThreads())
}

func TestDefaultEnv(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	assert.Same(t, prev, Default())

	env := quietEnv()
	SetDefault(env)
	assert.Same(t, env, Default())
	assert.Panics(t, func() { SetDefault(nil) })
}

func TestEnv_SwapUnderConcurrentDispatch(t *testing.T) {
	env := quietEnv()
	a, err := sg.VectorFrom(1.0, 2.0, 3.0)
	require.NoError(t, err)
	b, err := sg.VectorFrom(4.0, 5.0, 6.0)
	require.NoError(t, err)
	defer a.Release()
	defer b.Release()

	const workers, calls = 8, 200
	var wg sync.WaitGroup
	errs := make(chan error, workers*calls)
	results := make(chan float64, workers*calls)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range calls {
				v, err := Dot(env, a, b)
				if err != nil {
					errs <- err
					continue
				}
				results <- v
			}
		}()
	}

	engines := []Backend{cpu.New(), blas.New()}
	for i := range calls {
		require.NoError(t, env.SetCPUBackend(engines[i%2]))
		env.SetGPUBackend(NewMockGPU())
		env.SetGPUBackend(nil)
	}
	wg.Wait()
	close(errs)
	close(results)

	for err := range errs {
		t.Errorf("dispatch failed during swap: %v", err)
	}
	n := 0
	for v := range results {
		assert.Equal(t, 32.0, v)
		n++
	}
	assert.Equal(t, workers*calls, n)
}
