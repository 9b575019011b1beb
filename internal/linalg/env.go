package linalg

import (
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/born-ml/shogun/internal/backend/cpu"
	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/log"
	"github.com/born-ml/shogun/internal/sg"
)

type cpuSlot struct{ b Backend }

type gpuSlot struct{ b GPUBackend }

// Env is the engine selection shared by all entry points. Swaps are
// linearizable: an in-flight call finishes on the engine it snapshotted.
type Env struct {
	cpu     atomic.Pointer[cpuSlot]
	gpu     atomic.Pointer[gpuSlot]
	threads atomic.Int32
	logger  *zerolog.Logger
}

// EnvOption configures NewEnv.
type EnvOption func(*Env)

// WithCPUBackend selects the CPU engine. Nil keeps the plain CPU engine.
func WithCPUBackend(b Backend) EnvOption {
	return func(e *Env) {
		if b != nil {
			e.cpu.Store(&cpuSlot{b: b})
		}
	}
}

// WithGPUBackend selects the GPU engine.
func WithGPUBackend(b GPUBackend) EnvOption {
	return func(e *Env) {
		if b != nil {
			e.gpu.Store(&gpuSlot{b: b})
		}
	}
}

// WithNumThreads sets the thread-count hint.
func WithNumThreads(n int) EnvOption {
	return func(e *Env) {
		e.threads.Store(int32(max(n, 1))) //nolint:gosec // G115: thread counts are small
	}
}

// WithLogger sets the logger used for engine changes.
func WithLogger(l *zerolog.Logger) EnvOption {
	return func(e *Env) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEnv creates an Env running on the plain CPU engine with no GPU.
func NewEnv(opts ...EnvOption) *Env {
	e := &Env{logger: log.Component("linalg")}
	e.threads.Store(int32(runtime.NumCPU())) //nolint:gosec // G115: CPU count fits in int32
	for _, opt := range opts {
		opt(e)
	}
	if e.cpu.Load() == nil {
		e.cpu.Store(&cpuSlot{b: cpu.New()})
	}
	e.applyThreads(e.cpu.Load().b)
	return e
}

var defaultEnv atomic.Pointer[Env]

// Default returns the process-wide Env, creating it on first use.
func Default() *Env {
	if e := defaultEnv.Load(); e != nil {
		return e
	}
	defaultEnv.CompareAndSwap(nil, NewEnv())
	return defaultEnv.Load()
}

// SetDefault replaces the process-wide Env. Nil panics.
func SetDefault(e *Env) {
	if e == nil {
		panic(errors.AssertionFailedf("linalg: nil default env"))
	}
	defaultEnv.Store(e)
}

func envOrDefault(e *Env) *Env {
	if e == nil {
		return Default()
	}
	return e
}

// CPUBackend returns the current CPU engine. Never nil.
func (e *Env) CPUBackend() Backend {
	return e.cpu.Load().b
}

// SetCPUBackend replaces the CPU engine. Calls already running keep the
// previous engine.
func (e *Env) SetCPUBackend(b Backend) error {
	if b == nil {
		return errors.Wrap(errors.ErrInvalidArgument, "linalg: nil CPU backend")
	}
	if b.Device() != sg.CPU {
		return errors.Wrapf(errors.ErrInvalidArgument, "linalg: backend %s does not run on the CPU", b.Name())
	}
	e.applyThreads(b)
	old := e.cpu.Swap(&cpuSlot{b: b})
	e.logger.Debug().
		Str(log.BackendKey, b.Name()).
		Str("previous", old.b.Name()).
		Msg("cpu backend set")
	return nil
}

// GPUBackend returns the current GPU engine or nil.
func (e *Env) GPUBackend() GPUBackend {
	if s := e.gpu.Load(); s != nil {
		return s.b
	}
	return nil
}

// SetGPUBackend replaces the GPU engine and returns the previous one, or
// nil. Nil disables GPU dispatch. The env never releases an engine; the
// caller owns the returned one and must Release it once no GPU-resident
// container refers to it.
func (e *Env) SetGPUBackend(b GPUBackend) GPUBackend {
	var next *gpuSlot
	if b != nil {
		next = &gpuSlot{b: b}
	}
	old := e.gpu.Swap(next)

	ev := e.logger.Debug()
	if b != nil {
		ev = ev.Str(log.BackendKey, b.Name())
	}
	if old != nil {
		ev = ev.Str("previous", old.b.Name())
	}
	ev.Msg("gpu backend set")

	if old == nil {
		return nil
	}
	return old.b
}

// HasGPU reports whether a GPU engine is configured.
func (e *Env) HasGPU() bool {
	return e.gpu.Load() != nil
}

// NumThreads returns the thread-count hint.
func (e *Env) NumThreads() int {
	return int(e.threads.Load())
}

// SetNumThreads sets the thread-count hint and forwards it to the CPU
// engine. Values below 1 are treated as 1.
func (e *Env) SetNumThreads(n int) {
	e.threads.Store(int32(max(n, 1))) //nolint:gosec // G115: thread counts are small
	e.applyThreads(e.CPUBackend())
	e.logger.Debug().Int(log.ThreadsKey, e.NumThreads()).Msg("thread count set")
}

func (e *Env) applyThreads(b Backend) {
	if t, ok := b.(threaded); ok {
		t.SetNumThreads(e.NumThreads())
	}
}

// Logger returns the env's logger.
func (e *Env) Logger() *zerolog.Logger {
	return e.logger
}

// backendFor picks the engine for the operands' placement.
func (e *Env) backendFor(op string, ds ...sg.Dense) (Backend, error) {
	onGPU := 0
	for _, d := range ds {
		if d.OnGPU() {
			onGPU++
		}
	}
	switch onGPU {
	case 0:
		return e.CPUBackend(), nil
	case len(ds):
		if g := e.GPUBackend(); g != nil {
			return g, nil
		}
		return nil, errors.Wrapf(errors.ErrNoGPUBackend, "linalg %s", op)
	default:
		return nil, errors.Wrapf(errors.ErrDeviceMismatch, "linalg %s", op)
	}
}
