// Package core bootstraps a library instance from a config.Config: it
// installs the process logger, allocator and linalg environment and
// exposes the class registry.
package core

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"

	// Link every built-in class into the default registry.
	_ "github.com/born-ml/shogun/internal/classes"

	"github.com/born-ml/shogun/internal/backend/blas"
	"github.com/born-ml/shogun/internal/backend/cpu"
	"github.com/born-ml/shogun/internal/backend/webgpu"
	"github.com/born-ml/shogun/internal/config"
	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/linalg"
	"github.com/born-ml/shogun/internal/log"
	"github.com/born-ml/shogun/internal/object"
	"github.com/born-ml/shogun/internal/sg"
)

// Version is the library version reported by the CLI.
const Version = "v0.1.0-dev"

var newGPU = func() (linalg.GPUBackend, error) {
	b, err := webgpu.New()
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Library is the application-lifetime state built by Init.
type Library struct {
	cfg      config.Config
	env      *linalg.Env
	registry *object.Registry
	alloc    *sg.TrackingAllocator
	logger   *zerolog.Logger
	closed   atomic.Bool
}

// Init validates cfg and installs the logger, allocator and environment as
// process defaults. Log output goes to stderr.
func Init(cfg config.Config) (*Library, error) {
	return InitWriter(cfg, os.Stderr)
}

// InitWriter is Init with log output sent to w.
func InitWriter(cfg config.Config, w io.Writer) (*Library, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	root, err := log.New(w, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, errors.Mark(err, errors.ErrInvalidArgument)
	}
	log.SetDefault(root)
	logger := log.Component("core")

	alloc := sg.NewTrackingAllocator(cfg.MaxAllocBytes)
	sg.SetDefaultAllocator(alloc)

	var engine linalg.Backend
	switch cfg.Backend {
	case config.BackendBLAS:
		engine = blas.New()
	default:
		engine = cpu.New()
	}
	env := linalg.NewEnv(
		linalg.WithCPUBackend(engine),
		linalg.WithNumThreads(cfg.NumThreads),
		linalg.WithLogger(log.Component("linalg")),
	)
	if cfg.GPU {
		gpu, err := newGPU()
		if err != nil {
			logger.Warn().Err(err).Msg("GPU requested but unavailable, continuing on CPU")
		} else {
			env.SetGPUBackend(gpu)
		}
	}
	linalg.SetDefault(env)

	l := &Library{
		cfg:      cfg,
		env:      env,
		registry: object.DefaultRegistry(),
		alloc:    alloc,
		logger:   logger,
	}
	logger.Info().
		Str(log.BackendKey, engine.Name()).
		Bool("gpu", env.HasGPU()).
		Int(log.ThreadsKey, env.NumThreads()).
		Int64("max_alloc_bytes", cfg.MaxAllocBytes).
		Msg("library initialized")
	return l, nil
}

// Config returns the configuration the library was built from.
func (l *Library) Config() config.Config { return l.cfg }

// Env returns the linalg environment.
func (l *Library) Env() *linalg.Env { return l.env }

// Registry returns the class registry.
func (l *Library) Registry() *object.Registry { return l.registry }

// Allocator returns the container allocator.
func (l *Library) Allocator() *sg.TrackingAllocator { return l.alloc }

// Logger returns the core component logger.
func (l *Library) Logger() *zerolog.Logger { return l.logger }

// Create instantiates a registered class by name.
func (l *Library) Create(name string) (object.Object, error) {
	return l.registry.New(name)
}

// Close releases the GPU backend. It is safe to call more than once.
func (l *Library) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	if gpu := l.env.SetGPUBackend(nil); gpu != nil {
		gpu.Release()
	}
	stats := l.alloc.Stats()
	l.logger.Info().
		Int64("live_bytes", stats.LiveBytes).
		Int64("peak_bytes", stats.PeakBytes).
		Msg("library closed")
	return nil
}
