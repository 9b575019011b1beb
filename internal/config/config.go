// Package config holds the library configuration: worker count, logging,
// CPU engine selection, GPU enablement and the container allocation limit.
package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/born-ml/shogun/internal/errors"
)

// CPU engine names.
const (
	BackendCPU  = "cpu"
	BackendBLAS = "blas"
)

// Environment variables read by FromEnv.
const (
	EnvNumThreads    = "SHOGUN_NUM_THREADS"
	EnvLogLevel      = "SHOGUN_LOG_LEVEL"
	EnvLogFormat     = "SHOGUN_LOG_FORMAT"
	EnvBackend       = "SHOGUN_BACKEND"
	EnvGPU           = "SHOGUN_GPU"
	EnvMaxAllocBytes = "SHOGUN_MAX_ALLOC_BYTES"
)

// Config configures a library instance.
type Config struct {
	NumThreads    int    // Worker hint for parallel loops.
	LogLevel      string // zerolog level name.
	LogFormat     string // "json" or "console".
	Backend       string // CPU engine: "cpu" or "blas".
	GPU           bool   // Try to install the WebGPU engine.
	MaxAllocBytes int64  // Live container bytes limit, 0 means unlimited.
}

// Option mutates a Config.
type Option func(*Config)

// WithNumThreads sets the worker hint.
func WithNumThreads(n int) Option {
	return func(c *Config) { c.NumThreads = n }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) Option {
	return func(c *Config) { c.LogLevel = level }
}

// WithLogFormat sets the log output format.
func WithLogFormat(format string) Option {
	return func(c *Config) { c.LogFormat = format }
}

// WithBackend selects the CPU engine.
func WithBackend(name string) Option {
	return func(c *Config) { c.Backend = name }
}

// WithGPU toggles the GPU engine.
func WithGPU(enabled bool) Option {
	return func(c *Config) { c.GPU = enabled }
}

// WithMaxAllocBytes limits live container memory.
func WithMaxAllocBytes(n int64) Option {
	return func(c *Config) { c.MaxAllocBytes = n }
}

// Default returns the configuration used when nothing is set.
func Default(opts ...Option) Config {
	c := Config{
		NumThreads: runtime.NumCPU(),
		LogLevel:   "warn",
		LogFormat:  "json",
		Backend:    BackendCPU,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// FromEnv starts from Default, overlays SHOGUN_* variables and then opts.
func FromEnv(opts ...Option) (Config, error) {
	c := Default()

	if v, ok := os.LookupEnv(EnvNumThreads); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return c, errors.Wrapf(err, "%s", EnvNumThreads)
		}
		c.NumThreads = n
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok {
		c.LogFormat = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvBackend); ok {
		c.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv(EnvGPU); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return c, errors.Wrapf(err, "%s", EnvGPU)
		}
		c.GPU = b
	}
	if v, ok := os.LookupEnv(EnvMaxAllocBytes); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return c, errors.Wrapf(err, "%s", EnvMaxAllocBytes)
		}
		c.MaxAllocBytes = n
	}

	for _, opt := range opts {
		opt(&c)
	}
	return c, c.Validate()
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if c.NumThreads < 1 {
		return errors.Invalidf("num threads must be positive, got %d", c.NumThreads)
	}
	switch c.Backend {
	case BackendCPU, BackendBLAS:
	default:
		return errors.Invalidf("unknown backend %q (want %q or %q)", c.Backend, BackendCPU, BackendBLAS)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return errors.Invalidf("unknown log format %q", c.LogFormat)
	}
	if c.MaxAllocBytes < 0 {
		return errors.Invalidf("max alloc bytes must not be negative, got %d", c.MaxAllocBytes)
	}
	return nil
}
