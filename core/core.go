// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package core initializes the library.
//
// Init installs the process logger, allocator and linalg environment
// described by a config.Config and returns the Library that owns them:
//
//	cfg, err := core.FromEnv(core.WithBackend(core.BackendBLAS))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	lib, err := core.Init(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer lib.Close()
//
//	k, err := lib.Create("GaussianKernel")
package core

import (
	"io"

	"github.com/born-ml/shogun/internal/config"
	internalcore "github.com/born-ml/shogun/internal/core"
)

// Version is the library version.
const Version = internalcore.Version

// CPU engine names.
const (
	BackendCPU  = config.BackendCPU
	BackendBLAS = config.BackendBLAS
)

type (
	// Config configures a library instance.
	Config = config.Config
	// Option mutates a Config.
	Option = config.Option
	// Library is the state built by Init.
	Library = internalcore.Library
)

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig(opts ...Option) Config { return config.Default(opts...) }

// FromEnv reads SHOGUN_* environment variables over the defaults.
func FromEnv(opts ...Option) (Config, error) { return config.FromEnv(opts...) }

// WithNumThreads sets the worker hint.
func WithNumThreads(n int) Option { return config.WithNumThreads(n) }

// WithLogLevel sets the log level.
func WithLogLevel(level string) Option { return config.WithLogLevel(level) }

// WithLogFormat sets "json" or "console" log output.
func WithLogFormat(format string) Option { return config.WithLogFormat(format) }

// WithBackend selects the CPU engine.
func WithBackend(name string) Option { return config.WithBackend(name) }

// WithGPU toggles the WebGPU engine.
func WithGPU(enabled bool) Option { return config.WithGPU(enabled) }

// WithMaxAllocBytes limits live container memory.
func WithMaxAllocBytes(n int64) Option { return config.WithMaxAllocBytes(n) }

// Init builds a Library from cfg, logging to stderr.
func Init(cfg Config) (*Library, error) { return internalcore.Init(cfg) }

// InitWriter builds a Library from cfg, logging to w.
func InitWriter(cfg Config, w io.Writer) (*Library, error) { return internalcore.InitWriter(cfg, w) }
