// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the GPU engine on WebGPU compute shaders.
//
// The engine handles float32 element-wise work (scaled add, element
// product, scale) on device buffers and reports the remaining operations as
// unsupported. It needs the native wgpu library and is only built on
// windows; elsewhere New returns an ErrGPUUnavailable error.
//
// Example:
//
//	gpu, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gpu.Release()
//
//	env := linalg.NewEnv(linalg.WithGPUBackend(gpu))
//	x, err := linalg.ToGPU(env, v)
package webgpu

import (
	internalwebgpu "github.com/born-ml/shogun/internal/backend/webgpu"
	"github.com/born-ml/shogun/linalg"
)

// Name is the engine name.
const Name = internalwebgpu.Name

// Backend represents the WebGPU engine.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements linalg.GPUBackend.
var _ linalg.GPUBackend = (*Backend)(nil)

// New initializes the WebGPU device. Call Release when done.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable reports whether a WebGPU adapter can be acquired.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
