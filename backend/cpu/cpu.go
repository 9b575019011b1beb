// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the plain Go CPU engine.
//
// Every element type is supported with generic loops; large element-wise
// loops fan out over goroutines bounded by the thread hint.
//
// Example:
//
//	import (
//	    "github.com/born-ml/shogun/backend/cpu"
//	    "github.com/born-ml/shogun/linalg"
//	)
//
//	func main() {
//	    env := linalg.NewEnv(linalg.WithCPUBackend(cpu.New()), linalg.WithNumThreads(4))
//	    linalg.SetDefault(env)
//	}
package cpu

import (
	internalcpu "github.com/born-ml/shogun/internal/backend/cpu"
	"github.com/born-ml/shogun/linalg"
)

// Name is the engine name.
const Name = internalcpu.Name

// Backend represents the CPU engine.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements linalg.Backend.
var _ linalg.Backend = (*Backend)(nil)

// New creates a CPU backend with one worker per CPU.
func New() *Backend {
	return internalcpu.New()
}
