// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package blas provides the accelerated CPU engine on gonum BLAS.
//
// float32 and float64 dot products, scaled additions, scaling and matrix
// products run through gonum's blas32 and blas64; other element types fall
// back to the plain CPU engine.
package blas

import (
	internalblas "github.com/born-ml/shogun/internal/backend/blas"
	"github.com/born-ml/shogun/linalg"
)

// Name is the engine name.
const Name = internalblas.Name

// Backend represents the BLAS engine.
type Backend = internalblas.BLASBackend

// Compile-time check that Backend implements linalg.Backend.
var _ linalg.Backend = (*Backend)(nil)

// New creates a BLAS backend.
func New() *Backend {
	return internalblas.New()
}
