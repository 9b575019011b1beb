// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package kernel provides kernels over dense features.
//
// Example:
//
//	k := kernel.NewGaussianWidth(2)
//	defer k.Unref()
//	if err := k.Setup(train, test); err != nil {
//	    log.Fatal(err)
//	}
//	km, err := k.Matrix()
package kernel

import internalkernel "github.com/born-ml/shogun/internal/classes/kernel"

// Registered class names.
const (
	GaussianName = internalkernel.GaussianName
	LinearName   = internalkernel.LinearName
)

// Gaussian computes exp(-‖x-y‖² / width).
type Gaussian = internalkernel.Gaussian

// Linear computes x·y.
type Linear = internalkernel.Linear

// NewGaussian returns a Gaussian kernel of width 1.
func NewGaussian() *Gaussian { return internalkernel.NewGaussian() }

// NewGaussianWidth returns a Gaussian kernel of the given width.
func NewGaussianWidth(width float64) *Gaussian { return internalkernel.NewGaussianWidth(width) }

// NewLinear returns a linear kernel.
func NewLinear() *Linear { return internalkernel.NewLinear() }
