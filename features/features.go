// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package features provides feature containers.
package features

import (
	internalfeatures "github.com/born-ml/shogun/internal/classes/features"
	"github.com/born-ml/shogun/sg"
)

// DenseName is the registered class name of Dense.
const DenseName = internalfeatures.DenseName

// Dense stores feature vectors as the columns of a float64 matrix.
type Dense = internalfeatures.Dense

// NewDense returns empty dense features.
func NewDense() *Dense { return internalfeatures.NewDense() }

// NewDenseFrom returns dense features holding an alias of m.
func NewDenseFrom(m *sg.Matrix[float64]) *Dense { return internalfeatures.NewDenseFrom(m) }
