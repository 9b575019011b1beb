// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package labels provides label containers.
package labels

import (
	internallabels "github.com/born-ml/shogun/internal/classes/labels"
	"github.com/born-ml/shogun/sg"
)

// Registered class names.
const (
	RegressionName = internallabels.RegressionName
	BinaryName     = internallabels.BinaryName
)

type (
	// Regression holds real-valued targets.
	Regression = internallabels.Regression
	// Binary holds labels in {-1, +1}.
	Binary = internallabels.Binary
)

// NewRegression returns empty regression labels.
func NewRegression() *Regression { return internallabels.NewRegression() }

// NewRegressionFrom returns regression labels holding an alias of v.
func NewRegressionFrom(v *sg.Vector[float64]) *Regression { return internallabels.NewRegressionFrom(v) }

// NewBinary returns empty binary labels.
func NewBinary() *Binary { return internallabels.NewBinary() }

// NewBinaryFrom validates v and returns binary labels holding an alias of it.
func NewBinaryFrom(v *sg.Vector[float64]) (*Binary, error) { return internallabels.NewBinaryFrom(v) }
