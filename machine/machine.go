// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package machine provides trainable machines.
//
// Example:
//
//	krr := machine.NewKernelRidge()
//	defer krr.Unref()
//	krr.SetKernel(kernel.NewGaussianWidth(2))
//	if err := object.Put(krr, "tau", 1e-3); err != nil {
//	    log.Fatal(err)
//	}
//	if err := krr.Train(x, y); err != nil {
//	    log.Fatal(err)
//	}
//	pred, err := krr.Apply(xTest)
package machine

import internalmachine "github.com/born-ml/shogun/internal/classes/machine"

// KernelRidgeName is the registered class name of KernelRidge.
const KernelRidgeName = internalmachine.KernelRidgeName

// Solvers accepted by the "solver" parameter.
const (
	SolverCholesky = internalmachine.SolverCholesky
	SolverLU       = internalmachine.SolverLU
)

// KernelRidge is kernel ridge regression.
type KernelRidge = internalmachine.KernelRidge

// NewKernelRidge returns an untrained machine.
func NewKernelRidge() *KernelRidge { return internalmachine.NewKernelRidge() }
