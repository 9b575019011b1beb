// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg dispatches container arithmetic to a pluggable backend.
//
// An Env holds the CPU engine, an optional GPU engine and the thread hint.
// Each operation picks the engine from where its operands live: all on the
// host runs on the CPU engine, all on the GPU runs on the GPU engine and a
// mix is an error. Passing a nil *Env uses the process default.
//
// Example:
//
//	import (
//	    "github.com/born-ml/shogun/linalg"
//	    "github.com/born-ml/shogun/sg"
//	)
//
//	func main() {
//	    a, _ := sg.VectorFrom(1.0, 2.0, 3.0)
//	    b, _ := sg.VectorFrom(4.0, 5.0, 6.0)
//	    dot, err := linalg.Dot[float64](nil, a, b) // 32
//	}
package linalg

import (
	"github.com/rs/zerolog"

	internallinalg "github.com/born-ml/shogun/internal/linalg"
	"github.com/born-ml/shogun/internal/sg"
)

// Engine and environment types.
type (
	// Backend is a numeric engine.
	Backend = internallinalg.Backend
	// GPUBackend is an engine that owns device memory.
	GPUBackend = internallinalg.GPUBackend
	// Env is the dispatch environment.
	Env = internallinalg.Env
	// EnvOption configures NewEnv.
	EnvOption = internallinalg.EnvOption
	// MockGPU is a host-memory GPU engine for tests.
	MockGPU = internallinalg.MockGPU
)

// NewEnv creates an environment. The CPU engine defaults to the plain CPU
// backend.
func NewEnv(opts ...EnvOption) *Env { return internallinalg.NewEnv(opts...) }

// WithCPUBackend sets the CPU engine.
func WithCPUBackend(b Backend) EnvOption { return internallinalg.WithCPUBackend(b) }

// WithGPUBackend installs a GPU engine.
func WithGPUBackend(b GPUBackend) EnvOption { return internallinalg.WithGPUBackend(b) }

// WithNumThreads sets the thread hint.
func WithNumThreads(n int) EnvOption { return internallinalg.WithNumThreads(n) }

// WithLogger sets the environment logger.
func WithLogger(l *zerolog.Logger) EnvOption { return internallinalg.WithLogger(l) }

// Default returns the process environment.
func Default() *Env { return internallinalg.Default() }

// SetDefault replaces the process environment.
func SetDefault(e *Env) { internallinalg.SetDefault(e) }

// NewMockGPU returns a GPU engine that keeps device data in host clones.
func NewMockGPU() *MockGPU { return internallinalg.NewMockGPU() }

// Add computes result = a + b.
func Add[T sg.Element](env *Env, a, b, result sg.Container[T]) error {
	return internallinalg.Add(env, a, b, result)
}

// AddScaled computes result = alpha*a + beta*b.
func AddScaled[T sg.Element](env *Env, a, b sg.Container[T], alpha, beta T, result sg.Container[T]) error {
	return internallinalg.AddScaled(env, a, b, alpha, beta, result)
}

// Dot returns the inner product of a and b.
func Dot[T sg.Element](env *Env, a, b sg.Container[T]) (T, error) {
	return internallinalg.Dot(env, a, b)
}

// ElementProd computes result = a ⊙ b.
func ElementProd[T sg.Element](env *Env, a, b, result sg.Container[T]) error {
	return internallinalg.ElementProd(env, a, b, result)
}

// Scale computes result = alpha*a.
func Scale[T sg.Element](env *Env, a sg.Container[T], alpha T, result sg.Container[T]) error {
	return internallinalg.Scale(env, a, alpha, result)
}

// Sum returns the sum of the elements of a.
func Sum[T sg.Element](env *Env, a sg.Container[T]) (T, error) {
	return internallinalg.Sum(env, a)
}

// Max returns the largest element of a.
func Max[T sg.Element](env *Env, a sg.Container[T]) (T, error) {
	return internallinalg.Max(env, a)
}

// Mean returns the arithmetic mean of a.
func Mean[T sg.Element](env *Env, a sg.Container[T]) (float64, error) {
	return internallinalg.Mean(env, a)
}

// SetConst fills result with value.
func SetConst[T sg.Element](env *Env, result sg.Container[T], value T) error {
	return internallinalg.SetConst(env, result, value)
}

// RangeFill sets result[i] = start + i.
func RangeFill[T sg.Element](env *Env, result sg.Container[T], start T) error {
	return internallinalg.RangeFill(env, result, start)
}

// MatrixProd computes result = op(a)*op(b).
func MatrixProd[T sg.Element](env *Env, a, b, result sg.Container[T], transA, transB bool) error {
	return internallinalg.MatrixProd(env, a, b, result, transA, transB)
}

// Identity sets a square result to the identity.
func Identity[T sg.Element](env *Env, result sg.Container[T]) error {
	return internallinalg.Identity(env, result)
}

// ToGPU returns v moved to the GPU engine of env, or an alias of v when
// there is none or v is already there.
func ToGPU[T sg.Element](env *Env, v *sg.Vector[T]) (*sg.Vector[T], error) {
	return internallinalg.ToGPU(env, v)
}

// FromGPU returns a host copy of v, or an alias when v is on the host.
func FromGPU[T sg.Element](v *sg.Vector[T]) (*sg.Vector[T], error) {
	return internallinalg.FromGPU(v)
}

// MatrixToGPU is ToGPU for matrices.
func MatrixToGPU[T sg.Element](env *Env, m *sg.Matrix[T]) (*sg.Matrix[T], error) {
	return internallinalg.MatrixToGPU(env, m)
}

// MatrixFromGPU is FromGPU for matrices.
func MatrixFromGPU[T sg.Element](m *sg.Matrix[T]) (*sg.Matrix[T], error) {
	return internallinalg.MatrixFromGPU(m)
}
