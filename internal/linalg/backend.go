// Package linalg dispatches container operations to the configured engine.
//
// Every entry point takes an *Env (nil selects the process default),
// snapshots the engine once and runs the operation synchronously. Operands
// that all live in host memory go to the CPU engine, operands that all live
// on a device go to the GPU engine, and mixed placement is an error.
package linalg

import (
	"github.com/born-ml/shogun/internal/sg"
)

// Backend is a numeric engine. Scalars passed as any must have exactly the
// element type of the containers.
type Backend interface {
	Name() string
	Device() sg.Device

	// Add computes result = alpha*a + beta*b.
	Add(a, b sg.Dense, alpha, beta any, result sg.Dense) error
	Dot(a, b sg.Dense) (any, error)
	ElementProd(a, b, result sg.Dense) error
	Scale(a sg.Dense, alpha any, result sg.Dense) error

	Sum(a sg.Dense) (any, error)
	Max(a sg.Dense) (any, error)
	Mean(a sg.Dense) (float64, error)

	SetConst(result sg.Dense, value any) error
	RangeFill(result sg.Dense, start any) error
	MatrixProd(a, b, result sg.Dense, transA, transB bool) error
	Identity(result sg.Dense) error
}

// GPUBackend is a Backend that owns device memory.
type GPUBackend interface {
	Backend

	// Upload copies a host container into new device memory.
	Upload(d sg.Dense) (sg.GPUMemory, error)
	// Release frees the engine's device resources.
	Release()
}

// threaded is implemented by engines that honor the thread-count hint.
type threaded interface {
	SetNumThreads(n int)
}
