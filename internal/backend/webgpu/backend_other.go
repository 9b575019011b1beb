//go:build !windows

package webgpu

import (
	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/sg"
)

// Backend is unavailable on this platform. New always fails.
type Backend struct{}

func unavailable() error {
	return errors.Wrap(errors.ErrGPUUnavailable, "webgpu: native library requires windows")
}

// New returns ErrGPUUnavailable.
func New() (*Backend, error) {
	return nil, unavailable()
}

// IsAvailable reports false.
func IsAvailable() bool {
	return false
}

func (b *Backend) Release()                                      {}
func (b *Backend) Name() string                                  { return Name }
func (b *Backend) Device() sg.Device                             { return sg.GPU }
func (b *Backend) Upload(sg.Dense) (sg.GPUMemory, error)         { return nil, unavailable() }
func (b *Backend) Add(_, _ sg.Dense, _, _ any, _ sg.Dense) error { return unavailable() }
func (b *Backend) ElementProd(_, _, _ sg.Dense) error            { return unavailable() }
func (b *Backend) Scale(sg.Dense, any, sg.Dense) error           { return unavailable() }
func (b *Backend) Dot(_, _ sg.Dense) (any, error)                { return nil, unavailable() }
func (b *Backend) Sum(sg.Dense) (any, error)                     { return nil, unavailable() }
func (b *Backend) Max(sg.Dense) (any, error)                     { return nil, unavailable() }
func (b *Backend) Mean(sg.Dense) (float64, error)                { return 0, unavailable() }
func (b *Backend) SetConst(sg.Dense, any) error                  { return unavailable() }
func (b *Backend) RangeFill(sg.Dense, any) error                 { return unavailable() }
func (b *Backend) MatrixProd(_, _, _ sg.Dense, _, _ bool) error  { return unavailable() }
func (b *Backend) Identity(sg.Dense) error                       { return unavailable() }
