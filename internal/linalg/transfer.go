package linalg

import (
	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/log"
	"github.com/born-ml/shogun/internal/sg"
)

// resident is the residency API shared by Vector and Matrix.
type resident[T sg.Element, C any] interface {
	sg.Container[T]
	Alias() C
	AttachGPU(mem sg.GPUMemory) (C, error)
	NewHostLike() (C, error)
	Release()
}

func toGPU[T sg.Element, C resident[T, C]](env *Env, c C) (C, error) {
	e := envOrDefault(env)
	g := e.GPUBackend()
	if g == nil || c.OnGPU() {
		return c.Alias(), nil
	}
	mem, err := g.Upload(c)
	if err != nil {
		var zero C
		return zero, errors.Wrapf(err, "linalg: upload to %s", g.Name())
	}
	out, err := c.AttachGPU(mem)
	if err != nil {
		mem.Release()
		var zero C
		return zero, err
	}
	e.logger.Debug().
		Str(log.BackendKey, g.Name()).
		Str(log.PTypeKey, c.PType().String()).
		Int("len", c.Len()).
		Msg("uploaded")
	return out, nil
}

func fromGPU[T sg.Element, C resident[T, C]](c C) (C, error) {
	if !c.OnGPU() {
		return c.Alias(), nil
	}
	host, err := c.NewHostLike()
	if err != nil {
		var zero C
		return zero, err
	}
	if err := c.GPUMemory().Download(host.Data()); err != nil {
		host.Release()
		var zero C
		return zero, errors.Wrap(err, "linalg: download")
	}
	return host, nil
}

// ToGPU returns a device-resident copy of v. With no GPU engine configured,
// or when v is already on a device, it returns an alias of v.
// The caller releases the result.
func ToGPU[T sg.Element](env *Env, v *sg.Vector[T]) (*sg.Vector[T], error) {
	return toGPU[T](env, v)
}

// FromGPU returns a host copy of v, or an alias when v is already on the host.
// The caller releases the result.
func FromGPU[T sg.Element](v *sg.Vector[T]) (*sg.Vector[T], error) {
	return fromGPU[T](v)
}

// MatrixToGPU is ToGPU for matrices.
func MatrixToGPU[T sg.Element](env *Env, m *sg.Matrix[T]) (*sg.Matrix[T], error) {
	return toGPU[T](env, m)
}

// MatrixFromGPU is FromGPU for matrices.
func MatrixFromGPU[T sg.Element](m *sg.Matrix[T]) (*sg.Matrix[T], error) {
	return fromGPU[T](m)
}
