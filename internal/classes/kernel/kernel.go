// Package kernel provides kernels over dot-product features.
package kernel

import (
	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/linalg"
	"github.com/born-ml/shogun/internal/object"
	"github.com/born-ml/shogun/internal/sg"
)

// dotKernel holds the feature sets shared by kernels that only need inner
// products.
type dotKernel struct {
	object.Base

	lhs object.Slot[object.DotFeatures]
	rhs object.Slot[object.DotFeatures]
}

func (k *dotKernel) init(self object.Object, name string) {
	k.Init(self, name)
	object.RegisterObject(&k.Base, "lhs", &k.lhs, "left-hand side features")
	object.RegisterObject(&k.Base, "rhs", &k.rhs, "right-hand side features")
}

// Setup binds lhs and rhs. Both must be dot features of equal dimension.
func (k *dotKernel) Setup(lhs, rhs object.Features) error {
	l, ok := lhs.(object.DotFeatures)
	if !ok {
		return errors.Wrapf(errors.ErrInvalidArgument, "%s: lhs is not dot features", k.Name())
	}
	r, ok := rhs.(object.DotFeatures)
	if !ok {
		return errors.Wrapf(errors.ErrInvalidArgument, "%s: rhs is not dot features", k.Name())
	}
	if l.NumFeatures() != r.NumFeatures() {
		return errors.NewShapeError(k.Name()+" setup", []int{l.NumFeatures()}, []int{r.NumFeatures()})
	}
	k.lhs.Set(l)
	k.rhs.Set(r)
	return nil
}

// Cleanup releases the bound feature sets.
func (k *dotKernel) Cleanup() {
	k.lhs.Clear()
	k.rhs.Clear()
}

// LHS borrows the left-hand features.
func (k *dotKernel) LHS() object.DotFeatures { return k.lhs.Get() }

// RHS borrows the right-hand features.
func (k *dotKernel) RHS() object.DotFeatures { return k.rhs.Get() }

func (k *dotKernel) operands() (object.DotFeatures, object.DotFeatures, error) {
	l, r := k.lhs.Get(), k.rhs.Get()
	if l == nil || r == nil {
		return nil, nil, errors.Wrapf(errors.ErrInvalidArgument, "%s: features not set up", k.Name())
	}
	return l, r, nil
}

// gram returns lhsᵀ·rhs, the matrix of pairwise inner products.
func gram(l, r object.DotFeatures) (*sg.Matrix[float64], error) {
	lm, rm := l.FeatureMatrix(), r.FeatureMatrix()
	if lm == nil || rm == nil {
		return sg.NewMatrix[float64](l.NumVectors(), r.NumVectors())
	}
	g, err := sg.NewMatrix[float64](lm.Cols(), rm.Cols())
	if err != nil {
		return nil, err
	}
	if err := linalg.MatrixProd[float64](nil, lm, rm, g, true, false); err != nil {
		g.Release()
		return nil, err
	}
	return g, nil
}

// norms returns the squared norm of every vector in f.
func norms(f object.DotFeatures) ([]float64, error) {
	out := make([]float64, f.NumVectors())
	for i := range out {
		d, err := f.Dot(i, f, i)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// Register adds the kernel classes to r.
func Register(r *object.Registry) error {
	if err := r.Register(GaussianName, func() object.Object { return NewGaussian() }); err != nil {
		return err
	}
	return r.Register(LinearName, func() object.Object { return NewLinear() })
}

func init() {
	if err := Register(object.DefaultRegistry()); err != nil {
		panic(err)
	}
}
