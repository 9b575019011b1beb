package kernel

import "github.com/born-ml/shogun/internal/sg"

// LinearName is the registered class name of Linear.
const LinearName = "LinearKernel"

// Linear computes k(x, y) = x·y.
type Linear struct {
	dotKernel
}

// NewLinear returns an unbound linear kernel.
func NewLinear() *Linear {
	k := &Linear{}
	k.init(k, LinearName)
	return k
}

// Compute returns lhs_i · rhs_j.
func (k *Linear) Compute(i, j int) (float64, error) {
	l, r, err := k.operands()
	if err != nil {
		return 0, err
	}
	return l.Dot(i, r, j)
}

// Matrix returns the Gram matrix of the bound features.
func (k *Linear) Matrix() (*sg.Matrix[float64], error) {
	l, r, err := k.operands()
	if err != nil {
		return nil, err
	}
	return gram(l, r)
}
