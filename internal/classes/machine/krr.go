// Package machine provides trainable machines.
package machine

import (
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/shogun/internal/classes/labels"
	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/linalg"
	"github.com/born-ml/shogun/internal/log"
	"github.com/born-ml/shogun/internal/object"
	"github.com/born-ml/shogun/internal/sg"
)

// KernelRidgeName is the registered class name of KernelRidge.
const KernelRidgeName = "KernelRidgeRegression"

// Solvers for the regularized kernel system.
const (
	SolverCholesky = iota
	SolverLU
)

var solvers = map[string]int{
	"cholesky": SolverCholesky,
	"lu":       SolverLU,
}

// KernelRidge fits alpha = (K + tau·I)⁻¹·y and predicts Kᵀ·alpha.
type KernelRidge struct {
	object.Base

	kernel   object.Slot[object.Kernel]
	features object.Slot[object.Features]
	tau      float64
	solver   int
	alpha    *sg.Vector[float64]

	logger *zerolog.Logger
}

// NewKernelRidge returns an untrained machine with tau = 1e-6 and the
// Cholesky solver.
func NewKernelRidge() *KernelRidge {
	m := &KernelRidge{tau: 1e-6, solver: SolverCholesky, logger: log.Component("machine")}
	m.Init(m, KernelRidgeName)
	object.RegisterObject(&m.Base, "kernel", &m.kernel, "kernel", object.Hyperparameter)
	object.Register(&m.Base, "tau", &m.tau, "ridge regularization", object.Hyperparameter)
	object.RegisterOptions(&m.Base, "solver", &m.solver, solvers, "linear solver")
	object.RegisterObject(&m.Base, "features", &m.features, "training features", object.Model)
	object.Register(&m.Base, "alpha", &m.alpha, "dual weights", object.Model)
	return m
}

// Kernel borrows the kernel.
func (m *KernelRidge) Kernel() object.Kernel { return m.kernel.Get() }

// SetKernel replaces the kernel.
func (m *KernelRidge) SetKernel(k object.Kernel) { m.kernel.Set(k) }

// Alpha borrows the dual weights. It is nil before training.
func (m *KernelRidge) Alpha() *sg.Vector[float64] { return m.alpha }

// Train fits the dual weights on data.
func (m *KernelRidge) Train(data object.Features, y object.Labels) error {
	k, ok := m.kernel.Acquire()
	if !ok {
		return errors.Wrapf(errors.ErrInvalidArgument, "%s: no kernel", KernelRidgeName)
	}
	defer k.Unref()
	if data == nil || y == nil || y.Values() == nil {
		return errors.Wrapf(errors.ErrInvalidArgument, "%s: missing features or labels", KernelRidgeName)
	}
	n := data.NumVectors()
	if n == 0 {
		return errors.Invalidf("%s: no training vectors", KernelRidgeName)
	}
	if y.NumLabels() != n {
		return errors.NewShapeError("train", []int{n}, []int{y.NumLabels()})
	}
	if m.tau < 0 {
		return errors.Invalidf("%s: tau must not be negative, got %g", KernelRidgeName, m.tau)
	}

	if err := k.Setup(data, data); err != nil {
		return err
	}
	km, err := k.Matrix()
	if err != nil {
		return err
	}
	defer km.Release()

	sys := mat.NewSymDense(n, nil)
	for i := range n {
		for j := i; j < n; j++ {
			v := km.At(i, j)
			if i == j {
				v += m.tau
			}
			sys.SetSym(i, j, v)
		}
	}
	rhs := mat.NewVecDense(n, append([]float64(nil), y.Values().Data()...))

	x, err := m.solve(sys, rhs)
	if err != nil {
		return err
	}
	alpha, err := sg.WrapVector(x.RawVector().Data, n, true)
	if err != nil {
		return err
	}
	defer alpha.Release()
	if err := object.Put(m, "alpha", alpha); err != nil {
		return err
	}
	m.features.Set(data)

	m.logger.Debug().
		Str(log.ObjectKey, KernelRidgeName).
		Int("vectors", n).
		Float64("tau", m.tau).
		Msg("trained")
	return nil
}

func (m *KernelRidge) solve(a *mat.SymDense, b *mat.VecDense) (*mat.VecDense, error) {
	x := mat.NewVecDense(b.Len(), nil)
	switch m.solver {
	case SolverCholesky:
		var ch mat.Cholesky
		if ok := ch.Factorize(a); !ok {
			return nil, errors.Invalidf("%s: kernel matrix is not positive definite, increase tau", KernelRidgeName)
		}
		if err := ch.SolveVecTo(x, b); err != nil {
			return nil, errors.Wrap(err, "cholesky solve")
		}
	case SolverLU:
		var lu mat.LU
		lu.Factorize(a)
		if err := lu.SolveVecTo(x, false, b); err != nil {
			return nil, errors.Wrap(err, "lu solve")
		}
	default:
		return nil, errors.AssertionFailedf("unknown solver %d", m.solver)
	}
	return x, nil
}

// Apply predicts regression labels for data.
func (m *KernelRidge) Apply(data object.Features) (object.Labels, error) {
	k, ok := m.kernel.Acquire()
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidArgument, "%s: no kernel", KernelRidgeName)
	}
	defer k.Unref()
	if m.alpha == nil {
		return nil, errors.Wrapf(errors.ErrInvalidArgument, "%s: not trained", KernelRidgeName)
	}
	train, ok := m.features.Acquire()
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidArgument, "%s: not trained", KernelRidgeName)
	}
	defer train.Unref()

	if err := k.Setup(train, data); err != nil {
		return nil, err
	}
	km, err := k.Matrix()
	if err != nil {
		return nil, err
	}
	defer km.Release()

	out, err := sg.NewVector[float64](data.NumVectors())
	if err != nil {
		return nil, err
	}
	defer out.Release()
	if out.Len() > 0 {
		if err := linalg.MatrixProd[float64](nil, km, m.alpha, out, true, false); err != nil {
			return nil, err
		}
	}
	return labels.NewRegressionFrom(out), nil
}

// Register adds the machine classes to r.
func Register(r *object.Registry) error {
	return r.Register(KernelRidgeName, func() object.Object { return NewKernelRidge() })
}

func init() {
	if err := Register(object.DefaultRegistry()); err != nil {
		panic(err)
	}
}
