// Package blas implements the accelerated CPU engine. float32 and float64
// operations run on gonum BLAS; every other element type falls through to
// the plain CPU engine.
package blas

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/born-ml/shogun/internal/backend/cpu"
	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/sg"
)

// Name is the engine name reported by Name.
const Name = "blas"

// BLASBackend routes floating point work to gonum BLAS.
type BLASBackend struct {
	*cpu.CPUBackend
}

// New creates a BLAS backend.
func New() *BLASBackend {
	return &BLASBackend{CPUBackend: cpu.New()}
}

// Name returns the backend name.
func (b *BLASBackend) Name() string {
	return Name
}

func trans(t bool) blas.Transpose {
	if t {
		return blas.Trans
	}
	return blas.NoTrans
}

// aliases reports whether x and y start at the same element.
func aliases[T sg.Float](x, y []T) bool {
	return len(x) > 0 && len(y) > 0 && &x[0] == &y[0]
}

func scalar[T sg.Float](op string, v any) (T, error) {
	x, ok := v.(T)
	if !ok {
		var zero T
		return zero, errors.NewTypeMismatch(op, "scalar", sg.PTypeOf[T]().String(), fmt.Sprintf("%T", v))
	}
	return x, nil
}

// Dot returns sum(a[i]*b[i]).
func (b *BLASBackend) Dot(x, y sg.Dense) (any, error) {
	if x.Len() != y.Len() {
		return nil, errors.NewShapeError("dot", []int{x.Len()}, []int{y.Len()})
	}
	switch x.PType() {
	case sg.Float64:
		xs, ys, err := pair[float64](x, y)
		if err != nil {
			return nil, err
		}
		return blas64.Dot(vec64(xs), vec64(ys)), nil
	case sg.Float32:
		xs, ys, err := pair[float32](x, y)
		if err != nil {
			return nil, err
		}
		return blas32.Dot(vec32(xs), vec32(ys)), nil
	default:
		return b.CPUBackend.Dot(x, y)
	}
}

// Add computes result = alpha*x + beta*y with Scal and Axpy.
func (b *BLASBackend) Add(x, y sg.Dense, alpha, beta any, result sg.Dense) error {
	for _, d := range []sg.Dense{y, result} {
		if !sg.SameShape(x, d) {
			return errors.NewShapeError("add", sg.Shape(x), sg.Shape(d))
		}
	}
	switch x.PType() {
	case sg.Float64:
		al, err := scalar[float64]("add", alpha)
		if err != nil {
			return err
		}
		be, err := scalar[float64]("add", beta)
		if err != nil {
			return err
		}
		xs, ys, err := pair[float64](x, y)
		if err != nil {
			return err
		}
		r, err := sg.Elements[float64](result)
		if err != nil {
			return err
		}
		switch {
		case aliases(r, xs) && aliases(r, ys):
			blas64.Scal(al+be, vec64(r))
		case aliases(r, ys):
			blas64.Scal(be, vec64(r))
			blas64.Axpy(al, vec64(xs), vec64(r))
		case aliases(r, xs):
			blas64.Scal(al, vec64(r))
			blas64.Axpy(be, vec64(ys), vec64(r))
		default:
			blas64.Copy(vec64(ys), vec64(r))
			blas64.Scal(be, vec64(r))
			blas64.Axpy(al, vec64(xs), vec64(r))
		}
		return nil
	case sg.Float32:
		al, err := scalar[float32]("add", alpha)
		if err != nil {
			return err
		}
		be, err := scalar[float32]("add", beta)
		if err != nil {
			return err
		}
		xs, ys, err := pair[float32](x, y)
		if err != nil {
			return err
		}
		r, err := sg.Elements[float32](result)
		if err != nil {
			return err
		}
		switch {
		case aliases(r, xs) && aliases(r, ys):
			blas32.Scal(al+be, vec32(r))
		case aliases(r, ys):
			blas32.Scal(be, vec32(r))
			blas32.Axpy(al, vec32(xs), vec32(r))
		case aliases(r, xs):
			blas32.Scal(al, vec32(r))
			blas32.Axpy(be, vec32(ys), vec32(r))
		default:
			blas32.Copy(vec32(ys), vec32(r))
			blas32.Scal(be, vec32(r))
			blas32.Axpy(al, vec32(xs), vec32(r))
		}
		return nil
	default:
		return b.CPUBackend.Add(x, y, alpha, beta, result)
	}
}

// Scale computes result = alpha*x with Scal.
func (b *BLASBackend) Scale(x sg.Dense, alpha any, result sg.Dense) error {
	if !sg.SameShape(x, result) {
		return errors.NewShapeError("scale", sg.Shape(x), sg.Shape(result))
	}
	switch x.PType() {
	case sg.Float64:
		al, err := scalar[float64]("scale", alpha)
		if err != nil {
			return err
		}
		xs, r, err := pair[float64](x, result)
		if err != nil {
			return err
		}
		if !aliases(xs, r) {
			blas64.Copy(vec64(xs), vec64(r))
		}
		blas64.Scal(al, vec64(r))
		return nil
	case sg.Float32:
		al, err := scalar[float32]("scale", alpha)
		if err != nil {
			return err
		}
		xs, r, err := pair[float32](x, result)
		if err != nil {
			return err
		}
		if !aliases(xs, r) {
			blas32.Copy(vec32(xs), vec32(r))
		}
		blas32.Scal(al, vec32(r))
		return nil
	default:
		return b.CPUBackend.Scale(x, alpha, result)
	}
}

// MatrixProd computes result = op(x)*op(y) with Gemm. Column-major data
// is the row-major transpose, so C^T = op(B)^T * op(A)^T is computed. A
// result overlapping x or y is rejected.
func (b *BLASBackend) MatrixProd(x, y, result sg.Dense, transA, transB bool) error {
	m, k, n, err := cpu.ProdDims(x, y, result, transA, transB)
	if err != nil {
		return err
	}
	switch x.PType() {
	case sg.Float64:
		xs, ys, err := pair[float64](x, y)
		if err != nil {
			return err
		}
		r, err := sg.Elements[float64](result)
		if err != nil {
			return err
		}
		if err := cpu.CheckProdOutput(xs, ys, r); err != nil {
			return err
		}
		if m == 0 || n == 0 {
			return nil
		}
		if k == 0 {
			clear(r)
			return nil
		}
		blas64.Gemm(trans(transB), trans(transA), 1,
			gen64(ys, y.Cols(), y.Rows()), gen64(xs, x.Cols(), x.Rows()),
			0, gen64(r, n, m))
		return nil
	case sg.Float32:
		xs, ys, err := pair[float32](x, y)
		if err != nil {
			return err
		}
		r, err := sg.Elements[float32](result)
		if err != nil {
			return err
		}
		if err := cpu.CheckProdOutput(xs, ys, r); err != nil {
			return err
		}
		if m == 0 || n == 0 {
			return nil
		}
		if k == 0 {
			clear(r)
			return nil
		}
		blas32.Gemm(trans(transB), trans(transA), 1,
			gen32(ys, y.Cols(), y.Rows()), gen32(xs, x.Cols(), x.Rows()),
			0, gen32(r, n, m))
		return nil
	default:
		return b.CPUBackend.MatrixProd(x, y, result, transA, transB)
	}
}

func pair[T sg.Float](x, y sg.Dense) ([]T, []T, error) {
	xs, err := sg.Elements[T](x)
	if err != nil {
		return nil, nil, err
	}
	ys, err := sg.Elements[T](y)
	if err != nil {
		return nil, nil, err
	}
	return xs, ys, nil
}

func vec64(data []float64) blas64.Vector {
	return blas64.Vector{N: len(data), Inc: 1, Data: data}
}

func vec32(data []float32) blas32.Vector {
	return blas32.Vector{N: len(data), Inc: 1, Data: data}
}

// gen64 views column-major data with the given extents as row-major.
func gen64(data []float64, rows, cols int) blas64.General {
	return blas64.General{Rows: rows, Cols: cols, Stride: max(cols, 1), Data: data}
}

func gen32(data []float32, rows, cols int) blas32.General {
	return blas32.General{Rows: rows, Cols: cols, Stride: max(cols, 1), Data: data}
}
