package cpu

import (
	"unsafe"

	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/parallel"
	"github.com/born-ml/shogun/internal/sg"
)

// ProdDims validates op(a)*op(b) against result and returns m, k, n where
// op(a) is m x k and op(b) is k x n.
func ProdDims(a, b, result sg.Dense, transA, transB bool) (m, k, n int, err error) {
	m, k = a.Rows(), a.Cols()
	if transA {
		m, k = k, m
	}
	kb, n := b.Rows(), b.Cols()
	if transB {
		kb, n = n, kb
	}
	if k != kb {
		return 0, 0, 0, errors.NewShapeError("matrix_prod", []int{m, k}, []int{kb, n})
	}
	if result.Rows() != m || result.Cols() != n {
		return 0, 0, 0, errors.NewShapeError("matrix_prod", []int{m, n}, sg.Shape(result))
	}
	return m, k, n, nil
}

// Overlaps reports whether x and y share any element.
func Overlaps[T any](x, y []T) bool {
	if len(x) == 0 || len(y) == 0 {
		return false
	}
	var zero T
	size := unsafe.Sizeof(zero)
	xs := uintptr(unsafe.Pointer(&x[0]))
	ys := uintptr(unsafe.Pointer(&y[0]))
	return xs < ys+uintptr(len(y))*size && ys < xs+uintptr(len(x))*size
}

// CheckProdOutput rejects a result that overlaps either input.
func CheckProdOutput[T any](x, y, r []T) error {
	if Overlaps(r, x) || Overlaps(r, y) {
		return errors.Wrap(errors.ErrInvalidArgument, "matrix_prod: result overlaps an operand")
	}
	return nil
}

// MatrixProd computes result = op(a)*op(b) on column-major operands, where
// op transposes when the flag is set. A result overlapping a or b is
// rejected with ErrInvalidArgument.
func (cpu *CPUBackend) MatrixProd(a, b, result sg.Dense, transA, transB bool) error {
	if _, _, _, err := ProdDims(a, b, result, transA, transB); err != nil {
		return err
	}
	cfg := cpu.parallelConfig()
	switch a.PType() {
	case sg.Int8:
		return matrixProd[int8](cfg, a, b, result, transA, transB)
	case sg.Uint8:
		return matrixProd[uint8](cfg, a, b, result, transA, transB)
	case sg.Int16:
		return matrixProd[int16](cfg, a, b, result, transA, transB)
	case sg.Uint16:
		return matrixProd[uint16](cfg, a, b, result, transA, transB)
	case sg.Int32:
		return matrixProd[int32](cfg, a, b, result, transA, transB)
	case sg.Uint32:
		return matrixProd[uint32](cfg, a, b, result, transA, transB)
	case sg.Int64:
		return matrixProd[int64](cfg, a, b, result, transA, transB)
	case sg.Uint64:
		return matrixProd[uint64](cfg, a, b, result, transA, transB)
	case sg.Float32:
		return matrixProd[float32](cfg, a, b, result, transA, transB)
	case sg.Float64:
		return matrixProd[float64](cfg, a, b, result, transA, transB)
	case sg.Complex128:
		return matrixProd[complex128](cfg, a, b, result, transA, transB)
	default:
		return errors.NewUnsupportedType("matrix_prod", a.PType())
	}
}

func matrixProd[T sg.Numeric](cfg parallel.Config, a, b, result sg.Dense, transA, transB bool) error {
	ops, err := elements[T](a, b, result)
	if err != nil {
		return err
	}
	x, y, r := ops[0], ops[1], ops[2]
	if err := CheckProdOutput(x, y, r); err != nil {
		return err
	}
	m, k, n, _ := ProdDims(a, b, result, transA, transB)
	ar, br := a.Rows(), b.Rows()

	at := func(i, p int) T {
		if transA {
			return x[p+i*ar]
		}
		return x[i+p*ar]
	}
	bt := func(p, j int) T {
		if transB {
			return y[j+p*br]
		}
		return y[p+j*br]
	}

	// Columns of the result are independent.
	colCfg := cfg
	colCfg.MinChunkSize = max(1, cfg.MinChunkSize/max(m*k, 1))
	parallel.ForRange(n, func(s, e int) {
		for j := s; j < e; j++ {
			for i := 0; i < m; i++ {
				var acc T
				for p := 0; p < k; p++ {
					acc += at(i, p) * bt(p, j)
				}
				r[i+j*m] = acc
			}
		}
	}, colCfg)
	return nil
}
