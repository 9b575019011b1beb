package cpu

import (
	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/parallel"
	"github.com/born-ml/shogun/internal/sg"
)

// Dot returns sum(a[i]*b[i]) as a value of the operand element type.
func (cpu *CPUBackend) Dot(a, b sg.Dense) (any, error) {
	if a.Len() != b.Len() {
		return nil, errors.NewShapeError("dot", []int{a.Len()}, []int{b.Len()})
	}
	cfg := cpu.parallelConfig()
	switch a.PType() {
	case sg.Int8:
		return dot[int8](cfg, a, b)
	case sg.Uint8:
		return dot[uint8](cfg, a, b)
	case sg.Int16:
		return dot[int16](cfg, a, b)
	case sg.Uint16:
		return dot[uint16](cfg, a, b)
	case sg.Int32:
		return dot[int32](cfg, a, b)
	case sg.Uint32:
		return dot[uint32](cfg, a, b)
	case sg.Int64:
		return dot[int64](cfg, a, b)
	case sg.Uint64:
		return dot[uint64](cfg, a, b)
	case sg.Float32:
		return dot[float32](cfg, a, b)
	case sg.Float64:
		return dot[float64](cfg, a, b)
	case sg.Complex128:
		return dot[complex128](cfg, a, b)
	default:
		return nil, errors.NewUnsupportedType("dot", a.PType())
	}
}

func dot[T sg.Numeric](cfg parallel.Config, a, b sg.Dense) (any, error) {
	ops, err := elements[T](a, b)
	if err != nil {
		return nil, err
	}
	x, y := ops[0], ops[1]
	return reduce(cfg, len(x), func(s, e int) T {
		var acc T
		for i := s; i < e; i++ {
			acc += x[i] * y[i]
		}
		return acc
	}), nil
}

// reduce sums the per-chunk partial results of f in chunk order.
func reduce[T sg.Numeric](cfg parallel.Config, n int, f func(s, e int) T) T {
	size := parallel.ChunkSize(n, cfg)
	if size == 0 {
		return 0
	}
	parts := make([]T, parallel.Chunks(n, cfg))
	parallel.ForRange(n, func(s, e int) {
		parts[s/size] = f(s, e)
	}, cfg)

	var total T
	for _, p := range parts {
		total += p
	}
	return total
}

// Sum returns the sum of all elements.
func (cpu *CPUBackend) Sum(a sg.Dense) (any, error) {
	cfg := cpu.parallelConfig()
	switch a.PType() {
	case sg.Int8:
		return sum[int8](cfg, a)
	case sg.Uint8:
		return sum[uint8](cfg, a)
	case sg.Int16:
		return sum[int16](cfg, a)
	case sg.Uint16:
		return sum[uint16](cfg, a)
	case sg.Int32:
		return sum[int32](cfg, a)
	case sg.Uint32:
		return sum[uint32](cfg, a)
	case sg.Int64:
		return sum[int64](cfg, a)
	case sg.Uint64:
		return sum[uint64](cfg, a)
	case sg.Float32:
		return sum[float32](cfg, a)
	case sg.Float64:
		return sum[float64](cfg, a)
	case sg.Complex128:
		return sum[complex128](cfg, a)
	default:
		return nil, errors.NewUnsupportedType("sum", a.PType())
	}
}

func sum[T sg.Numeric](cfg parallel.Config, a sg.Dense) (any, error) {
	x, err := sg.Elements[T](a)
	if err != nil {
		return nil, err
	}
	return reduce(cfg, len(x), func(s, e int) T {
		var acc T
		for i := s; i < e; i++ {
			acc += x[i]
		}
		return acc
	}), nil
}

// Max returns the largest element. Empty containers are an error.
func (cpu *CPUBackend) Max(a sg.Dense) (any, error) {
	switch a.PType() {
	case sg.Int8:
		return maxOf[int8](a)
	case sg.Uint8:
		return maxOf[uint8](a)
	case sg.Int16:
		return maxOf[int16](a)
	case sg.Uint16:
		return maxOf[uint16](a)
	case sg.Int32:
		return maxOf[int32](a)
	case sg.Uint32:
		return maxOf[uint32](a)
	case sg.Int64:
		return maxOf[int64](a)
	case sg.Uint64:
		return maxOf[uint64](a)
	case sg.Float32:
		return maxOf[float32](a)
	case sg.Float64:
		return maxOf[float64](a)
	default:
		return nil, errors.NewUnsupportedType("max", a.PType())
	}
}

func maxOf[T sg.Real](a sg.Dense) (any, error) {
	x, err := sg.Elements[T](a)
	if err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return nil, errors.Invalidf("max: empty container")
	}
	m := x[0]
	for _, v := range x[1:] {
		if v > m {
			m = v
		}
	}
	return m, nil
}

// Mean returns the arithmetic mean as float64. Empty containers are an error.
func (cpu *CPUBackend) Mean(a sg.Dense) (float64, error) {
	switch a.PType() {
	case sg.Int8:
		return mean[int8](a)
	case sg.Uint8:
		return mean[uint8](a)
	case sg.Int16:
		return mean[int16](a)
	case sg.Uint16:
		return mean[uint16](a)
	case sg.Int32:
		return mean[int32](a)
	case sg.Uint32:
		return mean[uint32](a)
	case sg.Int64:
		return mean[int64](a)
	case sg.Uint64:
		return mean[uint64](a)
	case sg.Float32:
		return mean[float32](a)
	case sg.Float64:
		return mean[float64](a)
	default:
		return 0, errors.NewUnsupportedType("mean", a.PType())
	}
}

func mean[T sg.Real](a sg.Dense) (float64, error) {
	x, err := sg.Elements[T](a)
	if err != nil {
		return 0, err
	}
	if len(x) == 0 {
		return 0, errors.Invalidf("mean: empty container")
	}
	var acc float64
	for _, v := range x {
		acc += float64(v)
	}
	return acc / float64(len(x)), nil
}
