package cpu

import (
	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/parallel"
	"github.com/born-ml/shogun/internal/sg"
)

// Add computes result = alpha*a + beta*b element-wise.
// alpha and beta must have the element type of the operands.
func (cpu *CPUBackend) Add(a, b sg.Dense, alpha, beta any, result sg.Dense) error {
	if err := checkSameShape("add", a, b, result); err != nil {
		return err
	}
	cfg := cpu.parallelConfig()
	switch a.PType() {
	case sg.Int8:
		return add[int8](cfg, a, b, alpha, beta, result)
	case sg.Uint8:
		return add[uint8](cfg, a, b, alpha, beta, result)
	case sg.Int16:
		return add[int16](cfg, a, b, alpha, beta, result)
	case sg.Uint16:
		return add[uint16](cfg, a, b, alpha, beta, result)
	case sg.Int32:
		return add[int32](cfg, a, b, alpha, beta, result)
	case sg.Uint32:
		return add[uint32](cfg, a, b, alpha, beta, result)
	case sg.Int64:
		return add[int64](cfg, a, b, alpha, beta, result)
	case sg.Uint64:
		return add[uint64](cfg, a, b, alpha, beta, result)
	case sg.Float32:
		return add[float32](cfg, a, b, alpha, beta, result)
	case sg.Float64:
		return add[float64](cfg, a, b, alpha, beta, result)
	case sg.Complex128:
		return add[complex128](cfg, a, b, alpha, beta, result)
	default:
		return errors.NewUnsupportedType("add", a.PType())
	}
}

func add[T sg.Numeric](cfg parallel.Config, a, b sg.Dense, alpha, beta any, result sg.Dense) error {
	al, err := scalarAs[T]("add", alpha)
	if err != nil {
		return err
	}
	be, err := scalarAs[T]("add", beta)
	if err != nil {
		return err
	}
	ops, err := elements[T](a, b, result)
	if err != nil {
		return err
	}
	x, y, r := ops[0], ops[1], ops[2]
	parallel.ForRange(len(r), func(s, e int) {
		for i := s; i < e; i++ {
			r[i] = al*x[i] + be*y[i]
		}
	}, cfg)
	return nil
}

// ElementProd computes result = a .* b.
func (cpu *CPUBackend) ElementProd(a, b, result sg.Dense) error {
	if err := checkSameShape("element_prod", a, b, result); err != nil {
		return err
	}
	cfg := cpu.parallelConfig()
	switch a.PType() {
	case sg.Int8:
		return elementProd[int8](cfg, a, b, result)
	case sg.Uint8:
		return elementProd[uint8](cfg, a, b, result)
	case sg.Int16:
		return elementProd[int16](cfg, a, b, result)
	case sg.Uint16:
		return elementProd[uint16](cfg, a, b, result)
	case sg.Int32:
		return elementProd[int32](cfg, a, b, result)
	case sg.Uint32:
		return elementProd[uint32](cfg, a, b, result)
	case sg.Int64:
		return elementProd[int64](cfg, a, b, result)
	case sg.Uint64:
		return elementProd[uint64](cfg, a, b, result)
	case sg.Float32:
		return elementProd[float32](cfg, a, b, result)
	case sg.Float64:
		return elementProd[float64](cfg, a, b, result)
	case sg.Complex128:
		return elementProd[complex128](cfg, a, b, result)
	default:
		return errors.NewUnsupportedType("element_prod", a.PType())
	}
}

func elementProd[T sg.Numeric](cfg parallel.Config, a, b, result sg.Dense) error {
	ops, err := elements[T](a, b, result)
	if err != nil {
		return err
	}
	x, y, r := ops[0], ops[1], ops[2]
	parallel.ForRange(len(r), func(s, e int) {
		for i := s; i < e; i++ {
			r[i] = x[i] * y[i]
		}
	}, cfg)
	return nil
}

// Scale computes result = alpha*a.
func (cpu *CPUBackend) Scale(a sg.Dense, alpha any, result sg.Dense) error {
	if err := checkSameShape("scale", a, result); err != nil {
		return err
	}
	cfg := cpu.parallelConfig()
	switch a.PType() {
	case sg.Int8:
		return scale[int8](cfg, a, alpha, result)
	case sg.Uint8:
		return scale[uint8](cfg, a, alpha, result)
	case sg.Int16:
		return scale[int16](cfg, a, alpha, result)
	case sg.Uint16:
		return scale[uint16](cfg, a, alpha, result)
	case sg.Int32:
		return scale[int32](cfg, a, alpha, result)
	case sg.Uint32:
		return scale[uint32](cfg, a, alpha, result)
	case sg.Int64:
		return scale[int64](cfg, a, alpha, result)
	case sg.Uint64:
		return scale[uint64](cfg, a, alpha, result)
	case sg.Float32:
		return scale[float32](cfg, a, alpha, result)
	case sg.Float64:
		return scale[float64](cfg, a, alpha, result)
	case sg.Complex128:
		return scale[complex128](cfg, a, alpha, result)
	default:
		return errors.NewUnsupportedType("scale", a.PType())
	}
}

func scale[T sg.Numeric](cfg parallel.Config, a sg.Dense, alpha any, result sg.Dense) error {
	al, err := scalarAs[T]("scale", alpha)
	if err != nil {
		return err
	}
	ops, err := elements[T](a, result)
	if err != nil {
		return err
	}
	x, r := ops[0], ops[1]
	parallel.ForRange(len(r), func(s, e int) {
		for i := s; i < e; i++ {
			r[i] = al * x[i]
		}
	}, cfg)
	return nil
}

// SetConst sets every element of result to value.
func (cpu *CPUBackend) SetConst(result sg.Dense, value any) error {
	switch result.PType() {
	case sg.Bool:
		return setConst[bool](result, value)
	case sg.Int8:
		return setConst[int8](result, value)
	case sg.Uint8:
		return setConst[uint8](result, value)
	case sg.Int16:
		return setConst[int16](result, value)
	case sg.Uint16:
		return setConst[uint16](result, value)
	case sg.Int32:
		return setConst[int32](result, value)
	case sg.Uint32:
		return setConst[uint32](result, value)
	case sg.Int64:
		return setConst[int64](result, value)
	case sg.Uint64:
		return setConst[uint64](result, value)
	case sg.Float32:
		return setConst[float32](result, value)
	case sg.Float64:
		return setConst[float64](result, value)
	case sg.Complex128:
		return setConst[complex128](result, value)
	default:
		return errors.NewUnsupportedType("set_const", result.PType())
	}
}

func setConst[T sg.Element](result sg.Dense, value any) error {
	v, err := scalarAs[T]("set_const", value)
	if err != nil {
		return err
	}
	r, err := sg.Elements[T](result)
	if err != nil {
		return err
	}
	for i := range r {
		r[i] = v
	}
	return nil
}

// RangeFill sets result[i] = start + i for ordered numeric types.
func (cpu *CPUBackend) RangeFill(result sg.Dense, start any) error {
	switch result.PType() {
	case sg.Int8:
		return rangeFill[int8](result, start)
	case sg.Uint8:
		return rangeFill[uint8](result, start)
	case sg.Int16:
		return rangeFill[int16](result, start)
	case sg.Uint16:
		return rangeFill[uint16](result, start)
	case sg.Int32:
		return rangeFill[int32](result, start)
	case sg.Uint32:
		return rangeFill[uint32](result, start)
	case sg.Int64:
		return rangeFill[int64](result, start)
	case sg.Uint64:
		return rangeFill[uint64](result, start)
	case sg.Float32:
		return rangeFill[float32](result, start)
	case sg.Float64:
		return rangeFill[float64](result, start)
	default:
		return errors.NewUnsupportedType("range_fill", result.PType())
	}
}

func rangeFill[T sg.Real](result sg.Dense, start any) error {
	s, err := scalarAs[T]("range_fill", start)
	if err != nil {
		return err
	}
	r, err := sg.Elements[T](result)
	if err != nil {
		return err
	}
	for i := range r {
		r[i] = s + T(i)
	}
	return nil
}

// Identity writes ones on the main diagonal of result and zeros elsewhere.
func (cpu *CPUBackend) Identity(result sg.Dense) error {
	switch result.PType() {
	case sg.Int8:
		return identity[int8](result)
	case sg.Uint8:
		return identity[uint8](result)
	case sg.Int16:
		return identity[int16](result)
	case sg.Uint16:
		return identity[uint16](result)
	case sg.Int32:
		return identity[int32](result)
	case sg.Uint32:
		return identity[uint32](result)
	case sg.Int64:
		return identity[int64](result)
	case sg.Uint64:
		return identity[uint64](result)
	case sg.Float32:
		return identity[float32](result)
	case sg.Float64:
		return identity[float64](result)
	case sg.Complex128:
		return identity[complex128](result)
	default:
		return errors.NewUnsupportedType("identity", result.PType())
	}
}

func identity[T sg.Numeric](result sg.Dense) error {
	r, err := sg.Elements[T](result)
	if err != nil {
		return err
	}
	clear(r)
	var one T = 1
	rows := result.Rows()
	for k := 0; k < min(rows, result.Cols()); k++ {
		r[k+k*rows] = one
	}
	return nil
}
