//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/sg"
)

func params(n int, scalars ...float32) []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(n)) //nolint:gosec // G115: length fits in u32
	for i, s := range scalars {
		binary.LittleEndian.PutUint32(buf[4+i*4:], math.Float32bits(s))
	}
	return buf
}

func scalar(op string, v any) (float32, error) {
	s, ok := v.(float32)
	if !ok {
		return 0, errors.NewTypeMismatch(op, "scalar", "float32", fmt.Sprintf("%T", v))
	}
	return s, nil
}

// operands resolves the device memory of ds, which must share one shape.
func (b *Backend) operands(op string, ds ...sg.Dense) ([]*memory, error) {
	mems := make([]*memory, len(ds))
	for i, d := range ds {
		if i > 0 && !sg.SameShape(ds[0], d) {
			return nil, errors.NewShapeError(op, sg.Shape(ds[0]), sg.Shape(d))
		}
		mem, err := b.memoryOf(op, d)
		if err != nil {
			return nil, err
		}
		mems[i] = mem
	}
	return mems, nil
}

// Add computes result = alpha*a + beta*b on the device.
func (b *Backend) Add(a, c sg.Dense, alpha, beta any, result sg.Dense) error {
	al, err := scalar("add", alpha)
	if err != nil {
		return err
	}
	be, err := scalar("add", beta)
	if err != nil {
		return err
	}
	mems, err := b.operands("add", a, c, result)
	if err != nil {
		return err
	}
	n := result.Len()
	if n == 0 {
		return nil
	}
	b.dispatch("axpby", axpbyShader, n, params(n, al, be),
		mems[0].binding(), mems[1].binding(), mems[2].binding())
	return nil
}

// ElementProd computes result = a * b element-wise on the device.
func (b *Backend) ElementProd(a, c, result sg.Dense) error {
	mems, err := b.operands("element product", a, c, result)
	if err != nil {
		return err
	}
	n := result.Len()
	if n == 0 {
		return nil
	}
	b.dispatch("mul", mulShader, n, params(n),
		mems[0].binding(), mems[1].binding(), mems[2].binding())
	return nil
}

// Scale computes result = alpha * a on the device.
func (b *Backend) Scale(a sg.Dense, alpha any, result sg.Dense) error {
	al, err := scalar("scale", alpha)
	if err != nil {
		return err
	}
	mems, err := b.operands("scale", a, result)
	if err != nil {
		return err
	}
	n := result.Len()
	if n == 0 {
		return nil
	}
	b.dispatch("scale", scaleShader, n, params(n, al), mems[0].binding(), mems[1].binding())
	return nil
}

// Dot is not implemented on the device.
func (b *Backend) Dot(_, _ sg.Dense) (any, error) {
	return nil, errors.NewUnsupportedOperation(Name, "dot")
}

// Sum is not implemented on the device.
func (b *Backend) Sum(_ sg.Dense) (any, error) {
	return nil, errors.NewUnsupportedOperation(Name, "sum")
}

// Max is not implemented on the device.
func (b *Backend) Max(_ sg.Dense) (any, error) {
	return nil, errors.NewUnsupportedOperation(Name, "max")
}

// Mean is not implemented on the device.
func (b *Backend) Mean(_ sg.Dense) (float64, error) {
	return 0, errors.NewUnsupportedOperation(Name, "mean")
}

// SetConst is not implemented on the device.
func (b *Backend) SetConst(_ sg.Dense, _ any) error {
	return errors.NewUnsupportedOperation(Name, "set const")
}

// RangeFill is not implemented on the device.
func (b *Backend) RangeFill(_ sg.Dense, _ any) error {
	return errors.NewUnsupportedOperation(Name, "range fill")
}

// MatrixProd is not implemented on the device.
func (b *Backend) MatrixProd(_, _, _ sg.Dense, _, _ bool) error {
	return errors.NewUnsupportedOperation(Name, "matrix product")
}

// Identity is not implemented on the device.
func (b *Backend) Identity(_ sg.Dense) error {
	return errors.NewUnsupportedOperation(Name, "identity")
}
