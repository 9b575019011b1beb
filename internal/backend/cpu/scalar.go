package cpu

import (
	"fmt"

	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/sg"
)

// scalarAs unpacks a scalar argument that must already have type T.
func scalarAs[T sg.Element](op string, v any) (T, error) {
	x, ok := v.(T)
	if !ok {
		var zero T
		return zero, errors.NewTypeMismatch(op, "scalar", sg.PTypeOf[T]().String(), fmt.Sprintf("%T", v))
	}
	return x, nil
}

// elements returns the typed CPU data of every operand.
func elements[T sg.Element](ds ...sg.Dense) ([][]T, error) {
	out := make([][]T, len(ds))
	for i, d := range ds {
		data, err := sg.Elements[T](d)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}

func checkSameShape(op string, first sg.Dense, rest ...sg.Dense) error {
	for _, d := range rest {
		if !sg.SameShape(first, d) {
			return errors.NewShapeError(op, sg.Shape(first), sg.Shape(d))
		}
	}
	return nil
}
