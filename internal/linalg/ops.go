package linalg

import (
	"fmt"

	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/sg"
)

// one returns the multiplicative identity of T (true for bool).
func one[T sg.Element]() T {
	var v T
	switch p := any(&v).(type) {
	case *bool:
		*p = true
	case *int8:
		*p = 1
	case *uint8:
		*p = 1
	case *int16:
		*p = 1
	case *uint16:
		*p = 1
	case *int32:
		*p = 1
	case *uint32:
		*p = 1
	case *int64:
		*p = 1
	case *uint64:
		*p = 1
	case *float32:
		*p = 1
	case *float64:
		*p = 1
	case *complex128:
		*p = 1
	}
	return v
}

// typed converts an engine result back to T.
func typed[T sg.Element](op string, v any) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, errors.NewTypeMismatch(op, "result", sg.PTypeOf[T]().String(), fmt.Sprintf("%T", v))
	}
	return t, nil
}

// Add computes result = a + b.
func Add[T sg.Element](env *Env, a, b, result sg.Container[T]) error {
	return AddScaled(env, a, b, one[T](), one[T](), result)
}

// AddScaled computes result = alpha*a + beta*b. result may alias a or b.
func AddScaled[T sg.Element](env *Env, a, b sg.Container[T], alpha, beta T, result sg.Container[T]) error {
	be, err := envOrDefault(env).backendFor("add", a, b, result)
	if err != nil {
		return err
	}
	return be.Add(a, b, alpha, beta, result)
}

// Dot returns the inner product of a and b.
func Dot[T sg.Element](env *Env, a, b sg.Container[T]) (T, error) {
	var zero T
	be, err := envOrDefault(env).backendFor("dot", a, b)
	if err != nil {
		return zero, err
	}
	v, err := be.Dot(a, b)
	if err != nil {
		return zero, err
	}
	return typed[T]("dot", v)
}

// ElementProd computes result = a * b element-wise.
func ElementProd[T sg.Element](env *Env, a, b, result sg.Container[T]) error {
	be, err := envOrDefault(env).backendFor("element product", a, b, result)
	if err != nil {
		return err
	}
	return be.ElementProd(a, b, result)
}

// Scale computes result = alpha * a.
func Scale[T sg.Element](env *Env, a sg.Container[T], alpha T, result sg.Container[T]) error {
	be, err := envOrDefault(env).backendFor("scale", a, result)
	if err != nil {
		return err
	}
	return be.Scale(a, alpha, result)
}

// Sum returns the sum of all elements.
func Sum[T sg.Element](env *Env, a sg.Container[T]) (T, error) {
	var zero T
	be, err := envOrDefault(env).backendFor("sum", a)
	if err != nil {
		return zero, err
	}
	v, err := be.Sum(a)
	if err != nil {
		return zero, err
	}
	return typed[T]("sum", v)
}

// Max returns the largest element. Only ordered element types are supported.
func Max[T sg.Element](env *Env, a sg.Container[T]) (T, error) {
	var zero T
	be, err := envOrDefault(env).backendFor("max", a)
	if err != nil {
		return zero, err
	}
	v, err := be.Max(a)
	if err != nil {
		return zero, err
	}
	return typed[T]("max", v)
}

// Mean returns the arithmetic mean as float64.
func Mean[T sg.Element](env *Env, a sg.Container[T]) (float64, error) {
	be, err := envOrDefault(env).backendFor("mean", a)
	if err != nil {
		return 0, err
	}
	return be.Mean(a)
}

// SetConst sets every element of result to value.
func SetConst[T sg.Element](env *Env, result sg.Container[T], value T) error {
	be, err := envOrDefault(env).backendFor("set const", result)
	if err != nil {
		return err
	}
	return be.SetConst(result, value)
}

// RangeFill sets result[i] = start + i.
func RangeFill[T sg.Element](env *Env, result sg.Container[T], start T) error {
	be, err := envOrDefault(env).backendFor("range fill", result)
	if err != nil {
		return err
	}
	return be.RangeFill(result, start)
}

// MatrixProd computes result = op(a) * op(b), where op transposes when the
// matching flag is set. Vectors act as single-column matrices.
func MatrixProd[T sg.Element](env *Env, a, b, result sg.Container[T], transA, transB bool) error {
	be, err := envOrDefault(env).backendFor("matrix product", a, b, result)
	if err != nil {
		return err
	}
	return be.MatrixProd(a, b, result, transA, transB)
}

// Identity writes the identity matrix into result.
func Identity[T sg.Element](env *Env, result sg.Container[T]) error {
	be, err := envOrDefault(env).backendFor("identity", result)
	if err != nil {
		return err
	}
	return be.Identity(result)
}
