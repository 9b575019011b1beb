// Package sg provides the reference-counted typed containers Vector and
// Matrix together with their element type tags and storage accounting.
package sg

// Element is the set of Go types a container can hold.
type Element interface {
	bool | int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 |
		float32 | float64 | complex128
}

// Numeric is every Element except bool.
type Numeric interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 |
		float32 | float64 | complex128
}

// Real is the ordered numeric types.
type Real interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 |
		float32 | float64
}

// Float is the IEEE floating point types.
type Float interface {
	float32 | float64
}

// PType is the runtime element type tag of a container.
type PType int

// Supported element types.
const (
	Undefined PType = iota
	Bool
	Char
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
	Complex128
)

// Size returns the byte size of one element.
func (pt PType) Size() int {
	switch pt {
	case Bool, Char, Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	case Complex128:
		return 16
	default:
		return 0
	}
}

// String returns a human-readable name for the element type.
func (pt PType) String() string {
	switch pt {
	case Bool:
		return "bool"
	case Char:
		return "char"
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Complex128:
		return "complex128"
	default:
		return "undefined"
	}
}

// IsNumeric reports whether arithmetic is defined for the type.
func (pt PType) IsNumeric() bool {
	return pt != Undefined && pt != Bool && pt.Size() > 0
}

// IsReal reports whether the type is an ordered numeric type.
func (pt PType) IsReal() bool {
	return pt.IsNumeric() && pt != Complex128
}

// IsFloat reports whether the type is float32 or float64.
func (pt PType) IsFloat() bool {
	return pt == Float32 || pt == Float64
}

// PTypeOf infers the tag for T. Char is never inferred since byte is uint8.
func PTypeOf[T Element]() PType {
	var zero T
	switch any(zero).(type) {
	case bool:
		return Bool
	case int8:
		return Int8
	case uint8:
		return Uint8
	case int16:
		return Int16
	case uint16:
		return Uint16
	case int32:
		return Int32
	case uint32:
		return Uint32
	case int64:
		return Int64
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	case complex128:
		return Complex128
	default:
		return Undefined
	}
}
