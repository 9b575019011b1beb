// Package errors provides the error taxonomy shared by the containers, the
// object model and the linear algebra dispatcher.
//
// Every recoverable condition has a sentinel (ErrClassNotFound,
// ErrTypeMismatch, ...) usable with Is, and most carry a typed error with
// structured fields usable with As. Typed errors are created with a stack
// trace attached and implement zerolog.LogObjectMarshaler so they can be
// embedded into log events.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// Sentinels for Is checks.
var (
	ErrClassNotFound        = errors.New("class not found")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrUnsupportedType      = errors.New("unsupported type")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrOutOfMemory          = errors.New("out of memory")
	ErrShapeMismatch        = errors.New("shape mismatch")
	ErrParameterNotFound    = errors.New("parameter not found")
	ErrNotSettable          = errors.New("parameter is not settable")
	ErrInvalidOption        = errors.New("invalid option")
	ErrDuplicateClass       = errors.New("class already registered")
	ErrNoGPUBackend         = errors.New("no GPU backend configured")
	ErrDeviceMismatch       = errors.New("operands live on different devices")
	ErrGPUUnavailable       = errors.New("GPU not available")
	ErrOnGPU                = errors.New("direct memory access not possible when data is in GPU memory")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrReleased             = errors.New("container already released")
)

// ClassNotFoundError is returned by the factory for unknown class names.
type ClassNotFoundError struct {
	Name string
}

func (e *ClassNotFoundError) Error() string {
	return fmt.Sprintf("shogun: class %q not found", e.Name)
}

// Is reports whether target is ErrClassNotFound.
func (e *ClassNotFoundError) Is(target error) bool { return target == ErrClassNotFound }

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (e *ClassNotFoundError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("class", e.Name).Str("type", "ClassNotFoundError")
}

// NewClassNotFound creates a ClassNotFoundError with a stack trace.
func NewClassNotFound(name string) error {
	return errors.WithStack(&ClassNotFoundError{Name: name})
}

// TypeMismatchError reports a value, parameter or object whose type differs
// from the requested one.
type TypeMismatchError struct {
	Op       string
	Subject  string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("shogun: %s: %s has type %s, incompatible with requested type %s",
			e.Op, e.Subject, e.Actual, e.Expected)
	}
	return fmt.Sprintf("shogun: %s: type %s is incompatible with requested type %s", e.Op, e.Actual, e.Expected)
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (e *TypeMismatchError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("operation", e.Op).
		Str("subject", e.Subject).
		Str("expected", e.Expected).
		Str("actual", e.Actual).
		Str("type", "TypeMismatchError")
}

// NewTypeMismatch creates a TypeMismatchError with a stack trace.
func NewTypeMismatch(op, subject, expected, actual string) error {
	return errors.WithStack(&TypeMismatchError{Op: op, Subject: subject, Expected: expected, Actual: actual})
}

// UnsupportedTypeError is returned when an operation has no instantiation
// for an element type.
type UnsupportedTypeError struct {
	Op    string
	PType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("shogun: %s: unsupported element type %s", e.Op, e.PType)
}

// Is reports whether target is ErrUnsupportedType.
func (e *UnsupportedTypeError) Is(target error) bool { return target == ErrUnsupportedType }

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (e *UnsupportedTypeError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("operation", e.Op).Str("ptype", e.PType).Str("type", "UnsupportedTypeError")
}

// NewUnsupportedType creates an UnsupportedTypeError with a stack trace.
// ptype is formatted with %v so callers may pass a PType directly.
func NewUnsupportedType(op string, ptype any) error {
	return errors.WithStack(&UnsupportedTypeError{Op: op, PType: fmt.Sprint(ptype)})
}

// NewUnsupportedOperation reports an operation a backend does not implement.
func NewUnsupportedOperation(backend, op string) error {
	return errors.Mark(errors.Newf("shogun: backend %s does not implement %s", backend, op), ErrUnsupportedOperation)
}

// IndexError reports an element access outside [0, Len).
type IndexError struct {
	Index []int
	Shape []int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("shogun: index %v out of range for shape %v", e.Index, e.Shape)
}

// Is reports whether target is ErrIndexOutOfRange.
func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (e *IndexError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Ints("index", e.Index).Ints("shape", e.Shape).Str("type", "IndexError")
}

// NewIndexError creates an IndexError with a stack trace.
func NewIndexError(index, shape []int) error {
	return errors.WithStack(&IndexError{Index: index, Shape: shape})
}

// OutOfMemoryError reports a container allocation that could not be served.
type OutOfMemoryError struct {
	Requested int64
	Limit     int64
	Live      int64
}

func (e *OutOfMemoryError) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("shogun: cannot allocate %d bytes (%d live, limit %d)", e.Requested, e.Live, e.Limit)
	}
	return fmt.Sprintf("shogun: cannot allocate %d bytes", e.Requested)
}

// Is reports whether target is ErrOutOfMemory.
func (e *OutOfMemoryError) Is(target error) bool { return target == ErrOutOfMemory }

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (e *OutOfMemoryError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Int64("requested", e.Requested).
		Int64("limit", e.Limit).
		Int64("live", e.Live).
		Str("type", "OutOfMemoryError")
}

// NewOutOfMemory creates an OutOfMemoryError with a stack trace.
func NewOutOfMemory(requested, limit, live int64) error {
	return errors.WithStack(&OutOfMemoryError{Requested: requested, Limit: limit, Live: live})
}

// ShapeError reports operands whose extents do not line up.
type ShapeError struct {
	Op       string
	Expected []int
	Got      []int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shogun: %s: shape mismatch, expected %v, got %v", e.Op, e.Expected, e.Got)
}

// Is reports whether target is ErrShapeMismatch.
func (e *ShapeError) Is(target error) bool { return target == ErrShapeMismatch }

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (e *ShapeError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("operation", e.Op).Ints("expected", e.Expected).Ints("got", e.Got).Str("type", "ShapeError")
}

// NewShapeError creates a ShapeError with a stack trace.
func NewShapeError(op string, expected, got []int) error {
	return errors.WithStack(&ShapeError{Op: op, Expected: expected, Got: got})
}

// ParameterError reports a problem with a named parameter of an object.
type ParameterError struct {
	Object string
	Name   string
	Reason error
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("shogun: parameter %s::%s: %v", e.Object, e.Name, e.Reason)
}

// Unwrap returns the sentinel describing the failure.
func (e *ParameterError) Unwrap() error { return e.Reason }

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (e *ParameterError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("object", e.Object).Str("param", e.Name).AnErr("reason", e.Reason).Str("type", "ParameterError")
}

// NewParameterError creates a ParameterError wrapping one of the sentinels.
func NewParameterError(object, name string, reason error) error {
	return errors.WithStack(&ParameterError{Object: object, Name: name, Reason: reason})
}

// Is reports whether err matches target anywhere in its chain.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New creates an error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...any) error {
	return errors.Newf(format, args...)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}

// Mark tags err so that Is(err, reference) holds.
func Mark(err, reference error) error {
	return errors.Mark(err, reference)
}

// Invalidf builds an ErrInvalidArgument error.
func Invalidf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidArgument)
}

// AssertionFailedf builds an invariant-violation error. Callers panic with
// it; these are not meant to be recovered.
func AssertionFailedf(format string, args ...any) error {
	return errors.AssertionFailedWithDepthf(1, format, args...)
}

// IsAssertionFailure reports whether err is an invariant violation.
func IsAssertionFailure(err error) bool {
	return errors.IsAssertionFailure(err)
}
