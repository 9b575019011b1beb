package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrors_MatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		wantMsg  string
	}{
		{
			name:     "class not found",
			err:      NewClassNotFound("NoSuchClass"),
			sentinel: ErrClassNotFound,
			wantMsg:  `shogun: class "NoSuchClass" not found`,
		},
		{
			name:     "type mismatch",
			err:      NewTypeMismatch("create", "GaussianKernel", "Labels", "*kernel.Gaussian"),
			sentinel: ErrTypeMismatch,
			wantMsg:  "shogun: create: GaussianKernel has type *kernel.Gaussian, incompatible with requested type Labels",
		},
		{
			name:     "unsupported type",
			err:      NewUnsupportedType("add", "bool"),
			sentinel: ErrUnsupportedType,
			wantMsg:  "shogun: add: unsupported element type bool",
		},
		{
			name:     "index",
			err:      NewIndexError([]int{5}, []int{3}),
			sentinel: ErrIndexOutOfRange,
			wantMsg:  "shogun: index [5] out of range for shape [3]",
		},
		{
			name:     "out of memory",
			err:      NewOutOfMemory(64, 32, 0),
			sentinel: ErrOutOfMemory,
			wantMsg:  "shogun: cannot allocate 64 bytes (0 live, limit 32)",
		},
		{
			name:     "shape",
			err:      NewShapeError("dot", []int{3}, []int{4}),
			sentinel: ErrShapeMismatch,
			wantMsg:  "shogun: dot: shape mismatch, expected [3], got [4]",
		},
		{
			name:     "parameter",
			err:      NewParameterError("MockObject", "foo", ErrParameterNotFound),
			sentinel: ErrParameterNotFound,
			wantMsg:  "shogun: parameter MockObject::foo: parameter not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			assert.True(t, Is(tt.err, tt.sentinel))
			assert.False(t, Is(tt.err, ErrReleased))

			formatted := fmt.Sprintf("%+v", tt.err)
			assert.True(t, strings.Contains(formatted, "errors_test.go"), "expected a stack trace")
		})
	}
}

func TestTypedErrors_As(t *testing.T) {
	err := Wrap(NewTypeMismatch("get", "width", "int32", "float64"), "reading kernel")

	var mismatch *TypeMismatchError
	require.True(t, As(err, &mismatch))
	assert.Equal(t, "int32", mismatch.Expected)
	assert.Equal(t, "float64", mismatch.Actual)
	assert.True(t, Is(err, ErrTypeMismatch))
}

func TestUnsupportedOperation(t *testing.T) {
	err := NewUnsupportedOperation("webgpu", "max")
	assert.True(t, Is(err, ErrUnsupportedOperation))
	assert.Contains(t, err.Error(), "webgpu")
}

func TestInvalidf(t *testing.T) {
	err := Invalidf("negative length %d", -1)
	assert.True(t, Is(err, ErrInvalidArgument))
	assert.Equal(t, "negative length -1", err.Error())
}

func TestAssertionFailure(t *testing.T) {
	err := AssertionFailedf("refcount underflow")
	assert.True(t, IsAssertionFailure(err))
	assert.False(t, IsAssertionFailure(ErrOutOfMemory))
}

func TestMarshalZerologObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logger.Error().EmbedObject(&IndexError{Index: []int{7}, Shape: []int{2, 3}}).Msg("bad access")

	out := buf.String()
	assert.Contains(t, out, `"type":"IndexError"`)
	assert.Contains(t, out, `"index":[7]`)
	assert.Contains(t, out, `"shape":[2,3]`)
}
