package config

import (
	"runtime"
	"testing"

	"github.com/born-ml/shogun/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, runtime.NumCPU(), c.NumThreads)
	assert.Equal(t, BackendCPU, c.Backend)
	assert.False(t, c.GPU)
	assert.Zero(t, c.MaxAllocBytes)
	require.NoError(t, c.Validate())
}

func TestDefault_Options(t *testing.T) {
	c := Default(WithNumThreads(3), WithBackend(BackendBLAS), WithGPU(true), WithMaxAllocBytes(1024),
		WithLogLevel("debug"), WithLogFormat("console"))

	assert.Equal(t, 3, c.NumThreads)
	assert.Equal(t, BackendBLAS, c.Backend)
	assert.True(t, c.GPU)
	assert.Equal(t, int64(1024), c.MaxAllocBytes)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "console", c.LogFormat)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvNumThreads, "2")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvBackend, "BLAS")
	t.Setenv(EnvGPU, "true")
	t.Setenv(EnvMaxAllocBytes, "4096")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 2, c.NumThreads)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, BackendBLAS, c.Backend)
	assert.True(t, c.GPU)
	assert.Equal(t, int64(4096), c.MaxAllocBytes)
}

func TestFromEnv_OptionsOverride(t *testing.T) {
	t.Setenv(EnvNumThreads, "2")

	c, err := FromEnv(WithNumThreads(8))
	require.NoError(t, err)
	assert.Equal(t, 8, c.NumThreads)
}

func TestFromEnv_Malformed(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"threads", EnvNumThreads, "many"},
		{"gpu", EnvGPU, "perhaps"},
		{"alloc", EnvMaxAllocBytes, "1KB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero threads", Default(WithNumThreads(0))},
		{"unknown backend", Default(WithBackend("eigen"))},
		{"unknown format", Default(WithLogFormat("xml"))},
		{"negative limit", Default(WithMaxAllocBytes(-1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
		})
	}
}
