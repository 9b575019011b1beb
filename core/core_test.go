// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package core_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/shogun/core"
	"github.com/born-ml/shogun/features"
	"github.com/born-ml/shogun/labels"
	"github.com/born-ml/shogun/linalg"
	"github.com/born-ml/shogun/machine"
	"github.com/born-ml/shogun/object"
	"github.com/born-ml/shogun/sg"
)

func TestEndToEnd(t *testing.T) {
	prev := linalg.Default()
	t.Cleanup(func() { linalg.SetDefault(prev) })

	lib, err := core.InitWriter(core.DefaultConfig(core.WithBackend(core.BackendBLAS)), io.Discard)
	require.NoError(t, err)
	defer lib.Close()

	x, err := sg.MatrixFromRows([][]float64{{0, 1, 2, 3}})
	require.NoError(t, err)
	defer x.Release()
	y, err := sg.VectorFrom(1.0, 3.0, 5.0, 7.0)
	require.NoError(t, err)
	defer y.Release()

	f := features.NewDenseFrom(x)
	defer f.Unref()
	l := labels.NewRegressionFrom(y)
	defer l.Unref()

	k, err := object.Create[object.Kernel](lib.Registry(), "GaussianKernel")
	require.NoError(t, err)
	require.NoError(t, object.Put(k, "log_width", 0.5))

	m, err := object.Create[*machine.KernelRidge](lib.Registry(), machine.KernelRidgeName)
	require.NoError(t, err)
	defer m.Unref()
	m.SetKernel(k)
	k.Unref()
	require.NoError(t, object.Put(m, "tau", 1e-9))

	require.NoError(t, m.Train(f, l))
	pred, err := m.Apply(f)
	require.NoError(t, err)
	defer pred.Unref()

	for i := range 4 {
		assert.InDelta(t, y.At(i), pred.Values().At(i), 1e-3)
	}

	c, err := object.Clone(lib.Registry(), m)
	require.NoError(t, err)
	defer c.Unref()
	assert.True(t, object.Equals(m, c))
}

func TestVectorOps(t *testing.T) {
	a, err := sg.VectorFrom[int32](1, 2, 3)
	require.NoError(t, err)
	defer a.Release()
	b, err := sg.VectorFrom[int32](4, 5, 6)
	require.NoError(t, err)
	defer b.Release()

	dot, err := linalg.Dot[int32](nil, a, b)
	require.NoError(t, err)
	assert.Equal(t, int32(32), dot)
}
