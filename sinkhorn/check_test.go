// SPDX-License-Identifier: MIT

package sinkhorn_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/mhc/matrix"
	"github.com/katalvlaran/mhc/sinkhorn"
	"github.com/stretchr/testify/require"
)

func TestIsDoublyStochastic(t *testing.T) {
	t.Parallel()

	I, err := matrix.NewIdentity(5)
	require.NoError(t, err)
	ok, err := sinkhorn.IsDoublyStochastic(I, 0)
	require.NoError(t, err)
	require.True(t, ok, "identity is a permutation matrix")

	U, err := matrix.NewUniform(4)
	require.NoError(t, err)
	ok, err = sinkhorn.IsDoublyStochastic(U, 1e-12)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = sinkhorn.IsDoublyStochastic(randomSquare(t, 4, 42), sinkhorn.DefaultTolerance)
	require.NoError(t, err)
	require.False(t, ok)

	// Rows and columns sum to 1 but one entry is negative.
	neg := mustDense(t, 2, 2, []float64{1.5, -0.5, -0.5, 1.5})
	ok, err = sinkhorn.IsDoublyStochastic(neg, 1e-3)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = sinkhorn.IsDoublyStochastic(I, -1)
	require.ErrorIs(t, err, sinkhorn.ErrBadTolerance)
	_, err = sinkhorn.IsDoublyStochastic(I, math.NaN())
	require.ErrorIs(t, err, sinkhorn.ErrBadTolerance)
	_, err = sinkhorn.IsDoublyStochastic(nil, 1)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestProjectionError(t *testing.T) {
	t.Parallel()

	M := mustDense(t, 2, 2, []float64{
		0.5, 0.25,
		0.5, -0.25,
	})
	dev, err := sinkhorn.ProjectionError(M)
	require.NoError(t, err)
	require.Equal(t, sinkhorn.Deviation{RowSumMaxDev: 0.75, ColSumMaxDev: 1, MinEntry: -0.25}, dev)
	require.False(t, dev.Within(0.5))
	require.True(t, dev.Within(1))

	_, err = sinkhorn.ProjectionError(mustDense(t, 1, 2, []float64{1, 2}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestMaxUnitDeviation(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0.0, sinkhorn.MaxUnitDeviation(nil))
	require.Equal(t, 0.5, sinkhorn.MaxUnitDeviation([]float64{1, 1.5, 0.75}))
	require.True(t, math.IsNaN(sinkhorn.MaxUnitDeviation([]float64{1, math.NaN(), 3})))
}
