// SPDX-License-Identifier: MIT

package metrics_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/mhc/matrix"
	"github.com/stretchr/testify/require"
)

func mustDense(t testing.TB, n int, data []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(n, n, data)
	require.NoError(t, err)

	return m
}

func randomSquare(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, n*n)
	for k := range data {
		data[k] = rng.NormFloat64()
	}

	return mustDense(t, n, data)
}

func identity(t testing.TB, n int) *matrix.Dense {
	t.Helper()
	I, err := matrix.NewIdentity(n)
	require.NoError(t, err)

	return I
}
