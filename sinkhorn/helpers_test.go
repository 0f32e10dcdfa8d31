// SPDX-License-Identifier: MIT

package sinkhorn_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/mhc/matrix"
	"github.com/stretchr/testify/require"
)

// randomSquare returns an n×n matrix of N(0,1) draws from a seeded stream.
func randomSquare(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, n*n)
	for k := range data {
		data[k] = rng.NormFloat64()
	}
	m, err := matrix.NewDenseFrom(n, n, data)
	require.NoError(t, err)

	return m
}

func mustDense(t testing.TB, r, c int, data []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, data)
	require.NoError(t, err)

	return m
}
