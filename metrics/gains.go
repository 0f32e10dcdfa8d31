// SPDX-License-Identifier: MIT

package metrics

import (
	"fmt"
	"math"

	"github.com/katalvlaran/mhc/matrix"
)

const (
	opForwardGain  = "ForwardGain"
	opBackwardGain = "BackwardGain"
	opDistance     = "DistanceFromUniform"
)

// ForwardGain returns max_i |Σ_j m[i,j]| (the ∞-norm of the signed row sums).
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare.
// Complexity: O(n^2).
func ForwardGain(m matrix.Matrix) (float64, error) {
	if err := matrix.ValidateSquare(m); err != nil {
		return 0, fmt.Errorf("%s: %w", opForwardGain, err)
	}
	sums, err := matrix.RowSums(m)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opForwardGain, err)
	}

	return maxAbs(sums), nil
}

// BackwardGain returns max_j |Σ_i m[i,j]|.
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare.
// Complexity: O(n^2).
func BackwardGain(m matrix.Matrix) (float64, error) {
	if err := matrix.ValidateSquare(m); err != nil {
		return 0, fmt.Errorf("%s: %w", opBackwardGain, err)
	}
	sums, err := matrix.ColSums(m)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opBackwardGain, err)
	}

	return maxAbs(sums), nil
}

// DistanceFromUniform returns ‖m − U‖_F where U is the n×n matrix of 1/n.
// The identity sits at sqrt(n-1); long products of doubly stochastic
// matrices approach 0.
func DistanceFromUniform(m matrix.Matrix) (float64, error) {
	if err := matrix.ValidateSquare(m); err != nil {
		return 0, fmt.Errorf("%s: %w", opDistance, err)
	}
	U, err := matrix.NewUniform(m.Rows())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opDistance, err)
	}
	diff, err := matrix.Sub(m, U)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opDistance, err)
	}

	return matrix.FrobeniusNorm(diff)
}

// maxAbs returns max_k |x[k]|; NaN propagates.
func maxAbs(x []float64) float64 {
	best := 0.0
	for _, v := range x {
		a := math.Abs(v)
		if a > best || math.IsNaN(a) {
			best = a
		}
	}

	return best
}
