// SPDX-License-Identifier: MIT

package sinkhorn

import (
	"fmt"
	"math"

	"github.com/katalvlaran/mhc/matrix"
)

const (
	opProject   = "Project"
	opStabilize = "Stabilize"
)

// Stabilize returns exp(m - max(m)) element-wise.
// Every entry of the result lies in (0, 1] (entries may underflow to 0 for
// very spread inputs, never below), and the largest input maps to exactly 1,
// so exponentiation cannot overflow however large the inputs are.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare.
//
// Complexity: O(n^2).
func Stabilize(m matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateSquare(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opStabilize, err)
	}
	hi, err := matrix.Max(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opStabilize, err)
	}

	return matrix.Apply(m, func(v float64) float64 { return math.Exp(v - hi) })
}

// Project maps m onto approximately doubly stochastic form.
// Implementation:
//   - Stage 1: validate (square, iterations ≥ 0, eps finite > 0).
//   - Stage 2: P = Stabilize(m).
//   - Stage 3: exactly `iterations` rounds of row then column normalization,
//     each sum floored at eps before dividing.
//
// Behavior highlights:
//   - iterations == 0 returns Stage 2's output untouched (no half-step).
//   - m is never mutated; every round allocates fresh matrices.
//   - Never divides by zero: an all-underflow row or column is divided by eps.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare, ErrNegativeIterations, ErrBadEpsilon.
//
// Determinism:
//   - Fixed reduction and division order; identical inputs give identical bits.
//
// Complexity:
//   - Time O(iterations · n^2), Space O(n^2).
func Project(m matrix.Matrix, iterations int, eps float64) (*matrix.Dense, error) {
	if iterations < 0 {
		return nil, fmt.Errorf("%s: %d: %w", opProject, iterations, ErrNegativeIterations)
	}
	if !validEpsilon(eps) {
		return nil, fmt.Errorf("%s: %g: %w", opProject, eps, ErrBadEpsilon)
	}
	P, err := Stabilize(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opProject, err)
	}

	var sums []float64
	for it := 0; it < iterations; it++ {
		if sums, err = matrix.RowSums(P); err != nil {
			return nil, fmt.Errorf("%s: %w", opProject, err)
		}
		if P, err = matrix.DivideRows(P, floorAt(sums, eps)); err != nil {
			return nil, fmt.Errorf("%s: %w", opProject, err)
		}
		if sums, err = matrix.ColSums(P); err != nil {
			return nil, fmt.Errorf("%s: %w", opProject, err)
		}
		if P, err = matrix.DivideCols(P, floorAt(sums, eps)); err != nil {
			return nil, fmt.Errorf("%s: %w", opProject, err)
		}
	}

	return P, nil
}

// ProjectWith is Project driven by functional options (defaults: 20 rounds, eps 1e-8).
func ProjectWith(m matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	o := NewOptions(opts...)

	return Project(m, o.iterations, o.eps)
}

// floorAt replaces every sum below eps by eps, in place, and returns sums.
func floorAt(sums []float64, eps float64) []float64 {
	for i, s := range sums {
		sums[i] = math.Max(s, eps)
	}

	return sums
}
