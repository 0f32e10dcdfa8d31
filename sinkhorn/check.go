// SPDX-License-Identifier: MIT

package sinkhorn

import (
	"fmt"
	"math"

	"github.com/katalvlaran/mhc/matrix"
)

const (
	opIsDS      = "IsDoublyStochastic"
	opProjError = "ProjectionError"
)

// Deviation reports how far a matrix is from doubly stochastic.
type Deviation struct {
	RowSumMaxDev float64 `json:"row_sum_max_dev" yaml:"row_sum_max_dev"` // max_i |Σ_j m[i,j] − 1|
	ColSumMaxDev float64 `json:"col_sum_max_dev" yaml:"col_sum_max_dev"` // max_j |Σ_i m[i,j] − 1|
	MinEntry     float64 `json:"min_entry" yaml:"min_entry"`             // min_ij m[i,j]; ≥ 0 for doubly stochastic
}

// ProjectionError computes the deviations of m from the doubly stochastic set.
// Used to verify that deviations shrink (non-strictly) as iterations grow.
// Complexity: O(n^2).
func ProjectionError(m matrix.Matrix) (Deviation, error) {
	if err := matrix.ValidateSquare(m); err != nil {
		return Deviation{}, fmt.Errorf("%s: %w", opProjError, err)
	}
	rows, err := matrix.RowSums(m)
	if err != nil {
		return Deviation{}, fmt.Errorf("%s: %w", opProjError, err)
	}
	cols, err := matrix.ColSums(m)
	if err != nil {
		return Deviation{}, fmt.Errorf("%s: %w", opProjError, err)
	}
	lo, err := matrix.Min(m)
	if err != nil {
		return Deviation{}, fmt.Errorf("%s: %w", opProjError, err)
	}

	return Deviation{
		RowSumMaxDev: MaxUnitDeviation(rows),
		ColSumMaxDev: MaxUnitDeviation(cols),
		MinEntry:     lo,
	}, nil
}

// IsDoublyStochastic reports whether min(m) ≥ −tol and every row and column
// sum lies within tol of 1.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare, ErrBadTolerance.
func IsDoublyStochastic(m matrix.Matrix, tol float64) (bool, error) {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		return false, fmt.Errorf("%s: %g: %w", opIsDS, tol, ErrBadTolerance)
	}
	dev, err := ProjectionError(m)
	if err != nil {
		return false, fmt.Errorf("%s: %w", opIsDS, err)
	}

	return dev.Within(tol), nil
}

// Within reports whether the deviation satisfies the doubly stochastic
// conditions at tolerance tol. NaN deviations never qualify.
func (d Deviation) Within(tol float64) bool {
	return d.MinEntry >= -tol && d.RowSumMaxDev <= tol && d.ColSumMaxDev <= tol
}

// MaxUnitDeviation returns max_k |sums[k] − 1| (0 for an empty slice).
// A NaN sum propagates as NaN so callers never mistake it for convergence.
func MaxUnitDeviation(sums []float64) float64 {
	worst := 0.0
	for _, s := range sums {
		d := math.Abs(s - 1)
		if d > worst || math.IsNaN(d) {
			worst = d
		}
	}

	return worst
}
