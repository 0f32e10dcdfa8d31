// SPDX-License-Identifier: MIT

package metrics

import (
	"fmt"
	"math/cmplx"
	"sort"

	"github.com/katalvlaran/mhc/matrix"
)

const opEigenSorted = "EigenvaluesSorted"

// EigenvaluesSorted returns the eigenvalues of m ordered by descending
// magnitude. Ties keep the solver's order (stable sort).
//
// For a doubly stochastic matrix the first magnitude is 1 and all others are
// at most 1.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare, matrix.ErrNaNInf,
// matrix.ErrMatrixEigenFailed.
func EigenvaluesSorted(m matrix.Matrix) ([]complex128, error) {
	vals, err := matrix.Eigenvalues(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEigenSorted, err)
	}
	sort.SliceStable(vals, func(i, j int) bool {
		return cmplx.Abs(vals[i]) > cmplx.Abs(vals[j])
	})

	return vals, nil
}

// SecondLargestEigenvalueMagnitude returns |λ₂|, or 0 when m is 1×1.
// |λ₂| governs how fast products of doubly stochastic matrices converge to
// the uniform matrix.
func SecondLargestEigenvalueMagnitude(m matrix.Matrix) (float64, error) {
	vals, err := EigenvaluesSorted(m)
	if err != nil {
		return 0, err
	}
	_, second := leadingMagnitudes(vals)

	return second, nil
}

// leadingMagnitudes returns |λ₁| and |λ₂| of an already sorted spectrum,
// using 0 for missing entries.
func leadingMagnitudes(sorted []complex128) (first, second float64) {
	if len(sorted) > 0 {
		first = cmplx.Abs(sorted[0])
	}
	if len(sorted) > 1 {
		second = cmplx.Abs(sorted[1])
	}

	return first, second
}
