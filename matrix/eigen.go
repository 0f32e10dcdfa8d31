// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Eigenvalues of general (non-symmetric) real square matrices.
//
// Mixing matrices and their products are not symmetric, so the Jacobi sweep
// that serves symmetric inputs cannot be used here. The spectrum is delegated
// to gonum's LAPACK-backed (pure Go) real Schur decomposition, which returns
// conjugate pairs for complex eigenvalues.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const opEigenvalues = "Eigenvalues"

// Eigenvalues returns all n eigenvalues of the square matrix m in the
// solver's natural order (no sorting is applied here).
// Implementation:
//   - Stage 1: ValidateSquare(m); reject NaN/±Inf entries (the solver cannot
//     converge on them).
//   - Stage 2: copy into a gonum Dense and factorize without eigenvectors.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrMatrixEigenFailed.
//
// Determinism:
//   - Pure function of the input buffer; repeated calls return identical values.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Eigenvalues(m Matrix) ([]complex128, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opEigenvalues, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opEigenvalues, err)
	}
	for _, v := range d.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, matrixErrorf(opEigenvalues, ErrNaNInf)
		}
	}

	a := mat.NewDense(d.r, d.c, d.RawCopy())
	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenNone); !ok {
		return nil, matrixErrorf(opEigenvalues, ErrMatrixEigenFailed)
	}

	return eig.Values(nil), nil
}
