// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// subtraction, scaling, matrix multiplication, transpose, matrix-vector
// products and norms. All functions perform strict fail-fast validation and
// return clear errors on dimension mismatches.
//
// Notes:
//   - All kernels use central validators and wrap via matrixErrorf with an op* tag.
//   - Non-*Dense operands are materialized once through asDense, then the same
//     flat loops run for every input type.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ZeroSum is the initial value of every accumulation.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opMatVec    = "MatVec"
	opFrobenius = "FrobeniusNorm"
	opIdentity  = "NewIdentity"
	opUniform   = "NewUniform"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
// Complexity: O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Determinism: fixed i-loop; single write per diagonal cell.
// Complexity: O(n^2) zeroing + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opIdentity, err)
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// NewUniform returns the n×n averaging matrix U with every entry equal to 1/n.
// U is the limit of long products of doubly stochastic matrices with a spectral gap.
// Complexity: O(n^2).
func NewUniform(n int) (*Dense, error) {
	U, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opUniform, err)
	}
	v := 1.0 / float64(n)
	for k := range U.data {
		U.data[k] = v
	}

	return U, nil
}

// Sub computes the element-wise difference a − b into a fresh Dense.
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b).
//   - Stage 2: single flat loop 0..r*c-1.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Sub(a, b Matrix) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	res, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	for k := range res.data {
		res.data[k] = da.data[k] - db.data[k]
	}

	return res, nil
}

// Scale returns alpha*m as a fresh Dense.
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := NewDense(dm.r, dm.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for k, v := range dm.data {
		res.data[k] = alpha * v
	}

	return res, nil
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: i→k→j loop over row-major strides, skipping zero A[i,k].
//
// Behavior highlights:
//   - Deterministic triple loop; one allocation for C.
//   - The accumulation order is fixed, so identical operands always produce
//     bit-identical products. Simulation reproducibility depends on this.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	aRows, aCols, bCols := da.r, da.c, db.c
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, j, k                            int
		av                                 float64
		rowOffsetA, rowOffsetB, rowOffsetR int
	)
	for i = 0; i < aRows; i++ {
		rowOffsetA = i * aCols
		rowOffsetR = i * bCols
		for k = 0; k < aCols; k++ {
			av = da.data[rowOffsetA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// The original matrix is never mutated.
// Complexity: O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(dm.c, dm.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < dm.r; i++ {
		for j = 0; j < dm.c; j++ {
			res.data[j*dm.r+i] = dm.data[i*dm.c+j]
		}
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	y := make([]float64, d.r)
	var (
		i, j, base int
		acc, xv    float64
	)
	for i = 0; i < d.r; i++ {
		acc = ZeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			xv = x[j]
			if xv != 0 { // skip zero multiplications
				acc += d.data[base+j] * xv
			}
		}
		y[i] = acc
	}

	return y, nil
}

// VecNorm2 returns the Euclidean norm of x.
// The sum of squares is accumulated relative to the running max |x_i|, so the
// result stays finite for any finite input (entries near 1e300 included).
// An empty x has norm 0.
// Complexity: O(len(x)).
func VecNorm2(x []float64) float64 {
	if len(x) == 0 {
		return ZeroSum
	}

	return floats.Norm(x, 2)
}

// FrobeniusNorm returns ‖m‖_F = sqrt(Σ m[i,j]^2).
// Complexity: O(r*c).
func FrobeniusNorm(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}
	d, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}

	return VecNorm2(d.data), nil
}
