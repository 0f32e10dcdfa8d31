// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All kernels return these sentinels (possibly wrapped with an operation tag)
// and tests check them via errors.Is. No kernel panics on user input.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for consistency. Kernels wrap
// with matrixErrorf("Op", ErrX) at the detection site; callers match with
// errors.Is.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive
	// or that a backing slice does not match rows*cols.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Sub with different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNilMatrix indicates that a nil Matrix (or nil vector) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrNaNInf signals a NaN or ±Inf value was passed to Set.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNotSymmetric indicates that a symmetric matrix was required.
	ErrNotSymmetric = errors.New("matrix: matrix is not symmetric")

	// ErrMatrixEigenFailed indicates that the eigenvalue solver failed to converge.
	ErrMatrixEigenFailed = errors.New("matrix: eigen decomposition failed")
)
