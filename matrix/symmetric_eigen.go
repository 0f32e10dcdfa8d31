// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Eigenvalues of real symmetric matrices by cyclic Jacobi rotations.
//
// Used for Gram matrices (mᵀm), whose largest eigenvalue is the squared
// spectral norm of m. General matrices go through Eigenvalues instead.

package matrix

import (
	"math"
	"sort"
)

const (
	opSymEigen = "SymmetricEigenvalues"

	// DefaultJacobiTol is the off-diagonal Frobenius norm at which sweeps stop.
	DefaultJacobiTol = 1e-12
	// DefaultJacobiSweeps caps the number of full cyclic sweeps.
	DefaultJacobiSweeps = 64
)

// SymmetricEigenvalues returns the eigenvalues of the symmetric matrix m in
// descending order.
// Implementation:
//   - Stage 1: ValidateSquare; require |m[i,j] − m[j,i]| ≤ tol·max(1,|m[i,j]|).
//   - Stage 2: cyclic sweeps over all (p,q), p<q; each rotation zeroes A[p,q]
//     with t = sgn(θ)/(|θ|+sqrt(θ²+1)), θ = (A[q,q]−A[p,p]) / (2A[p,q]).
//   - Stage 3: stop when the off-diagonal norm ≤ tol·‖A‖_F; read the diagonal.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrNotSymmetric,
//     ErrMatrixEigenFailed (no convergence within maxSweeps).
//
// Complexity:
//   - Time O(sweeps · n^3), Space O(n^2). Typical inputs converge in < 10 sweeps.
func SymmetricEigenvalues(m Matrix, tol float64, maxSweeps int) ([]float64, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opSymEigen, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opSymEigen, err)
	}
	n := d.r
	a := d.RawCopy()
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			aij, aji := a[i*n+j], a[j*n+i]
			if math.IsNaN(aij) || math.IsInf(aij, 0) || math.IsNaN(aji) || math.IsInf(aji, 0) {
				return nil, matrixErrorf(opSymEigen, ErrNaNInf)
			}
			if math.Abs(aij-aji) > tol*math.Max(1, math.Abs(aij)) {
				return nil, matrixErrorf(opSymEigen, ErrNotSymmetric)
			}
		}
	}

	scale := VecNorm2(a)
	converged := false
	var (
		p, q, k             int
		apq, theta, t, c, s float64
		x, y                float64
	)
	for sweep := 0; sweep < maxSweeps; sweep++ {
		if offDiagonalNorm(a, n) <= tol*scale {
			converged = true
			break
		}
		for p = 0; p < n-1; p++ {
			for q = p + 1; q < n; q++ {
				apq = a[p*n+q]
				if apq == 0 {
					continue
				}
				theta = (a[q*n+q] - a[p*n+p]) / (2 * apq)
				t = 1 / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				if theta < 0 {
					t = -t
				}
				c = 1 / math.Sqrt(t*t+1)
				s = t * c
				// A ← A·J (columns p and q).
				for k = 0; k < n; k++ {
					x, y = a[k*n+p], a[k*n+q]
					a[k*n+p] = c*x - s*y
					a[k*n+q] = s*x + c*y
				}
				// A ← Jᵀ·A (rows p and q).
				for k = 0; k < n; k++ {
					x, y = a[p*n+k], a[q*n+k]
					a[p*n+k] = c*x - s*y
					a[q*n+k] = s*x + c*y
				}
			}
		}
	}
	if !converged && offDiagonalNorm(a, n) > tol*scale {
		return nil, matrixErrorf(opSymEigen, ErrMatrixEigenFailed)
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a[i*n+i]
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(eigs)))

	return eigs, nil
}

// offDiagonalNorm returns sqrt(Σ_{i≠j} a[i,j]^2) of an n×n row-major buffer.
func offDiagonalNorm(a []float64, n int) float64 {
	s := ZeroSum
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				s += a[i*n+j] * a[i*n+j]
			}
		}
	}

	return math.Sqrt(s)
}
