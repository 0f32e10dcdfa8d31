// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small element-wise and broadcast kernels so that higher-level
//     packages (projection, metrics) never hand-roll tight loops over storage.
//   - Keep all loops deterministic and cache-friendly (flat row-major walks).
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - No hidden allocations beyond the output Dense; O(r*c) time and space.

package matrix

import "math"

const (
	opApply      = "Apply"
	opDivideRows = "DivideRows"
	opDivideCols = "DivideCols"
	opAllClose   = "AllClose"
)

// Apply returns a copy of m with f applied to every element: out[i,j] = f(m[i,j]).
// Time: O(r*c). Space: O(r*c). Deterministic flat walk.
//
// AI-Hint: f must be pure; it is called exactly once per element in row-major order.
func Apply(m Matrix, f func(v float64) float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opApply, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opApply, err)
	}
	out, err := NewDense(d.r, d.c)
	if err != nil {
		return nil, matrixErrorf(opApply, err)
	}
	for k, v := range d.data {
		out.data[k] = f(v)
	}

	return out, nil
}

// DivideRows computes out[i,j] = X[i,j] / div[i].
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
//
// Notes:
//   - Division (not multiplication by a reciprocal) keeps normalized rows as
//     close to an exact unit sum as IEEE rounding allows.
//   - Callers own zero guarding; a zero divisor yields ±Inf/NaN per IEEE.
func DivideRows(X Matrix, div []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opDivideRows, err)
	}
	if err := ValidateVecLen(div, X.Rows()); err != nil {
		return nil, matrixErrorf(opDivideRows, err)
	}
	d, err := asDense(X)
	if err != nil {
		return nil, matrixErrorf(opDivideRows, err)
	}
	out, err := NewDense(d.r, d.c)
	if err != nil {
		return nil, matrixErrorf(opDivideRows, err)
	}
	var i, j, base int
	for i = 0; i < d.r; i++ {
		base = i * d.c
		for j = 0; j < d.c; j++ {
			out.data[base+j] = d.data[base+j] / div[i]
		}
	}

	return out, nil
}

// DivideCols computes out[i,j] = X[i,j] / div[j].
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
func DivideCols(X Matrix, div []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opDivideCols, err)
	}
	if err := ValidateVecLen(div, X.Cols()); err != nil {
		return nil, matrixErrorf(opDivideCols, err)
	}
	d, err := asDense(X)
	if err != nil {
		return nil, matrixErrorf(opDivideCols, err)
	}
	out, err := NewDense(d.r, d.c)
	if err != nil {
		return nil, matrixErrorf(opDivideCols, err)
	}
	var i, j, base int
	for i = 0; i < d.r; i++ {
		base = i * d.c
		for j = 0; j < d.c; j++ {
			out.data[base+j] = d.data[base+j] / div[j]
		}
	}

	return out, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN != anything. Time: O(r*c). Space: O(1) beyond operand materialization.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|; NaN/Inf tolerances are rejected.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	da, err := asDense(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	db, err := asDense(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for k := range da.data {
		// A NaN on either side makes the comparison false and fails the check.
		if !(math.Abs(da.data[k]-db.data[k]) <= atol+rtol*math.Abs(db.data[k])) {
			return false, nil
		}
	}

	return true, nil
}
