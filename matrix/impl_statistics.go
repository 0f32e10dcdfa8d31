// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Row/column reductions and extrema used by stochasticity checks and gain metrics.
//
// Determinism:
//   - Sums accumulate left to right (j ascending for rows, i ascending for
//     columns), so results are reproducible bit-for-bit.

package matrix

const (
	opRowSums = "RowSums"
	opColSums = "ColSums"
	opMin     = "Min"
	opMax     = "Max"
)

// RowSums returns vector r where r[i] = sum_j m[i,j].
// Time: O(r*c). Space: O(r).
//
// AI-Hints: used by Sinkhorn row normalization and forward gain.
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	sums := make([]float64, d.r)
	var i, j, base int
	var s float64
	for i = 0; i < d.r; i++ {
		s = ZeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			s += d.data[base+j]
		}
		sums[i] = s
	}

	return sums, nil
}

// ColSums returns vector c where c[j] = sum_i m[i,j].
// Time: O(r*c). Space: O(c).
//
// AI-Hints: used by Sinkhorn column normalization and backward gain.
func ColSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opColSums, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opColSums, err)
	}
	sums := make([]float64, d.c)
	var i, j, base int
	for i = 0; i < d.r; i++ {
		base = i * d.c
		for j = 0; j < d.c; j++ {
			sums[j] += d.data[base+j]
		}
	}

	return sums, nil
}

// Min returns the smallest element of m.
// Time: O(r*c).
func Min(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opMin, err)
	}
	d, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opMin, err)
	}
	best := d.data[0]
	for _, v := range d.data[1:] {
		if v < best {
			best = v
		}
	}

	return best, nil
}

// Max returns the largest element of m.
// Time: O(r*c).
func Max(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opMax, err)
	}
	d, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opMax, err)
	}
	best := d.data[0]
	for _, v := range d.data[1:] {
		if v > best {
			best = v
		}
	}

	return best, nil
}
