// SPDX-License-Identifier: MIT

package metrics

import (
	"fmt"

	"github.com/katalvlaran/mhc/matrix"
	"github.com/katalvlaran/mhc/sinkhorn"
)

const opComputeAll = "ComputeAll"

// Record is the full set of stability metrics of one matrix.
type Record struct {
	SpectralNorm         float64 `json:"spectral_norm" yaml:"spectral_norm"`
	ForwardGain          float64 `json:"forward_gain" yaml:"forward_gain"`
	BackwardGain         float64 `json:"backward_gain" yaml:"backward_gain"`
	RowSumMaxDev         float64 `json:"row_sum_max_dev" yaml:"row_sum_max_dev"`
	ColSumMaxDev         float64 `json:"col_sum_max_dev" yaml:"col_sum_max_dev"`
	MinEntry             float64 `json:"min_entry" yaml:"min_entry"`
	LargestEigenvalueMag float64 `json:"largest_eigenvalue_mag" yaml:"largest_eigenvalue_mag"`
	SecondEigenvalueMag  float64 `json:"second_eigenvalue_mag" yaml:"second_eigenvalue_mag"`
	DistanceFromUniform  float64 `json:"distance_from_uniform" yaml:"distance_from_uniform"`
}

// FieldNames lists the Record keys in declaration order; Values uses the same order.
var FieldNames = []string{
	"spectral_norm",
	"forward_gain",
	"backward_gain",
	"row_sum_max_dev",
	"col_sum_max_dev",
	"min_entry",
	"largest_eigenvalue_mag",
	"second_eigenvalue_mag",
	"distance_from_uniform",
}

// Values returns the fields of r in FieldNames order.
func (r Record) Values() []float64 {
	return []float64{
		r.SpectralNorm,
		r.ForwardGain,
		r.BackwardGain,
		r.RowSumMaxDev,
		r.ColSumMaxDev,
		r.MinEntry,
		r.LargestEigenvalueMag,
		r.SecondEigenvalueMag,
		r.DistanceFromUniform,
	}
}

// ComputeAll evaluates every metric of m with DefaultPowerIterations for the spectral norm.
func ComputeAll(m matrix.Matrix) (Record, error) {
	return ComputeAllIter(m, DefaultPowerIterations)
}

// ComputeAllIter evaluates every metric of m.
// Implementation:
//   - Stage 1: validate once (square, non-nil).
//   - Stage 2: row/column reductions shared by the gains and the deviations.
//   - Stage 3: spectral norm, sorted spectrum, distance from uniform.
//
// Errors:
//   - any error of the individual metrics (ErrNegativeIterations included); matrix.ErrNaNInf once entries have
//     overflowed (the eigen solver cannot handle them).
//
// Complexity:
//   - Time O(n^3) (eigenvalues dominate), Space O(n^2).
func ComputeAllIter(m matrix.Matrix, powerIterations int) (Record, error) {
	if err := matrix.ValidateSquare(m); err != nil {
		return Record{}, fmt.Errorf("%s: %w", opComputeAll, err)
	}
	rows, err := matrix.RowSums(m)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", opComputeAll, err)
	}
	cols, err := matrix.ColSums(m)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", opComputeAll, err)
	}
	lo, err := matrix.Min(m)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", opComputeAll, err)
	}
	spectral, err := SpectralNormIter(m, powerIterations)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", opComputeAll, err)
	}
	eigs, err := EigenvaluesSorted(m)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", opComputeAll, err)
	}
	dist, err := DistanceFromUniform(m)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", opComputeAll, err)
	}
	first, second := leadingMagnitudes(eigs)

	return Record{
		SpectralNorm:         spectral,
		ForwardGain:          maxAbs(rows),
		BackwardGain:         maxAbs(cols),
		RowSumMaxDev:         sinkhorn.MaxUnitDeviation(rows),
		ColSumMaxDev:         sinkhorn.MaxUnitDeviation(cols),
		MinEntry:             lo,
		LargestEigenvalueMag: first,
		SecondEigenvalueMag:  second,
		DistanceFromUniform:  dist,
	}, nil
}
