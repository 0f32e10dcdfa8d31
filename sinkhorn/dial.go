// SPDX-License-Identifier: MIT

package sinkhorn

import (
	"fmt"

	"github.com/katalvlaran/mhc/matrix"
)

const opDial = "Dial"

// DefaultDialIterations is the iteration ladder used to show the transition
// from a raw random matrix to a doubly stochastic one.
var DefaultDialIterations = []int{0, 1, 2, 5, 10, 20}

// DialStep is one rung of the manifold dial.
type DialStep struct {
	Iterations int           `json:"iterations"`
	Matrix     *matrix.Dense `json:"-"`
	Deviation  Deviation     `json:"deviation"`
}

// Dial projects the same input at each iteration count in ks.
// k = 0 yields a copy of the raw input (the "no projection" end of the dial,
// matching the ManifoldConstrained policy at zero iterations); k ≥ 1 yields
// Project(m, k, eps). Steps are returned in the order of ks.
//
// Errors:
//   - as Project; the first failing rung aborts the sweep.
func Dial(m matrix.Matrix, ks []int, eps float64) ([]DialStep, error) {
	if err := matrix.ValidateSquare(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opDial, err)
	}
	steps := make([]DialStep, 0, len(ks))
	for _, k := range ks {
		var (
			P   *matrix.Dense
			err error
		)
		switch {
		case k < 0:
			return nil, fmt.Errorf("%s: %d: %w", opDial, k, ErrNegativeIterations)
		case k == 0:
			P, err = matrix.Apply(m, func(v float64) float64 { return v })
		default:
			P, err = Project(m, k, eps)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: k=%d: %w", opDial, k, err)
		}
		dev, err := ProjectionError(P)
		if err != nil {
			return nil, fmt.Errorf("%s: k=%d: %w", opDial, k, err)
		}
		steps = append(steps, DialStep{Iterations: k, Matrix: P, Deviation: dev})
	}

	return steps, nil
}
