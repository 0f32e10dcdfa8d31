// SPDX-License-Identifier: MIT

package simulation

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/mhc/matrix"
	"github.com/katalvlaran/mhc/sinkhorn"
)

const opGenerate = "Generate"

// Generate produces one n×n mixing matrix for policy p.
// Implementation:
//   - Baseline: identity; rng is not touched (may be nil).
//   - Unconstrained: n*n rng.NormFloat64 draws in row-major order.
//   - ManifoldConstrained: the same draw; with iterations ≥ 1 it is projected
//     by sinkhorn.Project, with iterations == 0 it is returned raw, so the
//     k = 0 end of the dial reproduces Unconstrained exactly.
//
// Errors:
//   - ErrInvalidStreams (n < 1), ErrNegativeIterations, ErrUnknownPolicy,
//     ErrNilRNG (random policy without a stream).
//
// Complexity:
//   - O(n^2) draws; O(iterations · n^2) projection.
func Generate(n int, p Policy, iterations int, rng *rand.Rand) (*matrix.Dense, error) {
	return generate(n, p, iterations, sinkhorn.DefaultEpsilon, rng)
}

func generate(n int, p Policy, iterations int, eps float64, rng *rand.Rand) (*matrix.Dense, error) {
	if n < 1 {
		return nil, fmt.Errorf("%s: n=%d: %w", opGenerate, n, ErrInvalidStreams)
	}
	if iterations < 0 {
		return nil, fmt.Errorf("%s: %d: %w", opGenerate, iterations, ErrNegativeIterations)
	}

	switch p {
	case Baseline:
		return matrix.NewIdentity(n)
	case Unconstrained:
		return drawNormal(n, rng)
	case ManifoldConstrained:
		raw, err := drawNormal(n, rng)
		if err != nil || iterations == 0 {
			return raw, err
		}
		P, err := sinkhorn.Project(raw, iterations, eps)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opGenerate, err)
		}

		return P, nil
	default:
		return nil, fmt.Errorf("%s: %s: %w", opGenerate, p, ErrUnknownPolicy)
	}
}

// drawNormal fills an n×n matrix with standard normal draws, row by row.
func drawNormal(n int, rng *rand.Rand) (*matrix.Dense, error) {
	if rng == nil {
		return nil, fmt.Errorf("%s: %w", opGenerate, ErrNilRNG)
	}
	data := make([]float64, n*n)
	for k := range data {
		data[k] = rng.NormFloat64()
	}

	return matrix.NewDenseFrom(n, n, data)
}
