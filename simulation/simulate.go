// SPDX-License-Identifier: MIT

package simulation

import (
	"context"
	"fmt"

	"github.com/katalvlaran/mhc/matrix"
	"github.com/katalvlaran/mhc/metrics"
)

const opSimulate = "Simulate"

// Simulate runs SimulateContext with a background context.
func Simulate(depth, n int, p Policy, sinkhornIterations int, seed int64, opts ...Option) (*Result, error) {
	return SimulateContext(context.Background(), depth, n, p, sinkhornIterations, seed, opts...)
}

// SimulateContext propagates depth layers of policy p and records metrics.
// Implementation:
//   - Stage 1: validate depth ≥ 1, n ≥ 1, iterations ≥ 0, p declared.
//   - Stage 2: rng = NewRNG(seed); composite = I.
//   - Stage 3: for each layer l: H = generate(...); record metrics(H);
//     composite = H × composite; record metrics(composite).
//
// Behavior highlights:
//   - ctx is checked before every layer; a cancelled run returns ctx.Err()
//     wrapped with the layer index and no partial Result.
//   - Identical inputs give bit-identical results (single stream, fixed
//     kernel loop orders).
//
// Errors:
//   - ErrInvalidDepth, ErrInvalidStreams, ErrNegativeIterations,
//     ErrUnknownPolicy, context errors, metric errors (matrix.ErrNaNInf
//     once a composite overflows).
//
// Complexity:
//   - Time O(depth · (iterations · n^2 + n^3)), Space O(depth + n^2).
func SimulateContext(ctx context.Context, depth, n int, p Policy, sinkhornIterations int, seed int64, opts ...Option) (*Result, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%s: depth=%d: %w", opSimulate, depth, ErrInvalidDepth)
	}
	if n < 1 {
		return nil, fmt.Errorf("%s: n=%d: %w", opSimulate, n, ErrInvalidStreams)
	}
	if sinkhornIterations < 0 {
		return nil, fmt.Errorf("%s: %d: %w", opSimulate, sinkhornIterations, ErrNegativeIterations)
	}
	if !p.Valid() {
		return nil, fmt.Errorf("%s: %s: %w", opSimulate, p, ErrUnknownPolicy)
	}
	o := newOptions(opts)
	log := o.logger.With().Str("policy", p.String()).Logger()

	res := &Result{
		Params: Params{
			Policy:             p,
			Depth:              depth,
			Streams:            n,
			SinkhornIterations: sinkhornIterations,
			Seed:               seed,
		},
		PerLayer:  make([]LayerRecord, 0, depth),
		Composite: make([]CompositeRecord, 0, depth),
	}

	rng := NewRNG(seed)
	composite, err := matrix.NewIdentity(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSimulate, err)
	}

	var (
		H       *matrix.Dense
		product matrix.Matrix
		rec     metrics.Record
	)
	for l := 0; l < depth; l++ {
		if err = ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: layer %d: %w", opSimulate, l, err)
		}
		if H, err = generate(n, p, sinkhornIterations, o.eps, rng); err != nil {
			return nil, fmt.Errorf("%s: layer %d: %w", opSimulate, l, err)
		}
		if rec, err = metrics.ComputeAllIter(H, o.spectralIters); err != nil {
			return nil, fmt.Errorf("%s: layer %d: %w", opSimulate, l, err)
		}
		res.PerLayer = append(res.PerLayer, LayerRecord{Layer: l, Record: rec})

		// Newest layer multiplies from the left.
		if product, err = matrix.Mul(H, composite); err != nil {
			return nil, fmt.Errorf("%s: layer %d: %w", opSimulate, l, err)
		}
		composite = product.(*matrix.Dense)
		if rec, err = metrics.ComputeAllIter(composite, o.spectralIters); err != nil {
			return nil, fmt.Errorf("%s: composite %d: %w", opSimulate, l, err)
		}
		res.Composite = append(res.Composite, CompositeRecord{UptoLayer: l, Record: rec})

		o.emit(func() {
			log.Debug().
				Int("layer", l).
				Float64("forward_gain", rec.ForwardGain).
				Float64("spectral_norm", rec.SpectralNorm).
				Msg("composite updated")
		})
	}

	final := res.Final()
	o.emit(func() {
		log.Info().
			Int("depth", depth).
			Int("n", n).
			Int("sinkhorn_iters", sinkhornIterations).
			Int64("seed", seed).
			Float64("forward_gain", final.ForwardGain).
			Float64("backward_gain", final.BackwardGain).
			Float64("spectral_norm", final.SpectralNorm).
			Msg("simulation finished")
	})

	return res, nil
}
