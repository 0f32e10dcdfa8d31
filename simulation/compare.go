// SPDX-License-Identifier: MIT

package simulation

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

const opCompare = "Compare"

// Compare runs CompareContext with a background context.
func Compare(depth, n, sinkhornIterations int, seed int64, opts ...Option) (*Comparison, error) {
	return CompareContext(context.Background(), depth, n, sinkhornIterations, seed, opts...)
}

// CompareContext simulates every policy with identical parameters.
// Each run builds its own stream from seed, so all policies see the same
// starting randomness and no run perturbs another.
//
// With WithParallel the runs execute concurrently under an errgroup; the
// first failure cancels the others. Results are identical to a sequential
// comparison, and writes to a shared WithLogger logger are serialized.
func CompareContext(ctx context.Context, depth, n, sinkhornIterations int, seed int64, opts ...Option) (*Comparison, error) {
	o := newOptions(opts)
	out := &Comparison{}

	if !o.parallel {
		for _, p := range Policies() {
			r, err := SimulateContext(ctx, depth, n, p, sinkhornIterations, seed, opts...)
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", opCompare, p, err)
			}
			out.set(p, r)
		}

		return out, nil
	}

	var logMu sync.Mutex
	runOpts := make([]Option, 0, len(opts)+1)
	runOpts = append(runOpts, opts...)
	runOpts = append(runOpts, withLogLock(&logMu))

	policies := Policies()
	results := make([]*Result, len(policies))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range policies {
		i, p := i, p
		g.Go(func() error {
			r, err := SimulateContext(gctx, depth, n, p, sinkhornIterations, seed, runOpts...)
			if err != nil {
				return fmt.Errorf("%s: %s: %w", opCompare, p, err)
			}
			results[i] = r

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, p := range policies {
		out.set(p, results[i])
	}

	return out, nil
}
