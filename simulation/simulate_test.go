// SPDX-License-Identifier: MIT

package simulation_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mhc/matrix"
	"github.com/katalvlaran/mhc/metrics"
	"github.com/katalvlaran/mhc/simulation"
)

func TestSimulate_CompositeExplosionVsBounded(t *testing.T) {
	t.Parallel()

	base, err := simulation.Simulate(64, 4, simulation.Baseline, 20, 42)
	require.NoError(t, err)
	for _, c := range base.Composite {
		require.Equal(t, 1.0, c.ForwardGain, "baseline depth %d", c.UptoLayer)
	}

	hc, err := simulation.Simulate(64, 4, simulation.Unconstrained, 20, 42)
	require.NoError(t, err)
	assert.Greater(t, hc.Final().ForwardGain, 10.0)

	mhc, err := simulation.Simulate(64, 4, simulation.ManifoldConstrained, 20, 42)
	require.NoError(t, err)
	assert.Less(t, mhc.Final().ForwardGain, 5.0)
}

func TestSimulate_Shape(t *testing.T) {
	t.Parallel()

	res, err := simulation.Simulate(7, 3, simulation.Unconstrained, 0, 1)
	require.NoError(t, err)
	require.Len(t, res.PerLayer, 7)
	require.Len(t, res.Composite, 7)
	for i := range res.PerLayer {
		require.Equal(t, i, res.PerLayer[i].Layer)
		require.Equal(t, i, res.Composite[i].UptoLayer)
	}
	require.Equal(t, simulation.Params{
		Policy:             simulation.Unconstrained,
		Depth:              7,
		Streams:            3,
		SinkhornIterations: 0,
		Seed:               1,
	}, res.Params)

	// The first composite is H(0) × I = H(0).
	require.Equal(t, res.PerLayer[0].Record, res.Composite[0].Record)
	require.Equal(t, res.Composite[6], res.Final())
}

// TestSimulate_CompositeNewestLeftmost regenerates the layer matrices from
// the same seed and checks that the composite after two layers is H1 × H0.
func TestSimulate_CompositeNewestLeftmost(t *testing.T) {
	t.Parallel()

	const (
		n    = 4
		seed = 42
	)
	for _, p := range []simulation.Policy{simulation.Unconstrained, simulation.ManifoldConstrained} {
		res, err := simulation.Simulate(2, n, p, 20, seed)
		require.NoError(t, err)

		rng := simulation.NewRNG(seed)
		H0, err := simulation.Generate(n, p, 20, rng)
		require.NoError(t, err)
		H1, err := simulation.Generate(n, p, 20, rng)
		require.NoError(t, err)

		newestLeft, err := matrix.Mul(H1, H0)
		require.NoError(t, err)
		oldestLeft, err := matrix.Mul(H0, H1)
		require.NoError(t, err)

		want, err := metrics.ComputeAll(newestLeft)
		require.NoError(t, err)
		swapped, err := metrics.ComputeAll(oldestLeft)
		require.NoError(t, err)

		require.Equal(t, want, res.Composite[1].Record, "%s", p)
		require.NotEqual(t, swapped, res.Composite[1].Record, "%s", p)
	}
}

func TestSimulate_Reproducible(t *testing.T) {
	t.Parallel()

	for _, p := range simulation.Policies() {
		a, err := simulation.Simulate(32, 4, p, 10, 99)
		require.NoError(t, err)
		b, err := simulation.Simulate(32, 4, p, 10, 99)
		require.NoError(t, err)
		require.Equal(t, a.Final().ForwardGain, b.Final().ForwardGain, p.String())
		require.Empty(t, cmp.Diff(a, b), p.String())
	}

	a, err := simulation.Simulate(32, 4, simulation.ManifoldConstrained, 10, 99)
	require.NoError(t, err)
	c, err := simulation.Simulate(32, 4, simulation.ManifoldConstrained, 10, 100)
	require.NoError(t, err)
	require.NotEqual(t, a.Final().ForwardGain, c.Final().ForwardGain)
}

func TestSimulate_ZeroIterationsMatchesUnconstrained(t *testing.T) {
	t.Parallel()

	hc, err := simulation.Simulate(16, 4, simulation.Unconstrained, 0, 5)
	require.NoError(t, err)
	k0, err := simulation.Simulate(16, 4, simulation.ManifoldConstrained, 0, 5)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(hc.Composite, k0.Composite))
}

func TestSimulate_Errors(t *testing.T) {
	t.Parallel()

	_, err := simulation.Simulate(0, 4, simulation.Baseline, 1, 1)
	require.ErrorIs(t, err, simulation.ErrInvalidDepth)
	_, err = simulation.Simulate(1, 0, simulation.Baseline, 1, 1)
	require.ErrorIs(t, err, simulation.ErrInvalidStreams)
	_, err = simulation.Simulate(1, 2, simulation.Baseline, -3, 1)
	require.ErrorIs(t, err, simulation.ErrNegativeIterations)
	_, err = simulation.Simulate(1, 2, simulation.Policy(5), 1, 1)
	require.ErrorIs(t, err, simulation.ErrUnknownPolicy)
}

func TestSimulateContext_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := simulation.SimulateContext(ctx, 10, 4, simulation.Unconstrained, 0, 1)
	require.Nil(t, res)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestSimulate_Options(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	res, err := simulation.Simulate(3, 2, simulation.ManifoldConstrained, 5, 1,
		simulation.WithLogger(&logger),
		simulation.WithEpsilon(1e-6),
		simulation.WithSpectralIterations(0),
	)
	require.NoError(t, err)
	require.Len(t, res.Composite, 3)
	require.Contains(t, buf.String(), `"message":"simulation finished"`)
	require.Contains(t, buf.String(), `"policy":"manifold_constrained"`)
	require.Contains(t, buf.String(), `"message":"composite updated"`)

	require.Panics(t, func() { simulation.WithEpsilon(0) })
	require.Panics(t, func() { simulation.WithSpectralIterations(-1) })
	require.Panics(t, func() { simulation.WithLogger(nil) })
}

func TestResult_FinalEmpty(t *testing.T) {
	t.Parallel()

	var r *simulation.Result
	require.Equal(t, simulation.CompositeRecord{}, r.Final())
	require.Equal(t, simulation.CompositeRecord{}, (&simulation.Result{}).Final())
}
