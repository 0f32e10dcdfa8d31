// SPDX-License-Identifier: MIT

package simulation_test

import (
	"testing"

	"github.com/katalvlaran/mhc/matrix"
	"github.com/katalvlaran/mhc/simulation"
	"github.com/katalvlaran/mhc/sinkhorn"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Baseline(t *testing.T) {
	t.Parallel()

	H, err := simulation.Generate(3, simulation.Baseline, 20, nil)
	require.NoError(t, err)
	I, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	require.Equal(t, I.RawCopy(), H.RawCopy())

	// The stream is untouched by Baseline.
	a := simulation.NewRNG(5)
	_, err = simulation.Generate(3, simulation.Baseline, 20, a)
	require.NoError(t, err)
	require.Equal(t, simulation.NewRNG(5).Int63(), a.Int63())
}

func TestGenerate_UnconstrainedRowMajorDraws(t *testing.T) {
	t.Parallel()

	H, err := simulation.Generate(2, simulation.Unconstrained, 20, simulation.NewRNG(42))
	require.NoError(t, err)

	ref := simulation.NewRNG(42)
	want := []float64{ref.NormFloat64(), ref.NormFloat64(), ref.NormFloat64(), ref.NormFloat64()}
	require.Equal(t, want, H.RawCopy())
}

func TestGenerate_ManifoldConstrained(t *testing.T) {
	t.Parallel()

	raw, err := simulation.Generate(4, simulation.Unconstrained, 0, simulation.NewRNG(3))
	require.NoError(t, err)

	zero, err := simulation.Generate(4, simulation.ManifoldConstrained, 0, simulation.NewRNG(3))
	require.NoError(t, err)
	require.Equal(t, raw.RawCopy(), zero.RawCopy(), "k=0 returns the raw draw")

	H, err := simulation.Generate(4, simulation.ManifoldConstrained, 20, simulation.NewRNG(3))
	require.NoError(t, err)
	P, err := sinkhorn.Project(raw, 20, sinkhorn.DefaultEpsilon)
	require.NoError(t, err)
	require.Equal(t, P.RawCopy(), H.RawCopy())

	ok, err := sinkhorn.IsDoublyStochastic(H, 0.01)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGenerate_Errors(t *testing.T) {
	t.Parallel()

	rng := simulation.NewRNG(1)
	_, err := simulation.Generate(0, simulation.Baseline, 1, rng)
	require.ErrorIs(t, err, simulation.ErrInvalidStreams)
	_, err = simulation.Generate(2, simulation.Unconstrained, -1, rng)
	require.ErrorIs(t, err, simulation.ErrNegativeIterations)
	_, err = simulation.Generate(2, simulation.Policy(42), 1, rng)
	require.ErrorIs(t, err, simulation.ErrUnknownPolicy)
	_, err = simulation.Generate(2, simulation.Unconstrained, 1, nil)
	require.ErrorIs(t, err, simulation.ErrNilRNG)
	_, err = simulation.Generate(2, simulation.ManifoldConstrained, 5, nil)
	require.ErrorIs(t, err, simulation.ErrNilRNG)
}

func TestDeriveSeed(t *testing.T) {
	t.Parallel()

	require.Equal(t, simulation.DeriveSeed(42, 1), simulation.DeriveSeed(42, 1))
	require.NotEqual(t, simulation.DeriveSeed(42, 1), simulation.DeriveSeed(42, 2))
	require.NotEqual(t, simulation.DeriveSeed(42, 1), simulation.DeriveSeed(43, 1))
	require.Equal(t, simulation.DeriveRNG(7, 3).Int63(), simulation.NewRNG(simulation.DeriveSeed(7, 3)).Int63())
}
