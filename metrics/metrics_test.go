// SPDX-License-Identifier: MIT

package metrics_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/mhc/matrix"
	"github.com/katalvlaran/mhc/metrics"
	"github.com/katalvlaran/mhc/sinkhorn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityMetrics(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 16; n++ {
		I := identity(t, n)

		fg, err := metrics.ForwardGain(I)
		require.NoError(t, err)
		bg, err := metrics.BackwardGain(I)
		require.NoError(t, err)
		sn, err := metrics.SpectralNorm(I)
		require.NoError(t, err)

		assert.Equal(t, 1.0, fg, "n=%d", n)
		assert.Equal(t, 1.0, bg, "n=%d", n)
		assert.Equal(t, 1.0, sn, "n=%d", n)

		d, err := metrics.DistanceFromUniform(I)
		require.NoError(t, err)
		assert.InDelta(t, math.Sqrt(float64(n-1)), d, 1e-12, "n=%d", n)
	}
}

func TestGains_SignedSums(t *testing.T) {
	t.Parallel()

	M := mustDense(t, 2, []float64{
		1, -3,
		2, 2,
	})
	fg, err := metrics.ForwardGain(M)
	require.NoError(t, err)
	require.Equal(t, 4.0, fg, "rows sum to -2 and 4")

	bg, err := metrics.BackwardGain(M)
	require.NoError(t, err)
	require.Equal(t, 3.0, bg, "columns sum to 3 and -1")

	_, err = metrics.ForwardGain(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = metrics.BackwardGain(rect)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestProjectedGainsNearOne(t *testing.T) {
	t.Parallel()

	for seed := int64(1); seed <= 10; seed++ {
		P, err := sinkhorn.Project(randomSquare(t, 4, seed), 20, sinkhorn.DefaultEpsilon)
		require.NoError(t, err)

		fg, err := metrics.ForwardGain(P)
		require.NoError(t, err)
		bg, err := metrics.BackwardGain(P)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, fg, 0.01, "seed=%d", seed)
		assert.InDelta(t, 1.0, bg, 0.01, "seed=%d", seed)

		sn, err := metrics.SpectralNorm(P)
		require.NoError(t, err)
		assert.LessOrEqual(t, sn, 1.0+0.01, "seed=%d", seed)
	}
}

func TestSpectralNorm(t *testing.T) {
	t.Parallel()

	twoI, err := matrix.Scale(identity(t, 4), 2)
	require.NoError(t, err)
	sn, err := metrics.SpectralNorm(twoI)
	require.NoError(t, err)
	require.Equal(t, 2.0, sn)

	// diag(3, 1): power iteration converges to the dominant axis.
	D := mustDense(t, 2, []float64{3, 0, 0, 1})
	sn, err = metrics.SpectralNorm(D)
	require.NoError(t, err)
	require.InDelta(t, 3.0, sn, 1e-6)

	zero, err := matrix.NewDense(3, 3)
	require.NoError(t, err)
	sn, err = metrics.SpectralNorm(zero)
	require.NoError(t, err)
	require.Equal(t, 0.0, sn)

	// Zero iterations report ‖M v0‖ for the unit start vector.
	sn, err = metrics.SpectralNormIter(identity(t, 3), 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, sn)

	_, err = metrics.SpectralNormIter(D, -1)
	require.ErrorIs(t, err, metrics.ErrNegativeIterations)
}

// TestMetrics_HugeEntries covers composites far past 1e154, where a plain
// sum of squares would overflow and the iterate would collapse to zero.
func TestMetrics_HugeEntries(t *testing.T) {
	t.Parallel()

	huge, err := matrix.Scale(identity(t, 4), 1e200)
	require.NoError(t, err)

	sn, err := metrics.SpectralNorm(huge)
	require.NoError(t, err)
	require.InEpsilon(t, 1e200, sn, 1e-12)

	d, err := metrics.DistanceFromUniform(huge)
	require.NoError(t, err)
	require.False(t, math.IsInf(d, 0))
	require.InEpsilon(t, 2e200, d, 1e-12)
}

func TestSpectralNorm_IndependentOfGlobalState(t *testing.T) {
	t.Parallel()

	M := randomSquare(t, 5, 7)
	a, err := metrics.SpectralNorm(M)
	require.NoError(t, err)
	b, err := metrics.SpectralNorm(M)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestDistanceFromUniform(t *testing.T) {
	t.Parallel()

	U, err := matrix.NewUniform(4)
	require.NoError(t, err)
	d, err := metrics.DistanceFromUniform(U)
	require.NoError(t, err)
	require.Equal(t, 0.0, d)
}

func TestComputeAll(t *testing.T) {
	t.Parallel()

	rec, err := metrics.ComputeAll(identity(t, 4))
	require.NoError(t, err)
	assert.Equal(t, 1.0, rec.ForwardGain)
	assert.Equal(t, 1.0, rec.BackwardGain)
	assert.Equal(t, 1.0, rec.SpectralNorm)
	assert.Equal(t, 0.0, rec.RowSumMaxDev)
	assert.Equal(t, 0.0, rec.ColSumMaxDev)
	assert.Equal(t, 0.0, rec.MinEntry)
	assert.InDelta(t, 1.0, rec.LargestEigenvalueMag, 1e-12)
	assert.InDelta(t, 1.0, rec.SecondEigenvalueMag, 1e-12)
	assert.InDelta(t, math.Sqrt(3), rec.DistanceFromUniform, 1e-12)

	M := randomSquare(t, 4, 3)
	rec, err = metrics.ComputeAll(M)
	require.NoError(t, err)
	fg, err := metrics.ForwardGain(M)
	require.NoError(t, err)
	sn, err := metrics.SpectralNorm(M)
	require.NoError(t, err)
	second, err := metrics.SecondLargestEigenvalueMagnitude(M)
	require.NoError(t, err)
	assert.Equal(t, fg, rec.ForwardGain)
	assert.Equal(t, sn, rec.SpectralNorm)
	assert.Equal(t, second, rec.SecondEigenvalueMag)
	assert.GreaterOrEqual(t, rec.LargestEigenvalueMag, rec.SecondEigenvalueMag)

	require.Len(t, rec.Values(), len(metrics.FieldNames))
	require.Equal(t, rec.ForwardGain, rec.Values()[1])

	infM, err := matrix.Apply(identity(t, 2), func(v float64) float64 { return v * math.Inf(1) })
	require.NoError(t, err)
	_, err = metrics.ComputeAll(infM)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestSpectralNormExact(t *testing.T) {
	t.Parallel()

	D := mustDense(t, 2, []float64{3, 0, 0, -5})
	got, err := metrics.SpectralNormExact(D)
	require.NoError(t, err)
	require.InDelta(t, 5.0, got, 1e-12)

	// A Jordan-like block: eigenvalues are 1, the largest singular value is larger.
	J := mustDense(t, 2, []float64{1, 4, 0, 1})
	exact, err := metrics.SpectralNormExact(J)
	require.NoError(t, err)
	require.InDelta(t, 2+math.Sqrt(5), exact, 1e-9)

	for seed := int64(1); seed <= 5; seed++ {
		M := randomSquare(t, 4, seed)
		est, err := metrics.SpectralNorm(M)
		require.NoError(t, err)
		exact, err := metrics.SpectralNormExact(M)
		require.NoError(t, err)
		assert.LessOrEqual(t, est, exact*(1+1e-9), "seed=%d", seed)
	}

	_, err = metrics.SpectralNormExact(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
