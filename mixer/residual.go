// SPDX-License-Identifier: MIT

package mixer

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/mhc/matrix"
	"github.com/katalvlaran/mhc/sinkhorn"
)

// Initial parameter scales.
const (
	InitMixingScale = 0.01 // HRes ~ InitMixingScale·N(0,1)
	InitGate        = 0.01 // AlphaRes, AlphaPre, AlphaPost
)

const (
	opNewResidual = "NewResidual"
	opForward     = "Residual.Forward"
	opAggregate   = "Residual.Aggregate"
	opMixing      = "Residual.MixingMatrix"
)

// Residual holds the parameters of one multi-stream residual connection.
type Residual struct {
	Streams    int
	Dim        int
	Iterations int     // Sinkhorn rounds applied to HRes
	Epsilon    float64 // Sinkhorn floor

	HRes  *matrix.Dense // Streams×Streams, raw (unprojected) mixing weights
	HPre  []float64     // len Streams, stream weights of Aggregate
	HPost []float64     // len Streams, distribution of the layer output

	AlphaRes  float64
	AlphaPre  float64
	AlphaPost float64

	BiasRes  *matrix.Dense // Streams×Dim
	BiasPost *matrix.Dense // Streams×Dim
}

// NewResidual draws HRes from rng and sets every other parameter to its
// initial value: HPre = HPost = 1/streams, gates InitGate, biases zero.
//
// Errors: ErrInvalidShape, ErrNilRNG, sinkhorn.ErrNegativeIterations.
func NewResidual(dim, streams, iterations int, rng *rand.Rand) (*Residual, error) {
	if dim < 1 || streams < 1 {
		return nil, fmt.Errorf("%s: dim=%d streams=%d: %w", opNewResidual, dim, streams, ErrInvalidShape)
	}
	if iterations < 0 {
		return nil, fmt.Errorf("%s: %d: %w", opNewResidual, iterations, sinkhorn.ErrNegativeIterations)
	}
	if rng == nil {
		return nil, fmt.Errorf("%s: %w", opNewResidual, ErrNilRNG)
	}

	raw := make([]float64, streams*streams)
	for k := range raw {
		raw[k] = InitMixingScale * rng.NormFloat64()
	}
	hres, err := matrix.NewDenseFrom(streams, streams, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNewResidual, err)
	}
	biasRes, err := matrix.NewDense(streams, dim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNewResidual, err)
	}
	biasPost, err := matrix.NewDense(streams, dim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNewResidual, err)
	}

	return &Residual{
		Streams:    streams,
		Dim:        dim,
		Iterations: iterations,
		Epsilon:    sinkhorn.DefaultEpsilon,
		HRes:       hres,
		HPre:       fill(streams, 1/float64(streams)),
		HPost:      fill(streams, 1/float64(streams)),
		AlphaRes:   InitGate,
		AlphaPre:   InitGate,
		AlphaPost:  InitGate,
		BiasRes:    biasRes,
		BiasPost:   biasPost,
	}, nil
}

// MixingMatrix returns HRes projected with the configured iterations.
//
// Errors: sinkhorn.ErrNegativeIterations, sinkhorn.ErrBadEpsilon, projection errors.
func (r *Residual) MixingMatrix() (*matrix.Dense, error) {
	if r.Iterations < 0 {
		return nil, fmt.Errorf("%s: %d: %w", opMixing, r.Iterations, sinkhorn.ErrNegativeIterations)
	}
	if r.Epsilon <= 0 || math.IsNaN(r.Epsilon) || math.IsInf(r.Epsilon, 0) {
		return nil, fmt.Errorf("%s: %g: %w", opMixing, r.Epsilon, sinkhorn.ErrBadEpsilon)
	}
	H, err := sinkhorn.ProjectWith(r.HRes,
		sinkhorn.WithIterations(r.Iterations),
		sinkhorn.WithEpsilon(r.Epsilon),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opMixing, err)
	}

	return H, nil
}

// Aggregate collapses the streams of x into one layer input:
// out[d] = AlphaPre · Σ_s |HPre[s]| · x[s,d].
//
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch.
func (r *Residual) Aggregate(x matrix.Matrix) ([]float64, error) {
	if err := r.checkState(x); err != nil {
		return nil, fmt.Errorf("%s: %w", opAggregate, err)
	}
	xd, err := dense(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opAggregate, err)
	}
	out := make([]float64, r.Dim)
	var row []float64
	for s := 0; s < r.Streams; s++ {
		w := math.Abs(r.HPre[s])
		if row, err = xd.Row(s); err != nil {
			return nil, fmt.Errorf("%s: %w", opAggregate, err)
		}
		for d, v := range row {
			out[d] += w * v
		}
	}
	for d := range out {
		out[d] *= r.AlphaPre
	}

	return out, nil
}

// Forward combines the state x (Streams×Dim) with layerOut (len Dim).
// Implementation:
//   - Stage 1: H = MixingMatrix(); mixed = AlphaRes · (H × x).
//   - Stage 2: out[s,d] = x[s,d] + mixed[s,d] + BiasRes[s,d]
//     + AlphaPost·HPost[s]·layerOut[d] + BiasPost[s,d].
//
// x is never mutated.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, projection errors.
func (r *Residual) Forward(x matrix.Matrix, layerOut []float64) (*matrix.Dense, error) {
	if err := r.checkState(x); err != nil {
		return nil, fmt.Errorf("%s: %w", opForward, err)
	}
	if err := matrix.ValidateVecLen(layerOut, r.Dim); err != nil {
		return nil, fmt.Errorf("%s: layer output: %w", opForward, err)
	}
	H, err := r.MixingMatrix()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opForward, err)
	}
	mixed, err := matrix.Mul(H, x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opForward, err)
	}

	xs, err := dense(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opForward, err)
	}
	scaled, err := matrix.Scale(mixed, r.AlphaRes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opForward, err)
	}
	in, mix := xs.RawCopy(), scaled.(*matrix.Dense).RawCopy()
	bres, bpost := r.BiasRes.RawCopy(), r.BiasPost.RawCopy()

	out := make([]float64, len(in))
	var k int
	for s := 0; s < r.Streams; s++ {
		post := r.AlphaPost * r.HPost[s]
		for d := 0; d < r.Dim; d++ {
			k = s*r.Dim + d
			out[k] = in[k] + (mix[k] + bres[k]) + (post*layerOut[d] + bpost[k])
		}
	}

	return matrix.NewDenseFrom(r.Streams, r.Dim, out)
}

// checkState validates x against the configured shape and the parameter lengths.
func (r *Residual) checkState(x matrix.Matrix) error {
	if err := matrix.ValidateNotNil(x); err != nil {
		return err
	}
	if x.Rows() != r.Streams || x.Cols() != r.Dim {
		return fmt.Errorf("state %dx%d, want %dx%d: %w", x.Rows(), x.Cols(), r.Streams, r.Dim, matrix.ErrDimensionMismatch)
	}
	if len(r.HPre) != r.Streams || len(r.HPost) != r.Streams {
		return fmt.Errorf("stream weights: %w", matrix.ErrDimensionMismatch)
	}
	if err := matrix.ValidateNotNil(r.BiasRes); err != nil {
		return err
	}
	if err := matrix.ValidateNotNil(r.BiasPost); err != nil {
		return err
	}
	if err := matrix.ValidateSameShape(x, r.BiasRes); err != nil {
		return err
	}

	return matrix.ValidateSameShape(x, r.BiasPost)
}

// dense returns x as *matrix.Dense, materializing other implementations.
func dense(x matrix.Matrix) (*matrix.Dense, error) {
	if d, ok := x.(*matrix.Dense); ok {
		return d, nil
	}

	return matrix.Apply(x, func(v float64) float64 { return v })
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}
