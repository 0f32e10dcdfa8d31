// SPDX-License-Identifier: MIT

package mixer

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/mhc/matrix"
)

// Layer is the function F wrapped by a Block. It maps a Dim-vector to a
// Dim-vector and must not retain or mutate its input.
type Layer interface {
	Forward(in []float64) ([]float64, error)
}

// LayerFunc adapts a plain function to Layer.
type LayerFunc func(in []float64) ([]float64, error)

// Forward calls f(in).
func (f LayerFunc) Forward(in []float64) ([]float64, error) { return f(in) }

// LinearTanh computes tanh(W·in + B).
type LinearTanh struct {
	W *matrix.Dense // Dim×Dim
	B []float64     // len Dim
}

// NewLinearTanhLayer draws W with entries N(0,1)/sqrt(dim) and zero bias.
func NewLinearTanhLayer(dim int, rng *rand.Rand) (*LinearTanh, error) {
	if dim < 1 {
		return nil, fmt.Errorf("NewLinearTanhLayer: dim=%d: %w", dim, ErrInvalidShape)
	}
	if rng == nil {
		return nil, fmt.Errorf("NewLinearTanhLayer: %w", ErrNilRNG)
	}
	scale := 1 / math.Sqrt(float64(dim))
	w := make([]float64, dim*dim)
	for k := range w {
		w[k] = scale * rng.NormFloat64()
	}
	W, err := matrix.NewDenseFrom(dim, dim, w)
	if err != nil {
		return nil, fmt.Errorf("NewLinearTanhLayer: %w", err)
	}

	return &LinearTanh{W: W, B: make([]float64, dim)}, nil
}

// Forward implements Layer.
func (l *LinearTanh) Forward(in []float64) ([]float64, error) {
	y, err := matrix.MatVec(l.W, in)
	if err != nil {
		return nil, fmt.Errorf("LinearTanh.Forward: %w", err)
	}
	if err = matrix.ValidateVecLen(l.B, len(y)); err != nil {
		return nil, fmt.Errorf("LinearTanh.Forward: bias: %w", err)
	}
	for i := range y {
		y[i] = math.Tanh(y[i] + l.B[i])
	}

	return y, nil
}
