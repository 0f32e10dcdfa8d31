// SPDX-License-Identifier: MIT

package mixer

import (
	"fmt"

	"github.com/katalvlaran/mhc/matrix"
	"github.com/katalvlaran/mhc/simulation"
)

// Block wraps a Layer with a multi-stream residual connection:
// Forward(x) = Residual.Forward(x, Layer.Forward(Residual.Aggregate(x))).
type Block struct {
	Layer    Layer
	Residual *Residual
}

// Forward runs one block on x (Streams×Dim).
func (b *Block) Forward(x matrix.Matrix) (*matrix.Dense, error) {
	if b.Layer == nil || b.Residual == nil {
		return nil, fmt.Errorf("Block.Forward: %w", ErrNilLayer)
	}
	in, err := b.Residual.Aggregate(x)
	if err != nil {
		return nil, fmt.Errorf("Block.Forward: %w", err)
	}
	out, err := b.Layer.Forward(in)
	if err != nil {
		return nil, fmt.Errorf("Block.Forward: layer: %w", err)
	}

	return b.Residual.Forward(x, out)
}

// Stack applies blocks in order.
type Stack []*Block

// NewStack builds depth blocks of LinearTanh layers. Block l draws its
// parameters from simulation.DeriveRNG(seed, l), so blocks are independent
// and the whole stack is reproducible from seed.
func NewStack(depth, dim, streams, iterations int, seed int64) (Stack, error) {
	if depth < 1 {
		return nil, fmt.Errorf("NewStack: depth=%d: %w", depth, simulation.ErrInvalidDepth)
	}
	s := make(Stack, 0, depth)
	for l := 0; l < depth; l++ {
		rng := simulation.DeriveRNG(seed, uint64(l))
		res, err := NewResidual(dim, streams, iterations, rng)
		if err != nil {
			return nil, fmt.Errorf("NewStack: block %d: %w", l, err)
		}
		layer, err := NewLinearTanhLayer(dim, rng)
		if err != nil {
			return nil, fmt.Errorf("NewStack: block %d: %w", l, err)
		}
		s = append(s, &Block{Layer: layer, Residual: res})
	}

	return s, nil
}

// Forward applies every block to x in order.
func (s Stack) Forward(x matrix.Matrix) (*matrix.Dense, error) {
	return s.Trace(x, nil)
}

// Trace is Forward with a per-block hook: after block l, fn(l, state) is
// called with the new state. fn may be nil.
func (s Stack) Trace(x matrix.Matrix, fn func(layer int, state *matrix.Dense)) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(x); err != nil {
		return nil, fmt.Errorf("Stack.Forward: %w", err)
	}
	cur, err := dense(x)
	if err != nil {
		return nil, fmt.Errorf("Stack.Forward: %w", err)
	}
	for l, b := range s {
		if cur, err = b.Forward(cur); err != nil {
			return nil, fmt.Errorf("Stack.Forward: block %d: %w", l, err)
		}
		if fn != nil {
			fn(l, cur)
		}
	}

	return cur, nil
}

// MixingProduct returns H(L) × … × H(0) of the projected mixing matrices,
// newest block on the left, mirroring the composite tracked by simulation.
func (s Stack) MixingProduct() (*matrix.Dense, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("Stack.MixingProduct: %w", simulation.ErrInvalidDepth)
	}
	prod, err := matrix.NewIdentity(s[0].Residual.Streams)
	if err != nil {
		return nil, fmt.Errorf("Stack.MixingProduct: %w", err)
	}
	for l, b := range s {
		H, err := b.Residual.MixingMatrix()
		if err != nil {
			return nil, fmt.Errorf("Stack.MixingProduct: block %d: %w", l, err)
		}
		next, err := matrix.Mul(H, prod)
		if err != nil {
			return nil, fmt.Errorf("Stack.MixingProduct: block %d: %w", l, err)
		}
		prod = next.(*matrix.Dense)
	}

	return prod, nil
}

// DefaultCollapseTolerance is the absolute tolerance used by the mix command
// when checking whether a mixing product has reached the averaging matrix.
const DefaultCollapseTolerance = 1e-6

// Collapsed reports whether every entry of MixingProduct lies within atol of
// 1/n, i.e. whether the stack has averaged its streams into one.
//
// Errors: simulation.ErrInvalidDepth for an empty stack, matrix.ErrNaNInf for
// a non-finite atol, projection errors.
func (s Stack) Collapsed(atol float64) (bool, error) {
	prod, err := s.MixingProduct()
	if err != nil {
		return false, err
	}
	U, err := matrix.NewUniform(prod.Rows())
	if err != nil {
		return false, fmt.Errorf("Stack.Collapsed: %w", err)
	}
	ok, err := matrix.AllClose(prod, U, 0, atol)
	if err != nil {
		return false, fmt.Errorf("Stack.Collapsed: %w", err)
	}

	return ok, nil
}
