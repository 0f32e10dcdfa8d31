// SPDX-License-Identifier: MIT

// Package sinkhorn: functional configuration for the projection.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: WithX panics only on nonsensical values (programmer error);
//     the plain Project entry point returns sentinel errors instead.
package sinkhorn

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultIterations is the number of row+column normalization rounds.
	// 20 rounds bring random 4×4 inputs well inside a 1e-3 tolerance.
	DefaultIterations = 20

	// DefaultEpsilon floors row/column sums before division.
	DefaultEpsilon = 1e-8

	// DefaultTolerance is the deviation accepted by IsDoublyStochastic callers
	// that have no stricter requirement.
	DefaultTolerance = 1e-3
)

const (
	panicIterationsInvalid = "sinkhorn: WithIterations: iterations must be >= 0"
	panicEpsilonInvalid    = "sinkhorn: WithEpsilon: eps must be finite and > 0"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	iterations int
	eps        float64
}

// Iterations returns the configured number of normalization rounds.
func (o Options) Iterations() int { return o.iterations }

// Epsilon returns the configured normalization floor.
func (o Options) Epsilon() float64 { return o.eps }

// WithIterations sets the number of normalization rounds (0 = exponentiate only).
// Panics when k < 0.
func WithIterations(k int) Option {
	if k < 0 {
		panic(panicIterationsInvalid)
	}

	return func(o *Options) { o.iterations = k }
}

// WithEpsilon sets the floor applied to row/column sums before division.
// Panics when eps is not finite or not strictly positive.
func WithEpsilon(eps float64) Option {
	if !validEpsilon(eps) {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// NewOptions resolves opts over the defaults.
func NewOptions(opts ...Option) Options {
	o := Options{iterations: DefaultIterations, eps: DefaultEpsilon}
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

func validEpsilon(eps float64) bool {
	return eps > 0 && !math.IsInf(eps, 0) && !math.IsNaN(eps)
}
