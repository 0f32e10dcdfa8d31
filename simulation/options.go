// SPDX-License-Identifier: MIT

package simulation

import (
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/mhc/metrics"
	"github.com/katalvlaran/mhc/sinkhorn"
)

const (
	panicEpsilonInvalid  = "simulation: WithEpsilon: eps must be finite and > 0"
	panicSpectralInvalid = "simulation: WithSpectralIterations: iterations must be >= 0"
	panicLoggerNil       = "simulation: WithLogger: logger must not be nil"
)

// Option configures Simulate and Compare.
type Option func(*options)

type options struct {
	logger        zerolog.Logger
	eps           float64
	spectralIters int
	parallel      bool

	// logMu serializes log writes when runs share one logger concurrently.
	logMu *sync.Mutex
}

func defaultOptions() options {
	return options{
		logger:        zerolog.Nop(),
		eps:           sinkhorn.DefaultEpsilon,
		spectralIters: metrics.DefaultPowerIterations,
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

// WithLogger routes progress events to l. Layers log at debug level, run
// summaries at info level. The default logger discards everything.
//
// l's writer does not need to be goroutine-safe: parallel comparisons
// serialize every write to it.
func WithLogger(l *zerolog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *options) { o.logger = *l }
}

// WithEpsilon sets the Sinkhorn normalization floor (default 1e-8).
// Panics when eps is not finite or not strictly positive.
func WithEpsilon(eps float64) Option {
	if eps <= 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}

	return func(o *options) { o.eps = eps }
}

// WithSpectralIterations sets the power iteration count of the spectral norm (default 20).
// Panics when k < 0.
func WithSpectralIterations(k int) Option {
	if k < 0 {
		panic(panicSpectralInvalid)
	}

	return func(o *options) { o.spectralIters = k }
}

// WithParallel makes Compare run the three policies concurrently.
// Simulate ignores it.
func WithParallel() Option {
	return func(o *options) { o.parallel = true }
}

// withLogLock makes every log write of a run hold mu.
func withLogLock(mu *sync.Mutex) Option {
	return func(o *options) { o.logMu = mu }
}

// emit runs write under the shared log lock, if any.
func (o *options) emit(write func()) {
	if o.logMu != nil {
		o.logMu.Lock()
		defer o.logMu.Unlock()
	}
	write()
}
