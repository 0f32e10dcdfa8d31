// SPDX-License-Identifier: MIT

package simulation

import "github.com/katalvlaran/mhc/metrics"

// Params echoes the inputs of one simulation run.
type Params struct {
	Policy             Policy `json:"policy" yaml:"policy"`
	Depth              int    `json:"depth" yaml:"depth"`
	Streams            int    `json:"n" yaml:"n"`
	SinkhornIterations int    `json:"sinkhorn_iters" yaml:"sinkhorn_iters"`
	Seed               int64  `json:"seed" yaml:"seed"`
}

// LayerRecord holds the metrics of the matrix generated at Layer.
type LayerRecord struct {
	Layer          int `json:"layer" yaml:"layer"`
	metrics.Record `yaml:",inline"`
}

// CompositeRecord holds the metrics of H(UptoLayer) × … × H(0).
type CompositeRecord struct {
	UptoLayer      int `json:"upto_layer" yaml:"upto_layer"`
	metrics.Record `yaml:",inline"`
}

// Result is the immutable outcome of one simulation run.
// PerLayer and Composite both have exactly Depth entries.
type Result struct {
	Params    `yaml:",inline"`
	PerLayer  []LayerRecord     `json:"per_layer" yaml:"per_layer"`
	Composite []CompositeRecord `json:"composite" yaml:"composite"`
}

// Final returns the composite record of the deepest layer.
// The zero record is returned for an empty Result.
func (r *Result) Final() CompositeRecord {
	if r == nil || len(r.Composite) == 0 {
		return CompositeRecord{}
	}

	return r.Composite[len(r.Composite)-1]
}

// Comparison holds one Result per policy, all run with the same parameters.
type Comparison struct {
	Baseline            *Result `json:"baseline" yaml:"baseline"`
	Unconstrained       *Result `json:"unconstrained" yaml:"unconstrained"`
	ManifoldConstrained *Result `json:"manifold_constrained" yaml:"manifold_constrained"`
}

// ByPolicy returns the Result of p, or nil for an undeclared policy.
func (c *Comparison) ByPolicy(p Policy) *Result {
	switch p {
	case Baseline:
		return c.Baseline
	case Unconstrained:
		return c.Unconstrained
	case ManifoldConstrained:
		return c.ManifoldConstrained
	default:
		return nil
	}
}

// Results returns the three runs keyed by canonical policy name.
func (c *Comparison) Results() map[string]*Result {
	out := make(map[string]*Result, len(policyNames))
	for _, p := range Policies() {
		out[p.String()] = c.ByPolicy(p)
	}

	return out
}

// set stores r under p. Only declared policies reach it.
func (c *Comparison) set(p Policy, r *Result) {
	switch p {
	case Baseline:
		c.Baseline = r
	case Unconstrained:
		c.Unconstrained = r
	case ManifoldConstrained:
		c.ManifoldConstrained = r
	}
}
