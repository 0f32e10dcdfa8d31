// SPDX-License-Identifier: MIT

package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/mhc/metrics"
	"github.com/katalvlaran/mhc/simulation"
)

const metricPrefix = "mhc_composite_"

// Gauges exposes the final composite metrics of a comparison as Prometheus
// gauges labeled by policy, on a private registry.
type Gauges struct {
	reg    *prometheus.Registry
	depth  *prometheus.GaugeVec
	fields []*prometheus.GaugeVec // aligned with metrics.FieldNames
}

// NewGauges registers one gauge vector per metric plus mhc_composite_depth.
func NewGauges() *Gauges {
	g := &Gauges{
		reg: prometheus.NewRegistry(),
		depth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "depth",
				Help: "Number of layers folded into the composite",
			},
			[]string{"policy"},
		),
	}
	g.reg.MustRegister(g.depth)
	for _, name := range metrics.FieldNames {
		vec := prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + name,
				Help: "Final composite " + name + " by mixing policy",
			},
			[]string{"policy"},
		)
		g.reg.MustRegister(vec)
		g.fields = append(g.fields, vec)
	}

	return g
}

// Registry returns the registry holding the gauges.
func (g *Gauges) Registry() *prometheus.Registry { return g.reg }

// Observe sets every gauge from the final composite record of each policy.
func (g *Gauges) Observe(c *simulation.Comparison) error {
	if c == nil {
		return fmt.Errorf("Gauges.Observe: %w", ErrNilResult)
	}
	for _, p := range simulation.Policies() {
		r := c.ByPolicy(p)
		if r == nil {
			return fmt.Errorf("Gauges.Observe: %s: %w", p, ErrNilResult)
		}
		g.ObserveResult(r)
	}

	return nil
}

// ObserveResult sets the gauges of r's policy.
func (g *Gauges) ObserveResult(r *simulation.Result) {
	label := r.Policy.String()
	g.depth.WithLabelValues(label).Set(float64(len(r.Composite)))
	for i, v := range r.Final().Values() {
		g.fields[i].WithLabelValues(label).Set(v)
	}
}

// WriteTextfile writes the registry in the node_exporter textfile format.
// The file is written atomically (temp file + rename).
func (g *Gauges) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, g.reg); err != nil {
		return fmt.Errorf("Gauges.WriteTextfile: %w", err)
	}

	return nil
}
