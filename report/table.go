// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/katalvlaran/mhc/simulation"
	"github.com/katalvlaran/mhc/sinkhorn"
)

// ErrNilResult is returned when a writer receives no data to render.
var ErrNilResult = errors.New("report: nil result")

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// WriteTable prints the final composite metrics of every policy, one row each.
func WriteTable(w io.Writer, c *simulation.Comparison) error {
	if c == nil {
		return fmt.Errorf("WriteTable: %w", ErrNilResult)
	}
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "POLICY\tDEPTH\tFORWARD GAIN\tBACKWARD GAIN\tSPECTRAL NORM\t|λ2|\tDIST UNIFORM")
	for _, p := range simulation.Policies() {
		r := c.ByPolicy(p)
		if r == nil {
			return fmt.Errorf("WriteTable: %s: %w", p, ErrNilResult)
		}
		f := r.Final()
		fmt.Fprintf(tw, "%s\t%d\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\n",
			p, r.Depth, f.ForwardGain, f.BackwardGain, f.SpectralNorm, f.SecondEigenvalueMag, f.DistanceFromUniform)
	}

	return tw.Flush()
}

// WriteResultTable prints every composite depth of a single run.
func WriteResultTable(w io.Writer, r *simulation.Result) error {
	if r == nil {
		return fmt.Errorf("WriteResultTable: %w", ErrNilResult)
	}
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "# %s n=%d k=%d seed=%d\n", r.Policy, r.Streams, r.SinkhornIterations, r.Seed)
	fmt.Fprintln(tw, "LAYER\tFORWARD GAIN\tBACKWARD GAIN\tSPECTRAL NORM\tMIN ENTRY")
	for _, c := range r.Composite {
		fmt.Fprintf(tw, "%d\t%.4g\t%.4g\t%.4g\t%.4g\n",
			c.UptoLayer, c.ForwardGain, c.BackwardGain, c.SpectralNorm, c.MinEntry)
	}

	return tw.Flush()
}

// WriteDialTable prints one row per dial step.
func WriteDialTable(w io.Writer, steps []sinkhorn.DialStep) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "K\tROW DEV\tCOL DEV\tMIN ENTRY\tDOUBLY STOCHASTIC")
	for _, s := range steps {
		fmt.Fprintf(tw, "%d\t%.3e\t%.3e\t%.4g\t%t\n",
			s.Iterations, s.Deviation.RowSumMaxDev, s.Deviation.ColSumMaxDev, s.Deviation.MinEntry,
			s.Deviation.Within(sinkhorn.DefaultTolerance))
	}

	return tw.Flush()
}

// TraceRow is one block of a mixer forward pass.
type TraceRow struct {
	Block     int     `json:"block"`
	StateNorm float64 `json:"state_norm"` // Frobenius norm of the hidden state after the block
}

// WriteTraceTable prints the state norm after every mixer block.
func WriteTraceTable(w io.Writer, rows []TraceRow) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "BLOCK\tSTATE NORM")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%.6g\n", r.Block, r.StateNorm)
	}

	return tw.Flush()
}
