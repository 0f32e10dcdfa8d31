// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mhc/matrix"
	"github.com/katalvlaran/mhc/metrics"
	"github.com/katalvlaran/mhc/mixer"
	"github.com/katalvlaran/mhc/report"
	"github.com/katalvlaran/mhc/simulation"
	"github.com/katalvlaran/mhc/sinkhorn"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
)

func checkFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}

	return fmt.Errorf("unsupported format %q (want %s)", format, strings.Join(allowed, ", "))
}

func (a *app) compareCmd() *cobra.Command {
	var (
		format      string
		metricsFile string
		parallel    bool
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run baseline, unconstrained and manifold-constrained policies side by side",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format, formatTable, formatJSON); err != nil {
				return err
			}
			if cmd.Flags().Changed("parallel") {
				a.cfg.Parallel = parallel
			}
			if metricsFile != "" {
				a.cfg.MetricsFile = metricsFile
			}

			c, err := simulation.CompareContext(cmd.Context(),
				a.cfg.Depth, a.cfg.Streams, a.cfg.SinkhornIterations, a.cfg.Seed, a.simOptions()...)
			if err != nil {
				return err
			}

			if a.cfg.MetricsFile != "" {
				g := report.NewGauges()
				if err = g.Observe(c); err != nil {
					return err
				}
				if err = g.WriteTextfile(a.cfg.MetricsFile); err != nil {
					return err
				}
				a.log.Info().Str("path", a.cfg.MetricsFile).Msg("metrics textfile written")
			}

			if format == formatJSON {
				id, err := report.WriteJSON(a.out, c)
				if err != nil {
					return err
				}
				a.log.Info().Str("run_id", id).Msg("comparison written")

				return nil
			}

			return report.WriteTable(a.out, c)
		},
	}
	cmd.Flags().StringVar(&format, "format", formatTable, "output format: table or json")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write final composite metrics as a Prometheus textfile")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "run the three policies concurrently")

	return cmd
}

func (a *app) simulateCmd() *cobra.Command {
	var (
		format string
		policy string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate one policy and print the composite metrics at every depth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format, formatTable, formatJSON, formatCSV); err != nil {
				return err
			}
			p, err := simulation.ParsePolicy(policy)
			if err != nil {
				return err
			}
			r, err := simulation.SimulateContext(cmd.Context(),
				a.cfg.Depth, a.cfg.Streams, p, a.cfg.SinkhornIterations, a.cfg.Seed, a.simOptions()...)
			if err != nil {
				return err
			}

			switch format {
			case formatJSON:
				_, err = report.WriteJSON(a.out, r)
				return err
			case formatCSV:
				return report.WriteCSV(a.out, r)
			default:
				return report.WriteResultTable(a.out, r)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", formatTable, "output format: table, json or csv")
	cmd.Flags().StringVar(&policy, "policy", simulation.ManifoldConstrained.String(),
		"baseline, unconstrained (hc) or manifold_constrained (mhc)")

	return cmd
}

func (a *app) dialCmd() *cobra.Command {
	var (
		format string
		ks     []int
	)
	cmd := &cobra.Command{
		Use:   "dial",
		Short: "Project one random matrix at increasing Sinkhorn iteration counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format, formatTable, formatJSON); err != nil {
				return err
			}
			if cmd.Flags().Changed("iterations-list") {
				a.cfg.Dial = ks
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}
			M, err := simulation.Generate(a.cfg.Streams, simulation.Unconstrained, 0, simulation.NewRNG(a.cfg.Seed))
			if err != nil {
				return err
			}
			steps, err := sinkhorn.Dial(M, a.cfg.Dial, a.cfg.Epsilon)
			if err != nil {
				return err
			}
			if format == formatJSON {
				_, err = report.WriteJSON(a.out, steps)
				return err
			}

			return report.WriteDialTable(a.out, steps)
		},
	}
	cmd.Flags().StringVar(&format, "format", formatTable, "output format: table or json")
	cmd.Flags().IntSliceVar(&ks, "iterations-list", nil, "iteration counts to sweep (default from config)")

	return cmd
}

func (a *app) mixCmd() *cobra.Command {
	var dim int
	cmd := &cobra.Command{
		Use:   "mix",
		Short: "Run a stack of residual mixing blocks and trace the hidden state norm",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("dim") {
				a.cfg.Dim = dim
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}
			stack, err := mixer.NewStack(a.cfg.Depth, a.cfg.Dim, a.cfg.Streams, a.cfg.SinkhornIterations, a.cfg.Seed)
			if err != nil {
				return err
			}
			x, err := initialState(a.cfg.Streams, a.cfg.Dim, a.cfg.Seed)
			if err != nil {
				return err
			}

			rows := make([]report.TraceRow, 0, len(stack))
			var traceErr error
			_, err = stack.Trace(x, func(l int, st *matrix.Dense) {
				norm, ferr := matrix.FrobeniusNorm(st)
				if ferr != nil && traceErr == nil {
					traceErr = ferr
				}
				rows = append(rows, report.TraceRow{Block: l, StateNorm: norm})
			})
			if err != nil {
				return err
			}
			if traceErr != nil {
				return traceErr
			}

			P, err := stack.MixingProduct()
			if err != nil {
				return err
			}
			rec, err := metrics.ComputeAll(P)
			if err != nil {
				return err
			}
			exact, err := metrics.SpectralNormExact(P)
			if err != nil {
				return err
			}
			collapsed, err := stack.Collapsed(mixer.DefaultCollapseTolerance)
			if err != nil {
				return err
			}
			a.log.Info().
				Float64("forward_gain", rec.ForwardGain).
				Float64("backward_gain", rec.BackwardGain).
				Float64("spectral_norm", rec.SpectralNorm).
				Float64("spectral_norm_exact", exact).
				Bool("collapsed", collapsed).
				Msg("mixing product")

			return report.WriteTraceTable(a.out, rows)
		},
	}
	cmd.Flags().IntVar(&dim, "dim", a.cfg.Dim, "hidden dimension per stream")

	return cmd
}

// initialState draws a Streams×Dim standard normal hidden state from a stream
// derived from seed, independent of the block parameters.
func initialState(streams, dim int, seed int64) (*matrix.Dense, error) {
	rng := simulation.DeriveRNG(seed, ^uint64(0))
	data := make([]float64, streams*dim)
	for k := range data {
		data[k] = rng.NormFloat64()
	}

	return matrix.NewDenseFrom(streams, dim, data)
}
