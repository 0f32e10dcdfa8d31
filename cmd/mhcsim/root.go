// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/mhc/config"
	"github.com/katalvlaran/mhc/simulation"
)

// app carries the resolved configuration and logger shared by subcommands.
type app struct {
	out, errOut io.Writer

	configPath string
	preset     string
	logLevel   string
	logFormat  string

	cfg config.Config
	log zerolog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, cfg: config.Default()}

	root := &cobra.Command{
		Use:           "mhcsim",
		Short:         "Residual mixing stability lab: HC explosion vs manifold-constrained mixing",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.resolve(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file")
	pf.StringVar(&a.preset, "preset", "", "named preset: default, explosion, minimal, deep")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	pf.StringVar(&a.logFormat, "log-format", "", "log format (console, json)")
	pf.Int("depth", a.cfg.Depth, "number of layers")
	pf.Int("streams", a.cfg.Streams, "matrix size n (number of residual streams)")
	pf.Int("iterations", a.cfg.SinkhornIterations, "Sinkhorn iterations k")
	pf.Int64("seed", a.cfg.Seed, "random seed")
	pf.Float64("epsilon", a.cfg.Epsilon, "Sinkhorn normalization floor")

	root.AddCommand(
		a.compareCmd(),
		a.simulateCmd(),
		a.dialCmd(),
		a.mixCmd(),
	)

	return root
}

// resolve builds the effective configuration: defaults, config file, preset
// flag, then every explicitly set flag.
func (a *app) resolve(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.preset != "" {
		if err := cfg.ApplyPreset(a.preset); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	var err error
	if flags.Changed("depth") {
		if cfg.Depth, err = flags.GetInt("depth"); err != nil {
			return err
		}
	}
	if flags.Changed("streams") {
		if cfg.Streams, err = flags.GetInt("streams"); err != nil {
			return err
		}
	}
	if flags.Changed("iterations") {
		if cfg.SinkhornIterations, err = flags.GetInt("iterations"); err != nil {
			return err
		}
	}
	if flags.Changed("seed") {
		if cfg.Seed, err = flags.GetInt64("seed"); err != nil {
			return err
		}
	}
	if flags.Changed("epsilon") {
		if cfg.Epsilon, err = flags.GetFloat64("epsilon"); err != nil {
			return err
		}
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(a.errOut, cfg.Log)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, logger
	a.log.Debug().
		Str("preset", cfg.Preset).
		Int("depth", cfg.Depth).
		Int("streams", cfg.Streams).
		Int("iterations", cfg.SinkhornIterations).
		Int64("seed", cfg.Seed).
		Msg("configuration resolved")

	return nil
}

// simOptions maps the configuration onto simulation options.
func (a *app) simOptions() []simulation.Option {
	opts := []simulation.Option{
		simulation.WithLogger(&a.log),
		simulation.WithEpsilon(a.cfg.Epsilon),
	}
	if a.cfg.Parallel {
		opts = append(opts, simulation.WithParallel())
	}

	return opts
}

// newLogger returns a zerolog logger writing to w.
func newLogger(w io.Writer, c config.Log) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if c.Level != "" {
		parsed, err := zerolog.ParseLevel(c.Level)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("log level %q: %w", c.Level, err)
		}
		level = parsed
	}
	if c.Format == "json" {
		return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger(), nil
}
