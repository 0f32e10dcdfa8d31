// SPDX-License-Identifier: MIT

// Package config loads and validates run parameters for mhcsim.
//
// Resolution order, lowest to highest precedence:
//
//	Default() → named preset → YAML file fields → command-line flags
//
// The first three steps happen here; flags are applied by the CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/mhc/sinkhorn"
)

// MaxStreams bounds the matrix side; the eigen and metric kernels are meant
// for small dense matrices.
const MaxStreams = 16

var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrUnknownPreset is returned for a preset name outside Presets().
	ErrUnknownPreset = errors.New("config: unknown preset")
)

// Log selects logger verbosity and encoding.
type Log struct {
	Level  string `yaml:"level"`  // zerolog level name: trace, debug, info, warn, error
	Format string `yaml:"format"` // "console" or "json"
}

// Config is the complete set of run parameters.
type Config struct {
	Preset             string  `yaml:"preset"`
	Depth              int     `yaml:"depth"`
	Streams            int     `yaml:"streams"`
	SinkhornIterations int     `yaml:"sinkhorn_iterations"`
	Seed               int64   `yaml:"seed"`
	Epsilon            float64 `yaml:"epsilon"`
	Parallel           bool    `yaml:"parallel"`
	Dial               []int   `yaml:"dial"`
	Dim                int     `yaml:"dim"` // hidden size of the mixer demo
	MetricsFile        string  `yaml:"metrics_file"`
	Log                Log     `yaml:"log"`
}

// Default returns the baseline configuration (preset "default").
func Default() Config {
	return Config{
		Preset:             PresetDefault,
		Depth:              64,
		Streams:            4,
		SinkhornIterations: sinkhorn.DefaultIterations,
		Seed:               42,
		Epsilon:            sinkhorn.DefaultEpsilon,
		Dial:               append([]int(nil), sinkhorn.DefaultDialIterations...),
		Dim:                32,
		Log:                Log{Level: "info", Format: "console"},
	}
}

// Load reads a YAML file over Default(). See Parse.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML over Default().
// Implementation:
//   - Stage 1: peek at the "preset" key and apply it to the defaults.
//   - Stage 2: strict decode (unknown keys are errors) over that base, so
//     explicit fields win over the preset.
//   - Stage 3: Validate.
//
// An empty document yields the defaults.
func Parse(data []byte) (Config, error) {
	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Config{}, fmt.Errorf("parse: %w", err)
	}

	cfg := Default()
	if head.Preset != "" {
		if err := cfg.ApplyPreset(head.Preset); err != nil {
			return Config{}, err
		}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every field and reports the first violation wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Depth < 1:
		return invalid("depth must be >= 1, got %d", c.Depth)
	case c.Streams < 1 || c.Streams > MaxStreams:
		return invalid("streams must be in [1, %d], got %d", MaxStreams, c.Streams)
	case c.SinkhornIterations < 0:
		return invalid("sinkhorn_iterations must be >= 0, got %d", c.SinkhornIterations)
	case c.Epsilon <= 0 || math.IsNaN(c.Epsilon) || math.IsInf(c.Epsilon, 0):
		return invalid("epsilon must be finite and > 0, got %g", c.Epsilon)
	case c.Dim < 1:
		return invalid("dim must be >= 1, got %d", c.Dim)
	}
	for i, k := range c.Dial {
		if k < 0 {
			return invalid("dial[%d] must be >= 0, got %d", i, k)
		}
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return invalid("log.format must be console or json, got %q", c.Log.Format)
	}

	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
