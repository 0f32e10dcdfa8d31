// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"sort"
)

// Preset names.
const (
	PresetDefault   = "default"
	PresetExplosion = "explosion"
	PresetMinimal   = "minimal"
	PresetDeep      = "deep"
)

// preset overrides the run shape; everything else keeps its current value.
type preset struct {
	depth, streams, iterations int
	seed                       int64
}

var presets = map[string]preset{
	PresetDefault:   {depth: 64, streams: 4, iterations: 20, seed: 42},
	PresetExplosion: {depth: 64, streams: 4, iterations: 0, seed: 42},
	PresetMinimal:   {depth: 64, streams: 4, iterations: 5, seed: 42},
	PresetDeep:      {depth: 200, streams: 4, iterations: 20, seed: 42},
}

// Presets returns the known preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// ApplyPreset overwrites depth, streams, iterations and seed with the named
// preset and records its name.
func (c *Config) ApplyPreset(name string) error {
	p, ok := presets[name]
	if !ok {
		return fmt.Errorf("ApplyPreset: %q: %w", name, ErrUnknownPreset)
	}
	c.Preset = name
	c.Depth = p.depth
	c.Streams = p.streams
	c.SinkhornIterations = p.iterations
	c.Seed = p.seed

	return nil
}
