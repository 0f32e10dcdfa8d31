// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mhc/config"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())

	return out.String(), errOut.String(), err
}

func TestCompareTable(t *testing.T) {
	out, _, err := run(t, "compare", "--depth", "16", "--log-level", "error")
	require.NoError(t, err)
	require.Contains(t, out, "baseline")
	require.Contains(t, out, "unconstrained")
	require.Contains(t, out, "manifold_constrained")
}

func TestCompareJSONAndTextfile(t *testing.T) {
	prom := filepath.Join(t.TempDir(), "mhc.prom")
	out, logs, err := run(t, "compare", "--depth", "8", "--format", "json", "--parallel",
		"--metrics-file", prom, "--log-format", "json")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Contains(t, doc, "run_id")
	require.Contains(t, logs, `"message":"comparison written"`)

	raw, err := os.ReadFile(prom)
	require.NoError(t, err)
	require.Contains(t, string(raw), `mhc_composite_forward_gain{policy="baseline"} 1`)
}

func TestSimulateCSV(t *testing.T) {
	out, _, err := run(t, "simulate", "--policy", "hc", "--depth", "10", "--format", "csv", "--log-level", "error")
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 11)
	require.Equal(t, "upto_layer", rows[0][0])
}

func TestSimulateRejectsBadInput(t *testing.T) {
	_, _, err := run(t, "simulate", "--policy", "nope", "--log-level", "error")
	require.Error(t, err)

	_, _, err = run(t, "simulate", "--format", "xml", "--log-level", "error")
	require.Error(t, err)

	_, _, err = run(t, "compare", "--depth", "0", "--log-level", "error")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, _, err = run(t, "compare", "--preset", "turbo")
	require.ErrorIs(t, err, config.ErrUnknownPreset)
}

func TestDial(t *testing.T) {
	out, _, err := run(t, "dial", "--iterations-list", "0,3,20", "--log-level", "error")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[1], "0 "))
	require.True(t, strings.HasPrefix(lines[3], "20 "))
}

func TestMix(t *testing.T) {
	out, _, err := run(t, "mix", "--depth", "5", "--dim", "8", "--log-level", "error")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	require.True(t, strings.HasPrefix(lines[0], "BLOCK"))
}

func TestMixLogsCollapse(t *testing.T) {
	_, logs, err := run(t, "mix", "--depth", "8", "--dim", "4", "--log-format", "json", "--log-level", "info")
	require.NoError(t, err)

	var ev struct {
		Message   string `json:"message"`
		Collapsed bool   `json:"collapsed"`
	}
	found := false
	for _, line := range strings.Split(strings.TrimSpace(logs), "\n") {
		require.NoError(t, json.Unmarshal([]byte(line), &ev), line)
		if ev.Message == "mixing product" {
			found = true
			require.True(t, ev.Collapsed)
		}
	}
	require.True(t, found)
}

func TestConfigFileAndPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("depth: 6\nstreams: 2\nlog:\n  level: error\n"), 0o600))

	out, _, err := run(t, "simulate", "--config", path, "--format", "csv")
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 7, "depth from file")

	// The preset flag overrides the file; explicit flags override the preset.
	out, _, err = run(t, "simulate", "--config", path, "--preset", "minimal", "--depth", "3", "--format", "csv")
	require.NoError(t, err)
	rows, err = csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
}
