// SPDX-License-Identifier: MIT

package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/mhc/metrics"
	"github.com/katalvlaran/mhc/simulation"
)

// Envelope wraps any payload written by WriteJSON.
type Envelope struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Data        any       `json:"data"`
}

// WriteJSON writes v as an indented Envelope with a fresh run id and returns that id.
func WriteJSON(w io.Writer, v any) (string, error) {
	env := Envelope{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Data:        v,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return "", fmt.Errorf("WriteJSON: %w", err)
	}

	return env.RunID, nil
}

// CSVHeader returns the CSV column names: upto_layer followed by metrics.FieldNames.
func CSVHeader() []string {
	return append([]string{"upto_layer"}, metrics.FieldNames...)
}

// WriteCSV writes one row per composite depth of r.
// Floats use the shortest representation that round-trips.
func WriteCSV(w io.Writer, r *simulation.Result) error {
	if r == nil {
		return fmt.Errorf("WriteCSV: %w", ErrNilResult)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader()); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}
	row := make([]string, 0, len(metrics.FieldNames)+1)
	for _, c := range r.Composite {
		row = append(row[:0], strconv.Itoa(c.UptoLayer))
		for _, v := range c.Values() {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("WriteCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}

	return nil
}
