package dataset

import (
	"encoding/json"
	"math"
	"os"

	"github.com/montanaflynn/stats"
)

// Meta is the optional sidecar summary shipped next to a dataset file
// (<data>.meta.json). Display-only; when the sidecar is absent the same
// counts are recomputed from the table.
type Meta struct {
	Rows       int    `json:"rows"`
	KinValid   int    `json:"kin_valid"`
	DeltaValid int    `json:"delta_valid"`
	AsymValid  int    `json:"asym_valid"`
	Source     string `json:"source,omitempty"`
}

// SidecarPath returns the conventional sidecar location for a dataset file.
func SidecarPath(dataPath string) string { return dataPath + ".meta.json" }

// LoadMeta reads the sidecar for a dataset file. A missing or malformed
// sidecar is non-fatal: the counts are recomputed from the table instead.
func LoadMeta(dataPath string, t *Table) Meta {
	b, err := os.ReadFile(SidecarPath(dataPath))
	if err == nil {
		var m Meta
		if jsonErr := json.Unmarshal(b, &m); jsonErr == nil && m.Rows > 0 {
			return m
		}
		Warnf("ignoring malformed sidecar %s", SidecarPath(dataPath))
	}
	return ComputeMeta(t)
}

// ComputeMeta derives the sidecar counts from a materialized table.
func ComputeMeta(t *Table) Meta {
	m := Meta{Rows: t.N, Source: t.Path}
	for i := 0; i < t.N; i++ {
		if t.KinOK[i] {
			m.KinValid++
		}
		if t.DeltaOK[i] {
			m.DeltaValid++
		}
		if t.AsymOK[i] {
			m.AsymValid++
		}
	}
	return m
}

// Summary holds display statistics for one emitted curve's y-values.
type Summary struct {
	Points int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// Summarize computes display statistics over the finite members of ys.
// Non-finite values are skipped the same way masking skips them; an empty or
// all-NaN input yields a zero Summary.
func Summarize(ys []float64) Summary {
	finite := make([]float64, 0, len(ys))
	for _, v := range ys {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		finite = append(finite, v)
	}
	s := Summary{Points: len(finite)}
	if len(finite) == 0 {
		return s
	}
	// stats errors only on empty input, which is handled above.
	s.Mean, _ = stats.Mean(finite)
	s.Median, _ = stats.Median(finite)
	s.Min, _ = stats.Min(finite)
	s.Max, _ = stats.Max(finite)
	return s
}
