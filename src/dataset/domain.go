package dataset

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// BuildDomain returns the sorted distinct finite values of a column,
// ascending. Uniqueness is exact value equality; tolerance matching happens
// only at query time.
func BuildDomain(column []float64) []float64 {
	seen := make(map[float64]struct{}, len(column))
	out := make([]float64, 0, len(column))
	for _, v := range column {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}

// NearestIndex returns the index of the domain entry closest to v.
// Used to snap a remembered fixed-axis value onto a freshly loaded domain,
// which may shift slightly between dataset variants. Returns -1 for an empty
// domain.
func NearestIndex(domain []float64, v float64) int {
	if len(domain) == 0 {
		return -1
	}
	diffs := make([]float64, len(domain))
	for i, d := range domain {
		diffs[i] = math.Abs(d - v)
	}
	return floats.MinIdx(diffs)
}
