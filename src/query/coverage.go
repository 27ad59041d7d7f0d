package query

import (
	"math"
	"sort"

	"github.com/IzzyIllari/exclurad/src/dataset"
)

const (
	// MinSupport is the minimum count of distinct x values an overlay group
	// needs before it can render as a curve. Fewer than 4 points cannot
	// usefully render one.
	MinSupport = 4
	// MaxTraces caps how many overlay curves are drawn at once, the practical
	// limit of the palette and legend.
	MaxTraces = 8
)

// SelectOverlayValues ranks the overlay axis's values by coverage under the
// admission mask and returns the best-supported ones, ascending. Grouping on
// the overlay value is exact (stored values, no tolerance); support is the
// count of distinct x values in the group. Groups below minSupport are
// dropped, the rest are ranked by descending support with ties broken by
// ascending overlay value, the top maxTraces survive, and the survivors come
// back re-sorted ascending for stable display order.
func SelectOverlayValues(t *dataset.Table, mask []bool, overlay, x dataset.Axis, minSupport, maxTraces int) []float64 {
	ocol := t.Column(overlay)
	xcol := t.Column(x)
	groups := make(map[float64]map[float64]struct{})
	for i := 0; i < t.N; i++ {
		if !mask[i] {
			continue
		}
		ov, xv := ocol[i], xcol[i]
		if math.IsNaN(ov) || math.IsInf(ov, 0) || math.IsNaN(xv) || math.IsInf(xv, 0) {
			continue
		}
		g, ok := groups[ov]
		if !ok {
			g = make(map[float64]struct{})
			groups[ov] = g
		}
		g[xv] = struct{}{}
	}

	type candidate struct {
		value   float64
		support int
	}
	cands := make([]candidate, 0, len(groups))
	for v, xs := range groups {
		if len(xs) >= minSupport {
			cands = append(cands, candidate{value: v, support: len(xs)})
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].support != cands[j].support {
			return cands[i].support > cands[j].support
		}
		return cands[i].value < cands[j].value
	})
	if len(cands) > maxTraces {
		cands = cands[:maxTraces]
	}
	out := make([]float64, len(cands))
	for i, c := range cands {
		out[i] = c.value
	}
	sort.Float64s(out)
	return out
}
