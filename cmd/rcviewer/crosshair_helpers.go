package main

import (
	"math"
	"sort"

	"github.com/IzzyIllari/exclurad/src/query"
)

// curveXValues returns the sorted union of x samples across all traces.
func curveXValues(curves []query.Curve) []float64 {
	if len(curves) == 0 {
		return nil
	}
	seen := map[float64]struct{}{}
	for _, c := range curves {
		for _, p := range c.Points {
			seen[p.X] = struct{}{}
		}
	}
	out := make([]float64, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}

// curveYAt looks up a trace's y value at an exact x sample. Points are sorted
// by x, so a binary search suffices.
func curveYAt(points []query.Point, x float64) (float64, bool) {
	i := sort.Search(len(points), func(i int) bool { return points[i].X >= x })
	if i < len(points) && points[i].X == x && !math.IsNaN(points[i].Y) {
		return points[i].Y, true
	}
	return 0, false
}
