package main

import (
	"sort"

	"github.com/IzzyIllari/exclurad/src/query"
)

// resampleCurves puts every trace onto the union x grid so the braille canvas
// can draw them as equal-length series. Gaps are filled by carrying the
// nearest preceding sample forward (the first sample backward at the left
// edge), which keeps sparse traces visually continuous.
func resampleCurves(curves []query.Curve) ([]float64, [][]float64) {
	if len(curves) == 0 {
		return nil, nil
	}
	seen := map[float64]struct{}{}
	for _, c := range curves {
		for _, p := range c.Points {
			seen[p.X] = struct{}{}
		}
	}
	xs := make([]float64, 0, len(seen))
	for v := range seen {
		xs = append(xs, v)
	}
	sort.Float64s(xs)

	data := make([][]float64, len(curves))
	for ci, c := range curves {
		series := make([]float64, len(xs))
		pi := 0
		for xi, x := range xs {
			for pi+1 < len(c.Points) && c.Points[pi+1].X <= x {
				pi++
			}
			if len(c.Points) == 0 {
				continue
			}
			p := c.Points[pi]
			if p.X > x && pi == 0 {
				series[xi] = c.Points[0].Y
			} else {
				series[xi] = p.Y
			}
		}
		data[ci] = series
	}
	return xs, data
}
