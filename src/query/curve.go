package query

import (
	"math"
	"sort"

	"github.com/IzzyIllari/exclurad/src/dataset"
)

// Point is one (x, y) pair of an emitted curve. Both coordinates are finite.
type Point struct {
	X float64
	Y float64
}

// Curve is a named, x-sorted series ready for a render sink. ColorIndex and
// DashIndex are stable palette slots; the renderer owns the actual mapping.
type Curve struct {
	Label      string
	ColorIndex int
	DashIndex  int
	Points     []Point
}

// Ys returns the curve's y values (for summaries and range work).
func (c Curve) Ys() []float64 {
	out := make([]float64, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Y
	}
	return out
}

// CurveSet is the engine output handed to a render sink: the curves, axis
// display labels, and a suggested y-display range. An empty Curves slice is a
// valid result (an empty plot), not an error.
type CurveSet struct {
	Curves []Curve
	XLabel string
	YLabel string

	// Suggested y range: data min/max padded by 8% of span per side, or a
	// fixed 0.05 pad when the span is exactly zero so single-valued curves
	// stay visible. HasYRange is false when no curve was emitted.
	YMin      float64
	YMax      float64
	HasYRange bool
}

// Execute runs the full slice-and-curve pipeline: validate the selection,
// mask rows, rank overlay coverage, and build sorted labeled curves. Pure
// function of its inputs; it never mutates the table and is safe to re-invoke
// on every redraw.
func Execute(t *dataset.Table, sel Selection) (CurveSet, error) {
	if err := sel.Validate(); err != nil {
		return CurveSet{}, err
	}
	out := CurveSet{
		XLabel: sel.Roles.X.DisplayName(),
		YLabel: sel.Metric.DisplayName(),
	}
	if t == nil || t.N == 0 {
		return out, nil
	}

	mask := BuildMask(t, sel.Metric, sel.Fixed[:])
	values := SelectOverlayValues(t, mask, sel.Roles.Overlay, sel.Roles.X, MinSupport, MaxTraces)

	yMin := math.MaxFloat64
	yMax := -math.MaxFloat64
	for _, v := range values {
		pts := buildPoints(t, sel, v)
		// finiteness filtering can shrink a group below the support the
		// ranker saw
		if len(pts) < MinSupport {
			continue
		}
		i := len(out.Curves)
		out.Curves = append(out.Curves, Curve{
			Label:      sel.Roles.Overlay.LabelValue(v),
			ColorIndex: i % MaxTraces,
			DashIndex:  i / MaxTraces,
			Points:     pts,
		})
		for _, p := range pts {
			if p.Y < yMin {
				yMin = p.Y
			}
			if p.Y > yMax {
				yMax = p.Y
			}
		}
	}

	if len(out.Curves) > 0 {
		span := yMax - yMin
		pad := 0.08 * span
		if span == 0 {
			pad = 0.05
		}
		out.YMin = yMin - pad
		out.YMax = yMax + pad
		out.HasYRange = true
	}
	return out, nil
}

// buildPoints re-filters with the overlay axis additionally pinned to v
// (same tolerance rule as any constraint on that axis) and extracts the
// finite (x, y) pairs, ascending in x. Ties in x keep their table order; the
// source data should not contain duplicate x within a fixed slice.
func buildPoints(t *dataset.Table, sel Selection, v float64) []Point {
	constraints := append(append([]Constraint(nil), sel.Fixed[:]...),
		Constraint{Axis: sel.Roles.Overlay, Value: v})
	mask := BuildMask(t, sel.Metric, constraints)
	xcol := t.Column(sel.Roles.X)
	ycol := t.MetricColumn(sel.Metric)
	pts := make([]Point, 0, 16)
	for i := 0; i < t.N; i++ {
		if !mask[i] {
			continue
		}
		x, y := xcol[i], ycol[i]
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
	return pts
}
