package main

import (
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/IzzyIllari/exclurad/src/dataset"
	"github.com/IzzyIllari/exclurad/src/query"
)

// gridTable builds a single (W, Q2, cosθ) combination with a full φ scan.
func gridTable(t *testing.T) *dataset.Table {
	t.Helper()
	headers := []string{"W", "Q2", "cos_theta", "phi_deg", "delta_ratio", "asym_ratio", "kin_ok", "delta_ok", "asym_ok"}
	rows := [][]string{}
	for k := 0; k < 10; k++ {
		phi := 360.0 * (float64(k) + 0.5) / 10.0
		rows = append(rows, []string{
			"1.6975", "0.4105", "0.0", fmt.Sprintf("%.1f", phi),
			"1.02", "0.98", "1", "1", "1",
		})
	}
	tbl, err := dataset.Materialize("grid.csv", headers, rows)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	return tbl
}

func testState(t *testing.T) *uiState {
	t.Helper()
	tbl := gridTable(t)
	st := &uiState{
		table:   tbl,
		roles:   query.DefaultRoles(),
		metric:  dataset.MetricDelta,
		sliders: map[dataset.Axis]*dataset.Slider{},
	}
	for _, ax := range dataset.AxisOrder {
		st.sliders[ax] = dataset.NewSlider(ax, tbl.Domain(ax))
	}
	return st
}

func TestCurveStylePaletteAndDash(t *testing.T) {
	s0 := curveStyle(0, 0)
	if s0.StrokeDashArray != nil {
		t.Fatalf("dash index 0 must render solid, got %v", s0.StrokeDashArray)
	}
	s1 := curveStyle(1, 1)
	if len(s1.StrokeDashArray) == 0 {
		t.Fatalf("dash index 1 must render dashed")
	}
	// color indices wrap around the palette
	if curveStyle(0, 0).StrokeColor != curveStyle(len(tracePalette), 0).StrokeColor {
		t.Fatalf("palette should wrap at %d entries", len(tracePalette))
	}
	// out-of-range dash index falls back to solid
	if curveStyle(0, len(traceDashes)).StrokeDashArray != nil {
		t.Fatalf("unknown dash index should fall back to solid")
	}
}

func TestChartTitleNamesFixedAxes(t *testing.T) {
	st := testState(t)
	sel := currentSelection(st)
	title := chartTitle(sel)
	if !strings.HasPrefix(title, "σ_obs / σ_Born @ ") {
		t.Fatalf("unexpected title prefix: %q", title)
	}
	if !strings.Contains(title, "Q2=0.410") || !strings.Contains(title, "cosθ=0.000") {
		t.Fatalf("title should pin both fixed axes: %q", title)
	}
}

func TestRenderCurveChartProducesImage(t *testing.T) {
	st := testState(t)
	img := renderCurveChart(st)
	if img == nil {
		t.Fatalf("expected a rendered image")
	}
	b := img.Bounds()
	if b.Dx() < 100 || b.Dy() < 100 {
		t.Fatalf("implausible chart size: %v", b)
	}
	if len(st.lastCurves.Curves) != 1 {
		t.Fatalf("expected one trace for the single-W grid, got %d", len(st.lastCurves.Curves))
	}
	if st.lastCurves.Curves[0].Label != "W=1.698" {
		t.Fatalf("trace label: %q", st.lastCurves.Curves[0].Label)
	}
}

func TestRenderCurveChartNilTable(t *testing.T) {
	st := &uiState{roles: query.DefaultRoles(), sliders: map[dataset.Axis]*dataset.Slider{}}
	img := renderCurveChart(st)
	if img == nil {
		t.Fatalf("nil table should still yield a blank image")
	}
	if _, ok := img.(*image.RGBA); !ok {
		t.Fatalf("expected blank RGBA fallback, got %T", img)
	}
}

func TestSummaryRows(t *testing.T) {
	st := testState(t)
	sel := currentSelection(st)
	cs, err := query.Execute(st.table, sel)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	rows := summaryRows(cs)
	if len(rows) != 1 {
		t.Fatalf("expected one row for the single-W grid, got %d", len(rows))
	}
	if rows[0][0] != "W=1.698" {
		t.Fatalf("row should carry the curve label: %#v", rows[0])
	}
	if rows[0][1] != "10" {
		t.Fatalf("curve row should count 10 points: %#v", rows[0])
	}
	if rows := summaryRows(query.CurveSet{}); rows != nil {
		t.Fatalf("empty slice should yield no rows")
	}
}

func TestCurveXValuesUnionSorted(t *testing.T) {
	curves := []query.Curve{
		{Points: []query.Point{{X: 3, Y: 1}, {X: 1, Y: 1}}},
		{Points: []query.Point{{X: 2, Y: 1}, {X: 3, Y: 1}}},
	}
	xs := curveXValues(curves)
	if len(xs) != 3 || xs[0] != 1 || xs[1] != 2 || xs[2] != 3 {
		t.Fatalf("union mismatch: %v", xs)
	}
	if curveXValues(nil) != nil {
		t.Fatalf("no curves should yield nil")
	}
}

func TestCurveYAt(t *testing.T) {
	pts := []query.Point{{X: 1, Y: 0.9}, {X: 2, Y: 1.1}}
	if y, ok := curveYAt(pts, 2); !ok || y != 1.1 {
		t.Fatalf("exact lookup failed: %v %v", y, ok)
	}
	if _, ok := curveYAt(pts, 1.5); ok {
		t.Fatalf("missing x must not match")
	}
}

func TestMetricByNameRoundTrip(t *testing.T) {
	if metricByName(dataset.MetricAsym.DisplayName()) != dataset.MetricAsym {
		t.Fatalf("asym display name should map back")
	}
	if metricByName("anything else") != dataset.MetricDelta {
		t.Fatalf("unknown names default to the cross-section ratio")
	}
}

func TestAxisSymbolsOrder(t *testing.T) {
	syms := axisSymbols()
	want := []string{"W", "Q2", "cosθ", "φ"}
	if len(syms) != len(want) {
		t.Fatalf("symbol count: %v", syms)
	}
	for i := range want {
		if syms[i] != want[i] {
			t.Fatalf("symbol order mismatch: %v", syms)
		}
	}
}

func TestTruncatePath(t *testing.T) {
	if got := truncatePath("/short/path.csv", 60); got != "/short/path.csv" {
		t.Fatalf("short paths pass through: %q", got)
	}
	long := "/very/long/directory/structure/that/keeps/going/and/going/ratios_final.csv"
	got := truncatePath(long, 40)
	if len(got) > 44 {
		t.Fatalf("truncated path too long: %q (%d)", got, len(got))
	}
	if !strings.HasSuffix(got, "ratios_final.csv") {
		t.Fatalf("base name must survive truncation: %q", got)
	}
}
