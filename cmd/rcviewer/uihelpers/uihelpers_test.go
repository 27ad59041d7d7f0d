package uihelpers

import (
	"math"
	"testing"
)

func TestComputeChartDimensions(t *testing.T) {
	cases := []struct {
		in    int
		wantW int
	}{
		{100, 700},
		{699, 700},
		{700, 700},
		{1400, 1400},
	}
	for _, c := range cases {
		w, h := ComputeChartDimensions(c.in)
		if w != c.wantW {
			t.Fatalf("input %d => width %d want %d", c.in, w, c.wantW)
		}
		if h < 320 || h > 640 {
			t.Fatalf("height clamp violated for input %d => h=%d", c.in, h)
		}
	}
}

func TestComputeTableColumnWidths(t *testing.T) {
	compact := ComputeTableColumnWidths(600)
	if compact[4] != 0 || compact[5] != 0 {
		t.Fatalf("expected min/max hidden at 600: %#v", compact)
	}
	full := ComputeTableColumnWidths(1100)
	expected := [6]int{160, 80, 110, 110, 110, 110}
	if full != expected {
		t.Fatalf("full widths mismatch got %#v want %#v", full, expected)
	}
	edge := ComputeTableColumnWidths(759)
	if edge[4] != 0 {
		t.Fatalf("expected compact layout at 759: %#v", edge)
	}
}

func TestBuildNumericTicksBasic(t *testing.T) {
	ticks := BuildNumericTicks(0, 10, 6)
	if len(ticks) < 2 {
		t.Fatalf("expected >=2 ticks, got %d", len(ticks))
	}
	if ticks[0] > 0 {
		t.Fatalf("first tick should not exceed min: %v", ticks)
	}
	if ticks[len(ticks)-1] < 10 {
		t.Fatalf("last tick should cover max: %v", ticks)
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i] <= ticks[i-1] {
			t.Fatalf("ticks not strictly increasing: %v", ticks)
		}
	}
}

func TestBuildNumericTicksDegenerate(t *testing.T) {
	if got := BuildNumericTicks(1, 1, 6); len(got) < 2 {
		t.Fatalf("degenerate span should still yield ticks: %v", got)
	}
	if got := BuildNumericTicks(math.NaN(), 1, 6); got != nil {
		t.Fatalf("NaN min should yield nil, got %v", got)
	}
	if got := BuildNumericTicks(0, 1, 1); got != nil {
		t.Fatalf("n<2 should yield nil, got %v", got)
	}
}

func TestBuildNumericTicksSmallSpan(t *testing.T) {
	// Ratio values near 1.0 with a narrow band, the usual case for this viewer.
	ticks := BuildNumericTicks(0.95, 1.08, 6)
	if len(ticks) < 2 {
		t.Fatalf("expected ticks for narrow band, got %v", ticks)
	}
	if ticks[0] > 0.95 || ticks[len(ticks)-1] < 1.08 {
		t.Fatalf("ticks do not cover [0.95,1.08]: %v", ticks)
	}
}

func TestFormatNumericTick(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1234, "1234"},
		{99.5, "99.5"},
		{1.005, "1.00"},
		{0.985, "0.98"},
		{0.042, "0.042"},
		{0.0042, "0.0042"},
	}
	for _, c := range cases {
		if got := FormatNumericTick(c.in); got != c.want {
			t.Fatalf("FormatNumericTick(%v) = %q want %q", c.in, got, c.want)
		}
	}
}
