package dataset

import (
	"math"
	"testing"
)

func TestBuildDomain_SortedUniqueFinite(t *testing.T) {
	col := []float64{1.7, 1.6, 1.7, math.NaN(), 1.8, math.Inf(1), 1.6, math.Inf(-1)}
	d := BuildDomain(col)
	want := []float64{1.6, 1.7, 1.8}
	if len(d) != len(want) {
		t.Fatalf("domain length: got %d want %d (%v)", len(d), len(want), d)
	}
	for i := range want {
		if d[i] != want[i] {
			t.Fatalf("domain[%d]: got %v want %v", i, d[i], want[i])
		}
	}
	for i := 1; i < len(d); i++ {
		if d[i] <= d[i-1] {
			t.Fatalf("domain not strictly increasing at %d: %v", i, d)
		}
	}
}

func TestBuildDomain_Empty(t *testing.T) {
	if d := BuildDomain(nil); len(d) != 0 {
		t.Fatalf("expected empty domain, got %v", d)
	}
	if d := BuildDomain([]float64{math.NaN()}); len(d) != 0 {
		t.Fatalf("expected empty domain for all-NaN column, got %v", d)
	}
}

func TestBuildDomain_ExactEquality(t *testing.T) {
	// Values closer than any tolerance stay distinct: uniqueness is exact.
	col := []float64{0.4105, 0.41050000000001}
	if d := BuildDomain(col); len(d) != 2 {
		t.Fatalf("expected 2 distinct values, got %v", d)
	}
}

func TestNearestIndex(t *testing.T) {
	domain := []float64{0.2, 0.4, 0.6, 0.8}
	cases := []struct {
		v    float64
		want int
	}{
		{0.0, 0},
		{0.39, 1},
		{0.5, 1}, // equidistant from 0.4 and 0.6; ties resolve to the first minimum
		{0.61, 2},
		{5.0, 3},
	}
	for _, c := range cases {
		if got := NearestIndex(domain, c.v); got != c.want {
			t.Fatalf("NearestIndex(%v): got %d want %d", c.v, got, c.want)
		}
	}
	if got := NearestIndex(nil, 1.0); got != -1 {
		t.Fatalf("NearestIndex on empty domain: got %d want -1", got)
	}
}
