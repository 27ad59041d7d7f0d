package dataset

import (
	"errors"
	"math"
	"testing"
)

var testHeaders = []string{
	"W", "Q2", "cos_theta", "phi_deg",
	"delta_ratio", "asym_ratio",
	"kin_ok", "delta_ok", "asym_ok",
}

func testRow(w, q2, cos, phi, delta, asym, kin, dok, aok string) []string {
	return []string{w, q2, cos, phi, delta, asym, kin, dok, aok}
}

func TestMaterialize_Basic(t *testing.T) {
	rows := [][]string{
		testRow("1.6975", "0.4105", "0.0", "54", "1.02", "0.98", "1", "1", "0"),
		testRow("1.6975", "0.4105", "0.0", "18", "1.01", "0.97", "1", "1", "1"),
	}
	tab, err := Materialize("test.csv", testHeaders, rows)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if tab.N != 2 {
		t.Fatalf("N: got %d want 2", tab.N)
	}
	if tab.W[0] != 1.6975 || tab.Phi[1] != 18 {
		t.Fatalf("coordinate columns wrong: W[0]=%v Phi[1]=%v", tab.W[0], tab.Phi[1])
	}
	if !tab.KinOK[0] || !tab.DeltaOK[0] || tab.AsymOK[0] {
		t.Fatalf("flags wrong: %v %v %v", tab.KinOK[0], tab.DeltaOK[0], tab.AsymOK[0])
	}
	// Phi domain sorted ascending
	d := tab.Domain(AxisPhi)
	if len(d) != 2 || d[0] != 18 || d[1] != 54 {
		t.Fatalf("phi domain: got %v", d)
	}
}

func TestMaterialize_MissingColumn(t *testing.T) {
	headers := []string{"W", "Q2", "cos_theta", "phi_deg", "delta_ratio", "asym_ratio", "kin_ok", "delta_ok"}
	_, err := Materialize("test.csv", headers, nil)
	if err == nil {
		t.Fatalf("expected MissingColumnError")
	}
	var mce *MissingColumnError
	if !errors.As(err, &mce) {
		t.Fatalf("expected *MissingColumnError, got %T: %v", err, err)
	}
	if mce.Column != "asym_ok" {
		t.Fatalf("missing column name: got %q", mce.Column)
	}
}

func TestMaterialize_HeaderCaseAndOrder(t *testing.T) {
	headers := []string{"phi_deg", "ASYM_OK", "Kin_Ok", "delta_ok", "Asym_Ratio", "Delta_Ratio", "COS_THETA", "q2", "w"}
	rows := [][]string{
		{"90", "1", "1", "1", "0.9", "1.1", "0.5", "0.8", "1.8"},
	}
	tab, err := Materialize("test.csv", headers, rows)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if tab.W[0] != 1.8 || tab.Q2[0] != 0.8 || tab.Phi[0] != 90 || tab.Delta[0] != 1.1 {
		t.Fatalf("column lookup by name failed: W=%v Q2=%v Phi=%v Delta=%v",
			tab.W[0], tab.Q2[0], tab.Phi[0], tab.Delta[0])
	}
}

func TestMaterialize_BadCellsBecomeNaN(t *testing.T) {
	rows := [][]string{
		testRow("1.7", "0.4", "0.0", "18", "n/a", "0.98", "1", "1", "1"),
		testRow("1.7", "0.4", "bad", "54", "1.02", "", "yes", "true", "0"),
	}
	tab, err := Materialize("test.csv", testHeaders, rows)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if !math.IsNaN(tab.Delta[0]) {
		t.Fatalf("unparseable δ cell should be NaN, got %v", tab.Delta[0])
	}
	if !math.IsNaN(tab.CosTheta[1]) || !math.IsNaN(tab.Asym[1]) {
		t.Fatalf("unparseable cells should be NaN: cos=%v asym=%v", tab.CosTheta[1], tab.Asym[1])
	}
	if !tab.KinOK[1] || !tab.DeltaOK[1] {
		t.Fatalf("yes/true flag spellings should parse: %v %v", tab.KinOK[1], tab.DeltaOK[1])
	}
	// NaNs never enter a domain
	if d := tab.Domain(AxisCosTheta); len(d) != 1 || d[0] != 0.0 {
		t.Fatalf("cosθ domain should exclude NaN row: %v", d)
	}
}

func TestMetricAccessors(t *testing.T) {
	rows := [][]string{
		testRow("1.7", "0.4", "0.0", "18", "1.02", "0.98", "1", "1", "0"),
	}
	tab, err := Materialize("test.csv", testHeaders, rows)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if tab.MetricColumn(MetricDelta)[0] != 1.02 || tab.MetricColumn(MetricAsym)[0] != 0.98 {
		t.Fatalf("metric columns wrong")
	}
	if !tab.MetricValid(MetricDelta)[0] || tab.MetricValid(MetricAsym)[0] {
		t.Fatalf("metric validity flags wrong")
	}
}

func TestAxisEpsilon_PhiLooser(t *testing.T) {
	for _, a := range []Axis{AxisW, AxisQ2, AxisCosTheta} {
		if AxisPhi.Epsilon() <= a.Epsilon() {
			t.Fatalf("φ tolerance should be looser than %s: %v vs %v", a, AxisPhi.Epsilon(), a.Epsilon())
		}
	}
}

func TestAxisFormatValue(t *testing.T) {
	if got := AxisW.LabelValue(1.6975); got != "W=1.698" {
		t.Fatalf("W label: got %q", got)
	}
	if got := AxisPhi.LabelValue(18.0); got != "φ=18" {
		t.Fatalf("φ label: got %q", got)
	}
	if got := AxisQ2.LabelValue(0.4105); got != "Q2=0.410" {
		t.Fatalf("Q2 label: got %q", got)
	}
	if got := AxisCosTheta.LabelValue(-0.25); got != "cosθ=-0.250" {
		t.Fatalf("cosθ label: got %q", got)
	}
}

func TestAxisBySymbol(t *testing.T) {
	for _, a := range AxisOrder {
		got, ok := AxisBySymbol(a.Symbol())
		if !ok || got != a {
			t.Fatalf("round trip for %s failed: %v %v", a, got, ok)
		}
	}
	if _, ok := AxisBySymbol("nope"); ok {
		t.Fatalf("unknown symbol should not resolve")
	}
}
