package query

import (
	"errors"
	"testing"

	"github.com/IzzyIllari/exclurad/src/dataset"
)

func TestRoles_SetXCollisionReassignsOverlay(t *testing.T) {
	r := Roles{X: dataset.AxisPhi, Overlay: dataset.AxisW}
	r.SetX(dataset.AxisW)
	if r.X != dataset.AxisW {
		t.Fatalf("x not set: %v", r.X)
	}
	// First canonical axis not equal to the new x is Q2.
	if r.Overlay != dataset.AxisQ2 {
		t.Fatalf("overlay should move to Q2, got %v", r.Overlay)
	}
}

func TestRoles_SetXNoCollision(t *testing.T) {
	r := Roles{X: dataset.AxisPhi, Overlay: dataset.AxisW}
	r.SetX(dataset.AxisQ2)
	if r.X != dataset.AxisQ2 || r.Overlay != dataset.AxisW {
		t.Fatalf("unexpected roles: %+v", r)
	}
}

func TestRoles_SetOverlayRejectsCurrentX(t *testing.T) {
	r := Roles{X: dataset.AxisPhi, Overlay: dataset.AxisW}
	err := r.SetOverlay(dataset.AxisPhi)
	if err == nil {
		t.Fatalf("expected rejection")
	}
	var ise *InvalidSelectionError
	if !errors.As(err, &ise) {
		t.Fatalf("expected *InvalidSelectionError, got %T", err)
	}
	// State untouched on rejection.
	if r.X != dataset.AxisPhi || r.Overlay != dataset.AxisW {
		t.Fatalf("roles mutated on rejected overlay change: %+v", r)
	}
}

func TestRoles_FixedAxesAreComplement(t *testing.T) {
	r := Roles{X: dataset.AxisPhi, Overlay: dataset.AxisW}
	fa := r.FixedAxes()
	if fa[0] != dataset.AxisQ2 || fa[1] != dataset.AxisCosTheta {
		t.Fatalf("fixed axes: got %v", fa)
	}
	r = Roles{X: dataset.AxisQ2, Overlay: dataset.AxisCosTheta}
	fa = r.FixedAxes()
	if fa[0] != dataset.AxisW || fa[1] != dataset.AxisPhi {
		t.Fatalf("fixed axes: got %v", fa)
	}
}

func TestSelection_ValidateRejectsEqualAxes(t *testing.T) {
	sel := Selection{Roles: Roles{X: dataset.AxisW, Overlay: dataset.AxisW}}
	if err := sel.Validate(); err == nil {
		t.Fatalf("expected validation failure")
	}
}

func TestNewSelection_ReadsComplementValues(t *testing.T) {
	vals := map[dataset.Axis]float64{
		dataset.AxisQ2:       0.4105,
		dataset.AxisCosTheta: 0.0,
		// x/overlay axes carry stale slider values that must not be consulted
		dataset.AxisPhi: 999,
		dataset.AxisW:   999,
	}
	sel := NewSelection(Roles{X: dataset.AxisPhi, Overlay: dataset.AxisW}, dataset.MetricDelta,
		func(a dataset.Axis) float64 { return vals[a] })
	if err := sel.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if sel.Fixed[0].Axis != dataset.AxisQ2 || sel.Fixed[0].Value != 0.4105 {
		t.Fatalf("fixed[0]: %+v", sel.Fixed[0])
	}
	if sel.Fixed[1].Axis != dataset.AxisCosTheta || sel.Fixed[1].Value != 0.0 {
		t.Fatalf("fixed[1]: %+v", sel.Fixed[1])
	}
}
