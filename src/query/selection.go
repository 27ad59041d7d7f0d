// Package query is the kinematic slice-and-curve engine: a pure function of
// an immutable dataset table and a selection, producing labeled, render-ready
// curves. It has no dependency on any widget or charting library; front ends
// consume its output, they do not participate in its computation.
package query

import (
	"fmt"

	"github.com/IzzyIllari/exclurad/src/dataset"
)

// InvalidSelectionError reports a selection whose x and overlay axes
// coincide. Recoverable: the caller keeps its previous plot state and shows
// the message.
type InvalidSelectionError struct {
	X       dataset.Axis
	Overlay dataset.Axis
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection: x axis and overlay axis are both %s", e.X)
}

// Roles assigns each of the four axes exactly one role: x, overlay, or fixed.
// Only the x/overlay pair is stored; the fixed pair is always the complement.
type Roles struct {
	X       dataset.Axis
	Overlay dataset.Axis
}

// DefaultRoles is the initial assignment after startup: φ* on x, W as
// overlay, Q2 and cosθ* fixed.
func DefaultRoles() Roles { return Roles{X: dataset.AxisPhi, Overlay: dataset.AxisW} }

// SetX reassigns the x axis. If the new x collides with the current overlay,
// the overlay moves to the first axis in canonical order not equal to the new
// x, so the assignment stays valid without user intervention.
func (r *Roles) SetX(a dataset.Axis) {
	r.X = a
	if r.Overlay != a {
		return
	}
	for _, b := range dataset.AxisOrder {
		if b != a {
			r.Overlay = b
			return
		}
	}
}

// SetOverlay reassigns the overlay axis. Requesting the current x axis is
// rejected rather than silently mutating the x role.
func (r *Roles) SetOverlay(a dataset.Axis) error {
	if a == r.X {
		return &InvalidSelectionError{X: r.X, Overlay: a}
	}
	r.Overlay = a
	return nil
}

// FixedAxes returns the two axes holding the fixed role, in canonical order.
func (r Roles) FixedAxes() [2]dataset.Axis {
	var out [2]dataset.Axis
	i := 0
	for _, a := range dataset.AxisOrder {
		if a != r.X && a != r.Overlay && i < 2 {
			out[i] = a
			i++
		}
	}
	return out
}

// Constraint pins one fixed axis to a slider-selected domain value. Matching
// is tolerance-based (|row-value| <= axis epsilon) because stored values are
// rounded representations of continuous simulation points.
type Constraint struct {
	Axis  dataset.Axis
	Value float64
}

// Selection is the complete query input: axis roles, the plotted metric, and
// the two fixed-axis values currently held by sliders.
type Selection struct {
	Roles  Roles
	Metric dataset.Metric
	Fixed  [2]Constraint
}

// NewSelection assembles a Selection from roles, metric, and a fixed-value
// lookup (typically slider state). The fixed constraints are always exactly
// the role complement, read in canonical order.
func NewSelection(r Roles, m dataset.Metric, fixedValue func(dataset.Axis) float64) Selection {
	fa := r.FixedAxes()
	return Selection{
		Roles:  r,
		Metric: m,
		Fixed: [2]Constraint{
			{Axis: fa[0], Value: fixedValue(fa[0])},
			{Axis: fa[1], Value: fixedValue(fa[1])},
		},
	}
}

// Validate enforces the selection invariants before any filtering runs.
func (s Selection) Validate() error {
	if s.Roles.X == s.Roles.Overlay {
		return &InvalidSelectionError{X: s.Roles.X, Overlay: s.Roles.Overlay}
	}
	want := s.Roles.FixedAxes()
	for i, c := range s.Fixed {
		if c.Axis != want[i] {
			return fmt.Errorf("fixed constraint %d is %s, expected %s", i, c.Axis, want[i])
		}
	}
	return nil
}
