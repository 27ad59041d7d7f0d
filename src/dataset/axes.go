package dataset

import (
	"fmt"
	"strconv"
)

// Axis identifies one of the four kinematic coordinates a table is indexed by.
type Axis int

const (
	AxisW Axis = iota
	AxisQ2
	AxisCosTheta
	AxisPhi
)

// AxisOrder is the canonical axis ordering used for role reassignment and
// for laying out controls. Keep it stable: selection fallback logic and
// saved preferences depend on it.
var AxisOrder = [4]Axis{AxisW, AxisQ2, AxisCosTheta, AxisPhi}

// Match tolerances for fixed-axis and overlay comparisons. Stored values are
// rounded representations of continuous simulation points, so equality is
// tolerance-based. The φ* tolerance is materially looser: the angular grid is
// written in whole degrees while W/Q2/cosθ* carry 3-4 decimals. Kept per-axis
// on purpose, pending clarification from the data-producing pipeline.
var axisEpsilon = map[Axis]float64{
	AxisW:        5e-4,
	AxisQ2:       5e-4,
	AxisCosTheta: 5e-4,
	AxisPhi:      0.5,
}

// Epsilon returns the match tolerance for the axis.
func (a Axis) Epsilon() float64 { return axisEpsilon[a] }

// Symbol returns the short display symbol used in curve labels.
func (a Axis) Symbol() string {
	switch a {
	case AxisW:
		return "W"
	case AxisQ2:
		return "Q2"
	case AxisCosTheta:
		return "cosθ"
	case AxisPhi:
		return "φ"
	}
	return "?"
}

// DisplayName returns the long axis label with units, for chart axes.
func (a Axis) DisplayName() string {
	switch a {
	case AxisW:
		return "W (GeV)"
	case AxisQ2:
		return "Q2 (GeV2)"
	case AxisCosTheta:
		return "cosθ*"
	case AxisPhi:
		return "φ* (deg)"
	}
	return "?"
}

// FormatValue renders an axis value at its display precision: 3 decimals for
// W/Q2/cosθ*, whole degrees for φ*.
func (a Axis) FormatValue(v float64) string {
	if a == AxisPhi {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// LabelValue renders the "<symbol>=<value>" form used as a curve label,
// e.g. "W=1.698" or "φ=18".
func (a Axis) LabelValue(v float64) string {
	return fmt.Sprintf("%s=%s", a.Symbol(), a.FormatValue(v))
}

func (a Axis) String() string { return a.Symbol() }

// AxisBySymbol maps a stored symbol back to an Axis (used when restoring
// saved preferences). Second result is false for unknown symbols.
func AxisBySymbol(s string) (Axis, bool) {
	for _, a := range AxisOrder {
		if a.Symbol() == s {
			return a, true
		}
	}
	return AxisW, false
}
