package uihelpers

import (
	"math"
	"strconv"
)

// ComputeChartDimensions applies width/height clamp rules used for the curve chart.
// Input: desired raw width (e.g., canvas width). Returns clamped width & height.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 700 {
		w = 700
	}
	h := int(float32(w) * 0.6)
	if h < 320 {
		h = 320
	}
	if h > 640 {
		h = 640
	}
	return w, h
}

// ComputeTableColumnWidths returns the 6 column widths for the dataset summary table
// given a window width. Order: Column, Points, Mean, Median, Min, Max.
func ComputeTableColumnWidths(winW float32) [6]int {
	const compactBreakpoint = 760
	if winW < compactBreakpoint {
		return [6]int{120, 60, 80, 80, 0, 0}
	}
	return [6]int{160, 80, 110, 110, 110, 110}
}

// BuildNumericTicks generates up to n tick marks spanning [min,max] using a
// 1, 2, 2.5, 5 step pattern. Returns raw numeric positions; label formatting is
// left to the caller.
func BuildNumericTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if count < 2 {
			count = 2
		}
		diff := math.Abs(count - float64(n))
		if diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	var out []float64
	for v := start; v <= end+bestStep*0.5; v += bestStep {
		out = append(out, round6(v))
	}
	if len(out) < 2 {
		out = []float64{min, max}
	}
	return out
}

// FormatNumericTick provides a compact label: more decimals the smaller the value.
func FormatNumericTick(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}

// round6 rounds to 6 decimal places to stabilize tick positions.
func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }
