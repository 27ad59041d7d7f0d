package query

import (
	"math"

	"github.com/IzzyIllari/exclurad/src/dataset"
)

// BuildMask computes the row admission vector for a metric and a set of
// fixed-axis constraints, in a single pass over the table. Row i is admitted
// iff the kinematics flag holds, the metric-specific validity flag holds, and
// every constrained coordinate matches within its axis tolerance. A NaN
// coordinate never matches, so non-finite rows fall out here rather than
// aborting the query.
func BuildMask(t *dataset.Table, m dataset.Metric, fixed []Constraint) []bool {
	mask := make([]bool, t.N)
	metricOK := t.MetricValid(m)
	cols := make([][]float64, len(fixed))
	for j, c := range fixed {
		cols[j] = t.Column(c.Axis)
	}
	for i := 0; i < t.N; i++ {
		if !t.KinOK[i] || !metricOK[i] {
			continue
		}
		ok := true
		for j, c := range fixed {
			if !(math.Abs(cols[j][i]-c.Value) <= c.Axis.Epsilon()) {
				ok = false
				break
			}
		}
		mask[i] = ok
	}
	return mask
}
