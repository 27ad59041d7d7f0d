package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Metric selects which response ratio a query plots.
type Metric int

const (
	// MetricDelta is δ, the observed/Born cross-section ratio.
	MetricDelta Metric = iota
	// MetricAsym is A, the radiative-corrected/Born asymmetry ratio.
	MetricAsym
)

// DisplayName returns the y-axis label for the metric.
func (m Metric) DisplayName() string {
	if m == MetricAsym {
		return "A_RC / A_Born"
	}
	return "σ_obs / σ_Born"
}

func (m Metric) String() string {
	if m == MetricAsym {
		return "asym"
	}
	return "delta"
}

// Required column names in the decoded tabular buffer.
const (
	ColW        = "W"
	ColQ2       = "Q2"
	ColCosTheta = "cos_theta"
	ColPhi      = "phi_deg"
	ColDelta    = "delta_ratio"
	ColAsym     = "asym_ratio"
	ColKinOK    = "kin_ok"
	ColDeltaOK  = "delta_ok"
	ColAsymOK   = "asym_ok"
)

var requiredColumns = []string{
	ColW, ColQ2, ColCosTheta, ColPhi,
	ColDelta, ColAsym,
	ColKinOK, ColDeltaOK, ColAsymOK,
}

// MissingColumnError reports a required column absent from a decoded buffer.
// It is fatal to the load attempt only; callers keep the prior table.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("dataset missing required column %q", e.Column)
}

// TransportError reports that dataset bytes could not be read or decoded.
// Same recovery policy as MissingColumnError.
type TransportError struct {
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("dataset %s: %v", e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Table is one immutable columnar dataset snapshot. A dataset switch builds a
// new Table and replaces the reference as a unit; nothing mutates a Table in
// place after Materialize returns.
type Table struct {
	Path string
	N    int

	W        []float64
	Q2       []float64
	CosTheta []float64
	Phi      []float64

	Delta []float64
	Asym  []float64

	KinOK   []bool
	DeltaOK []bool
	AsymOK  []bool

	domains map[Axis][]float64
}

// Materialize turns a decoded tabular buffer (header row + string cells) into
// named column arrays. Column order in the buffer is free; lookup is by
// header name, case-insensitive. Unparseable numeric cells become NaN and are
// excluded later by masking; a missing required column aborts the load.
func Materialize(path string, headers []string, rows [][]string) (*Table, error) {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	col := make(map[string]int, len(requiredColumns))
	for _, name := range requiredColumns {
		i, ok := idx[strings.ToLower(name)]
		if !ok {
			return nil, &MissingColumnError{Column: name}
		}
		col[name] = i
	}

	n := len(rows)
	t := &Table{
		Path:     path,
		N:        n,
		W:        make([]float64, n),
		Q2:       make([]float64, n),
		CosTheta: make([]float64, n),
		Phi:      make([]float64, n),
		Delta:    make([]float64, n),
		Asym:     make([]float64, n),
		KinOK:    make([]bool, n),
		DeltaOK:  make([]bool, n),
		AsymOK:   make([]bool, n),
	}
	numAt := func(row []string, c int) float64 {
		if c >= len(row) {
			return math.NaN()
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[c]), 64)
		if err != nil {
			return math.NaN()
		}
		return v
	}
	boolAt := func(row []string, c int) bool {
		if c >= len(row) {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(row[c])) {
		case "1", "t", "true", "y", "yes":
			return true
		}
		return false
	}
	for i, row := range rows {
		t.W[i] = numAt(row, col[ColW])
		t.Q2[i] = numAt(row, col[ColQ2])
		t.CosTheta[i] = numAt(row, col[ColCosTheta])
		t.Phi[i] = numAt(row, col[ColPhi])
		t.Delta[i] = numAt(row, col[ColDelta])
		t.Asym[i] = numAt(row, col[ColAsym])
		t.KinOK[i] = boolAt(row, col[ColKinOK])
		t.DeltaOK[i] = boolAt(row, col[ColDeltaOK])
		t.AsymOK[i] = boolAt(row, col[ColAsymOK])
	}
	t.domains = map[Axis][]float64{
		AxisW:        BuildDomain(t.W),
		AxisQ2:       BuildDomain(t.Q2),
		AxisCosTheta: BuildDomain(t.CosTheta),
		AxisPhi:      BuildDomain(t.Phi),
	}
	Debugf("materialized %s: %d rows, domains W=%d Q2=%d cosθ=%d φ=%d",
		path, n,
		len(t.domains[AxisW]), len(t.domains[AxisQ2]),
		len(t.domains[AxisCosTheta]), len(t.domains[AxisPhi]))
	return t, nil
}

// Column returns the coordinate column for an axis. The slice is shared with
// the table; callers must not modify it.
func (t *Table) Column(a Axis) []float64 {
	switch a {
	case AxisW:
		return t.W
	case AxisQ2:
		return t.Q2
	case AxisCosTheta:
		return t.CosTheta
	case AxisPhi:
		return t.Phi
	}
	return nil
}

// MetricColumn returns the value column for a metric.
func (t *Table) MetricColumn(m Metric) []float64 {
	if m == MetricAsym {
		return t.Asym
	}
	return t.Delta
}

// MetricValid returns the per-row validity flags for a metric.
func (t *Table) MetricValid(m Metric) []bool {
	if m == MetricAsym {
		return t.AsymOK
	}
	return t.DeltaOK
}

// Domain returns the sorted distinct finite values the axis takes in this
// table. Built once at materialization; the sole source of legal slider
// positions.
func (t *Table) Domain(a Axis) []float64 { return t.domains[a] }
