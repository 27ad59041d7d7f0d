// Package gridgen holds the batch-mode collaborators around the simulation
// executable: the Cartesian parameter-grid input generator and the run driver
// that invokes the executable per input file and renames its outputs.
package gridgen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/IzzyIllari/exclurad/src/dataset"
)

// PhiSamplesPerPoint is how many φ* bins each (W, Q2, cosθ*) combination is
// sampled at. The viewer tolerates up to this many φ* bins per triple but
// never assumes all are present.
const PhiSamplesPerPoint = 10

// RunParams are the physics-run parameters written verbatim into every
// generated input file, after the per-combination kinematics.
type RunParams struct {
	BeamEnergy float64 // GeV
	Channel    int     // exclusive channel code
	Target     int     // target code
	NRad       int     // radiative integration points
}

// DefaultRunParams matches the production batch configuration.
var DefaultRunParams = RunParams{
	BeamEnergy: 10.6,
	Channel:    1,
	Target:     1,
	NRad:       100,
}

// GridSpec enumerates the Cartesian grid of kinematic points to generate
// input files for.
type GridSpec struct {
	WValues   []float64
	Q2Values  []float64
	CosValues []float64
	OutDir    string
	Params    RunParams
}

// Validate checks the grid is usable before any file is written.
func (g GridSpec) Validate() error {
	if len(g.WValues) == 0 || len(g.Q2Values) == 0 || len(g.CosValues) == 0 {
		return fmt.Errorf("grid needs at least one value per axis (W=%d Q2=%d cosθ=%d)",
			len(g.WValues), len(g.Q2Values), len(g.CosValues))
	}
	if min := floats.Min(g.WValues); min <= 0 {
		return fmt.Errorf("W values must be positive, got %v", min)
	}
	if min := floats.Min(g.Q2Values); min <= 0 {
		return fmt.Errorf("Q2 values must be positive, got %v", min)
	}
	if floats.Min(g.CosValues) < -1 || floats.Max(g.CosValues) > 1 {
		return fmt.Errorf("cosθ* values must lie in [-1,1]")
	}
	if g.Params.BeamEnergy <= 0 {
		return fmt.Errorf("beam energy must be positive, got %v", g.Params.BeamEnergy)
	}
	return nil
}

// PhiSamples returns the fixed φ* sampling for every combination: bin centers
// of a uniform 10-bin split of [0°, 360°), i.e. 18°, 54°, …, 342°.
func PhiSamples() []float64 {
	out := make([]float64, PhiSamplesPerPoint)
	for k := range out {
		out[k] = 360 * (float64(k) + 0.5) / PhiSamplesPerPoint
	}
	return out
}

// InputFileName returns the conventional name for the i-th generated file.
func InputFileName(i int) string { return fmt.Sprintf("input_%03d.dat", i) }

// Generate writes one parameter file per (W, Q2, cosθ*) combination into
// OutDir, numbered in enumeration order (W outermost, cosθ* innermost, each
// axis ascending). Returns the paths written.
func Generate(g GridSpec) ([]string, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(g.OutDir, 0o755); err != nil {
		return nil, err
	}
	ws := sortedCopy(g.WValues)
	q2s := sortedCopy(g.Q2Values)
	coss := sortedCopy(g.CosValues)

	var paths []string
	i := 0
	for _, w := range ws {
		for _, q2 := range q2s {
			for _, cos := range coss {
				path := filepath.Join(g.OutDir, InputFileName(i))
				if err := os.WriteFile(path, []byte(formatInput(w, q2, cos, g.Params)), 0o644); err != nil {
					return paths, err
				}
				paths = append(paths, path)
				i++
			}
		}
	}
	dataset.Infof("generated %d input files in %s (%dx%dx%d grid)",
		len(paths), g.OutDir, len(ws), len(q2s), len(coss))
	return paths, nil
}

// formatInput renders one parameter file. Field order is fixed; the
// simulation executable reads positionally.
func formatInput(w, q2, cos float64, p RunParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ebeam   %.4f\n", p.BeamEnergy)
	fmt.Fprintf(&b, "target  %d\n", p.Target)
	fmt.Fprintf(&b, "channel %d\n", p.Channel)
	fmt.Fprintf(&b, "nrad    %d\n", p.NRad)
	fmt.Fprintf(&b, "w       %.4f\n", w)
	fmt.Fprintf(&b, "q2      %.4f\n", q2)
	fmt.Fprintf(&b, "costh   %.4f\n", cos)
	fmt.Fprintf(&b, "nphi    %d\n", PhiSamplesPerPoint)
	b.WriteString("phi    ")
	for _, phi := range PhiSamples() {
		fmt.Fprintf(&b, " %.0f", phi)
	}
	b.WriteString("\n")
	return b.String()
}

func sortedCopy(vs []float64) []float64 {
	out := append([]float64(nil), vs...)
	sort.Float64s(out)
	return out
}
