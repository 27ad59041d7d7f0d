package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/IzzyIllari/exclurad/src/dataset"
	"github.com/IzzyIllari/exclurad/src/query"
)

// RunScreenshotsMode renders a curated set of curve charts and writes them as
// PNGs under outDir. It runs headlessly without creating a UI window.
func RunScreenshotsMode(filePath, outDir string) error {
	if filePath == "" {
		return fmt.Errorf("screenshots mode needs -file")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	t, err := dataset.Load(filePath)
	if err != nil {
		return err
	}

	// Fix the non-plotted axes at the middle of their domains, the same
	// position the interactive sliders start at.
	sliders := map[dataset.Axis]*dataset.Slider{}
	for _, ax := range dataset.AxisOrder {
		sliders[ax] = dataset.NewSlider(ax, t.Domain(ax))
	}

	toRender := []struct {
		name    string
		x       dataset.Axis
		overlay dataset.Axis
		metric  dataset.Metric
	}{
		{"delta_vs_phi_by_w.png", dataset.AxisPhi, dataset.AxisW, dataset.MetricDelta},
		{"asym_vs_phi_by_w.png", dataset.AxisPhi, dataset.AxisW, dataset.MetricAsym},
		{"delta_vs_w_by_q2.png", dataset.AxisW, dataset.AxisQ2, dataset.MetricDelta},
		{"delta_vs_costh_by_w.png", dataset.AxisCosTheta, dataset.AxisW, dataset.MetricDelta},
	}

	for _, item := range toRender {
		st := &uiState{
			filePath: filePath,
			table:    t,
			metric:   item.metric,
			sliders:  sliders,
		}
		st.roles = query.DefaultRoles()
		st.roles.SetX(item.x)
		if err := st.roles.SetOverlay(item.overlay); err != nil {
			return err
		}
		img := renderCurveChart(st)
		if img == nil {
			continue
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("png encode %s: %w", item.name, err)
		}
		outPath := filepath.Join(outDir, item.name)
		if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		dataset.Infof("wrote %s", outPath)
	}
	return nil
}
