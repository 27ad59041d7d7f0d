package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	png "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/IzzyIllari/exclurad/cmd/rcviewer/uihelpers"
	"github.com/IzzyIllari/exclurad/src/dataset"
	"github.com/IzzyIllari/exclurad/src/query"
)

// tracePalette holds the stroke colors for overlay traces, indexed by
// Curve.ColorIndex. Its length matches query.MaxTraces.
var tracePalette = []drawing.Color{
	{R: 68, G: 119, B: 170, A: 255},  // blue
	{R: 238, G: 102, B: 119, A: 255}, // red
	{R: 34, G: 136, B: 51, A: 255},   // green
	{R: 204, G: 187, B: 68, A: 255},  // yellow
	{R: 170, G: 51, B: 119, A: 255},  // purple
	{R: 102, G: 204, B: 238, A: 255}, // cyan
	{R: 187, G: 187, B: 187, A: 255}, // grey
	{R: 238, G: 119, B: 51, A: 255},  // orange
}

// traceDashes maps Curve.DashIndex to a stroke dash pattern. Index 0 is solid.
var traceDashes = [][]float64{nil, {5, 3}, {2, 2}}

// curveStyle returns the stroke style for one overlay trace.
func curveStyle(colorIndex, dashIndex int) chart.Style {
	col := tracePalette[colorIndex%len(tracePalette)]
	var dash []float64
	if dashIndex >= 0 && dashIndex < len(traceDashes) {
		dash = traceDashes[dashIndex]
	}
	return chart.Style{
		StrokeWidth:     1.6,
		StrokeColor:     col,
		StrokeDashArray: dash,
		DotWidth:        3,
		DotColor:        col,
	}
}

type uiState struct {
	app      fyne.App
	window   fyne.Window
	filePath string

	table  *dataset.Table
	roles  query.Roles
	metric dataset.Metric

	// one slider per axis; only the two fixed axes are enabled
	sliders map[dataset.Axis]*dataset.Slider

	// last successful query result, for the crosshair and export
	lastCurves query.CurveSet

	// widgets
	chartImgCanvas *canvas.Image
	summaryTable   *widget.Table
	xSelect        *widget.Select
	overlaySelect  *widget.Select
	metricSelect   *widget.Select
	sliderRows     map[dataset.Axis]*sliderRow
	statusLabel    *widget.Label

	// crosshair
	crosshairEnabled bool
	curveOverlay     *crosshairOverlay

	// chart hints toggle
	showHints bool
}

// sliderRow bundles the widgets of one fixed-axis slider.
type sliderRow struct {
	axis   dataset.Axis
	name   *widget.Label
	slider *widget.Slider
	value  *widget.Label
	box    fyne.CanvasObject
}

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	var fileFlag string
	var screenshotsDir string
	var logLevel string
	flag.StringVar(&fileFlag, "file", "", "Path to a ratio table (.csv, .dat or .xlsx)")
	flag.StringVar(&screenshotsDir, "screenshots", "", "Render charts headlessly into this directory and exit")
	flag.StringVar(&logLevel, "loglevel", "info", "Log level: debug, info, warn, error")
	flag.Parse()
	dataset.SetLogLevel(logLevel)

	if screenshotsDir != "" {
		if err := RunScreenshotsMode(fileFlag, screenshotsDir); err != nil {
			dataset.Errorf("screenshots mode: %v", err)
			os.Exit(1)
		}
		return
	}

	a := app.NewWithID("com.izzyillari.exclurad.viewer")
	a.Settings().SetTheme(&darkTheme{})
	w := a.NewWindow("EXCLURAD Viewer")
	w.Resize(fyne.NewSize(1100, 800))

	state := &uiState{
		app:      a,
		window:   w,
		filePath: fileFlag,
		roles:    query.DefaultRoles(),
		metric:   dataset.MetricDelta,
		sliders:  map[dataset.Axis]*dataset.Slider{},
	}
	// Load toggles before creating overlays/controls so they reflect prefs
	state.crosshairEnabled = a.Preferences().BoolWithFallback("crosshair", false)
	state.showHints = a.Preferences().BoolWithFallback("showHints", false)

	fileLabel := widget.NewLabel(truncatePath(state.filePath, 60))

	// axis and metric selectors; callbacks wired after canvases exist
	state.xSelect = widget.NewSelect(axisSymbols(), nil)
	state.xSelect.Selected = state.roles.X.Symbol()
	state.overlaySelect = widget.NewSelect(axisSymbols(), nil)
	state.overlaySelect.Selected = state.roles.Overlay.Symbol()
	state.metricSelect = widget.NewSelect(metricNames(), nil)
	state.metricSelect.Selected = state.metric.DisplayName()

	crosshairChk := widget.NewCheck("Crosshair", nil)
	crosshairChk.SetChecked(state.crosshairEnabled)
	hintsChk := widget.NewCheck("Hints", nil)
	hintsChk.SetChecked(state.showHints)

	// sliders for all four axes; only the fixed two stay enabled
	state.sliderRows = map[dataset.Axis]*sliderRow{}
	sliderColumn := container.NewVBox()
	for _, ax := range dataset.AxisOrder {
		row := newSliderRow(state, ax)
		state.sliderRows[ax] = row
		sliderColumn.Add(row.box)
	}

	// slice summary table: one row per emitted curve
	state.summaryTable = widget.NewTable(
		func() (int, int) { return len(summaryRows(state.lastCurves)) + 1, 6 },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			lbl := o.(*widget.Label)
			if id.Row == 0 {
				headers := [6]string{"Curve", "Points", "Mean", "Median", "Min", "Max"}
				lbl.SetText(headers[id.Col])
				return
			}
			rows := summaryRows(state.lastCurves)
			rix := id.Row - 1
			if rix < 0 || rix >= len(rows) {
				lbl.SetText("")
				return
			}
			lbl.SetText(rows[rix][id.Col])
		},
	)
	applySummaryColumnWidths(state, 1100)

	// chart placeholder
	state.chartImgCanvas = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	state.chartImgCanvas.FillMode = canvas.ImageFillContain
	state.chartImgCanvas.SetMinSize(fyne.NewSize(800, 480))
	state.curveOverlay = newCrosshairOverlay(state)

	state.statusLabel = widget.NewLabel("")

	top := container.NewHBox(
		widget.NewButton("Open…", func() { openFileDialog(state, fileLabel) }),
		widget.NewButton("Reload", func() { loadAll(state, fileLabel) }),
		widget.NewLabel("X:"), state.xSelect,
		widget.NewLabel("Overlay:"), state.overlaySelect,
		widget.NewLabel("Y:"), state.metricSelect,
		crosshairChk, hintsChk,
		widget.NewLabel("File:"), fileLabel,
	)

	chartPane := container.NewBorder(nil, sliderColumn, nil, nil,
		container.NewStack(state.chartImgCanvas, state.curveOverlay))
	tabs := container.NewAppTabs(
		container.NewTabItem("Curves", chartPane),
		container.NewTabItem("Summary", state.summaryTable),
	)
	tabs.SetTabLocation(container.TabLocationTop)
	tabs.OnSelected = func(ti *container.TabItem) {
		if state != nil && state.app != nil {
			state.app.Preferences().SetInt("selectedTabIndex", tabs.SelectedIndex())
		}
	}
	content := container.NewBorder(top, state.statusLabel, nil, nil, tabs)
	w.SetContent(content)

	// Now that canvases exist, wire select callbacks
	state.xSelect.OnChanged = func(v string) {
		ax, ok := dataset.AxisBySymbol(v)
		if !ok {
			return
		}
		state.roles.SetX(ax)
		// SetX may have reassigned the overlay; reflect that in the UI
		state.overlaySelect.Selected = state.roles.Overlay.Symbol()
		state.overlaySelect.Refresh()
		savePrefs(state)
		refreshSliderEnabled(state)
		redrawChart(state)
	}
	state.overlaySelect.OnChanged = func(v string) {
		ax, ok := dataset.AxisBySymbol(v)
		if !ok {
			return
		}
		if err := state.roles.SetOverlay(ax); err != nil {
			// revert the select to the still-valid overlay
			state.overlaySelect.Selected = state.roles.Overlay.Symbol()
			state.overlaySelect.Refresh()
			dialog.ShowError(err, state.window)
			return
		}
		savePrefs(state)
		refreshSliderEnabled(state)
		redrawChart(state)
	}
	state.metricSelect.OnChanged = func(v string) {
		state.metric = metricByName(v)
		savePrefs(state)
		if state.summaryTable != nil {
			state.summaryTable.Refresh()
		}
		redrawChart(state)
	}
	crosshairChk.OnChanged = func(b bool) {
		state.crosshairEnabled = b
		savePrefs(state)
		if state.curveOverlay != nil {
			state.curveOverlay.enabled = b
			state.curveOverlay.Refresh()
		}
	}
	hintsChk.OnChanged = func(b bool) {
		state.showHints = b
		savePrefs(state)
		redrawChart(state)
	}

	buildMenus(state, fileLabel)
	loadPrefs(state, fileLabel, tabs)
	refreshSliderEnabled(state)
	if state.curveOverlay != nil {
		state.curveOverlay.enabled = state.crosshairEnabled
		state.curveOverlay.Refresh()
	}
	loadAll(state, fileLabel)

	w.ShowAndRun()
}

// axisSymbols lists the selectable axes in canonical order.
func axisSymbols() []string {
	out := make([]string, 0, len(dataset.AxisOrder))
	for _, a := range dataset.AxisOrder {
		out = append(out, a.Symbol())
	}
	return out
}

func metricNames() []string {
	return []string{dataset.MetricDelta.DisplayName(), dataset.MetricAsym.DisplayName()}
}

func metricByName(s string) dataset.Metric {
	if s == dataset.MetricAsym.DisplayName() {
		return dataset.MetricAsym
	}
	return dataset.MetricDelta
}

// newSliderRow builds the widgets for one axis slider. The widget is rebound
// to the axis domain after every data load.
func newSliderRow(state *uiState, ax dataset.Axis) *sliderRow {
	row := &sliderRow{axis: ax}
	row.name = widget.NewLabel(ax.DisplayName())
	row.value = widget.NewLabel("-")
	row.slider = widget.NewSlider(0, 0)
	row.slider.Step = 1
	row.slider.OnChanged = func(v float64) {
		s := state.sliders[ax]
		if s == nil {
			return
		}
		i := int(v + 0.5)
		if i == s.Index() {
			return
		}
		s.SetByIndex(i)
		row.value.SetText(ax.FormatValue(s.Get()))
		savePrefs(state)
		redrawChart(state)
	}
	row.box = container.NewBorder(nil, nil, row.name, row.value, row.slider)
	return row
}

// refreshSliderEnabled enables the sliders of the two fixed axes and disables
// the x and overlay ones.
func refreshSliderEnabled(state *uiState) {
	fixed := state.roles.FixedAxes()
	for ax, row := range state.sliderRows {
		if ax == fixed[0] || ax == fixed[1] {
			row.slider.Enable()
		} else {
			row.slider.Disable()
		}
	}
}

// rebindSliders points every axis slider at the freshly loaded table,
// snapping each to the value nearest its previous position.
func rebindSliders(state *uiState) {
	for _, ax := range dataset.AxisOrder {
		domain := state.table.Domain(ax)
		s := state.sliders[ax]
		if s == nil {
			s = dataset.NewSlider(ax, domain)
			state.sliders[ax] = s
		} else {
			s.Rebind(domain)
		}
		row := state.sliderRows[ax]
		if row == nil {
			continue
		}
		max := float64(s.Len() - 1)
		if max < 0 {
			max = 0
		}
		row.slider.Max = max
		row.slider.SetValue(float64(s.Index()))
		if s.Len() > 0 {
			row.value.SetText(ax.FormatValue(s.Get()))
		} else {
			row.value.SetText("-")
		}
		row.slider.Refresh()
	}
}

// menus and dialogs
func buildMenus(state *uiState, fileLabel *widget.Label) {
	if state == nil || state.window == nil || state.app == nil {
		return
	}
	var items []*fyne.MenuItem
	for _, f := range recentFiles(state) {
		f := f
		items = append(items, fyne.NewMenuItem(truncatePath(f, 60), func() {
			state.filePath = f
			fileLabel.SetText(truncatePath(state.filePath, 60))
			savePrefs(state)
			loadAll(state, fileLabel)
		}))
	}
	clearRecent := fyne.NewMenuItem("Clear Recent", func() { clearRecentFiles(state); buildMenus(state, fileLabel) })
	recentMenu := fyne.NewMenu("Open Recent", append(items, clearRecent)...)
	exportCurves := fyne.NewMenuItem("Export Curve Chart…", func() { exportChartPNG(state, state.chartImgCanvas, "curves.png") })
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state, fileLabel) }),
		fyne.NewMenuItem("Reload", func() { loadAll(state, fileLabel) }),
		fyne.NewMenuItemSeparator(),
		exportCurves,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	mainMenu := fyne.NewMainMenu(fileMenu, recentMenu)
	state.window.SetMainMenu(mainMenu)

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { loadAll(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { loadAll(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}
}

// file open dialog
func openFileDialog(state *uiState, fileLabel *widget.Label) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.filePath = rc.URI().Path()
		fileLabel.SetText(truncatePath(state.filePath, 60))
		addRecentFile(state, state.filePath)
		savePrefs(state)
		loadAll(state, fileLabel)
	}, state.window)
	d.Show()
}

// loadAll reads the table at state.filePath and swaps it in. On failure the
// previous table stays active so the viewer never goes blank.
func loadAll(state *uiState, fileLabel *widget.Label) {
	if state.filePath == "" {
		return
	}
	t, err := dataset.Load(state.filePath)
	if err != nil {
		dataset.Errorf("load %s: %v", state.filePath, err)
		dialog.ShowError(err, state.window)
		return
	}
	state.table = t
	meta := dataset.LoadMeta(state.filePath, t)
	dataset.Infof("loaded %d rows from %s (kin_ok=%d delta_ok=%d asym_ok=%d)",
		t.N, filepath.Base(state.filePath), meta.KinValid, meta.DeltaValid, meta.AsymValid)
	if state.statusLabel != nil {
		state.statusLabel.SetText(fmt.Sprintf("%d rows  •  kin %d  δ %d  A %d",
			meta.Rows, meta.KinValid, meta.DeltaValid, meta.AsymValid))
	}
	rebindSliders(state)
	restoreSliderPrefs(state)
	refreshSliderEnabled(state)
	redrawChart(state)
}

// currentSelection snapshots the roles, metric and slider values into a query.
func currentSelection(state *uiState) query.Selection {
	return query.NewSelection(state.roles, state.metric, func(a dataset.Axis) float64 {
		if s := state.sliders[a]; s != nil {
			return s.Get()
		}
		return 0
	})
}

func redrawChart(state *uiState) {
	if state == nil || state.chartImgCanvas == nil {
		return
	}
	img := renderCurveChart(state)
	if img == nil {
		return
	}
	state.chartImgCanvas.Image = img
	state.chartImgCanvas.Refresh()
	if state.curveOverlay != nil {
		state.curveOverlay.Refresh()
	}
	if state.summaryTable != nil {
		state.summaryTable.Refresh()
	}
}

// chartSize computes the chart pixel size from the current window width.
func chartSize(state *uiState) (int, int) {
	if state == nil || state.window == nil || state.window.Canvas() == nil {
		return 1000, 600
	}
	sz := state.window.Canvas().Size()
	w := int(sz.Width*0.95) - 12
	return uihelpers.ComputeChartDimensions(w)
}

// chartTitle describes the current slice, e.g.
// "σ_obs / σ_Born @ W=1.698, Q2=0.410".
func chartTitle(sel query.Selection) string {
	parts := make([]string, 0, 2)
	for _, c := range sel.Fixed {
		parts = append(parts, c.Axis.LabelValue(c.Value))
	}
	return sel.Metric.DisplayName() + " @ " + strings.Join(parts, ", ")
}

func renderCurveChart(state *uiState) image.Image {
	cw, chh := chartSize(state)
	if state.table == nil || state.table.N == 0 {
		state.lastCurves = query.CurveSet{}
		return blank(cw, chh)
	}
	sel := currentSelection(state)
	cs, err := query.Execute(state.table, sel)
	if err != nil {
		// an invalid selection is transient while the selects settle
		var inv *query.InvalidSelectionError
		if !errors.As(err, &inv) {
			dataset.Errorf("query: %v", err)
		}
		state.lastCurves = query.CurveSet{}
		return blank(cw, chh)
	}
	state.lastCurves = cs
	if len(cs.Curves) == 0 {
		return emptyResult(cw, chh, chartTitle(sel))
	}

	series := make([]chart.Series, 0, len(cs.Curves))
	for _, c := range cs.Curves {
		xs := make([]float64, len(c.Points))
		ys := make([]float64, len(c.Points))
		for i, p := range c.Points {
			xs[i] = p.X
			ys[i] = p.Y
		}
		series = append(series, chart.ContinuousSeries{
			Name:    c.Label,
			XValues: xs,
			YValues: ys,
			Style:   curveStyle(c.ColorIndex, c.DashIndex),
		})
	}

	var yAxisRange *chart.ContinuousRange
	var yTicks []chart.Tick
	if cs.HasYRange {
		yAxisRange = &chart.ContinuousRange{Min: cs.YMin, Max: cs.YMax}
		for _, v := range uihelpers.BuildNumericTicks(cs.YMin, cs.YMax, 6) {
			yTicks = append(yTicks, chart.Tick{Value: v, Label: uihelpers.FormatNumericTick(v)})
		}
	}
	padBottom := 28
	if state.showHints {
		padBottom += 18
	}
	ch := chart.Chart{
		Title:      chartTitle(sel),
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: padBottom}},
		XAxis:      chart.XAxis{Name: cs.XLabel},
		YAxis:      chart.YAxis{Name: cs.YLabel, Range: yAxisRange, Ticks: yTicks},
		Series:     series,
	}
	ch.Width = cw
	ch.Height = chh
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		dataset.Errorf("curve chart render: %v", err)
		return blank(cw, chh)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		dataset.Errorf("curve chart decode: %v", err)
		return blank(cw, chh)
	}
	if state.showHints {
		return drawHint(img, "Hint: each trace fixes one overlay value; sliders pin the remaining two axes.")
	}
	return img
}

// summaryRows builds the summary tab contents: one row of descriptive y
// statistics per curve in the currently displayed slice.
func summaryRows(cs query.CurveSet) [][6]string {
	if len(cs.Curves) == 0 {
		return nil
	}
	out := make([][6]string, 0, len(cs.Curves))
	for _, c := range cs.Curves {
		s := dataset.Summarize(c.Ys())
		out = append(out, [6]string{
			c.Label,
			fmt.Sprintf("%d", s.Points),
			uihelpers.FormatNumericTick(s.Mean),
			uihelpers.FormatNumericTick(s.Median),
			uihelpers.FormatNumericTick(s.Min),
			uihelpers.FormatNumericTick(s.Max),
		})
	}
	return out
}

func applySummaryColumnWidths(state *uiState, winW float32) {
	if state == nil || state.summaryTable == nil {
		return
	}
	widths := uihelpers.ComputeTableColumnWidths(winW)
	for i, w := range widths {
		state.summaryTable.SetColumnWidth(i, float32(w))
	}
}

// drawHint draws a small hint string onto the provided image near the bottom-left.
func drawHint(img image.Image, text string) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	pad := 6
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	shadowCol := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 180})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6
	bg := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
	drShadow := &font.Drawer{Dst: rgba, Src: shadowCol, Face: face, Dot: fixed.Point26_6{X: fixed.I(x + 1), Y: fixed.I(y + 1)}}
	drShadow.DrawString(text)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return rgba
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 18, G: 18, B: 18, A: 255})
		}
	}
	return img
}

// emptyResult renders a placeholder for slices with no qualifying rows.
func emptyResult(w, h int, title string) image.Image {
	img := blank(w, h)
	return drawHint(img, "No curves: "+title+" has no overlay value with enough points.")
}

// export PNG
func exportChartPNG(state *uiState, img *canvas.Image, defaultName string) {
	if state == nil || state.window == nil || img == nil || img.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		_ = png.Encode(wc, img.Image)
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

// recent files helpers
func recentFiles(state *uiState) []string {
	prefs := state.app.Preferences()
	raw := prefs.StringWithFallback("recentFiles", "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}
func addRecentFile(state *uiState, path string) {
	prefs := state.app.Preferences()
	list := recentFiles(state)
	filtered := []string{path}
	for _, f := range list {
		if f != path && len(filtered) < 10 {
			filtered = append(filtered, f)
		}
	}
	prefs.SetString("recentFiles", strings.Join(filtered, "\n"))
}
func clearRecentFiles(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	state.app.Preferences().SetString("recentFiles", "")
}

// prefs
func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("lastFile", state.filePath)
	prefs.SetString("xAxis", state.roles.X.Symbol())
	prefs.SetString("overlayAxis", state.roles.Overlay.Symbol())
	prefs.SetString("metric", state.metric.String())
	prefs.SetBool("crosshair", state.crosshairEnabled)
	prefs.SetBool("showHints", state.showHints)
	for _, ax := range dataset.AxisOrder {
		if s := state.sliders[ax]; s != nil && s.Len() > 0 {
			prefs.SetFloat("slider."+ax.Symbol(), s.Get())
		}
	}
}

// restoreSliderPrefs snaps each slider to the saved value nearest one present
// in the freshly loaded table.
func restoreSliderPrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	for _, ax := range dataset.AxisOrder {
		s := state.sliders[ax]
		if s == nil || s.Len() == 0 {
			continue
		}
		v := prefs.FloatWithFallback("slider."+ax.Symbol(), math.NaN())
		if math.IsNaN(v) {
			continue
		}
		s.SetByNearestValue(v)
		if row := state.sliderRows[ax]; row != nil {
			row.slider.SetValue(float64(s.Index()))
			row.value.SetText(ax.FormatValue(s.Get()))
		}
	}
}

func loadPrefs(state *uiState, fileLabel *widget.Label, tabs *container.AppTabs) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	if f := prefs.StringWithFallback("lastFile", state.filePath); f != "" {
		state.filePath = f
		if fileLabel != nil {
			fileLabel.SetText(truncatePath(state.filePath, 60))
		}
	}
	if sym := prefs.StringWithFallback("xAxis", state.roles.X.Symbol()); sym != "" {
		if ax, ok := dataset.AxisBySymbol(sym); ok {
			state.roles.SetX(ax)
		}
	}
	if sym := prefs.StringWithFallback("overlayAxis", state.roles.Overlay.Symbol()); sym != "" {
		if ax, ok := dataset.AxisBySymbol(sym); ok {
			_ = state.roles.SetOverlay(ax)
		}
	}
	if state.xSelect != nil {
		state.xSelect.Selected = state.roles.X.Symbol()
	}
	if state.overlaySelect != nil {
		state.overlaySelect.Selected = state.roles.Overlay.Symbol()
	}
	if m := prefs.StringWithFallback("metric", state.metric.String()); m == dataset.MetricAsym.String() {
		state.metric = dataset.MetricAsym
	}
	if state.metricSelect != nil {
		state.metricSelect.Selected = state.metric.DisplayName()
	}
	state.crosshairEnabled = prefs.BoolWithFallback("crosshair", state.crosshairEnabled)
	state.showHints = prefs.BoolWithFallback("showHints", state.showHints)
	if tabs != nil {
		idx := prefs.IntWithFallback("selectedTabIndex", 0)
		if idx >= 0 && idx < len(tabs.Items) {
			tabs.SelectIndex(idx)
		}
	}
}

// utils
func truncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if left <= 0 {
		return "..." + base
	}
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
