package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tui "github.com/charmbracelet/bubbletea"
	styles "github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	plot "github.com/chriskim06/drawille-go"

	"github.com/IzzyIllari/exclurad/src/dataset"
	"github.com/IzzyIllari/exclurad/src/query"
)

type Config struct {
	InputPath string
	ViewSplit int
	LogLevel  string
	AltScreen bool
}

var config = Config{
	ViewSplit: 35,
	LogLevel:  "warn",
	AltScreen: true,
}

var (
	selectedColor = styles.AdaptiveColor{Light: "0", Dark: "9"}
	borderColor   = styles.AdaptiveColor{Light: "#555", Dark: "#555"}
	selectedFg    = styles.NewStyle().Foreground(selectedColor)
	borderFg      = styles.NewStyle().Foreground(borderColor)
	plotStyle     = styles.NewStyle().
			BorderStyle(styles.NormalBorder()).
			Foreground(borderColor).
			BorderForeground(borderColor)
)

// traceColors maps Curve.ColorIndex to terminal plot colors.
var traceColors = []plot.Color{
	plot.Blue, plot.Red, plot.Green, plot.Yellow,
	plot.Magenta, plot.Cyan, plot.White, plot.DimGray,
}

func main() {
	log.SetOutput(os.Stdout)
	flag.StringVar(&config.InputPath, "file", config.InputPath, "Path to a ratio table (.csv, .dat or .xlsx)")
	flag.IntVar(&config.ViewSplit, "view-split", config.ViewSplit, "Split the view at this % of the total screen width [20,80]")
	flag.StringVar(&config.LogLevel, "loglevel", config.LogLevel, "Log level: debug, info, warn, error")
	flag.BoolVar(&config.AltScreen, "alt-screen", config.AltScreen, "Use the terminal alternate screen buffer")
	flag.Parse()
	dataset.SetLogLevel(config.LogLevel)

	if config.InputPath == "" {
		log.Fatal("-file is required")
	}
	if !term.IsTerminal(os.Stdout.Fd()) {
		log.Fatal("stdout is not a terminal")
	}
	config.ViewSplit = clampInt(config.ViewSplit, 20, 80)

	t, err := dataset.Load(config.InputPath)
	if err != nil {
		log.Fatal(err)
	}

	m := newModel(t)
	opts := []tui.ProgramOption{tui.WithInputTTY()}
	if config.AltScreen {
		opts = append(opts, tui.WithAltScreen())
	}
	if _, err := tui.NewProgram(m, opts...).Run(); err != nil {
		log.Fatal(err)
	}
}

type model struct {
	width, height  int
	leftPaneWidth  int
	rightPaneWidth int

	table  *dataset.Table
	roles  query.Roles
	metric dataset.Metric

	sliders map[dataset.Axis]*dataset.Slider
	// which of the two fixed-axis sliders the arrow keys move
	activeFixed int

	curves query.CurveSet
	err    error

	list         list.Model
	listStyle    styles.Style
	listDelegate *list.DefaultDelegate
	help         help.Model
	plot         *plot.Canvas
}

func newModel(t *dataset.Table) *model {
	const (
		defaultWidth  = 80
		defaultHeight = 20
	)

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = styles.NewStyle().
		Border(styles.NormalBorder(), false, false, false, true).
		BorderForeground(borderColor).
		Foreground(selectedColor).
		Bold(false).
		Padding(0, 0, 0, 1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.
		Foreground(selectedColor)
	d.ShowDescription = true

	l := list.New(make([]list.Item, 0), d, defaultWidth/2-2, defaultHeight)
	l.Styles.NoItems = l.Styles.NoItems.
		Padding(0, 2)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)

	p := plot.NewCanvas(defaultWidth, defaultHeight)
	p.ShowAxis = false

	m := &model{
		table:        t,
		roles:        query.DefaultRoles(),
		metric:       dataset.MetricDelta,
		sliders:      map[dataset.Axis]*dataset.Slider{},
		help:         help.New(),
		list:         l,
		listDelegate: &d,
		plot:         &p,
	}
	for _, ax := range dataset.AxisOrder {
		m.sliders[ax] = dataset.NewSlider(ax, t.Domain(ax))
	}
	m.leftPaneWidth, m.rightPaneWidth = computePaneWidths(defaultWidth, config.ViewSplit)
	m.recompute()
	return m
}

func (m *model) leftWidth() int {
	if m.leftPaneWidth > 0 {
		return m.leftPaneWidth
	}
	left, _ := computePaneWidths(m.width, config.ViewSplit)
	return left
}

func (m *model) rightWidth() int {
	if m.rightPaneWidth > 0 {
		return m.rightPaneWidth
	}
	_, right := computePaneWidths(m.width, config.ViewSplit)
	return right
}

// recompute reruns the slice query and refreshes the list and plot data.
func (m *model) recompute() {
	sel := query.NewSelection(m.roles, m.metric, func(a dataset.Axis) float64 {
		if s := m.sliders[a]; s != nil {
			return s.Get()
		}
		return 0
	})
	cs, err := query.Execute(m.table, sel)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.curves = cs

	items := make([]list.Item, len(cs.Curves))
	for i, c := range cs.Curves {
		items[i] = curveItem{rank: i + 1, curve: c}
	}
	m.list.SetItems(items)
	if m.list.Index() >= len(items) {
		m.list.Select(0)
	}
	m.fillPlot()
}

// fillPlot resamples the curves onto the union x grid and hands the series to
// the braille canvas. The selected trace is drawn last so it stays on top.
func (m *model) fillPlot() {
	xs, data := resampleCurves(m.curves.Curves)
	if len(xs) == 0 {
		m.plot.Fill(nil)
		return
	}
	m.plot.NumDataPoints = len(xs)
	colors := make([]plot.Color, len(m.curves.Curves))
	for i, c := range m.curves.Curves {
		colors[i] = traceColors[c.ColorIndex%len(traceColors)]
	}
	// move the selected trace to the end of the draw order so it stays visible
	if sel := m.list.Index(); len(data) > 1 && sel >= 0 && sel < len(data) {
		data = append(append(append([][]float64{}, data[:sel]...), data[sel+1:]...), data[sel])
		colors = append(append(append([]plot.Color{}, colors[:sel]...), colors[sel+1:]...), colors[sel])
	}
	m.plot.LineColors = colors
	m.plot.Fill(data)
}

type reloadMsg struct {
	table *dataset.Table
	err   error
}

func (m *model) reloadCmd() tui.Cmd {
	return func() tui.Msg {
		t, err := dataset.Load(config.InputPath)
		return reloadMsg{table: t, err: err}
	}
}

func (m *model) Init() tui.Cmd { return nil }

func (m *model) Update(msg tui.Msg) (tui.Model, tui.Cmd) {
	switch msg := msg.(type) {
	case reloadMsg:
		if msg.err != nil {
			// keep the current table on a failed reload
			m.err = msg.err
			return m, nil
		}
		m.table = msg.table
		for _, ax := range dataset.AxisOrder {
			m.sliders[ax].Rebind(m.table.Domain(ax))
		}
		m.recompute()
		return m, nil
	case tui.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.leftPaneWidth, m.rightPaneWidth = computePaneWidths(m.width, config.ViewSplit)
		// status (2 lines) + help (1 line) below the panes
		available := maxInt(1, m.height-3)
		leftW := maxInt(1, m.leftWidth())
		rightW := maxInt(1, m.rightWidth())
		m.list.SetSize(leftW, available)
		m.listStyle = styles.NewStyle().Width(leftW).Height(available)
		// border adds 2 lines, x-range label another one
		plotHeight := maxInt(1, available-3)
		plotWidth := maxInt(1, rightW-2)
		m.resizePlot(plotWidth, plotHeight)
		m.fillPlot()
		return m, nil
	case tui.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tui.Quit
		case key.Matches(msg, keys.Up):
			m.list.CursorUp()
			m.fillPlot()
			return m, nil
		case key.Matches(msg, keys.Down):
			m.list.CursorDown()
			m.fillPlot()
			return m, nil
		case key.Matches(msg, keys.XAxis):
			m.roles.SetX(nextAxis(m.roles.X))
			m.recompute()
			return m, nil
		case key.Matches(msg, keys.Overlay):
			next := nextAxis(m.roles.Overlay)
			if next == m.roles.X {
				next = nextAxis(next)
			}
			if err := m.roles.SetOverlay(next); err == nil {
				m.recompute()
			}
			return m, nil
		case key.Matches(msg, keys.Metric):
			if m.metric == dataset.MetricDelta {
				m.metric = dataset.MetricAsym
			} else {
				m.metric = dataset.MetricDelta
			}
			m.recompute()
			return m, nil
		case key.Matches(msg, keys.Slider):
			m.activeFixed = (m.activeFixed + 1) % 2
			return m, nil
		case key.Matches(msg, keys.Left):
			m.nudgeSlider(-1)
			return m, nil
		case key.Matches(msg, keys.Right):
			m.nudgeSlider(+1)
			return m, nil
		case key.Matches(msg, keys.Reload):
			return m, m.reloadCmd()
		}
	}
	var cmd tui.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// nudgeSlider moves the active fixed-axis slider by one domain step.
func (m *model) nudgeSlider(delta int) {
	ax := m.roles.FixedAxes()[m.activeFixed]
	s := m.sliders[ax]
	if s == nil || s.Len() == 0 {
		return
	}
	s.SetByIndex(s.Index() + delta)
	m.recompute()
}

func (m *model) resizePlot(w int, h int) {
	p := plot.NewCanvas(w, h)
	p.NumDataPoints = m.plot.NumDataPoints
	p.ShowAxis = m.plot.ShowAxis
	p.LineColors = m.plot.LineColors
	m.plot = &p
}

func (m *model) View() string {
	left := m.listStyle.Render(m.list.View())
	pl := m.plot.String()
	if pl == "" {
		sb := emptyPlot(m)
		pl = sb.String()
	}

	deltaColor := borderFg
	asymColor := borderFg
	if m.metric == dataset.MetricAsym {
		asymColor = selectedFg
	} else {
		deltaColor = selectedFg
	}
	metricTag := deltaColor.Render("δ") + " " + asymColor.Render("A")

	labels := ""
	if xs, _ := resampleCurves(m.curves.Curves); len(xs) > 0 {
		w := maxInt(0, m.rightWidth()-2)
		leftLabel := m.roles.X.FormatValue(xs[0])
		rightLabel := m.roles.X.FormatValue(xs[len(xs)-1])
		minWidth := len(leftLabel) + len(rightLabel) + 5
		if w < minWidth {
			labels = " " + metricTag
		} else {
			spaceTotal := w - (len(leftLabel) + len(rightLabel) + 3)
			if spaceTotal < 2 {
				spaceTotal = 2
			}
			leftGap := spaceTotal / 2
			rightGap := spaceTotal - leftGap
			labels = leftLabel +
				strings.Repeat(" ", leftGap) +
				metricTag +
				strings.Repeat(" ", rightGap) +
				borderFg.Render(rightLabel)
		}
	}
	right := plotStyle.Render(styles.JoinVertical(styles.Top, pl, labels))
	view := styles.JoinHorizontal(styles.Top, left, right)

	status := m.statusLine()
	if m.err != nil {
		errStyle := styles.NewStyle().Foreground(styles.AdaptiveColor{Light: "1", Dark: "9"})
		return styles.JoinVertical(styles.Left, view, status, errStyle.Render("ERROR: "+m.err.Error()), m.help.View(keys))
	}
	return styles.JoinVertical(styles.Left, view, status, m.help.View(keys))
}

// statusLine shows the slice roles and the two pinned values, marking the
// slider the arrow keys currently move.
func (m *model) statusLine() string {
	fixed := m.roles.FixedAxes()
	parts := make([]string, 0, 4)
	parts = append(parts, "x: "+m.roles.X.Symbol())
	parts = append(parts, "overlay: "+m.roles.Overlay.Symbol())
	for i, ax := range fixed {
		s := m.sliders[ax]
		val := "-"
		if s != nil && s.Len() > 0 {
			val = ax.FormatValue(s.Get())
		}
		entry := fmt.Sprintf("%s=%s", ax.Symbol(), val)
		if i == m.activeFixed {
			entry = selectedFg.Render("[" + entry + "]")
		}
		parts = append(parts, entry)
	}
	parts = append(parts, fmt.Sprintf("curves: %d", len(m.curves.Curves)))
	return borderFg.Render(strings.Join(parts, "  "))
}

func emptyPlot(m *model) strings.Builder {
	var sb strings.Builder
	if m.width < 2 || m.height < 4 {
		return sb
	}
	w, h := m.list.Width(), m.list.Height()
	sb.Grow(w * h)
	spaces := strings.Repeat(" ", m.list.Width())
	for range m.list.Height() - 2 {
		sb.WriteString(spaces)
		sb.WriteRune('\n')
	}
	return sb
}

type curveItem struct {
	rank  int
	curve query.Curve
}

func (i curveItem) Title() string       { return fmt.Sprintf("#%-2d %s", i.rank, i.curve.Label) }
func (i curveItem) Description() string { return fmt.Sprintf("    %d points", len(i.curve.Points)) }
func (i curveItem) FilterValue() string { return i.curve.Label }

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.XAxis, k.Overlay, k.Metric, k.Slider, k.Reload}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.Reload},
		{k.Up, k.Down, k.XAxis, k.Overlay, k.Metric, k.Slider, k.Left, k.Right},
	}
}

type keyMap struct {
	XAxis   key.Binding
	Overlay key.Binding
	Metric  key.Binding
	Slider  key.Binding
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	XAxis: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "cycle x-axis"),
	),
	Overlay: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "cycle overlay"),
	),
	Metric: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "δ/A"),
	),
	Slider: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch slider"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "slider down"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "slider up"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "prev trace"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next trace"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q/ctrl+c", "quit"),
	),
}

// nextAxis cycles through the canonical axis order.
func nextAxis(a dataset.Axis) dataset.Axis {
	for i, ax := range dataset.AxisOrder {
		if ax == a {
			return dataset.AxisOrder[(i+1)%len(dataset.AxisOrder)]
		}
	}
	return dataset.AxisOrder[0]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func computePaneWidths(totalWidth int, splitPercent int) (left, right int) {
	if totalWidth <= 1 {
		return 1, 1
	}
	left = totalWidth * splitPercent / 100
	if left < 1 {
		left = 1
	}
	if left > totalWidth-1 {
		left = totalWidth - 1
	}
	right = totalWidth - left

	// Keep panes readable when the terminal is wide enough.
	const minPane = 18
	if totalWidth >= minPane*2 {
		if left < minPane {
			left = minPane
			right = totalWidth - left
		}
		if right < minPane {
			right = minPane
			left = totalWidth - right
		}
	}
	if left < 1 {
		left = 1
	}
	if right < 1 {
		right = 1
	}
	return left, right
}
