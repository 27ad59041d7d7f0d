package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// crosshairOverlay draws a crosshair on top of the curve chart when enabled.
// It tracks the mouse and shows the nearest x sample with each trace's value
// at that x.
type crosshairOverlay struct {
	widget.BaseWidget
	state    *uiState
	enabled  bool
	mouse    fyne.Position
	hovering bool
}

func newCrosshairOverlay(state *uiState) *crosshairOverlay {
	c := &crosshairOverlay{state: state, enabled: state != nil && state.crosshairEnabled}
	c.ExtendBaseWidget(c)
	return c
}

func (c *crosshairOverlay) CreateRenderer() fyne.WidgetRenderer {
	// background to ensure full hit-area for hover events
	bg := canvas.NewRectangle(color.RGBA{R: 0, G: 0, B: 0, A: 0})
	lineV := canvas.NewLine(color.RGBA{R: 200, G: 200, B: 200, A: 220})
	lineV.StrokeWidth = 1.0
	lineH := canvas.NewLine(color.RGBA{R: 200, G: 200, B: 200, A: 220})
	lineH.StrokeWidth = 1.0
	dot := canvas.NewCircle(color.RGBA{R: 240, G: 240, B: 240, A: 220})
	label := widget.NewRichText()
	label.Wrapping = fyne.TextWrapOff
	labelBG := canvas.NewRectangle(color.RGBA{R: 0, G: 0, B: 0, A: 170})
	objs := []fyne.CanvasObject{bg, lineV, lineH, dot, labelBG, label}
	return &crosshairRenderer{c: c, bg: bg, lineV: lineV, lineH: lineH, dot: dot, labelBG: labelBG, label: label, objs: objs}
}

type crosshairRenderer struct {
	c       *crosshairOverlay
	bg      *canvas.Rectangle
	lineV   *canvas.Line
	lineH   *canvas.Line
	dot     *canvas.Circle
	labelBG *canvas.Rectangle
	label   *widget.RichText
	objs    []fyne.CanvasObject
}

func (r *crosshairRenderer) Destroy() {}

func (r *crosshairRenderer) hide() {
	r.lineV.Position1 = fyne.NewPos(-10, -10)
	r.lineV.Position2 = fyne.NewPos(-10, -10)
	r.lineH.Position1 = fyne.NewPos(-10, -10)
	r.lineH.Position2 = fyne.NewPos(-10, -10)
	r.dot.Move(fyne.NewPos(-10, -10))
	if r.labelBG != nil {
		r.labelBG.Resize(fyne.NewSize(0, 0))
		r.labelBG.Move(fyne.NewPos(-1000, -1000))
	}
	r.label.Move(fyne.NewPos(-1000, -1000))
}

func (r *crosshairRenderer) Layout(size fyne.Size) {
	if r.c == nil {
		return
	}
	if r.bg != nil {
		r.bg.Resize(size)
		r.bg.Move(fyne.NewPos(0, 0))
	}
	if !r.c.enabled || !r.c.hovering {
		r.hide()
		return
	}
	x := r.c.mouse.X
	y := r.c.mouse.Y
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > size.Width {
		x = size.Width
	}
	if y > size.Height {
		y = size.Height
	}
	cs := r.c.state.lastCurves
	xs := curveXValues(cs.Curves)
	n := len(xs)

	// Determine the drawn image rect inside this overlay (ImageFillContain aware)
	var imgW, imgH float32
	if r.c.state != nil && r.c.state.chartImgCanvas != nil && r.c.state.chartImgCanvas.Image != nil {
		b := r.c.state.chartImgCanvas.Image.Bounds()
		imgW = float32(b.Dx())
		imgH = float32(b.Dy())
	}
	if imgW <= 0 || imgH <= 0 {
		imgW, imgH = float32(size.Width), float32(size.Height)
	}
	sx := float32(size.Width) / imgW
	sy := float32(size.Height) / imgH
	scale := sx
	if sy < sx {
		scale = sy
	}
	drawW := imgW * scale
	drawH := imgH * scale
	drawX := (float32(size.Width) - drawW) / 2
	drawY := (float32(size.Height) - drawH) / 2
	if !(x >= drawX && x <= drawX+drawW && y >= drawY && y <= drawY+drawH) {
		r.hide()
		return
	}

	// Map data x values to overlay pixels; padding mirrors the render settings.
	leftPadImg, rightPadImg := float32(16), float32(12)
	plotWImg := imgW - leftPadImg - rightPadImg
	if plotWImg < 1 {
		plotWImg = imgW
	}
	idx := 0
	if n > 0 {
		xmin, xmax := xs[0], xs[n-1]
		span := xmax - xmin
		bestD := float32(math.MaxFloat32)
		for i, xv := range xs {
			var fx float64
			if span > 0 {
				fx = (xv - xmin) / span
			}
			pxImg := leftPadImg + float32(fx)*plotWImg
			px := drawX + pxImg*scale
			d := float32(math.Abs(float64(px - x)))
			if d < bestD {
				bestD = d
				idx = i
			}
		}
	}

	r.lineV.Position1 = fyne.NewPos(x, 0)
	r.lineV.Position2 = fyne.NewPos(x, size.Height)
	r.lineH.Position1 = fyne.NewPos(0, y)
	r.lineH.Position2 = fyne.NewPos(size.Width, y)
	r.dot.Resize(fyne.NewSize(6, 6))
	r.dot.Move(fyne.NewPos(x-3, y-3))

	if n > 0 {
		xv := xs[idx]
		lines := []string{r.c.state.roles.X.LabelValue(xv)}
		for _, cv := range cs.Curves {
			if yv, ok := curveYAt(cv.Points, xv); ok {
				lines = append(lines, fmt.Sprintf("%s: %.4f", cv.Label, yv))
			}
		}
		r.label.Segments = []widget.RichTextSegment{&widget.TextSegment{Text: strings.Join(lines, "\n")}}
	} else {
		r.label.Segments = nil
	}
	r.label.Refresh()
	pad := float32(6)
	ts := r.label.MinSize()
	bgW := ts.Width + 2*pad
	bgH := ts.Height + 2*pad
	tx, ty := x+8, y+8
	if tx+bgW > size.Width {
		tx = size.Width - bgW
	}
	if ty+bgH > size.Height {
		ty = size.Height - bgH
	}
	if len(r.label.Segments) == 0 {
		r.labelBG.Resize(fyne.NewSize(0, 0))
		r.labelBG.Move(fyne.NewPos(-1000, -1000))
		r.label.Move(fyne.NewPos(-1000, -1000))
	} else {
		r.labelBG.Resize(fyne.NewSize(bgW, bgH))
		r.labelBG.Move(fyne.NewPos(tx, ty))
		r.label.Move(fyne.NewPos(tx+pad, ty+pad))
	}
}

func (r *crosshairRenderer) MinSize() fyne.Size           { return fyne.NewSize(10, 10) }
func (r *crosshairRenderer) Objects() []fyne.CanvasObject { return r.objs }
func (r *crosshairRenderer) Refresh() {
	r.Layout(r.c.Size())
	if r.bg != nil {
		r.bg.Refresh()
	}
	r.lineV.StrokeColor = theme.Color(theme.ColorNameDisabled)
	r.lineV.StrokeWidth = 1
	r.lineH.StrokeColor = theme.Color(theme.ColorNameDisabled)
	r.lineH.StrokeWidth = 1
	r.lineV.Refresh()
	r.lineH.Refresh()
	r.dot.Refresh()
	if r.labelBG != nil {
		r.labelBG.Refresh()
	}
	r.label.Refresh()
}

func (c *crosshairOverlay) MouseMoved(ev *desktop.MouseEvent) {
	if !c.enabled {
		return
	}
	c.hovering = true
	c.mouse = ev.Position
	c.Refresh()
}
func (c *crosshairOverlay) MouseIn(ev *desktop.MouseEvent) { c.hovering = true; c.Refresh() }
func (c *crosshairOverlay) MouseOut()                      { c.hovering = false; c.Refresh() }

var _ desktop.Hoverable = (*crosshairOverlay)(nil)
