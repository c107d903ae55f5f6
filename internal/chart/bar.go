package chart

import (
	"github.com/jung-kurt/gofpdf"
	"github.com/salespress/salespress/internal/common"
	"github.com/salespress/salespress/internal/model"
)

// Plot insets leave room for tick labels, angled category labels and axis
// titles.
const (
	barInsetLeft   = 26.0
	barInsetRight  = 6.0
	barInsetTop    = 4.0
	barInsetBottom = 20.0
)

// Bar is one rendered bar, positioned relative to the chart origin.
type Bar struct {
	Label string
	Value float64
	X, Y  float64
	W, H  float64
}

// BarOptions configures a bar chart. Zero sizes fall back to the defaults
// and zero colors to the first palette entry.
type BarOptions struct {
	XTitle string
	YTitle string
	Fill   Color
	Stroke Color
	Width  float64
	Height float64
}

// BarChart is a vertical bar chart with fully computed layout. Bar heights
// are proportional to value, sharing a single scale topped at the maximum
// value plus headroom.
type BarChart struct {
	XTitle string
	YTitle string
	Bars   []Bar
	Fill   Color
	Stroke Color
	Width  float64
	Height float64
	YMax   float64
	YStep  float64
	plot   Rect
}

// NewBarChart lays out a vertical bar chart for the given entries in their
// given order. It returns common.ErrEmptyView when there is nothing to draw.
func NewBarChart(entries []model.Entry, opts BarOptions) (*BarChart, error) {
	if len(entries) == 0 {
		return nil, common.ErrEmptyView
	}
	if opts.Width <= 0 {
		opts.Width = DefaultPlotWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultPlotHeight
	}
	if opts.Fill == (Color{}) {
		opts.Fill = Palette[0]
	}
	if opts.Stroke == (Color{}) {
		opts.Stroke = opts.Fill
	}

	plot := Rect{
		X: barInsetLeft,
		Y: barInsetTop,
		W: opts.Width - barInsetLeft - barInsetRight,
		H: opts.Height - barInsetTop - barInsetBottom,
	}

	var max float64
	for _, e := range entries {
		if e.Value > max {
			max = e.Value
		}
	}
	yMax, yStep := scale(max)

	group := plot.W / float64(len(entries))
	bars := make([]Bar, len(entries))
	for i, e := range entries {
		h := (e.Value / yMax) * plot.H
		bars[i] = Bar{
			Label: e.Label,
			Value: e.Value,
			X:     plot.X + float64(i)*group + group*0.2,
			Y:     plot.Y + plot.H - h,
			W:     group * 0.6,
			H:     h,
		}
	}

	return &BarChart{
		XTitle: opts.XTitle,
		YTitle: opts.YTitle,
		Bars:   bars,
		Fill:   opts.Fill,
		Stroke: opts.Stroke,
		Width:  opts.Width,
		Height: opts.Height,
		YMax:   yMax,
		YStep:  yStep,
		plot:   plot,
	}, nil
}

// Draw paints the chart with its origin at (x, y) on the current page.
func (c *BarChart) Draw(pdf *gofpdf.Fpdf, x, y float64) {
	drawValueAxis(pdf, x, y, c.plot, c.YMax, c.YStep)
	drawFrame(pdf, x, y, c.plot)

	pdf.SetFillColor(c.Fill.R, c.Fill.G, c.Fill.B)
	pdf.SetDrawColor(c.Stroke.R, c.Stroke.G, c.Stroke.B)
	pdf.SetLineWidth(0.4)
	for _, b := range c.Bars {
		pdf.Rect(x+b.X, y+b.Y, b.W, b.H, "FD")
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(60, 60, 60)
	for _, b := range c.Bars {
		drawAngledLabel(pdf, x+b.X+b.W/2, y+c.plot.Y+c.plot.H+4, b.Label)
	}

	drawCenteredTitle(pdf, x+c.plot.X+c.plot.W/2, y+c.Height-1, c.XTitle)
	drawVerticalTitle(pdf, x+4, y+c.plot.Y+c.plot.H/2, c.YTitle)
}
