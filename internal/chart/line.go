package chart

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/salespress/salespress/internal/common"
)

const lineInsetBottom = 16.0

// Series is one labeled run of values, aligned to the chart's month labels.
type Series struct {
	Label  string
	Values []float64
}

// LinePoint is a polyline vertex relative to the chart origin.
type LinePoint struct {
	X, Y float64
}

// Line is one computed polyline.
type Line struct {
	Label  string
	Color  Color
	Points []LinePoint
}

// LineOptions configures a line chart. Zero sizes fall back to the defaults.
type LineOptions struct {
	XTitle string
	YTitle string
	Width  float64
	Height float64
}

// LineChart plots one polyline per series over a shared month axis.
type LineChart struct {
	XTitle string
	YTitle string
	Months []string
	Lines  []Line
	Width  float64
	Height float64
	YMax   float64
	YStep  float64
	plot   Rect
}

// NewLineChart lays out polylines for the given series over the month axis.
// Every series must carry exactly one value per month. It returns
// common.ErrEmptyView when there are no months or no series.
func NewLineChart(months []string, series []Series, opts LineOptions) (*LineChart, error) {
	if len(months) == 0 || len(series) == 0 {
		return nil, common.ErrEmptyView
	}
	for _, s := range series {
		if len(s.Values) != len(months) {
			return nil, fmt.Errorf("series %q has %d values for %d months", s.Label, len(s.Values), len(months))
		}
	}

	if opts.Width <= 0 {
		opts.Width = DefaultPlotWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultPlotHeight
	}

	plot := Rect{
		X: barInsetLeft,
		Y: barInsetTop,
		W: opts.Width - barInsetLeft - barInsetRight,
		H: opts.Height - barInsetTop - lineInsetBottom,
	}

	var max float64
	for _, s := range series {
		for _, v := range s.Values {
			if v > max {
				max = v
			}
		}
	}
	yMax, yStep := scale(max)

	lines := make([]Line, len(series))
	for i, s := range series {
		points := make([]LinePoint, len(months))
		for j, v := range s.Values {
			points[j] = LinePoint{
				X: plot.X + xAt(j, len(months), plot.W),
				Y: plot.Y + plot.H - (v/yMax)*plot.H,
			}
		}
		lines[i] = Line{Label: s.Label, Color: ColorAt(i), Points: points}
	}

	return &LineChart{
		XTitle: opts.XTitle,
		YTitle: opts.YTitle,
		Months: months,
		Lines:  lines,
		Width:  opts.Width,
		Height: opts.Height,
		YMax:   yMax,
		YStep:  yStep,
		plot:   plot,
	}, nil
}

// xAt spreads n columns across width w; a single column sits in the middle.
func xAt(i, n int, w float64) float64 {
	if n == 1 {
		return w / 2
	}
	return float64(i) / float64(n-1) * w
}

// Draw paints the chart with its origin at (x, y) on the current page.
func (c *LineChart) Draw(pdf *gofpdf.Fpdf, x, y float64) {
	drawValueAxis(pdf, x, y, c.plot, c.YMax, c.YStep)

	// Vertical gridline per month.
	pdf.SetDrawColor(gridR, gridG, gridB)
	pdf.SetLineWidth(0.2)
	for i := range c.Months {
		mx := x + c.plot.X + xAt(i, len(c.Months), c.plot.W)
		pdf.Line(mx, y+c.plot.Y, mx, y+c.plot.Y+c.plot.H)
	}

	drawFrame(pdf, x, y, c.plot)

	pdf.SetLineWidth(0.5)
	for _, line := range c.Lines {
		pdf.SetDrawColor(line.Color.R, line.Color.G, line.Color.B)
		for i := 1; i < len(line.Points); i++ {
			prev, cur := line.Points[i-1], line.Points[i]
			pdf.Line(x+prev.X, y+prev.Y, x+cur.X, y+cur.Y)
		}
		if len(line.Points) == 1 {
			p := line.Points[0]
			pdf.SetFillColor(line.Color.R, line.Color.G, line.Color.B)
			pdf.Circle(x+p.X, y+p.Y, 0.8, "F")
		}
	}

	// Month labels, angled when the axis gets crowded.
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(60, 60, 60)
	angled := len(c.Months) > 6
	for i, m := range c.Months {
		mx := x + c.plot.X + xAt(i, len(c.Months), c.plot.W)
		my := y + c.plot.Y + c.plot.H + 4
		if angled {
			drawAngledLabel(pdf, mx, my, m)
		} else {
			pdf.Text(mx-pdf.GetStringWidth(m)/2, my, m)
		}
	}

	// Legend in the top-right corner of the plot.
	pdf.SetFont("Helvetica", "", 8)
	for i, line := range c.Lines {
		ly := y + c.plot.Y + 4 + float64(i)*4.5
		textX := x + c.plot.X + c.plot.W - 3 - pdf.GetStringWidth(line.Label)

		pdf.SetDrawColor(line.Color.R, line.Color.G, line.Color.B)
		pdf.SetLineWidth(0.8)
		pdf.Line(textX-7, ly-1, textX-2, ly-1)

		pdf.SetTextColor(30, 30, 30)
		pdf.Text(textX, ly, line.Label)
	}

	drawCenteredTitle(pdf, x+c.plot.X+c.plot.W/2, y+c.Height-1, c.XTitle)
	drawVerticalTitle(pdf, x+4, y+c.plot.Y+c.plot.H/2, c.YTitle)
}
