package chart

import (
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"
	"github.com/salespress/salespress/internal/common"
	"github.com/salespress/salespress/internal/model"
)

// Slice is one pie wedge. StartDeg is the leading edge in the gofpdf arc
// convention (0 at 3 o'clock, counterclockwise positive); the wedge extends
// clockwise from there by SweepDeg. The first slice always starts at 90,
// straight up.
type Slice struct {
	Label    string
	Value    float64
	Share    float64
	StartDeg float64
	SweepDeg float64
	Color    Color
}

// PieOptions configures a pie chart. Zero sizes fall back to the defaults.
type PieOptions struct {
	Caption string
	Width   float64
	Height  float64
}

// PieChart is a pie with a swatch legend, fully laid out. Slices appear
// clockwise from 12 o'clock in entry order, colored from the palette.
type PieChart struct {
	Caption string
	Slices  []Slice
	Width   float64
	Height  float64
	CX      float64
	CY      float64
	R       float64
}

// NewPieChart lays out a pie for the given entries in their given order. It
// returns common.ErrEmptyView when there are no entries or their values sum
// to zero.
func NewPieChart(entries []model.Entry, opts PieOptions) (*PieChart, error) {
	if len(entries) == 0 {
		return nil, common.ErrEmptyView
	}

	var total float64
	for _, e := range entries {
		total += e.Value
	}
	if total <= 0 {
		return nil, common.ErrEmptyView
	}

	if opts.Width <= 0 {
		opts.Width = DefaultPieWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultPieHeight
	}

	r := opts.Height/2 - 8
	var cum float64
	slices := make([]Slice, len(entries))
	for i, e := range entries {
		share := e.Value / total
		slices[i] = Slice{
			Label:    e.Label,
			Value:    e.Value,
			Share:    share,
			StartDeg: 90 - 360*cum,
			SweepDeg: 360 * share,
			Color:    ColorAt(i),
		}
		cum += share
	}

	return &PieChart{
		Caption: opts.Caption,
		Slices:  slices,
		Width:   opts.Width,
		Height:  opts.Height,
		CX:      r + 10,
		CY:      opts.Height / 2,
		R:       r,
	}, nil
}

// Draw paints the pie and its legend with the chart origin at (x, y).
func (c *PieChart) Draw(pdf *gofpdf.Fpdf, x, y float64) {
	cx, cy := x+c.CX, y+c.CY

	pdf.SetLineWidth(0.3)
	pdf.SetDrawColor(255, 255, 255)
	for _, s := range c.Slices {
		pdf.SetFillColor(s.Color.R, s.Color.G, s.Color.B)
		if s.SweepDeg >= 360-1e-9 {
			pdf.Circle(cx, cy, c.R, "FD")
			continue
		}

		from := s.StartDeg - s.SweepDeg
		rad := from * math.Pi / 180
		pdf.MoveTo(cx, cy)
		pdf.LineTo(cx+c.R*math.Cos(rad), cy-c.R*math.Sin(rad))
		pdf.ArcTo(cx, cy, c.R, c.R, 0, from, s.StartDeg)
		pdf.ClosePath()
		pdf.DrawPath("FD")
	}

	// Legend column to the right of the pie.
	lx := cx + c.R + 12
	ly := y + 8.0
	pdf.SetFont("Helvetica", "", 9)
	for _, s := range c.Slices {
		pdf.SetFillColor(s.Color.R, s.Color.G, s.Color.B)
		pdf.SetDrawColor(120, 120, 120)
		pdf.Rect(lx, ly-3, 4, 4, "FD")

		pdf.SetTextColor(30, 30, 30)
		pdf.Text(lx+6, ly, fmt.Sprintf("%s (%s)", s.Label, model.FormatPercent(s.Share)))
		ly += 5.5
	}

	drawCenteredTitle(pdf, cx, y+c.Height-1, c.Caption)
}
