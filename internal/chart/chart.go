// Package chart builds bar, pie and line charts as vector drawings and
// paints them onto PDF pages. Geometry is computed when a chart is
// constructed, so layout can be tested without producing a document.
package chart

import (
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/salespress/salespress/internal/model"
)

// Rect is an axis-aligned box, in millimeters, relative to the chart origin.
type Rect struct {
	X, Y, W, H float64
}

// Default chart box sizes in millimeters. Proportions follow the report's
// A4 content width of 180mm.
const (
	DefaultPlotWidth  = 170.0
	DefaultPlotHeight = 95.0
	DefaultPieWidth   = 170.0
	DefaultPieHeight  = 80.0
)

// headroom keeps the tallest bar or line clear of the plot top.
const headroom = 1.15

// gridSteps is how many value-axis intervals every chart uses.
const gridSteps = 5

// scale fixes the value axis for a maximum data value: the axis tops out at
// max*headroom with gridlines every max/gridSteps.
func scale(max float64) (yMax, yStep float64) {
	if max <= 0 {
		return 1, 1.0 / gridSteps
	}
	return max * headroom, max / gridSteps
}

// formatTick renders an axis value compactly, e.g. 1250000 → "$1.25M".
func formatTick(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	case v >= 1e4:
		return fmt.Sprintf("$%.1fk", v/1e3)
	default:
		return "$" + strconv.FormatFloat(model.RoundHalfEven(v, 0), 'f', 0, 64)
	}
}

const (
	greyR = 150
	greyG = 150
	greyB = 150

	gridR = 220
	gridG = 220
	gridB = 220
)

// drawValueAxis paints the horizontal gridlines and tick labels for a plot
// area at page offset (x, y).
func drawValueAxis(pdf *gofpdf.Fpdf, x, y float64, plot Rect, yMax, yStep float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(60, 60, 60)
	pdf.SetLineWidth(0.2)

	for v := 0.0; v <= yMax+1e-9; v += yStep {
		lineY := y + plot.Y + plot.H - (v/yMax)*plot.H
		pdf.SetDrawColor(gridR, gridG, gridB)
		pdf.Line(x+plot.X, lineY, x+plot.X+plot.W, lineY)

		label := formatTick(v)
		pdf.Text(x+plot.X-pdf.GetStringWidth(label)-1.5, lineY+1.0, label)
	}
}

// drawFrame paints the plot border.
func drawFrame(pdf *gofpdf.Fpdf, x, y float64, plot Rect) {
	pdf.SetDrawColor(greyR, greyG, greyB)
	pdf.SetLineWidth(0.3)
	pdf.Rect(x+plot.X, y+plot.Y, plot.W, plot.H, "D")
}

// drawAngledLabel paints text rotated 30 degrees counterclockwise with its
// right end anchored near (x, y), the way crowded axis labels are tilted.
func drawAngledLabel(pdf *gofpdf.Fpdf, x, y float64, text string) {
	pdf.TransformBegin()
	pdf.TransformRotate(30, x, y)
	pdf.Text(x-pdf.GetStringWidth(text), y, text)
	pdf.TransformEnd()
}

// drawVerticalTitle paints an axis title rotated 90 degrees counterclockwise
// around (x, y).
func drawVerticalTitle(pdf *gofpdf.Fpdf, x, y float64, text string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.TransformBegin()
	pdf.TransformRotate(90, x, y)
	pdf.Text(x-pdf.GetStringWidth(text)/2, y, text)
	pdf.TransformEnd()
}

// drawCenteredTitle paints a bold caption centered at (cx, y).
func drawCenteredTitle(pdf *gofpdf.Fpdf, cx, y float64, text string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(cx-pdf.GetStringWidth(text)/2, y, text)
}
