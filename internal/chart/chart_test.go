package chart

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/salespress/salespress/internal/common"
	"github.com/salespress/salespress/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(pairs ...any) []model.Entry {
	out := make([]model.Entry, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, model.Entry{Label: pairs[i].(string), Value: pairs[i+1].(float64), Count: 1})
	}
	return out
}

func TestNewBarChartEmpty(t *testing.T) {
	_, err := NewBarChart(nil, BarOptions{})
	assert.ErrorIs(t, err, common.ErrEmptyView)
}

func TestNewBarChartSingleEntry(t *testing.T) {
	c, err := NewBarChart(entries("only", 100.0), BarOptions{})
	require.NoError(t, err)
	require.Len(t, c.Bars, 1)

	plotH := DefaultPlotHeight - barInsetTop - barInsetBottom
	assert.InDelta(t, plotH/1.15, c.Bars[0].H, 1e-9, "single bar fills the plot up to the headroom")
	assert.Positive(t, c.Bars[0].W)
	assert.InDelta(t, 115.0, c.YMax, 1e-9)
	assert.InDelta(t, 20.0, c.YStep, 1e-9)
}

func TestNewBarChartProportionalHeights(t *testing.T) {
	c, err := NewBarChart(entries("big", 100.0, "half", 50.0, "tenth", 10.0), BarOptions{})
	require.NoError(t, err)
	require.Len(t, c.Bars, 3)

	assert.InDelta(t, 2.0, c.Bars[0].H/c.Bars[1].H, 1e-9)
	assert.InDelta(t, 10.0, c.Bars[0].H/c.Bars[2].H, 1e-9)

	// Bars keep the entry order and sit inside the plot area.
	assert.Equal(t, "big", c.Bars[0].Label)
	for _, b := range c.Bars {
		assert.GreaterOrEqual(t, b.X, barInsetLeft)
		assert.LessOrEqual(t, b.X+b.W, DefaultPlotWidth-barInsetRight+1e-9)
		assert.GreaterOrEqual(t, b.Y, barInsetTop-1e-9)
	}
}

func TestNewBarChartDeterminism(t *testing.T) {
	in := entries("a", 30.0, "b", 20.0, "c", 10.0)
	first, err := NewBarChart(in, BarOptions{})
	require.NoError(t, err)
	second, err := NewBarChart(in, BarOptions{})
	require.NoError(t, err)
	assert.True(t, reflect.DeepEqual(first, second))
}

func TestNewPieChartEmpty(t *testing.T) {
	_, err := NewPieChart(nil, PieOptions{})
	assert.ErrorIs(t, err, common.ErrEmptyView)

	_, err = NewPieChart(entries("zero", 0.0), PieOptions{})
	assert.ErrorIs(t, err, common.ErrEmptyView)
}

func TestNewPieChartSingleSlice(t *testing.T) {
	c, err := NewPieChart(entries("all", 42.0), PieOptions{})
	require.NoError(t, err)
	require.Len(t, c.Slices, 1)

	s := c.Slices[0]
	assert.InDelta(t, 90.0, s.StartDeg, 1e-9, "slices start at 12 o'clock")
	assert.InDelta(t, 360.0, s.SweepDeg, 1e-9, "a lone slice is the whole pie")
	assert.InDelta(t, 1.0, s.Share, 1e-9)
}

func TestNewPieChartSweepsCoverCircle(t *testing.T) {
	c, err := NewPieChart(entries("a", 50.0, "b", 30.0, "c", 20.0), PieOptions{})
	require.NoError(t, err)

	var sweep, share float64
	for _, s := range c.Slices {
		sweep += s.SweepDeg
		share += s.Share
	}
	assert.InDelta(t, 360.0, sweep, 1e-9)
	assert.InDelta(t, 1.0, share, 1e-9)

	assert.InDelta(t, 90.0, c.Slices[0].StartDeg, 1e-9)
	assert.InDelta(t, 90.0-180.0, c.Slices[1].StartDeg, 1e-9, "second slice starts where the first ends")
	assert.InDelta(t, 180.0, c.Slices[0].SweepDeg, 1e-9)
}

func TestPieChartColorsFollowEntryOrder(t *testing.T) {
	in := make([]model.Entry, 14)
	for i := range in {
		in[i] = model.Entry{Label: fmt.Sprintf("label-%d", i), Value: 1.0}
	}

	c, err := NewPieChart(in, PieOptions{})
	require.NoError(t, err)

	for i, s := range c.Slices {
		assert.Equal(t, Palette[i%len(Palette)], s.Color, "slice %d", i)
	}
	// The wheel cycles once exhausted.
	assert.Equal(t, Palette[0], c.Slices[12].Color)
	assert.Equal(t, Palette[1], c.Slices[13].Color)
}

func TestColorAt(t *testing.T) {
	assert.Equal(t, Palette[0], ColorAt(0))
	assert.Equal(t, Palette[3], ColorAt(3))
	assert.Equal(t, Palette[0], ColorAt(len(Palette)))
	assert.Equal(t, Palette[2], ColorAt(len(Palette)+2))
}

func TestNewLineChartEmpty(t *testing.T) {
	_, err := NewLineChart(nil, []Series{{Label: "a", Values: nil}}, LineOptions{})
	assert.ErrorIs(t, err, common.ErrEmptyView)

	_, err = NewLineChart([]string{"2024-01"}, nil, LineOptions{})
	assert.ErrorIs(t, err, common.ErrEmptyView)
}

func TestNewLineChartMisalignedSeries(t *testing.T) {
	_, err := NewLineChart([]string{"2024-01", "2024-02"}, []Series{{Label: "a", Values: []float64{1.0}}}, LineOptions{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrEmptyView)
}

func TestNewLineChartGeometry(t *testing.T) {
	months := []string{"2024-01", "2024-02", "2024-03"}
	c, err := NewLineChart(months, []Series{
		{Label: "a", Values: []float64{10.0, 30.0, 20.0}},
		{Label: "b", Values: []float64{5.0, 5.0, 5.0}},
	}, LineOptions{})
	require.NoError(t, err)
	require.Len(t, c.Lines, 2)
	require.Len(t, c.Lines[0].Points, 3)

	// Higher values sit higher on the page, meaning a smaller y.
	pts := c.Lines[0].Points
	assert.Less(t, pts[1].Y, pts[0].Y)
	assert.Less(t, pts[2].Y, pts[0].Y)
	assert.Greater(t, pts[2].Y, pts[1].Y)

	// X positions advance left to right across the plot.
	assert.Less(t, pts[0].X, pts[1].X)
	assert.Less(t, pts[1].X, pts[2].X)

	assert.Equal(t, Palette[0], c.Lines[0].Color)
	assert.Equal(t, Palette[1], c.Lines[1].Color)
	assert.InDelta(t, 30.0*1.15, c.YMax, 1e-9)
}

func TestNewLineChartSingleMonth(t *testing.T) {
	c, err := NewLineChart([]string{"2024-06"}, []Series{{Label: "a", Values: []float64{12.0}}}, LineOptions{})
	require.NoError(t, err)
	require.Len(t, c.Lines[0].Points, 1)

	plotW := DefaultPlotWidth - barInsetLeft - barInsetRight
	assert.InDelta(t, barInsetLeft+plotW/2, c.Lines[0].Points[0].X, 1e-9, "a lone month sits mid-plot")
}

func TestChartsDrawWithoutError(t *testing.T) {
	bar, err := NewBarChart(entries("a", 100.0, "b", 60.0), BarOptions{XTitle: "Category", YTitle: "Sales"})
	require.NoError(t, err)
	pie, err := NewPieChart(entries("a", 100.0, "b", 60.0), PieOptions{Caption: "Share"})
	require.NoError(t, err)
	line, err := NewLineChart([]string{"2024-01", "2024-02"}, []Series{
		{Label: "a", Values: []float64{10.0, 20.0}},
	}, LineOptions{XTitle: "Month", YTitle: "Sales"})
	require.NoError(t, err)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	bar.Draw(pdf, 20, 20)
	pie.Draw(pdf, 20, 130)
	pdf.AddPage()
	line.Draw(pdf, 20, 20)
	require.False(t, pdf.Err(), "draw failed: %v", pdf.Error())

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	assert.Positive(t, buf.Len())
}
