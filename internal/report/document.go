package report

import (
	"time"

	"github.com/salespress/salespress/internal/chart"
)

// Block is one renderable element inside a section. The PDF writer walks
// blocks in order and decides page placement; tables and charts are never
// split across pages.
type Block interface {
	isBlock()
}

// TitleBlock is the large centered report title on the cover.
type TitleBlock struct {
	Text string
}

// Heading opens a major section.
type Heading struct {
	Text string
}

// Subheading labels a chart or table inside a section.
type Subheading struct {
	Text string
}

// Paragraph is running body text. A non-empty Lead is rendered bold ahead
// of the text, for labeled lines like "Generated on:".
type Paragraph struct {
	Lead string
	Text string
}

// Callout is a short highlighted line, like the cover's grand total. The
// label renders in heading style, the value larger and in the accent green.
type Callout struct {
	Label string
	Value string
}

// Rule is a horizontal divider.
type Rule struct {
	Heavy bool
}

// PageBreak forces the next block onto a new page.
type PageBreak struct{}

// Table is a grid with an optional header row. When Header is empty the
// first data row takes the header styling instead, key-value style.
// ColWidths are in millimeters; unset columns default to a uniform width.
type Table struct {
	Header    []string
	Rows      [][]string
	ColWidths []float64
	Accent    chart.Color
	Tint      chart.Color
}

// BarBlock embeds a computed bar chart.
type BarBlock struct {
	Chart *chart.BarChart
}

// PieBlock embeds a computed pie chart.
type PieBlock struct {
	Chart *chart.PieChart
}

// LineBlock embeds a computed line chart.
type LineBlock struct {
	Chart *chart.LineChart
}

func (TitleBlock) isBlock() {}
func (Heading) isBlock()    {}
func (Subheading) isBlock() {}
func (Paragraph) isBlock()  {}
func (Callout) isBlock()    {}
func (Rule) isBlock()       {}
func (PageBreak) isBlock()  {}
func (Table) isBlock()      {}
func (BarBlock) isBlock()   {}
func (PieBlock) isBlock()   {}
func (LineBlock) isBlock()  {}

// Section is a titled run of blocks.
type Section struct {
	Title  string
	Blocks []Block
}

// Document is the fully assembled report, ready to serialize. Assembly is
// deterministic: the same bundle and config always produce the same
// sections in the same order.
type Document struct {
	GeneratedAt time.Time
	Title       string
	Author      string
	Sections    []Section
}

// Blocks returns every block in section order.
func (d *Document) Blocks() []Block {
	var out []Block
	for _, s := range d.Sections {
		out = append(out, s.Blocks...)
	}
	return out
}
