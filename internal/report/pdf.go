package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/salespress/salespress/internal/chart"
)

// Page geometry in millimeters, A4 portrait.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	pageMargin   = 15.0
	contentWidth = pageWidth - 2*pageMargin
	footerRoom   = 18.0
)

// Type scale in points, leading in millimeters.
const (
	titleSize      = 28.0
	headingSize    = 18.0
	subheadingSize = 14.0
	bodySize       = 11.0
	calloutSize    = 16.0
	tableSize      = 10.0
	footerSize     = 9.0
	bodyLead       = 5.6
	paraGap        = 2.8
)

const tableColWidth = 55.0

var (
	inkBlack  = chart.Color{R: 0, G: 0, B: 0}
	darkBlue  = chart.Color{R: 0, G: 0, B: 139}
	darkGreen = chart.Color{R: 0, G: 100, B: 0}
	grey      = chart.Color{R: 128, G: 128, B: 128}
	white     = chart.Color{R: 255, G: 255, B: 255}
)

// Writer serializes an assembled document into report artifacts. Writes are
// atomic: content lands in a temp file next to the destination and is
// renamed into place only once fully flushed, so a failed run never leaves
// a partial report behind.
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

// WritePDF renders the document and writes it to path. Any failure is
// returned as a *WriteError and leaves no artifact at path.
func (w *Writer) WritePDF(doc *Document, path string) error {
	if doc == nil {
		return &WriteError{Err: fmt.Errorf("nil document"), Path: path}
	}

	r := newRenderer(doc)
	r.render(doc)
	if err := r.pdf.Error(); err != nil {
		return &WriteError{Err: err, Path: path}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return &WriteError{Err: err, Path: path}
	}
	if err := r.pdf.Output(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &WriteError{Err: err, Path: path}
	}
	if err := commit(tmp, path); err != nil {
		return &WriteError{Err: err, Path: path}
	}

	slog.Info("Wrote PDF report", "path", path, "pages", r.pdf.PageCount())
	return nil
}

// commit flushes tmp and renames it over path, removing the temp file on
// any failure so nothing half-written survives.
func commit(tmp *os.File, path string) error {
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// renderer walks document blocks onto pages, keeping tables and charts
// whole across page breaks.
type renderer struct {
	pdf *gofpdf.Fpdf
}

func newRenderer(doc *Document) *renderer {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	// Pinned to the document timestamp so identical inputs produce
	// byte-identical artifacts.
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, footerRoom)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-13)
		pdf.SetFont("Helvetica", "", footerSize)
		pdf.SetTextColor(grey.R, grey.G, grey.B)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()
	return &renderer{pdf: pdf}
}

func (r *renderer) render(doc *Document) {
	for _, s := range doc.Sections {
		for _, b := range s.Blocks {
			r.block(b)
		}
	}
}

func (r *renderer) block(b Block) {
	switch v := b.(type) {
	case TitleBlock:
		r.title(v)
	case Heading:
		r.heading(v)
	case Subheading:
		r.subheading(v)
	case Paragraph:
		r.paragraph(v)
	case Callout:
		r.callout(v)
	case Rule:
		r.rule(v)
	case PageBreak:
		r.pageBreak()
	case Table:
		r.table(v)
	case BarBlock:
		r.chart(v.Chart.Width, v.Chart.Height, func(x, y float64) { v.Chart.Draw(r.pdf, x, y) })
	case PieBlock:
		r.chart(v.Chart.Width, v.Chart.Height, func(x, y float64) { v.Chart.Draw(r.pdf, x, y) })
	case LineBlock:
		r.chart(v.Chart.Width, v.Chart.Height, func(x, y float64) { v.Chart.Draw(r.pdf, x, y) })
	}
}

// ensureRoom starts a new page when fewer than h millimeters remain above
// the footer.
func (r *renderer) ensureRoom(h float64) {
	if r.pdf.GetY()+h > pageHeight-footerRoom {
		r.pdf.AddPage()
	}
}

// pageBreak is a no-op on a still-empty page, so an explicit break right
// after an overflow break does not produce a blank page.
func (r *renderer) pageBreak() {
	if r.pdf.GetY() > pageMargin+0.1 {
		r.pdf.AddPage()
	}
}

func (r *renderer) title(b TitleBlock) {
	r.pdf.SetFont("Helvetica", "B", titleSize)
	r.text(inkBlack)
	r.pdf.CellFormat(contentWidth, 14, b.Text, "", 1, "C", false, 0, "")
	r.pdf.Ln(6)
}

func (r *renderer) heading(b Heading) {
	r.ensureRoom(30)
	r.pdf.SetFont("Helvetica", "B", headingSize)
	r.text(darkBlue)
	r.pdf.CellFormat(contentWidth, 9, b.Text, "", 1, "L", false, 0, "")
	r.pdf.Ln(3)
}

func (r *renderer) subheading(b Subheading) {
	r.ensureRoom(20)
	r.pdf.SetFont("Helvetica", "B", subheadingSize)
	r.text(darkGreen)
	r.pdf.CellFormat(contentWidth, 7, b.Text, "", 1, "L", false, 0, "")
	r.pdf.Ln(2)
}

func (r *renderer) paragraph(b Paragraph) {
	r.ensureRoom(3 * bodyLead)
	r.text(inkBlack)
	r.pdf.SetX(pageMargin)
	if b.Lead != "" {
		r.pdf.SetFont("Helvetica", "B", bodySize)
		r.pdf.Write(bodyLead, b.Lead+" ")
	}
	r.pdf.SetFont("Helvetica", "", bodySize)
	r.pdf.Write(bodyLead, b.Text)
	r.pdf.Ln(bodyLead)
	r.pdf.Ln(paraGap)
}

func (r *renderer) callout(b Callout) {
	r.ensureRoom(14)
	r.pdf.SetX(pageMargin)
	r.pdf.SetFont("Helvetica", "B", headingSize)
	r.text(darkBlue)
	r.pdf.Write(8, b.Label+": ")
	r.pdf.SetFont("Helvetica", "", calloutSize)
	r.text(darkGreen)
	r.pdf.Write(8, b.Value)
	r.pdf.Ln(8)
	r.pdf.Ln(4)
}

func (r *renderer) rule(b Rule) {
	pad := 2.0
	if b.Heavy {
		pad = 7.0
	}
	r.ensureRoom(2*pad + 2)
	r.pdf.Ln(pad)
	y := r.pdf.GetY()
	if b.Heavy {
		r.draw(darkBlue)
		r.pdf.SetLineWidth(0.7)
	} else {
		r.draw(grey)
		r.pdf.SetLineWidth(0.35)
	}
	r.pdf.Line(pageMargin, y, pageWidth-pageMargin, y)
	r.pdf.Ln(pad)
}

func (r *renderer) table(t Table) {
	header, body := t.Header, t.Rows
	keyValue := len(header) == 0
	if keyValue {
		if len(body) == 0 {
			return
		}
		header, body = body[0], body[1:]
	}

	widths := t.ColWidths
	for len(widths) < len(header) {
		widths = append(widths, tableColWidth)
	}
	var tableWidth float64
	for _, w := range widths {
		tableWidth += w
	}

	rowH := 7.0
	height := rowH*float64(len(body)+1) + 5
	if limit := pageHeight - pageMargin - footerRoom; height > limit {
		height = limit
	}
	r.ensureRoom(height)

	x0 := pageMargin + (contentWidth-tableWidth)/2
	r.draw(grey)
	r.pdf.SetLineWidth(0.3)

	r.fill(t.Accent)
	if keyValue {
		// First data row promoted to header styling keeps dark text.
		r.text(inkBlack)
		r.pdf.SetFont("Helvetica", "B", tableSize+2)
	} else {
		r.text(white)
		r.pdf.SetFont("Helvetica", "", tableSize)
	}
	r.row(x0, widths, rowH+1, header)

	r.fill(t.Tint)
	r.text(inkBlack)
	r.pdf.SetFont("Helvetica", "", tableSize)
	for _, cells := range body {
		r.row(x0, widths, rowH, cells)
	}
	r.pdf.Ln(5)
}

func (r *renderer) row(x0 float64, widths []float64, h float64, cells []string) {
	r.pdf.SetX(x0)
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		r.pdf.CellFormat(w, h, cell, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(h)
}

func (r *renderer) chart(width, height float64, draw func(x, y float64)) {
	r.ensureRoom(height + 4)
	x := pageMargin + (contentWidth-width)/2
	y := r.pdf.GetY()
	draw(x, y)
	r.pdf.SetY(y + height + 4)
}

func (r *renderer) text(c chart.Color) { r.pdf.SetTextColor(c.R, c.G, c.B) }
func (r *renderer) fill(c chart.Color) { r.pdf.SetFillColor(c.R, c.G, c.B) }
func (r *renderer) draw(c chart.Color) { r.pdf.SetDrawColor(c.R, c.G, c.B) }
