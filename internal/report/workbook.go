package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/salespress/salespress/internal/chart"
)

// WriteXLSX writes the document's tables to a companion workbook, one sheet
// per section that carries tables. Like WritePDF, the write is atomic and
// any failure is returned as a *WriteError.
func (w *Writer) WriteXLSX(doc *Document, path string) error {
	if doc == nil {
		return &WriteError{Err: fmt.Errorf("nil document"), Path: path}
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("Failed to close workbook", "error", err)
		}
	}()

	first := true
	for _, s := range doc.Sections {
		var tables []Table
		for _, b := range s.Blocks {
			if t, ok := b.(Table); ok {
				tables = append(tables, t)
			}
		}
		if len(tables) == 0 {
			continue
		}

		name := sheetName(s.Title)
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return &WriteError{Err: err, Path: path}
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			return &WriteError{Err: err, Path: path}
		}
		if err := writeSheet(f, name, tables); err != nil {
			return &WriteError{Err: err, Path: path}
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return &WriteError{Err: err, Path: path}
	}
	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &WriteError{Err: err, Path: path}
	}
	if err := commit(tmp, path); err != nil {
		return &WriteError{Err: err, Path: path}
	}

	slog.Info("Wrote workbook", "path", path)
	return nil
}

func writeSheet(f *excelize.File, sheet string, tables []Table) error {
	row := 1
	for _, t := range tables {
		if len(t.Header) > 0 {
			for col, h := range t.Header {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(sheet, cell, h); err != nil {
					return err
				}
			}
			if err := styleHeader(f, sheet, row, len(t.Header), t.Accent); err != nil {
				return err
			}
			row++
		}
		for _, cells := range t.Rows {
			for col, v := range cells {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return err
				}
			}
			row++
		}
		// Blank row between tables sharing a sheet.
		row++
	}
	return f.SetColWidth(sheet, "A", "D", 18)
}

func styleHeader(f *excelize.File, sheet string, row, cols int, accent chart.Color) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{hexColor(accent)}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}

func hexColor(c chart.Color) string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// sheetName fits a section title into the 31 character sheet name limit.
func sheetName(title string) string {
	if len(title) > 31 {
		return title[:31]
	}
	return title
}
