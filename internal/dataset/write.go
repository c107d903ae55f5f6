package dataset

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/salespress/salespress/internal/model"
	"github.com/xuri/excelize/v2"
)

// exportHeader is the column layout written by both writers. Total is a
// derived column and is ignored on load.
var exportHeader = []string{"Date", "Category", "Product", "Country", "Quantity", "Unit Price", "Total"}

// WriteCSV writes the table to path as CSV.
func WriteCSV(table model.SalesTable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close CSV file", "path", path, "error", closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range table {
		row := []string{
			r.Date.Format("2006-01-02"),
			r.Category,
			r.Product,
			r.Country,
			strconv.Itoa(r.Quantity),
			strconv.FormatFloat(r.UnitPrice, 'f', 2, 64),
			strconv.FormatFloat(r.Total(), 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// WriteXLSX writes the table to path as a workbook with a single
// "Sales Data" sheet.
func WriteXLSX(table model.SalesTable, path string) error {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close workbook", "path", path, "error", closeErr)
		}
	}()

	const sheet = "Sales Data"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	for i, name := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx, r := range table {
		values := []any{
			r.Date.Format("2006-01-02"),
			r.Category,
			r.Product,
			r.Country,
			r.Quantity,
			r.UnitPrice,
			r.Total(),
		}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", rowIdx+2, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
