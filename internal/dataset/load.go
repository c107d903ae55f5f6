package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/salespress/salespress/internal/model"
	"github.com/xuri/excelize/v2"
)

// Recognized column headers. Matching is case-insensitive, ignores
// surrounding whitespace and treats underscores as spaces, so "Unit_Price"
// and " unit price " both resolve to unit price.
const (
	colDate      = "date"
	colCategory  = "category"
	colProduct   = "product"
	colCountry   = "country"
	colQuantity  = "quantity"
	colUnitPrice = "unit price"
)

var requiredColumns = []string{colDate, colCategory, colProduct, colCountry, colQuantity, colUnitPrice}

// Date layouts accepted in input files, tried in order.
var dateLayouts = []string{"2006-01-02", time.RFC3339, "01/02/2006"}

// Loader reads sales tables from CSV files and Excel workbooks.
type Loader struct{}

// NewLoader creates a new file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the file at path, dispatching on its extension. Malformed input
// is reported as a *FormatError; a file with headers but no data rows loads
// as an empty table.
func (l *Loader) Load(ctx context.Context, path string) (model.SalesTable, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()
		return l.parseCSV(ctx, f, path)
	case ".xlsx", ".xlsm":
		return l.parseXLSX(ctx, path)
	default:
		return nil, &FormatError{Path: path, Err: fmt.Errorf("unsupported file extension %q", ext)}
	}
}

func (l *Loader) parseCSV(ctx context.Context, r io.Reader, path string) (model.SalesTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &FormatError{Path: path, Err: fmt.Errorf("missing header row")}
	}
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}

	var table model.SalesTable
	for rowNum := 2; ; rowNum++ {
		if rowNum%1000 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &FormatError{Path: path, Row: rowNum, Err: err}
		}

		record, err := parseRecord(row, columns, path, rowNum)
		if err != nil {
			return nil, err
		}
		table = append(table, record)
	}

	slog.Info("Loaded sales data", "path", path, "records", len(table))
	return table, nil
}

func (l *Loader) parseXLSX(ctx context.Context, path string) (model.SalesTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &FormatError{Path: path, Err: fmt.Errorf("failed to open workbook: %w", err)}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close workbook", "path", path, "error", closeErr)
		}
	}()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &FormatError{Path: path, Err: fmt.Errorf("failed to read sheet %q: %w", sheet, err)}
	}
	if len(rows) == 0 {
		return nil, &FormatError{Path: path, Err: fmt.Errorf("missing header row")}
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}

	var table model.SalesTable
	for i, row := range rows[1:] {
		rowNum := i + 2
		if rowNum%1000 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if isBlankRow(row) {
			continue
		}

		record, err := parseRecord(row, columns, path, rowNum)
		if err != nil {
			return nil, err
		}
		table = append(table, record)
	}

	slog.Info("Loaded sales data", "path", path, "sheet", sheet, "records", len(table))
	return table, nil
}

// mapColumns resolves header names to column indexes. Unrecognized columns
// are ignored so files carrying extra columns (totals, notes) still load.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(requiredColumns))
	for i, name := range header {
		normalized := normalizeHeader(name)
		if _, seen := columns[normalized]; !seen {
			columns[normalized] = i
		}
	}

	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return columns, nil
}

func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", " ")
	return strings.Join(strings.Fields(name), " ")
}

func parseRecord(row []string, columns map[string]int, path string, rowNum int) (model.SalesRecord, error) {
	fail := func(column string, err error) (model.SalesRecord, error) {
		return model.SalesRecord{}, &FormatError{Path: path, Row: rowNum, Column: column, Err: err}
	}

	date, err := parseDate(cell(row, columns[colDate]))
	if err != nil {
		return fail(colDate, err)
	}

	quantity, err := parseQuantity(cell(row, columns[colQuantity]))
	if err != nil {
		return fail(colQuantity, err)
	}

	unitPrice, err := parseAmount(cell(row, columns[colUnitPrice]))
	if err != nil {
		return fail(colUnitPrice, err)
	}

	record := model.SalesRecord{
		Date:      date,
		Category:  strings.TrimSpace(cell(row, columns[colCategory])),
		Product:   strings.TrimSpace(cell(row, columns[colProduct])),
		Country:   strings.TrimSpace(cell(row, columns[colCountry])),
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}

	if err := record.Validate(); err != nil {
		return model.SalesRecord{}, &FormatError{Path: path, Row: rowNum, Err: err}
	}
	return record, nil
}

// cell returns the value at idx, tolerating short rows. XLSX readers trim
// trailing empty cells, so rows are often ragged.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, v); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", v)
}

func parseQuantity(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, fmt.Errorf("quantity is empty")
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", v)
	}
	return n, nil
}

// parseAmount accepts plain decimals plus the currency decorations
// spreadsheets tend to add, e.g. "$1,234.50".
func parseAmount(v string) (float64, error) {
	cleaned := strings.TrimSpace(v)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("amount is empty")
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", v)
	}
	return f, nil
}
