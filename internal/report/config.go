// Package report assembles the sales report document and serializes it.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/salespress/salespress/internal/aggregate"
	"github.com/salespress/salespress/internal/common"
)

// Config holds the configuration for report assembly and output.
type Config struct {
	// OutputPath is where the PDF lands. The write is atomic: a temp file
	// in the same directory is renamed over the target.
	OutputPath string
	// Workbook optionally names a companion XLSX path; empty skips it.
	Workbook    string
	Title       string
	Author      string
	TopProducts int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		OutputPath:  "sales_report.pdf",
		Title:       "Annual Sales Report",
		Author:      "Sales Analytics Team",
		TopProducts: aggregate.DefaultTopProducts,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.OutputPath == "" {
		return fmt.Errorf("%w: output path is required", common.ErrMissingConfig)
	}
	if !strings.EqualFold(".pdf", filepath.Ext(c.OutputPath)) {
		return fmt.Errorf("%w: output path must end in .pdf, got %q", common.ErrInvalidConfig, c.OutputPath)
	}
	if c.Workbook != "" && !strings.EqualFold(".xlsx", filepath.Ext(c.Workbook)) {
		return fmt.Errorf("%w: workbook path must end in .xlsx, got %q", common.ErrInvalidConfig, c.Workbook)
	}
	if c.Title == "" {
		return fmt.Errorf("%w: report title is required", common.ErrMissingConfig)
	}
	if c.TopProducts <= 0 {
		return fmt.Errorf("%w: top products must be positive, got %d", common.ErrInvalidConfig, c.TopProducts)
	}
	return nil
}
