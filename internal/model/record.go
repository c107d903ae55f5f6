package model

import (
	"fmt"
	"time"
)

// SalesRecord represents a single sales transaction from any source.
type SalesRecord struct {
	Date      time.Time
	Category  string
	Product   string
	Country   string
	Quantity  int
	UnitPrice float64
}

// Total returns the revenue of the record (quantity × unit price).
func (r SalesRecord) Total() float64 {
	return float64(r.Quantity) * r.UnitPrice
}

// Month returns the calendar-month bucket label for the record, e.g. "2024-03".
func (r SalesRecord) Month() string {
	return r.Date.Format("2006-01")
}

// Validate ensures the record has usable field values.
func (r SalesRecord) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if r.Category == "" {
		return fmt.Errorf("category is required")
	}
	if r.Product == "" {
		return fmt.Errorf("product is required")
	}
	if r.Country == "" {
		return fmt.Errorf("country is required")
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", r.Quantity)
	}
	if r.UnitPrice <= 0 {
		return fmt.Errorf("unit price must be positive, got %.2f", r.UnitPrice)
	}
	return nil
}

// SalesTable is the in-memory dataset for one reporting run. It is built once
// by a data source and read-only afterward.
type SalesTable []SalesRecord

// GrandTotal sums the revenue of every record in the table.
func (t SalesTable) GrandTotal() float64 {
	var total float64
	for _, r := range t {
		total += r.Total()
	}
	return total
}

// Period returns the earliest and latest record dates. Both are zero when the
// table is empty.
func (t SalesTable) Period() (start, end time.Time) {
	for _, r := range t {
		if start.IsZero() || r.Date.Before(start) {
			start = r.Date
		}
		if end.IsZero() || r.Date.After(end) {
			end = r.Date
		}
	}
	return start, end
}
