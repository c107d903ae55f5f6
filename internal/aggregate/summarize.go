// Package aggregate condenses a sales table into the views, rankings and
// trends the report renders.
package aggregate

import (
	"log/slog"
	"time"

	"github.com/salespress/salespress/internal/common"
	"github.com/salespress/salespress/internal/model"
)

// DefaultTopProducts is the ranking depth used when none is configured.
const DefaultTopProducts = 5

// trendLeaders is how many leading categories and countries get a line in
// the monthly trend charts.
const trendLeaders = 3

// Bundle holds every aggregate the report consumes, computed in one pass
// over the table. Category and country views are ordered by descending
// revenue, the month view chronologically; chart colors follow those orders.
type Bundle struct {
	ByCategory *model.AggregateView
	ByCountry  *model.AggregateView
	ByProduct  *model.AggregateView
	ByMonth    *model.AggregateView

	TopProducts   model.RankedList
	TopCategories model.RankedList
	TopCountries  model.RankedList

	CategoryTrend *Trend
	ProductTrend  *Trend
	CountryTrend  *Trend

	Start time.Time
	End   time.Time

	GrandTotal  float64
	AverageSale float64
	Records     int
}

// Year returns the calendar year the data opens in.
func (b *Bundle) Year() int {
	return b.Start.Year()
}

// TopCategory returns the leading category entry, or nil when the bundle is
// somehow empty.
func (b *Bundle) TopCategory() *model.Entry {
	return b.TopCategories.Top()
}

// Summarize computes the full aggregate bundle for a table. It returns
// common.ErrEmptyDataset when the table has no records. A non-positive
// topProducts falls back to DefaultTopProducts.
func Summarize(table model.SalesTable, topProducts int) (*Bundle, error) {
	if len(table) == 0 {
		return nil, common.ErrEmptyDataset
	}
	if topProducts <= 0 {
		topProducts = DefaultTopProducts
	}

	byCategory := model.NewAggregateView("Sales by Category")
	byCountry := model.NewAggregateView("Sales by Country")
	byProduct := model.NewAggregateView("Sales by Product")
	byMonth := model.NewAggregateView("Monthly Sales")

	for _, r := range table {
		total := r.Total()
		byCategory.Add(r.Category, total)
		byCountry.Add(r.Country, total)
		byProduct.Add(r.Product, total)
		byMonth.Add(r.Month(), total)
	}

	// Fix display order once so every consumer, tables and chart colors
	// alike, sees the same sequence.
	byCategory = model.NewAggregateViewFromEntries(byCategory.Name(), byCategory.SortedDesc())
	byCountry = model.NewAggregateViewFromEntries(byCountry.Name(), byCountry.SortedDesc())
	byProduct = model.NewAggregateViewFromEntries(byProduct.Name(), byProduct.SortedDesc())
	byMonth = model.NewAggregateViewFromEntries(byMonth.Name(), byMonth.SortedByLabel())

	grandTotal := table.GrandTotal()
	start, end := table.Period()
	topList := model.Rank(byProduct, topProducts)
	topCats := model.Rank(byCategory, trendLeaders)
	topCountries := model.Rank(byCountry, trendLeaders)
	months := byMonth.Labels()

	b := &Bundle{
		ByCategory:    byCategory,
		ByCountry:     byCountry,
		ByProduct:     byProduct,
		ByMonth:       byMonth,
		TopProducts:   topList,
		TopCategories: topCats,
		TopCountries:  topCountries,
		CategoryTrend: buildTrend(table, months, topCats.Labels(), categoryOf),
		ProductTrend:  buildTrend(table, months, topList.Labels(), productOf),
		CountryTrend:  buildTrend(table, months, topCountries.Labels(), countryOf),
		Start:         start,
		End:           end,
		GrandTotal:    grandTotal,
		AverageSale:   grandTotal / float64(len(table)),
		Records:       len(table),
	}

	slog.Info("Summarized sales data",
		"records", b.Records,
		"categories", byCategory.Len(),
		"countries", byCountry.Len(),
		"products", byProduct.Len(),
		"months", byMonth.Len(),
		"grand_total", b.GrandTotal)

	return b, nil
}

func categoryOf(r model.SalesRecord) string { return r.Category }
func productOf(r model.SalesRecord) string  { return r.Product }
func countryOf(r model.SalesRecord) string  { return r.Country }
