package report

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/salespress/salespress/internal/aggregate"
	"github.com/salespress/salespress/internal/chart"
	"github.com/salespress/salespress/internal/common"
	"github.com/salespress/salespress/internal/model"
)

// Section accent colors, one family per section.
var (
	categoryFill   = chart.Color{R: 59, G: 89, B: 152}   // #3b5998
	categoryStroke = chart.Color{R: 26, G: 35, B: 126}   // #1a237e
	categoryTint   = chart.Color{R: 234, G: 238, B: 248} // #eaeef8
	productFill    = chart.Color{R: 0, G: 167, B: 157}   // #00a79d
	productStroke  = chart.Color{R: 0, G: 105, B: 92}    // #00695c
	productTint    = chart.Color{R: 224, G: 247, B: 250} // #e0f7fa
	countryFill    = chart.Color{R: 243, G: 156, B: 18}  // #f39c12
	countryStroke  = chart.Color{R: 179, G: 84, B: 0}    // #b35400
	regionAccent   = chart.Color{R: 39, G: 174, B: 96}   // #27ae60
	regionTint     = chart.Color{R: 234, G: 250, B: 241} // #eafaf1
	monthFill      = chart.Color{R: 155, G: 89, B: 182}  // #9b59b6
	monthStroke    = chart.Color{R: 81, G: 45, B: 168}   // #512da8
	monthTint      = chart.Color{R: 245, G: 234, B: 247} // #f5eaf7
	metricsAccent  = chart.Color{R: 173, G: 216, B: 230}
	metricsTint    = chart.Color{R: 245, G: 245, B: 245}
)

// placeholderText replaces a chart whose view turned out empty. The run
// keeps going; only the one visualization is dropped.
const placeholderText = "No data is available for this chart."

// Assemble builds the report document from an aggregate bundle. Charts over
// empty views degrade to a placeholder note instead of failing the run; any
// other chart construction failure aborts assembly.
func Assemble(b *aggregate.Bundle, cfg Config, generatedAt time.Time) (*Document, error) {
	if b == nil {
		return nil, fmt.Errorf("nil aggregate bundle")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report config: %w", err)
	}

	a := &assembler{b: b}
	doc := &Document{
		Title:       cfg.Title,
		Author:      cfg.Author,
		GeneratedAt: generatedAt,
		Sections: []Section{
			a.overview(cfg, generatedAt),
			a.categories(),
			a.products(),
			a.regions(),
			a.months(),
			a.conclusion(),
		},
	}
	if a.err != nil {
		return nil, a.err
	}

	slog.Info("Assembled report",
		"title", doc.Title,
		"sections", len(doc.Sections),
		"blocks", len(doc.Blocks()))

	return doc, nil
}

type assembler struct {
	b   *aggregate.Bundle
	err error
}

// block passes a constructed chart block through, degrading empty views to
// a placeholder and recording any other error as fatal.
func (a *assembler) block(b Block, err error) Block {
	switch {
	case err == nil:
		return b
	case errors.Is(err, common.ErrEmptyView):
		slog.Warn("Replacing empty chart with placeholder", "error", err)
		return Paragraph{Text: placeholderText}
	default:
		if a.err == nil {
			a.err = err
		}
		return Paragraph{Text: placeholderText}
	}
}

func (a *assembler) bar(entries []model.Entry, opts chart.BarOptions) Block {
	c, err := chart.NewBarChart(entries, opts)
	return a.block(BarBlock{Chart: c}, err)
}

func (a *assembler) pie(entries []model.Entry, opts chart.PieOptions) Block {
	c, err := chart.NewPieChart(entries, opts)
	return a.block(PieBlock{Chart: c}, err)
}

func (a *assembler) trendLine(t *aggregate.Trend, xTitle, yTitle string) Block {
	if t == nil {
		return a.block(nil, common.ErrEmptyView)
	}
	series := make([]chart.Series, len(t.Series))
	for i, s := range t.Series {
		series[i] = chart.Series{Label: s.Label, Values: s.Values}
	}
	c, err := chart.NewLineChart(t.Months, series, chart.LineOptions{XTitle: xTitle, YTitle: yTitle})
	return a.block(LineBlock{Chart: c}, err)
}

func (a *assembler) overview(cfg Config, generatedAt time.Time) Section {
	b := a.b
	return Section{Title: "Overview", Blocks: []Block{
		TitleBlock{Text: cfg.Title},
		Paragraph{Lead: "Generated on:", Text: generatedAt.Format("January 2, 2006 15:04")},
		Paragraph{Lead: "Data Period:", Text: fmt.Sprintf("%s to %s",
			b.Start.Format("2006-01-02"), b.End.Format("2006-01-02"))},
		Rule{Heavy: true},
		Callout{Label: "Total Sales", Value: model.FormatAmount(b.GrandTotal)},
		Heading{Text: "Executive Summary"},
		Paragraph{Text: a.executiveSummary()},
		Paragraph{Text: "This report provides a comprehensive overview of sales performance, " +
			"highlights top products, and identifies key trends and opportunities for growth. " +
			"The following sections offer detailed breakdowns by category, region, and month."},
		Rule{},
		a.metricsTable(),
		Paragraph{Text: "The table above summarizes the most important sales metrics for the year. " +
			"The top category contributed significantly to the overall revenue."},
		PageBreak{},
	}}
}

func (a *assembler) executiveSummary() string {
	b := a.b
	topName, topValue := "n/a", 0.0
	if top := b.TopCategory(); top != nil {
		topName, topValue = top.Label, top.Value
	}
	return fmt.Sprintf(
		"In %d, our company processed %s sales transactions across %d product categories and %d countries. "+
			"Total sales reached %s, with an average transaction value of %s. "+
			"The %s category led all segments, contributing %s to the annual revenue.",
		b.Year(), model.FormatCount(b.Records), b.ByCategory.Len(), b.ByCountry.Len(),
		model.FormatAmount(b.GrandTotal), model.FormatAmount(b.AverageSale),
		topName, model.FormatAmount(topValue))
}

func (a *assembler) metricsTable() Block {
	b := a.b
	rows := [][]string{
		{"Total Sales", model.FormatAmount(b.GrandTotal)},
		{"Transactions", model.FormatCount(b.Records)},
		{"Average Sale", model.FormatAmount(b.AverageSale)},
	}
	if top := b.TopCategory(); top != nil {
		rows = append(rows, []string{"Top Category",
			fmt.Sprintf("%s (%s)", top.Label, model.FormatAmount(top.Value))})
	}
	if top := b.TopProducts.Top(); top != nil {
		rows = append(rows, []string{"Top Product",
			fmt.Sprintf("%s (%s)", top.Label, model.FormatAmount(top.Value))})
	}
	return Table{Rows: rows, ColWidths: []float64{64, 64}, Accent: metricsAccent, Tint: metricsTint}
}

func (a *assembler) categories() Section {
	b := a.b
	return Section{Title: "Sales by Category", Blocks: []Block{
		Heading{Text: "Sales by Category"},
		Paragraph{Text: "The charts below illustrate the distribution of sales across different product categories. " +
			"These visualizations help identify which categories are driving the most revenue and where to focus future efforts."},
		Subheading{Text: "Bar Chart: Sales by Category"},
		a.bar(b.ByCategory.Entries(), chart.BarOptions{
			XTitle: "Category", YTitle: "Sales", Fill: categoryFill, Stroke: categoryStroke,
		}),
		Subheading{Text: "Pie Chart: Category Market Share"},
		a.pie(b.ByCategory.Entries(), chart.PieOptions{Caption: "Category Share"}),
		PageBreak{},
		Subheading{Text: fmt.Sprintf("Line Chart: Monthly Sales Trend (Top %d Categories)", len(b.TopCategories))},
		a.trendLine(b.CategoryTrend, "Month", "Sales"),
		a.categoryTable(),
		Rule{},
	}}
}

func (a *assembler) categoryTable() Block {
	rows := make([][]string, 0, a.b.ByCategory.Len())
	for _, e := range a.b.ByCategory.Entries() {
		rows = append(rows, []string{e.Label, model.FormatAmount(e.Value)})
	}
	return Table{
		Header:    []string{"Category", "Total Sales"},
		Rows:      rows,
		ColWidths: []float64{64, 51},
		Accent:    categoryFill,
		Tint:      categoryTint,
	}
}

func (a *assembler) products() Section {
	b := a.b
	n := len(b.TopProducts)
	return Section{Title: "Top Performing Products", Blocks: []Block{
		Heading{Text: "Top Performing Products"},
		Paragraph{Text: fmt.Sprintf("The following charts and table list the top %d products by total sales. "+
			"These products have shown outstanding performance during the year and represent key revenue drivers.", n)},
		Subheading{Text: fmt.Sprintf("Bar Chart: Top %d Products by Sales", n)},
		a.bar(b.TopProducts, chart.BarOptions{
			XTitle: "Product", YTitle: "Sales", Fill: productFill, Stroke: productStroke,
		}),
		PageBreak{},
		Subheading{Text: fmt.Sprintf("Pie Chart: Top %d Products Market Share", n)},
		a.pie(b.TopProducts, chart.PieOptions{Caption: "Product Share"}),
		Subheading{Text: fmt.Sprintf("Line Chart: Monthly Sales Trend (Top %d Products)", n)},
		a.trendLine(b.ProductTrend, "Month", "Sales"),
		a.productTable(),
		PageBreak{},
	}}
}

func (a *assembler) productTable() Block {
	rows := make([][]string, 0, len(a.b.TopProducts))
	for _, e := range a.b.TopProducts {
		rows = append(rows, []string{e.Label, model.FormatAmount(e.Value)})
	}
	return Table{
		Header:    []string{"Product", "Total Sales"},
		Rows:      rows,
		ColWidths: []float64{76, 51},
		Accent:    productFill,
		Tint:      productTint,
	}
}

func (a *assembler) regions() Section {
	b := a.b
	return Section{Title: "Regional Performance", Blocks: []Block{
		Heading{Text: "Regional Performance"},
		Paragraph{Text: "This section provides a breakdown of sales by country, including each region's market share. " +
			"Understanding regional performance is crucial for strategic planning and resource allocation."},
		Subheading{Text: "Bar Chart: Sales by Country"},
		a.bar(b.ByCountry.Entries(), chart.BarOptions{
			XTitle: "Country", YTitle: "Sales", Fill: countryFill, Stroke: countryStroke,
		}),
		Subheading{Text: "Pie Chart: Country Market Share"},
		a.pie(b.ByCountry.Entries(), chart.PieOptions{Caption: "Country Share"}),
		PageBreak{},
		Subheading{Text: fmt.Sprintf("Line Chart: Monthly Sales Trend (Top %d Countries)", len(b.TopCountries))},
		a.trendLine(b.CountryTrend, "Month", "Sales"),
		a.countryTable(),
		Paragraph{Text: "The above table highlights the contribution of each country to the total sales. " +
			"Regions with higher market share may present opportunities for further growth."},
		PageBreak{},
	}}
}

func (a *assembler) countryTable() Block {
	b := a.b
	rows := make([][]string, 0, b.ByCountry.Len())
	for _, e := range b.ByCountry.Entries() {
		var share float64
		if b.GrandTotal > 0 {
			share = e.Value / b.GrandTotal
		}
		rows = append(rows, []string{e.Label, model.FormatAmount(e.Value), model.FormatPercent(share)})
	}
	return Table{
		Header:    []string{"Country", "Total Sales", "Market Share"},
		Rows:      rows,
		ColWidths: []float64{38, 38, 38},
		Accent:    regionAccent,
		Tint:      regionTint,
	}
}

func (a *assembler) months() Section {
	b := a.b
	return Section{Title: "Monthly Sales Trend", Blocks: []Block{
		Heading{Text: "Monthly Sales Trend"},
		Paragraph{Text: fmt.Sprintf("The following charts and table show the total sales for each month in %d. "+
			"This helps in identifying seasonal trends and planning inventory accordingly.", b.Year())},
		Subheading{Text: "Bar Chart: Sales by Month"},
		a.bar(b.ByMonth.Entries(), chart.BarOptions{
			XTitle: "Month", YTitle: "Sales", Fill: monthFill, Stroke: monthStroke,
		}),
		Subheading{Text: "Pie Chart: Monthly Sales Share"},
		a.pie(b.ByMonth.Entries(), chart.PieOptions{Caption: "Month Share"}),
		PageBreak{},
		Subheading{Text: "Line Chart: Monthly Sales Trend"},
		a.monthLine(),
		a.monthTable(),
		PageBreak{},
	}}
}

func (a *assembler) monthLine() Block {
	b := a.b
	entries := b.ByMonth.Entries()
	values := make([]float64, len(entries))
	for i, e := range entries {
		values[i] = e.Value
	}
	c, err := chart.NewLineChart(b.ByMonth.Labels(),
		[]chart.Series{{Label: "Total Sales", Values: values}},
		chart.LineOptions{XTitle: "Month", YTitle: "Sales"})
	return a.block(LineBlock{Chart: c}, err)
}

func (a *assembler) monthTable() Block {
	rows := make([][]string, 0, a.b.ByMonth.Len())
	for _, e := range a.b.ByMonth.Entries() {
		rows = append(rows, []string{e.Label, model.FormatAmount(e.Value)})
	}
	return Table{
		Header:    []string{"Month", "Total Sales"},
		Rows:      rows,
		ColWidths: []float64{51, 51},
		Accent:    monthFill,
		Tint:      monthTint,
	}
}

func (a *assembler) conclusion() Section {
	b := a.b
	lead := fmt.Sprintf("The analysis of %d sales data reveals strong performance in several categories and regions", b.Year())
	if top := b.TopCategory(); top != nil {
		lead += fmt.Sprintf(", led by %s", top.Label)
	}
	if peak := b.ByMonth.SortedDesc(); len(peak) > 0 {
		lead += fmt.Sprintf(", with sales peaking in %s", peak[0].Label)
	}
	return Section{Title: "Conclusion & Recommendations", Blocks: []Block{
		Heading{Text: "Conclusion & Recommendations"},
		Paragraph{Text: lead + ". To capitalize on these trends, we recommend focusing marketing efforts " +
			"on top-performing products and expanding in high-growth regions. Continuous monitoring of " +
			"monthly trends will help anticipate demand fluctuations and optimize inventory management."},
	}}
}
