// Package dataset produces and loads the sales tables the reporting pipeline
// consumes.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/salespress/salespress/internal/model"
	"github.com/schollz/progressbar/v3"
)

// Catalogs for synthetic data, mirroring the shape of a typical retail feed.
var (
	categories = []string{
		"Electronics", "Clothing", "Groceries", "Furniture", "Books",
		"Toys", "Sports", "Beauty", "Automotive", "Garden",
	}
	countries = []string{
		"US", "UK", "CA", "AU", "DE", "FR", "IN", "CN", "JP", "BR",
	}
	products = makeProducts()
)

func makeProducts() []string {
	out := make([]string, 0, 20)
	for c := 'A'; c <= 'T'; c++ {
		out = append(out, fmt.Sprintf("Product %c", c))
	}
	return out
}

// Generator fabricates reproducible synthetic sales data. The same seed
// always yields the same table.
type Generator struct {
	rng *rand.Rand
	cfg GeneratorConfig
}

// NewGenerator creates a generator for the given configuration.
func NewGenerator(cfg GeneratorConfig) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Generate fabricates the configured number of sales records. Dates fall
// within the configured year, quantities span 1-10 and unit prices
// 5.00-500.00.
func (g *Generator) Generate(ctx context.Context) (model.SalesTable, error) {
	start := time.Date(g.cfg.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(start.AddDate(1, 0, 0).Sub(start).Hours() / 24)

	var bar *progressbar.ProgressBar
	if g.cfg.Progress != nil {
		bar = g.newProgressBar()
	}

	table := make(model.SalesTable, 0, g.cfg.Records)
	for i := 0; i < g.cfg.Records; i++ {
		if i%1024 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		table = append(table, model.SalesRecord{
			Date:      start.AddDate(0, 0, g.rng.Intn(days)),
			Category:  categories[g.rng.Intn(len(categories))],
			Product:   products[g.rng.Intn(len(products))],
			Country:   countries[g.rng.Intn(len(countries))],
			Quantity:  1 + g.rng.Intn(10),
			UnitPrice: math.Round((5+g.rng.Float64()*495)*100) / 100,
		})

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	slog.Info("Generated synthetic sales data",
		"records", len(table),
		"seed", g.cfg.Seed,
		"year", g.cfg.Year)

	return table, nil
}

func (g *Generator) newProgressBar() *progressbar.ProgressBar {
	return progressbar.NewOptions(g.cfg.Records,
		progressbar.OptionSetWriter(g.cfg.Progress),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Generating sales records..."),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(g.cfg.Progress); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
