package aggregate

import (
	"context"
	"testing"
	"time"

	"github.com/salespress/salespress/internal/common"
	"github.com/salespress/salespress/internal/dataset"
	"github.com/salespress/salespress/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func fixtureTable() model.SalesTable {
	return model.SalesTable{
		{Date: day("2024-01-10"), Category: "A", Product: "A", Country: "US", Quantity: 2, UnitPrice: 10.0},
		{Date: day("2024-02-15"), Category: "A", Product: "A", Country: "UK", Quantity: 3, UnitPrice: 10.0},
		{Date: day("2024-02-20"), Category: "B", Product: "B", Country: "US", Quantity: 1, UnitPrice: 5.0},
	}
}

func TestSummarizeFixture(t *testing.T) {
	b, err := Summarize(fixtureTable(), 0)
	require.NoError(t, err)

	assert.InDelta(t, 55.0, b.GrandTotal, 1e-9)
	assert.InDelta(t, 55.0/3.0, b.AverageSale, 1e-9)
	assert.Equal(t, 3, b.Records)

	assert.InDelta(t, 50.0, b.ByCategory.Value("A"), 1e-9)
	assert.InDelta(t, 5.0, b.ByCategory.Value("B"), 1e-9)

	top := b.TopProducts.Top()
	require.NotNil(t, top)
	assert.Equal(t, "A", top.Label)
	assert.InDelta(t, 50.0, top.Value, 1e-9)

	topCat := b.TopCategory()
	require.NotNil(t, topCat)
	assert.Equal(t, "A", topCat.Label)
	assert.Equal(t, []string{"A", "B"}, b.TopCategories.Labels())
	assert.Equal(t, []string{"UK", "US"}, b.TopCountries.Labels())

	assert.Equal(t, 2024, b.Year())
	assert.True(t, b.Start.Equal(day("2024-01-10")))
	assert.True(t, b.End.Equal(day("2024-02-20")))
}

func TestSummarizeEmptyDataset(t *testing.T) {
	_, err := Summarize(model.SalesTable{}, 5)
	assert.ErrorIs(t, err, common.ErrEmptyDataset)

	_, err = Summarize(nil, 5)
	assert.ErrorIs(t, err, common.ErrEmptyDataset)
}

func TestSummarizeViewOrdering(t *testing.T) {
	b, err := Summarize(fixtureTable(), 5)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, b.ByCategory.Labels(), "categories ordered by descending revenue")
	assert.Equal(t, []string{"2024-01", "2024-02"}, b.ByMonth.Labels(), "months ordered chronologically")

	countryEntries := b.ByCountry.Entries()
	for i := 1; i < len(countryEntries); i++ {
		assert.GreaterOrEqual(t, countryEntries[i-1].Value, countryEntries[i].Value)
	}
}

func TestSummarizeSumInvariant(t *testing.T) {
	gen, err := dataset.NewGenerator(dataset.GeneratorConfig{Records: 500, Seed: 11, Year: 2024})
	require.NoError(t, err)
	table, err := gen.Generate(context.Background())
	require.NoError(t, err)

	b, err := Summarize(table, 5)
	require.NoError(t, err)

	tolerance := b.GrandTotal * 1e-9
	assert.InDelta(t, b.GrandTotal, b.ByCategory.Sum(), tolerance, "category sums must equal grand total")
	assert.InDelta(t, b.GrandTotal, b.ByCountry.Sum(), tolerance, "country sums must equal grand total")
	assert.InDelta(t, b.GrandTotal, b.ByProduct.Sum(), tolerance, "product sums must equal grand total")
	assert.InDelta(t, b.GrandTotal, b.ByMonth.Sum(), tolerance, "month sums must equal grand total")
}

func TestSummarizeTopProductsDepth(t *testing.T) {
	gen, err := dataset.NewGenerator(dataset.GeneratorConfig{Records: 500, Seed: 11, Year: 2024})
	require.NoError(t, err)
	table, err := gen.Generate(context.Background())
	require.NoError(t, err)

	b, err := Summarize(table, 0)
	require.NoError(t, err)
	assert.Len(t, b.TopProducts, DefaultTopProducts, "non-positive depth falls back to the default")

	b, err = Summarize(table, 3)
	require.NoError(t, err)
	assert.Len(t, b.TopProducts, 3)

	for i := 1; i < len(b.TopProducts); i++ {
		assert.GreaterOrEqual(t, b.TopProducts[i-1].Value, b.TopProducts[i].Value, "ranking must be descending")
	}

	// Depth beyond the catalog is capped at the distinct product count.
	b, err = Summarize(fixtureTable(), 10)
	require.NoError(t, err)
	assert.Len(t, b.TopProducts, 2)
}

func TestSummarizeSingleRecord(t *testing.T) {
	table := model.SalesTable{
		{Date: day("2024-07-04"), Category: "Books", Product: "Product A", Country: "US", Quantity: 1, UnitPrice: 19.99},
	}

	b, err := Summarize(table, 5)
	require.NoError(t, err)
	assert.InDelta(t, 19.99, b.GrandTotal, 1e-9)
	assert.InDelta(t, 19.99, b.AverageSale, 1e-9)
	assert.Equal(t, 1, b.ByCategory.Len())
	assert.Equal(t, []string{"2024-07"}, b.ByMonth.Labels())
	require.Len(t, b.TopProducts, 1)
	assert.Equal(t, "Product A", b.TopProducts[0].Label)
}

func TestSummarizeDeterminism(t *testing.T) {
	gen, err := dataset.NewGenerator(dataset.GeneratorConfig{Records: 300, Seed: 21, Year: 2024})
	require.NoError(t, err)
	table, err := gen.Generate(context.Background())
	require.NoError(t, err)

	first, err := Summarize(table, 5)
	require.NoError(t, err)
	second, err := Summarize(table, 5)
	require.NoError(t, err)

	assert.Equal(t, first.ByCategory.Labels(), second.ByCategory.Labels())
	assert.Equal(t, first.ByCountry.Labels(), second.ByCountry.Labels())
	assert.Equal(t, first.TopProducts.Labels(), second.TopProducts.Labels())
	assert.Equal(t, first.ByMonth.Labels(), second.ByMonth.Labels())
	assert.InDelta(t, first.GrandTotal, second.GrandTotal, 1e-9)
}
