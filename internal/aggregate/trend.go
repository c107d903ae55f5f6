package aggregate

import "github.com/salespress/salespress/internal/model"

// Series is one labeled line of month-aligned values.
type Series struct {
	Label  string
	Values []float64
}

// Trend holds month-aligned revenue series for a set of leading groups.
// Every series has exactly one value per month, zero-filled where the group
// sold nothing.
type Trend struct {
	Months []string
	Series []Series
}

// Max returns the largest value across all series, or zero for an empty
// trend.
func (t *Trend) Max() float64 {
	var max float64
	for _, s := range t.Series {
		for _, v := range s.Values {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// buildTrend sums revenue per month for each of the given group labels.
// Months defines both the x axis and the value alignment.
func buildTrend(table model.SalesTable, months, labels []string, groupOf func(model.SalesRecord) string) *Trend {
	monthIdx := make(map[string]int, len(months))
	for i, m := range months {
		monthIdx[m] = i
	}

	seriesIdx := make(map[string]int, len(labels))
	series := make([]Series, len(labels))
	for i, label := range labels {
		series[i] = Series{Label: label, Values: make([]float64, len(months))}
		seriesIdx[label] = i
	}

	for _, r := range table {
		si, ok := seriesIdx[groupOf(r)]
		if !ok {
			continue
		}
		if mi, ok := monthIdx[r.Month()]; ok {
			series[si].Values[mi] += r.Total()
		}
	}

	return &Trend{Months: months, Series: series}
}
