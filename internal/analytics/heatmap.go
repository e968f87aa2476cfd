package analytics

import (
	"sort"

	"retaildash/internal/dataset"
)

// SalesHeatmap pivots revenue into a country-by-calendar-month matrix:
// one row per country, twelve columns for months 1-12, cells summed
// TotalPrice with missing cells filled with 0. Each row is then divided by
// its own maximum, so the hottest month of every country reads 1. A country
// whose row max is 0 (all-zero, or fully offset by returns) would divide by
// zero; such rows come back all zero instead.
func SalesHeatmap(t *dataset.Table) Heatmap {
	totals := make(map[string][12]float64)
	for _, row := range t.Rows() {
		cells := totals[row.Country]
		cells[int(row.InvoiceDate.Month())-1] += row.TotalPrice
		totals[row.Country] = cells
	}

	countries := make([]string, 0, len(totals))
	for country := range totals {
		countries = append(countries, country)
	}
	sort.Strings(countries)

	cells := make([][]float64, len(countries))
	for i, country := range countries {
		row := totals[country]

		max := 0.0
		for _, v := range row {
			if v > max {
				max = v
			}
		}

		normalized := make([]float64, 12)
		if max > 0 {
			for j, v := range row {
				normalized[j] = v / max
			}
		}
		cells[i] = normalized
	}

	return Heatmap{Countries: countries, Cells: cells}
}
