package analytics

import (
	"math"
	"sort"

	"retaildash/internal/dataset"
)

// MonthlyRevenue groups rows by calendar month and sums TotalPrice per
// month, producing an ordered series. The sum over the series equals the
// table's grand total: no rows are lost or duplicated by the grouping.
func MonthlyRevenue(t *dataset.Table) Series {
	totals := make(map[YearMonth]float64)
	for _, row := range t.Rows() {
		totals[YearMonthOf(row.InvoiceDate)] += row.TotalPrice
	}
	return sortedSeries(totals)
}

// AverageOrderValue groups rows by calendar month and takes the mean
// TotalPrice per month. Parallel in shape to MonthlyRevenue but with the
// mean aggregator.
func AverageOrderValue(t *dataset.Table) Series {
	sums := make(map[YearMonth]float64)
	counts := make(map[YearMonth]int)
	for _, row := range t.Rows() {
		month := YearMonthOf(row.InvoiceDate)
		sums[month] += row.TotalPrice
		counts[month]++
	}

	means := make(map[YearMonth]float64, len(sums))
	for month, sum := range sums {
		means[month] = sum / float64(counts[month])
	}
	return sortedSeries(means)
}

// MovingAverage computes a trailing moving average over the series values.
// The first window-1 points have no full window behind them and come back
// as NaN.
func MovingAverage(s Series, window int) []float64 {
	out := make([]float64, len(s))
	var sum float64
	for i, p := range s {
		sum += p.Value
		if i >= window {
			sum -= s[i-window].Value
		}
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(window)
	}
	return out
}

// SalesGrowth derives the period-over-period percentage change from the
// monthly revenue series: (current - previous) / previous * 100. The first
// period has no predecessor and is dropped, not zero-filled. A period whose
// predecessor nets to exactly zero (sales fully offset by returns) has no
// defined growth and is dropped the same way, so the series never carries
// an infinity.
func SalesGrowth(revenue Series) Series {
	if len(revenue) < 2 {
		return Series{}
	}
	growth := make(Series, 0, len(revenue)-1)
	for i := 1; i < len(revenue); i++ {
		previous := revenue[i-1].Value
		if previous == 0 {
			continue
		}
		growth = append(growth, SeriesPoint{
			Month: revenue[i].Month,
			Value: (revenue[i].Value - previous) / previous * 100,
		})
	}
	return growth
}

// SalesByHour sums TotalPrice per hour component (0-23) of the invoice
// timestamp, one entry per observed hour in ascending hour order.
func SalesByHour(t *dataset.Table) []HourSales {
	totals := make(map[int]float64)
	for _, row := range t.Rows() {
		totals[row.InvoiceDate.Hour()] += row.TotalPrice
	}

	out := make([]HourSales, 0, len(totals))
	for hour, total := range totals {
		out = append(out, HourSales{Hour: hour, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

// sortedSeries turns a month-keyed map into an ascending Series.
func sortedSeries(byMonth map[YearMonth]float64) Series {
	s := make(Series, 0, len(byMonth))
	for month, value := range byMonth {
		s = append(s, SeriesPoint{Month: month, Value: value})
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Month.Before(s[j].Month) })
	return s
}
