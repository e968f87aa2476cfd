package analytics

import (
	"fmt"
	"time"
)

// YearMonth identifies a calendar month. Subtraction yields an integer month
// offset, which is what cohort bucketing needs; string manipulation is never
// used for period arithmetic.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// YearMonthOf returns the calendar month containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Sub returns the number of whole months from other to ym. It is positive
// when ym is later.
func (ym YearMonth) Sub(other YearMonth) int {
	return (ym.Year-other.Year)*12 + int(ym.Month) - int(other.Month)
}

// Before reports whether ym is earlier than other.
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.Sub(other) < 0
}

// MonthEnd returns the last calendar day of the month at midnight UTC,
// the timestamp a month-bucketed series point is indexed by.
func (ym YearMonth) MonthEnd() time.Time {
	return time.Date(ym.Year, ym.Month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

// String renders the month as "2011-03".
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// SeriesPoint is one month bucket of a time series.
type SeriesPoint struct {
	Month YearMonth `json:"month"`
	Value float64   `json:"value"`
}

// Series is an ordered month-bucketed time series, ascending by month.
type Series []SeriesPoint

// Values returns the series values in order.
func (s Series) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	return values
}

// Total returns the sum of all series values.
func (s Series) Total() float64 {
	var total float64
	for _, p := range s {
		total += p.Value
	}
	return total
}

// Entry is one (label, value) pair of a ranked aggregate.
type Entry struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Ranking is a descending (label, value) sequence.
type Ranking []Entry

// HourSales is the summed revenue for one observed hour of day. Hours with
// no transactions are simply absent, not zero-filled.
type HourSales struct {
	Hour  int     `json:"hour"`
	Total float64 `json:"total"`
}

// CountryRevenue is the country ranking with the home market split out.
// When the home market is present in the data its total is reported as a
// side value and it is excluded from Top; otherwise Top is the global
// ranking and HomePresent is false.
type CountryRevenue struct {
	Top         Ranking `json:"top"`
	HomeMarket  string  `json:"home_market"`
	HomeTotal   float64 `json:"home_total"`
	HomePresent bool    `json:"home_present"`
}

// Heatmap is the country-by-calendar-month revenue pivot, row-normalized.
// Cells has one row per country and twelve columns (January..December);
// missing cells are 0. Each row is divided by its own maximum, so the
// largest cell of a non-zero row is exactly 1; a zero-max row stays all
// zero.
type Heatmap struct {
	Countries []string    `json:"countries"`
	Cells     [][]float64 `json:"cells"`
}

// CohortMatrix counts distinct active customers per (cohort, month offset).
// Rows are cohorts in ascending order; Offsets is 0..max observed offset.
// Absent combinations are NaN, not zero: a cohort that skipped a month is
// different from a cohort observed with zero customers.
type CohortMatrix struct {
	Cohorts []YearMonth `json:"cohorts"`
	Offsets []int       `json:"offsets"`
	Counts  [][]float64 `json:"counts"`
}

// RFMRecord holds the three customer-value scalars for one customer.
type RFMRecord struct {
	CustomerID string  `json:"customer_id"`
	Recency    int     `json:"recency"` // days, see RFM for the exact anchor
	Frequency  int     `json:"frequency"`
	Monetary   float64 `json:"monetary"`
}

// CustomerSegment is an RFM-style feature record with a cluster label
// attached by the segmentation routine.
type CustomerSegment struct {
	CustomerID string  `json:"customer_id"`
	Recency    int     `json:"recency"` // days since most recent transaction
	Frequency  int     `json:"frequency"`
	Monetary   float64 `json:"monetary"`
	Cluster    int     `json:"cluster"`
}
