package analytics

import (
	"math"
	"sort"
	"time"

	"retaildash/internal/dataset"
)

// RetentionRate returns the share of distinct customers with more than one
// transaction row, as a percentage in [0, 100]. Division by a zero distinct
// count on an empty table is the caller's data-quality problem, per the
// package precondition.
func RetentionRate(t *dataset.Table) float64 {
	counts := make(map[string]int)
	for _, row := range t.Rows() {
		counts[row.CustomerID]++
	}

	repeat := 0
	for _, n := range counts {
		if n > 1 {
			repeat++
		}
	}
	return float64(repeat) / float64(len(counts)) * 100
}

// AcquisitionRetention computes two month-bucketed series over a shared
// calendar: acquisition counts the distinct customers active each month,
// retention counts the distinct repeat customers active each month. The two
// series are independently indexed; a month present in one need not be
// present in the other.
func AcquisitionRetention(t *dataset.Table) (acquisition, retention Series) {
	rowCounts := make(map[string]int)
	for _, row := range t.Rows() {
		rowCounts[row.CustomerID]++
	}

	active := make(map[YearMonth]map[string]struct{})
	activeRepeat := make(map[YearMonth]map[string]struct{})
	for _, row := range t.Rows() {
		month := YearMonthOf(row.InvoiceDate)
		addMember(active, month, row.CustomerID)
		if rowCounts[row.CustomerID] > 1 {
			addMember(activeRepeat, month, row.CustomerID)
		}
	}

	return countSeries(active), countSeries(activeRepeat)
}

// RFM computes the Recency/Frequency/Monetary scalars per customer:
// Recency is the number of days between the table's latest timestamp and
// the customer's earliest transaction, Frequency the customer's row count,
// Monetary the summed TotalPrice. Recency anchors on the earliest
// transaction here; the segmentation features in Segment anchor on the most
// recent one, and the two are kept distinct.
func RFM(t *dataset.Table) []RFMRecord {
	maxDate := t.MaxDate()

	type accum struct {
		recency   int
		frequency int
		monetary  float64
	}
	byCustomer := make(map[string]*accum)

	for _, row := range t.Rows() {
		a, ok := byCustomer[row.CustomerID]
		if !ok {
			a = &accum{recency: daysBetween(row.InvoiceDate, maxDate)}
			byCustomer[row.CustomerID] = a
		}
		if d := daysBetween(row.InvoiceDate, maxDate); d > a.recency {
			a.recency = d // earliest transaction is the farthest from maxDate
		}
		a.frequency++
		a.monetary += row.TotalPrice
	}

	records := make([]RFMRecord, 0, len(byCustomer))
	for id, a := range byCustomer {
		records = append(records, RFMRecord{
			CustomerID: id,
			Recency:    a.recency,
			Frequency:  a.frequency,
			Monetary:   a.monetary,
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CustomerID < records[j].CustomerID })
	return records
}

// CohortAnalysis assigns each customer a cohort, the calendar month of its
// first-ever transaction, and counts distinct active customers per
// (cohort, month offset) pair. Offset 0 is the cohort's first active month,
// so the offset-0 cell always equals the cohort's distinct customer count.
func CohortAnalysis(t *dataset.Table) CohortMatrix {
	cohorts := make(map[string]YearMonth)
	for _, row := range t.Rows() {
		month := YearMonthOf(row.InvoiceDate)
		if first, ok := cohorts[row.CustomerID]; !ok || month.Before(first) {
			cohorts[row.CustomerID] = month
		}
	}

	type cell struct {
		cohort YearMonth
		offset int
	}
	members := make(map[cell]map[string]struct{})
	maxOffset := 0
	for _, row := range t.Rows() {
		cohort := cohorts[row.CustomerID]
		offset := YearMonthOf(row.InvoiceDate).Sub(cohort)
		if offset > maxOffset {
			maxOffset = offset
		}
		c := cell{cohort: cohort, offset: offset}
		if members[c] == nil {
			members[c] = make(map[string]struct{})
		}
		members[c][row.CustomerID] = struct{}{}
	}

	cohortMonths := make([]YearMonth, 0, len(cohorts))
	seen := make(map[YearMonth]struct{})
	for _, cohort := range cohorts {
		if _, ok := seen[cohort]; !ok {
			seen[cohort] = struct{}{}
			cohortMonths = append(cohortMonths, cohort)
		}
	}
	sort.Slice(cohortMonths, func(i, j int) bool { return cohortMonths[i].Before(cohortMonths[j]) })

	offsets := make([]int, maxOffset+1)
	for i := range offsets {
		offsets[i] = i
	}

	counts := make([][]float64, len(cohortMonths))
	for i, cohort := range cohortMonths {
		counts[i] = make([]float64, len(offsets))
		for j := range offsets {
			if set, ok := members[cell{cohort: cohort, offset: j}]; ok {
				counts[i][j] = float64(len(set))
			} else {
				counts[i][j] = math.NaN() // absent combination, not an observed zero
			}
		}
	}

	return CohortMatrix{Cohorts: cohortMonths, Offsets: offsets, Counts: counts}
}

// addMember inserts a set member under the given month key.
func addMember(sets map[YearMonth]map[string]struct{}, month YearMonth, id string) {
	if sets[month] == nil {
		sets[month] = make(map[string]struct{})
	}
	sets[month][id] = struct{}{}
}

// countSeries turns month-keyed membership sets into an ascending Series of
// set sizes.
func countSeries(sets map[YearMonth]map[string]struct{}) Series {
	byMonth := make(map[YearMonth]float64, len(sets))
	for month, set := range sets {
		byMonth[month] = float64(len(set))
	}
	return sortedSeries(byMonth)
}

// daysBetween returns the number of whole days from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
