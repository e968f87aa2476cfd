package analytics

import (
	"sort"
	"strings"

	"retaildash/internal/dataset"
)

// TopN is the ranking length returned by the top-N routines.
const TopN = 10

// UnknownCategory labels rows whose product description is empty.
const UnknownCategory = "Unknown"

// RevenueByCountry groups rows by country and sums TotalPrice, descending.
// When homeMarket appears in the data it dominates every other entry by a
// wide margin, so its total is split out as a side value and the ranking
// covers the remaining countries; when absent the global ranking is
// returned and HomePresent is false. Ranking length is at most TopN.
func RevenueByCountry(t *dataset.Table, homeMarket string) CountryRevenue {
	totals := make(map[string]float64)
	for _, row := range t.Rows() {
		totals[row.Country] += row.TotalPrice
	}

	result := CountryRevenue{HomeMarket: homeMarket}
	if home, ok := totals[homeMarket]; ok {
		result.HomeTotal = home
		result.HomePresent = true
		delete(totals, homeMarket)
	}

	result.Top = headN(sortedRanking(totals), TopN)
	return result
}

// TopProducts groups rows by product description and sums TotalPrice,
// returning the TopN descending.
func TopProducts(t *dataset.Table) Ranking {
	totals := make(map[string]float64)
	for _, row := range t.Rows() {
		totals[row.Description] += row.TotalPrice
	}
	return headN(sortedRanking(totals), TopN)
}

// TopCustomers groups rows by customer ID and sums TotalPrice, returning
// the TopN descending.
func TopCustomers(t *dataset.Table) Ranking {
	totals := make(map[string]float64)
	for _, row := range t.Rows() {
		totals[row.CustomerID] += row.TotalPrice
	}
	return headN(sortedRanking(totals), TopN)
}

// SalesByCategory derives a category per row as the first
// whitespace-delimited token of the description (UnknownCategory when the
// description is empty), then groups, sums and returns the TopN descending.
func SalesByCategory(t *dataset.Table) Ranking {
	totals := make(map[string]float64)
	for _, row := range t.Rows() {
		totals[categoryOf(row.Description)] += row.TotalPrice
	}
	return headN(sortedRanking(totals), TopN)
}

// categoryOf extracts the category key from a product description.
func categoryOf(description string) string {
	fields := strings.Fields(description)
	if len(fields) == 0 {
		return UnknownCategory
	}
	return fields[0]
}

// sortedRanking turns a label-keyed total map into a descending Ranking.
// Ties break on label so the ordering is deterministic across runs.
func sortedRanking(totals map[string]float64) Ranking {
	r := make(Ranking, 0, len(totals))
	for label, value := range totals {
		r = append(r, Entry{Label: label, Value: value})
	}
	sort.Slice(r, func(i, j int) bool {
		if r[i].Value != r[j].Value {
			return r[i].Value > r[j].Value
		}
		return r[i].Label < r[j].Label
	})
	return r
}

// headN returns the first n entries of a ranking.
func headN(r Ranking, n int) Ranking {
	if len(r) > n {
		return r[:n]
	}
	return r
}
