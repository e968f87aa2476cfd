package exporter

import (
	"retaildash/pkg/contracts/domain"
)

// MonthSeriesReport renders a month-bucketed series with the given value
// column header.
func MonthSeriesReport(name, valueHeader string, points []domain.MonthValue) Report {
	records := make([][]string, len(points))
	for i, p := range points {
		records[i] = []string{p.Month, formatFloat(p.Value)}
	}
	return Report{
		Name:    name,
		Headers: []string{"month", valueHeader},
		Records: records,
	}
}

// RankingReport renders a ranked (label, value) table with the given
// label column header.
func RankingReport(name, labelHeader string, entries []domain.LabelValue) Report {
	records := make([][]string, len(entries))
	for i, e := range entries {
		records[i] = []string{e.Label, formatFloat(e.Value)}
	}
	return Report{
		Name:    name,
		Headers: []string{labelHeader, "revenue"},
		Records: records,
	}
}

// HourReport renders per-hour revenue totals.
func HourReport(name string, hours []domain.HourValue) Report {
	records := make([][]string, len(hours))
	for i, h := range hours {
		records[i] = []string{formatInt(h.Hour), formatFloat(h.Value)}
	}
	return Report{
		Name:    name,
		Headers: []string{"hour", "revenue"},
		Records: records,
	}
}

// HeatmapReport renders the row-normalized country/month pivot, one row
// per country with twelve month columns.
func HeatmapReport(name string, data *domain.HeatmapData) Report {
	headers := []string{"country",
		"jan", "feb", "mar", "apr", "may", "jun",
		"jul", "aug", "sep", "oct", "nov", "dec"}

	records := make([][]string, len(data.Countries))
	for i, country := range data.Countries {
		record := make([]string, 0, 13)
		record = append(record, country)
		for _, cell := range data.Cells[i] {
			record = append(record, formatFloat(cell))
		}
		records[i] = record
	}
	return Report{Name: name, Headers: headers, Records: records}
}

// CohortReport renders the cohort matrix, one row per cohort with one
// column per month offset. Unobserved combinations are empty cells.
func CohortReport(name string, data *domain.CohortData) Report {
	headers := make([]string, 0, len(data.Offsets)+1)
	headers = append(headers, "cohort")
	for _, offset := range data.Offsets {
		headers = append(headers, "month_"+formatInt(offset))
	}

	records := make([][]string, len(data.Cohorts))
	for i, cohort := range data.Cohorts {
		record := make([]string, 0, len(headers))
		record = append(record, cohort)
		for _, count := range data.Counts[i] {
			if count == nil {
				record = append(record, "")
				continue
			}
			record = append(record, formatFloat(*count))
		}
		records[i] = record
	}
	return Report{Name: name, Headers: headers, Records: records}
}

// RFMReport renders per-customer recency/frequency/monetary records.
func RFMReport(name string, records []domain.RFMRecord) Report {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.CustomerID, formatInt(r.Recency), formatInt(r.Frequency), formatFloat(r.Monetary)}
	}
	return Report{
		Name:    name,
		Headers: []string{"customer_id", "recency", "frequency", "monetary"},
		Records: rows,
	}
}

// SegmentReport renders the clustered customer base.
func SegmentReport(name string, data *domain.SegmentationData) Report {
	rows := make([][]string, len(data.Customers))
	for i, c := range data.Customers {
		rows[i] = []string{c.CustomerID, formatInt(c.Recency), formatInt(c.Frequency), formatFloat(c.Monetary), formatInt(c.Cluster)}
	}
	return Report{
		Name:    name,
		Headers: []string{"customer_id", "recency", "frequency", "monetary", "cluster"},
		Records: rows,
	}
}
