package services

import (
	"context"
	"fmt"
	"io"
	"sort"

	"retaildash/internal/analytics"
	"retaildash/internal/exporter"
	"retaildash/pkg/contracts/domain"
)

// Export report names accepted by Export and the export endpoint.
const (
	ReportMonthlyRevenue    = "monthly-revenue"
	ReportAverageOrderValue = "average-order-value"
	ReportSalesGrowth       = "sales-growth"
	ReportCountries         = "countries"
	ReportTopProducts       = "top-products"
	ReportTopCustomers      = "top-customers"
	ReportCategories        = "categories"
	ReportSalesByHour       = "sales-by-hour"
	ReportHeatmap           = "heatmap"
	ReportCohorts           = "cohorts"
	ReportRFM               = "rfm"
	ReportSegments          = "segments"
)

// ReportNames returns the accepted export report names, sorted.
func ReportNames() []string {
	names := []string{
		ReportMonthlyRevenue,
		ReportAverageOrderValue,
		ReportSalesGrowth,
		ReportCountries,
		ReportTopProducts,
		ReportTopCustomers,
		ReportCategories,
		ReportSalesByHour,
		ReportHeatmap,
		ReportCohorts,
		ReportRFM,
		ReportSegments,
	}
	sort.Strings(names)
	return names
}

// Export streams the named report as CSV to w. Unknown names return
// ErrUnknownReport.
func (s *DashboardService) Export(ctx context.Context, name string, w io.Writer) error {
	report, err := s.buildReport(ctx, name)
	if err != nil {
		return err
	}
	return report.WriteCSV(w)
}

// ExportAll writes every report into dir, one CSV file per report.
func (s *DashboardService) ExportAll(ctx context.Context, dir string) error {
	for _, name := range ReportNames() {
		report, err := s.buildReport(ctx, name)
		if err != nil {
			return fmt.Errorf("build %s: %w", name, err)
		}
		if err := report.WriteFile(dir); err != nil {
			return fmt.Errorf("export %s: %w", name, err)
		}
	}
	return nil
}

func (s *DashboardService) buildReport(ctx context.Context, name string) (exporter.Report, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return exporter.Report{}, err
	}

	switch name {
	case ReportMonthlyRevenue:
		return exporter.MonthSeriesReport(name, "revenue", monthValues(analytics.MonthlyRevenue(table))), nil
	case ReportAverageOrderValue:
		return exporter.MonthSeriesReport(name, "average_order_value", monthValues(analytics.AverageOrderValue(table))), nil
	case ReportSalesGrowth:
		return exporter.MonthSeriesReport(name, "growth_pct", monthValues(analytics.SalesGrowth(analytics.MonthlyRevenue(table)))), nil
	case ReportCountries:
		countries := analytics.RevenueByCountry(table, s.cfg.Data.HomeMarket)
		entries := labelValues(countries.Top)
		if countries.HomePresent {
			entries = append(entries, domain.LabelValue{Label: countries.HomeMarket, Value: countries.HomeTotal})
		}
		return exporter.RankingReport(name, "country", entries), nil
	case ReportTopProducts:
		return exporter.RankingReport(name, "product", labelValues(analytics.TopProducts(table))), nil
	case ReportTopCustomers:
		return exporter.RankingReport(name, "customer_id", labelValues(analytics.TopCustomers(table))), nil
	case ReportCategories:
		return exporter.RankingReport(name, "category", labelValues(analytics.SalesByCategory(table))), nil
	case ReportSalesByHour:
		hours := analytics.SalesByHour(table)
		values := make([]domain.HourValue, len(hours))
		for i, h := range hours {
			values[i] = domain.HourValue{Hour: h.Hour, Value: h.Total}
		}
		return exporter.HourReport(name, values), nil
	case ReportHeatmap:
		data, err := s.Heatmap(ctx)
		if err != nil {
			return exporter.Report{}, err
		}
		return exporter.HeatmapReport(name, data), nil
	case ReportCohorts:
		data, err := s.Cohorts(ctx)
		if err != nil {
			return exporter.Report{}, err
		}
		return exporter.CohortReport(name, data), nil
	case ReportRFM:
		records, err := s.RFM(ctx)
		if err != nil {
			return exporter.Report{}, err
		}
		return exporter.RFMReport(name, records), nil
	case ReportSegments:
		data, err := s.Segmentation(ctx)
		if err != nil {
			return exporter.Report{}, err
		}
		return exporter.SegmentReport(name, data), nil
	default:
		return exporter.Report{}, fmt.Errorf("%q: %w", name, ErrUnknownReport)
	}
}
