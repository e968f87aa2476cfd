package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"retaildash/internal/analytics"
	"retaildash/internal/cluster"
	"retaildash/internal/config"
	"retaildash/internal/dataset"
	"retaildash/internal/infrastructure"
	"retaildash/pkg/contracts/domain"
)

// MovingAverageWindow is the rolling window used for the revenue and
// order-value trendlines.
const MovingAverageWindow = 3

// DashboardService loads the retail dataset and computes the derived
// metrics behind the dashboard endpoints. The canonical table is loaded
// once and cached; Reload discards the cache.
type DashboardService struct {
	cfg       *config.Config
	logger    *slog.Logger
	metrics   *infrastructure.Metrics
	clusterer cluster.Clusterer

	mu      sync.RWMutex
	table   *dataset.Table
	modTime time.Time
	size    int64
}

// NewDashboardService creates a dashboard service using the dataset,
// home market and segmentation settings from cfg.
func NewDashboardService(cfg *config.Config, logger *slog.Logger, metrics *infrastructure.Metrics) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics,
		clusterer: cluster.NewKMeans(cfg.Data.SegmentationSeed),
	}
}

// Table returns the cached canonical table, loading it on first use.
// The cache is keyed on the source file's size and modification time, so
// replacing the dataset on disk invalidates it.
func (s *DashboardService) Table(ctx context.Context) (*dataset.Table, error) {
	info, statErr := os.Stat(s.cfg.Data.DatasetPath)

	s.mu.RLock()
	table := s.table
	fresh := statErr == nil && table != nil &&
		info.ModTime().Equal(s.modTime) && info.Size() == s.size
	s.mu.RUnlock()
	if fresh {
		return table, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if statErr == nil && s.table != nil &&
		info.ModTime().Equal(s.modTime) && info.Size() == s.size {
		return s.table, nil
	}

	table, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.table = table
	if statErr == nil {
		s.modTime = info.ModTime()
		s.size = info.Size()
	}
	return table, nil
}

// Reload discards the cached table so the next request reloads from disk.
func (s *DashboardService) Reload() {
	s.mu.Lock()
	s.table = nil
	s.mu.Unlock()
}

func (s *DashboardService) load(ctx context.Context) (*dataset.Table, error) {
	path := s.cfg.Data.DatasetPath
	start := time.Now()

	var (
		table *dataset.Table
		err   error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		table, err = dataset.LoadXLSX(path)
	} else {
		table, err = dataset.Load(path)
	}
	if err != nil {
		s.metrics.DatasetLoads.WithLabelValues(loadOutcome(err)).Inc()
		s.logger.ErrorContext(ctx, "dataset load failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}
	if table.Len() == 0 {
		s.metrics.DatasetLoads.WithLabelValues("empty").Inc()
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyDataset)
	}

	s.metrics.DatasetLoads.WithLabelValues("ok").Inc()
	s.metrics.DatasetRows.Set(float64(table.Len()))
	s.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", path),
		slog.Int("rows", table.Len()),
		slog.Duration("elapsed", time.Since(start)))
	return table, nil
}

func loadOutcome(err error) string {
	var parseErr *dataset.ParseError
	switch {
	case errors.Is(err, dataset.ErrNotFound):
		return "not_found"
	case errors.As(err, &parseErr):
		return "parse_error"
	default:
		return "error"
	}
}

// Dashboard computes the aggregate payload for the main dashboard view.
// The independent metric routines run in parallel.
func (s *DashboardService) Dashboard(ctx context.Context) (*domain.DashboardData, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}

	data := &domain.DashboardData{
		GeneratedAt:  time.Now().UTC(),
		Rows:         table.Len(),
		TotalRevenue: table.GrandTotal(),
	}

	g, _ := errgroup.WithContext(ctx)

	g.Go(s.timed("monthly_revenue", func() {
		revenue := analytics.MonthlyRevenue(table)
		data.MonthlyRevenue = monthValues(revenue)
		data.MovingAverage = nullableValues(analytics.MovingAverage(revenue, MovingAverageWindow))
		data.SalesGrowth = monthValues(analytics.SalesGrowth(revenue))
	}))
	g.Go(s.timed("average_order_value", func() {
		data.AverageOrderValue = monthValues(analytics.AverageOrderValue(table))
	}))
	g.Go(s.timed("retention_rate", func() {
		data.RetentionRate = analytics.RetentionRate(table)
	}))
	g.Go(s.timed("acquisition_retention", func() {
		acquisition, retention := analytics.AcquisitionRetention(table)
		data.Acquisition = monthValues(acquisition)
		data.Retention = monthValues(retention)
	}))
	g.Go(s.timed("revenue_by_country", func() {
		countries := analytics.RevenueByCountry(table, s.cfg.Data.HomeMarket)
		data.Countries = domain.CountryBreakdown{
			Top:         labelValues(countries.Top),
			HomeMarket:  countries.HomeMarket,
			HomeTotal:   countries.HomeTotal,
			HomePresent: countries.HomePresent,
		}
	}))
	g.Go(s.timed("top_products", func() {
		data.TopProducts = labelValues(analytics.TopProducts(table))
	}))
	g.Go(s.timed("top_customers", func() {
		data.TopCustomers = labelValues(analytics.TopCustomers(table))
	}))
	g.Go(s.timed("sales_by_category", func() {
		data.Categories = labelValues(analytics.SalesByCategory(table))
	}))
	g.Go(s.timed("sales_by_hour", func() {
		hours := analytics.SalesByHour(table)
		data.SalesByHour = make([]domain.HourValue, len(hours))
		for i, h := range hours {
			data.SalesByHour[i] = domain.HourValue{Hour: h.Hour, Value: h.Total}
		}
	}))

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// Heatmap computes the row-normalized country/month revenue pivot.
func (s *DashboardService) Heatmap(ctx context.Context) (*domain.HeatmapData, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}

	var heatmap analytics.Heatmap
	s.timed("sales_heatmap", func() {
		heatmap = analytics.SalesHeatmap(table)
	})()

	return &domain.HeatmapData{
		Countries: heatmap.Countries,
		Cells:     heatmap.Cells,
	}, nil
}

// Cohorts computes the monthly cohort retention matrix.
func (s *DashboardService) Cohorts(ctx context.Context) (*domain.CohortData, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}

	var matrix analytics.CohortMatrix
	s.timed("cohort_analysis", func() {
		matrix = analytics.CohortAnalysis(table)
	})()

	data := &domain.CohortData{
		Cohorts: make([]string, len(matrix.Cohorts)),
		Offsets: matrix.Offsets,
		Counts:  make([][]*float64, len(matrix.Counts)),
	}
	for i, cohort := range matrix.Cohorts {
		data.Cohorts[i] = cohort.String()
	}
	for i, row := range matrix.Counts {
		data.Counts[i] = nullableValues(row)
	}
	return data, nil
}

// RFM computes the per-customer recency/frequency/monetary records.
func (s *DashboardService) RFM(ctx context.Context) ([]domain.RFMRecord, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}

	var records []analytics.RFMRecord
	s.timed("rfm", func() {
		records = analytics.RFM(table)
	})()

	out := make([]domain.RFMRecord, len(records))
	for i, r := range records {
		out[i] = domain.RFMRecord{
			CustomerID: r.CustomerID,
			Recency:    r.Recency,
			Frequency:  r.Frequency,
			Monetary:   r.Monetary,
		}
	}
	return out, nil
}

// Segmentation clusters the customer base into the configured number of
// segments.
func (s *DashboardService) Segmentation(ctx context.Context) (*domain.SegmentationData, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}

	var (
		segments []analytics.CustomerSegment
		segErr   error
	)
	s.timed("segmentation", func() {
		segments, segErr = analytics.Segment(table, s.clusterer, s.cfg.Data.Segments)
	})()
	if segErr != nil {
		return nil, fmt.Errorf("segment customers: %w", segErr)
	}

	data := &domain.SegmentationData{
		Segments:     s.cfg.Data.Segments,
		Customers:    make([]domain.SegmentRecord, len(segments)),
		ClusterSizes: make([]int, s.cfg.Data.Segments),
	}
	for i, seg := range segments {
		data.Customers[i] = domain.SegmentRecord{
			CustomerID: seg.CustomerID,
			Recency:    seg.Recency,
			Frequency:  seg.Frequency,
			Monetary:   seg.Monetary,
			Cluster:    seg.Cluster,
		}
		data.ClusterSizes[seg.Cluster]++
	}
	return data, nil
}

// timed wraps fn so its wall time lands in the per-routine histogram.
func (s *DashboardService) timed(routine string, fn func()) func() error {
	return func() error {
		start := time.Now()
		fn()
		s.metrics.MetricDuration.WithLabelValues(routine).Observe(time.Since(start).Seconds())
		return nil
	}
}

func monthValues(series analytics.Series) []domain.MonthValue {
	out := make([]domain.MonthValue, len(series))
	for i, p := range series {
		out[i] = domain.MonthValue{
			Month:    p.Month.String(),
			MonthEnd: p.Month.MonthEnd(),
			Value:    p.Value,
		}
	}
	return out
}

func labelValues(ranking analytics.Ranking) []domain.LabelValue {
	out := make([]domain.LabelValue, len(ranking))
	for i, e := range ranking {
		out[i] = domain.LabelValue{Label: e.Label, Value: e.Value}
	}
	return out
}

// nullableValues maps NaN to nil so the slice encodes NaN cells as null.
func nullableValues(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		value := v
		out[i] = &value
	}
	return out
}
