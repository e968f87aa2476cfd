// Package domain contains the JSON response shapes shared between the
// dashboard service and its API consumers. These are wire types: every
// value is directly encodable, and cells that the engine reports as NaN
// are carried as nil pointers so they serialize as JSON null.
package domain

import "time"

// MonthValue is one month bucket of a chart series. MonthEnd is the
// month-end timestamp the series point is indexed by; Month is its
// "2011-03" display label.
type MonthValue struct {
	Month    string    `json:"month"`
	MonthEnd time.Time `json:"month_end"`
	Value    float64   `json:"value"`
}

// LabelValue is one bar of a ranked chart.
type LabelValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// HourValue is summed revenue for one observed hour of day.
type HourValue struct {
	Hour  int     `json:"hour"`
	Value float64 `json:"value"`
}

// CountryBreakdown is the country revenue ranking with the configured
// home market reported separately when it appears in the data.
type CountryBreakdown struct {
	Top         []LabelValue `json:"top"`
	HomeMarket  string       `json:"home_market"`
	HomeTotal   float64      `json:"home_total"`
	HomePresent bool         `json:"home_present"`
}

// DashboardData is the aggregate payload behind the main dashboard view.
type DashboardData struct {
	GeneratedAt   time.Time `json:"generated_at"`
	Rows          int       `json:"rows"`
	TotalRevenue  float64   `json:"total_revenue"`
	RetentionRate float64   `json:"retention_rate"`

	MonthlyRevenue    []MonthValue `json:"monthly_revenue"`
	MovingAverage     []*float64   `json:"moving_average"` // null until the window fills
	AverageOrderValue []MonthValue `json:"average_order_value"`
	SalesGrowth       []MonthValue `json:"sales_growth"`

	Acquisition []MonthValue `json:"acquisition"`
	Retention   []MonthValue `json:"retention"`

	Countries    CountryBreakdown `json:"countries"`
	TopProducts  []LabelValue     `json:"top_products"`
	TopCustomers []LabelValue     `json:"top_customers"`
	Categories   []LabelValue     `json:"categories"`
	SalesByHour  []HourValue      `json:"sales_by_hour"`
}

// HeatmapData is the row-normalized country-by-calendar-month pivot.
// Cells has one row per country and twelve columns, January through
// December.
type HeatmapData struct {
	Countries []string    `json:"countries"`
	Cells     [][]float64 `json:"cells"`
}

// CohortData carries distinct active customer counts per cohort and
// month offset. Combinations never observed are null.
type CohortData struct {
	Cohorts []string     `json:"cohorts"` // "2011-03"
	Offsets []int        `json:"offsets"`
	Counts  [][]*float64 `json:"counts"`
}

// RFMRecord is one customer's recency/frequency/monetary triple.
type RFMRecord struct {
	CustomerID string  `json:"customer_id"`
	Recency    int     `json:"recency"`
	Frequency  int     `json:"frequency"`
	Monetary   float64 `json:"monetary"`
}

// SegmentRecord is an RFM-style record with its cluster assignment.
type SegmentRecord struct {
	CustomerID string  `json:"customer_id"`
	Recency    int     `json:"recency"`
	Frequency  int     `json:"frequency"`
	Monetary   float64 `json:"monetary"`
	Cluster    int     `json:"cluster"`
}

// SegmentationData is the clustered customer base plus per-cluster sizes.
type SegmentationData struct {
	Segments     int             `json:"segments"`
	Customers    []SegmentRecord `json:"customers"`
	ClusterSizes []int           `json:"cluster_sizes"`
}
