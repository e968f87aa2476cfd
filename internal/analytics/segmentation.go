package analytics

import (
	"fmt"
	"sort"

	"retaildash/internal/cluster"
	"retaildash/internal/dataset"
)

const (
	// DefaultSegments is the fixed cluster count for customer segmentation.
	DefaultSegments = 4

	// SegmentationSeed fixes the clustering initialization so re-running
	// segmentation on an unchanged table reproduces the same assignment.
	SegmentationSeed = 42
)

// Segment builds the per-customer feature table: recency in days since the
// customer's most recent transaction (RFM anchors on the earliest instead),
// frequency and monetary. The three features are standardized independently
// and customers are partitioned into k clusters. Customers are ordered by
// ID before clustering, so the result is reproducible for a fixed table and
// seed.
func Segment(t *dataset.Table, c cluster.Clusterer, k int) ([]CustomerSegment, error) {
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
		if d := daysBetween(row.InvoiceDate, maxDate); d < a.recency {
			a.recency = d // most recent transaction is the closest to maxDate
		}
		a.frequency++
		a.monetary += row.TotalPrice
	}

	segments := make([]CustomerSegment, 0, len(byCustomer))
	for id, a := range byCustomer {
		segments = append(segments, CustomerSegment{
			CustomerID: id,
			Recency:    a.recency,
			Frequency:  a.frequency,
			Monetary:   a.monetary,
		})
	}
	sort.Slice(segments, func(i, j int) bool { return segments[i].CustomerID < segments[j].CustomerID })

	features := make([][]float64, len(segments))
	for i, s := range segments {
		features[i] = []float64{float64(s.Recency), float64(s.Frequency), s.Monetary}
	}

	labels, err := c.Fit(cluster.Standardize(features), k)
	if err != nil {
		return nil, fmt.Errorf("cluster customers: %w", err)
	}
	for i := range segments {
		segments[i].Cluster = labels[i]
	}
	return segments, nil
}
