package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retaildash/internal/cluster"
	"retaildash/internal/dataset"
)

// segmentationTable spreads customers over four obviously distinct
// behavioral profiles so k=4 has something real to find.
func segmentationTable() *dataset.Table {
	var rows []dataset.Transaction
	base := time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC)

	addCustomer := func(id string, days int, orders int, value float64) {
		for i := 0; i < orders; i++ {
			rows = append(rows, dataset.Transaction{
				CustomerID:  id,
				Country:     "United Kingdom",
				Quantity:    1,
				UnitPrice:   value,
				TotalPrice:  value,
				InvoiceDate: base.AddDate(0, 0, days+i),
			})
		}
	}

	// Recent big spenders, recent small, lapsed frequent, lapsed one-off.
	for i := 0; i < 3; i++ {
		addCustomer(fmt.Sprintf("BIG%d", i), 300, 20, 500)
		addCustomer(fmt.Sprintf("SMALL%d", i), 300, 2, 10)
		addCustomer(fmt.Sprintf("FREQ%d", i), 10, 15, 50)
		addCustomer(fmt.Sprintf("ONE%d", i), 5, 1, 5)
	}
	return dataset.NewTable(rows)
}

func TestSegment(t *testing.T) {
	table := segmentationTable()

	segments, err := Segment(table, cluster.NewKMeans(SegmentationSeed), DefaultSegments)
	require.NoError(t, err)
	require.Len(t, segments, 12)

	for _, s := range segments {
		assert.GreaterOrEqual(t, s.Cluster, 0)
		assert.Less(t, s.Cluster, DefaultSegments)
		assert.Positive(t, s.Frequency)
	}
}

func TestSegmentRecencyUsesMostRecentTransaction(t *testing.T) {
	table := scenarioTable()

	segments, err := Segment(table, cluster.NewKMeans(SegmentationSeed), 2)
	require.NoError(t, err)
	require.Len(t, segments, 2)

	// C1's last transaction is the table max, so its recency is 0 here even
	// though the RFM routine reports 36 for the same customer.
	assert.Equal(t, "C1", segments[0].CustomerID)
	assert.Equal(t, 0, segments[0].Recency)
	assert.Equal(t, 26, segments[1].Recency)

	rfm := RFM(table)
	assert.Equal(t, 36, rfm[0].Recency, "the two recency anchors must stay distinct")
}

func TestSegmentReproducibleUnderRelabeling(t *testing.T) {
	table := segmentationTable()

	first, err := Segment(table, cluster.NewKMeans(SegmentationSeed), DefaultSegments)
	require.NoError(t, err)
	second, err := Segment(table, cluster.NewKMeans(SegmentationSeed), DefaultSegments)
	require.NoError(t, err)

	// Assignment equivalence: customers grouped together in one run must be
	// grouped together in the other, whatever the label indices are.
	require.Equal(t, len(first), len(second))
	mapping := make(map[int]int)
	for i := range first {
		if mapped, ok := mapping[first[i].Cluster]; ok {
			assert.Equal(t, mapped, second[i].Cluster,
				"customer %s broke the cluster correspondence", first[i].CustomerID)
		} else {
			mapping[first[i].Cluster] = second[i].Cluster
		}
	}
}

func TestSegmentTooFewCustomers(t *testing.T) {
	_, err := Segment(scenarioTable(), cluster.NewKMeans(SegmentationSeed), DefaultSegments)
	assert.Error(t, err, "two customers cannot fill four clusters")
}
