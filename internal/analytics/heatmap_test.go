package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retaildash/internal/dataset"
)

func heatmapRow(country string, month time.Month, total float64) dataset.Transaction {
	return dataset.Transaction{
		CustomerID:  "C-" + country,
		Country:     country,
		TotalPrice:  total,
		InvoiceDate: time.Date(2023, month, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestSalesHeatmap(t *testing.T) {
	table := dataset.NewTable([]dataset.Transaction{
		heatmapRow("France", time.January, 100),
		heatmapRow("France", time.March, 400),
		heatmapRow("Germany", time.June, 50),
	})

	heatmap := SalesHeatmap(table)

	require.Equal(t, []string{"France", "Germany"}, heatmap.Countries)
	require.Len(t, heatmap.Cells, 2)
	require.Len(t, heatmap.Cells[0], 12)

	france := heatmap.Cells[0]
	assert.Equal(t, 0.25, france[0], "January divided by the row max")
	assert.Equal(t, 1.0, france[2], "the row max normalizes to exactly 1")
	assert.Equal(t, 0.0, france[1], "missing cells are filled with 0")

	germany := heatmap.Cells[1]
	assert.Equal(t, 1.0, germany[5])
}

func TestSalesHeatmapRowMaxProperty(t *testing.T) {
	table := dataset.NewTable([]dataset.Transaction{
		heatmapRow("France", time.January, 100),
		heatmapRow("France", time.February, 250),
		heatmapRow("Germany", time.June, 50),
		heatmapRow("Spain", time.April, 75),
		heatmapRow("Spain", time.September, 75),
	})

	heatmap := SalesHeatmap(table)

	for i, row := range heatmap.Cells {
		max := 0.0
		for _, v := range row {
			if v > max {
				max = v
			}
		}
		assert.Equal(t, 1.0, max, "row %s must peak at exactly 1", heatmap.Countries[i])
	}
}

func TestSalesHeatmapZeroMaxRow(t *testing.T) {
	// A country whose only activity is a return nets a zero-or-negative
	// row; normalization must not divide by the zero max.
	table := dataset.NewTable([]dataset.Transaction{
		heatmapRow("France", time.January, 100),
		heatmapRow("Narnia", time.May, -40),
	})

	heatmap := SalesHeatmap(table)

	require.Equal(t, []string{"France", "Narnia"}, heatmap.Countries)
	for _, v := range heatmap.Cells[1] {
		assert.Equal(t, 0.0, v, "zero-max rows come back all zero")
	}
}
