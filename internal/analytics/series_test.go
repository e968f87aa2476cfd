package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retaildash/internal/dataset"
)

// scenarioTable holds two January transactions
// (C1 10x2=20, C2 1x100=100) and one February transaction (C1 5x2=10).
func scenarioTable() *dataset.Table {
	return dataset.NewTable([]dataset.Transaction{
		tx("C1", time.Date(2023, 1, 10, 11, 0, 0, 0, time.UTC), 10, 2),
		tx("C1", time.Date(2023, 2, 15, 14, 0, 0, 0, time.UTC), 5, 2),
		tx("C2", time.Date(2023, 1, 20, 11, 0, 0, 0, time.UTC), 1, 100),
	})
}

func tx(customer string, date time.Time, quantity int, price float64) dataset.Transaction {
	return dataset.Transaction{
		InvoiceID:   "INV-" + customer,
		CustomerID:  customer,
		Description: "WHITE HANGING HEART",
		Country:     "United Kingdom",
		Quantity:    quantity,
		UnitPrice:   price,
		InvoiceDate: date,
		TotalPrice:  float64(quantity) * price,
	}
}

func TestMonthlyRevenue(t *testing.T) {
	series := MonthlyRevenue(scenarioTable())

	require.Len(t, series, 2)
	assert.Equal(t, YearMonth{2023, time.January}, series[0].Month)
	assert.Equal(t, 120.0, series[0].Value)
	assert.Equal(t, YearMonth{2023, time.February}, series[1].Month)
	assert.Equal(t, 10.0, series[1].Value)
}

func TestMonthlyRevenueSumsToGrandTotal(t *testing.T) {
	table := scenarioTable()
	series := MonthlyRevenue(table)
	assert.InDelta(t, table.GrandTotal(), series.Total(), 1e-9,
		"the grouping must neither lose nor duplicate rows")
}

func TestAverageOrderValue(t *testing.T) {
	series := AverageOrderValue(scenarioTable())

	require.Len(t, series, 2)
	assert.Equal(t, 60.0, series[0].Value, "January mean of 20 and 100")
	assert.Equal(t, 10.0, series[1].Value)
}

func TestMovingAverage(t *testing.T) {
	series := Series{
		{Month: YearMonth{2023, time.January}, Value: 10},
		{Month: YearMonth{2023, time.February}, Value: 20},
		{Month: YearMonth{2023, time.March}, Value: 30},
		{Month: YearMonth{2023, time.April}, Value: 40},
	}

	avg := MovingAverage(series, 3)

	require.Len(t, avg, 4)
	assert.True(t, math.IsNaN(avg[0]), "no full window behind the first point")
	assert.True(t, math.IsNaN(avg[1]))
	assert.Equal(t, 20.0, avg[2])
	assert.Equal(t, 30.0, avg[3])
}

func TestSalesGrowth(t *testing.T) {
	revenue := Series{
		{Month: YearMonth{2023, time.January}, Value: 100},
		{Month: YearMonth{2023, time.February}, Value: 150},
		{Month: YearMonth{2023, time.March}, Value: 120},
	}

	growth := SalesGrowth(revenue)

	require.Len(t, growth, 2, "the first period has no predecessor and is dropped")
	assert.Equal(t, YearMonth{2023, time.February}, growth[0].Month)
	assert.InDelta(t, 50.0, growth[0].Value, 1e-9)
	assert.InDelta(t, -20.0, growth[1].Value, 1e-9)
}

func TestSalesGrowthZeroPredecessor(t *testing.T) {
	// January nets to zero (a sale fully offset by a return), so
	// February's growth is undefined and must be dropped, never an
	// infinity.
	revenue := Series{
		{Month: YearMonth{2023, time.January}, Value: 0},
		{Month: YearMonth{2023, time.February}, Value: 150},
		{Month: YearMonth{2023, time.March}, Value: 300},
	}

	growth := SalesGrowth(revenue)

	require.Len(t, growth, 1)
	assert.Equal(t, YearMonth{2023, time.March}, growth[0].Month)
	assert.InDelta(t, 100.0, growth[0].Value, 1e-9)
	for _, p := range growth {
		assert.False(t, math.IsInf(p.Value, 0))
	}
}

func TestSalesGrowthTooShort(t *testing.T) {
	assert.Empty(t, SalesGrowth(Series{{Month: YearMonth{2023, time.January}, Value: 100}}))
}

func TestSalesByHour(t *testing.T) {
	sales := SalesByHour(scenarioTable())

	require.Len(t, sales, 2, "missing hours are absent, not zero-filled")
	assert.Equal(t, 11, sales[0].Hour)
	assert.Equal(t, 120.0, sales[0].Total)
	assert.Equal(t, 14, sales[1].Hour)
	assert.Equal(t, 10.0, sales[1].Total)
}

func TestYearMonthArithmetic(t *testing.T) {
	jan := YearMonth{2023, time.January}
	mar := YearMonth{2023, time.March}
	dec := YearMonth{2022, time.December}

	assert.Equal(t, 2, mar.Sub(jan))
	assert.Equal(t, -1, dec.Sub(jan))
	assert.Equal(t, 13, YearMonth{2024, time.January}.Sub(dec))
	assert.True(t, dec.Before(jan))
	assert.False(t, mar.Before(jan))
	assert.Equal(t, "2023-01", jan.String())
	assert.Equal(t, time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC), YearMonth{2023, time.February}.MonthEnd())
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), YearMonth{2023, time.December}.MonthEnd())
}
