package dataset

import (
	"time"
)

// Transaction represents a single invoice line item in the canonical table.
type Transaction struct {
	InvoiceID   string    `json:"invoice_id"`
	CustomerID  string    `json:"customer_id"`
	Description string    `json:"description"` // product name, may be empty
	Country     string    `json:"country"`
	Quantity    int       `json:"quantity"` // negative for returns
	UnitPrice   float64   `json:"unit_price"`
	InvoiceDate time.Time `json:"invoice_date"`
	TotalPrice  float64   `json:"total_price"` // Quantity * UnitPrice, set at load
}

// Table is the cleaned, de-duplicated transaction dataset used as input to
// all metric routines. It is constructed once per load and must be treated
// as read-only afterwards: routines may iterate Rows but never modify them.
type Table struct {
	rows []Transaction
}

// NewTable builds a table directly from rows. Intended for tests and for
// callers that already hold cleaned data; Load is the normal entry point.
func NewTable(rows []Transaction) *Table {
	return &Table{rows: rows}
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the underlying row slice. Callers must not modify it.
func (t *Table) Rows() []Transaction {
	return t.rows
}

// MaxDate returns the latest invoice timestamp in the table, or the zero
// time for an empty table.
func (t *Table) MaxDate() time.Time {
	var max time.Time
	for _, row := range t.rows {
		if row.InvoiceDate.After(max) {
			max = row.InvoiceDate
		}
	}
	return max
}

// GrandTotal returns the sum of TotalPrice over all rows.
func (t *Table) GrandTotal() float64 {
	var total float64
	for _, row := range t.rows {
		total += row.TotalPrice
	}
	return total
}
