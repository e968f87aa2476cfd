package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
)

// ErrNotFound indicates the dataset source file is missing or unreadable.
var ErrNotFound = errors.New("dataset source not found")

// ParseError reports a malformed cell. The whole load aborts on the first
// one encountered; there are no partial results.
type ParseError struct {
	Row    int    // 1-based data row number, excluding the header
	Column string // canonical column name
	Value  string // raw cell content
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse row %d column %s: invalid value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

// Unwrap returns the underlying parse failure.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// invoiceDateLayouts lists the timestamp formats seen in retail exports,
// tried in order. The primary layout matches the online retail CSV
// ("12/1/2010 8:26").
var invoiceDateLayouts = []string{
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// columnIndices holds the positions of the expected columns in the header.
type columnIndices struct {
	invoiceCol  int
	customerCol int
	dateCol     int
	descCol     int
	quantityCol int
	priceCol    int
	countryCol  int
}

// Load reads the delimited retail dataset at path and returns the canonical
// table. The source is decoded as ISO-8859-1; the raw file may contain
// non-UTF-8 bytes and the encoding must be honored exactly.
//
// Cleaning applied, in order: rows with an empty CustomerID are dropped,
// CustomerID is kept as exact text (numeric-looking IDs are never re-parsed
// as numbers), InvoiceDate is parsed, exact-duplicate rows are removed and
// TotalPrice is computed as Quantity * UnitPrice.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(file))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	table, err := buildTable(records)
	if err != nil {
		return nil, err
	}

	slog.Info("dataset loaded",
		slog.String("path", path),
		slog.Int("rows", table.Len()))

	return table, nil
}

// buildTable applies the cleaning rules to raw records (header included)
// and assembles the canonical table.
func buildTable(records [][]string) (*Table, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset has no data rows")
	}

	cols, err := findColumnIndices(records[0])
	if err != nil {
		return nil, err
	}

	// Exact-duplicate detection keys on every column of the parsed row.
	type rowKey struct {
		invoice, customer, desc, country string
		quantity                         int
		price                            float64
		date                             time.Time
	}
	seen := make(map[rowKey]struct{}, len(records)-1)

	rows := make([]Transaction, 0, len(records)-1)
	dropped, duplicates := 0, 0

	for i, record := range records[1:] {
		rowNum := i + 1

		customerID := strings.TrimSpace(field(record, cols.customerCol))
		if customerID == "" {
			dropped++
			continue
		}

		rawQuantity := strings.TrimSpace(field(record, cols.quantityCol))
		quantity, err := strconv.Atoi(rawQuantity)
		if err != nil {
			return nil, &ParseError{Row: rowNum, Column: "Quantity", Value: rawQuantity, Err: err}
		}

		rawPrice := strings.TrimSpace(field(record, cols.priceCol))
		price, err := strconv.ParseFloat(rawPrice, 64)
		if err != nil {
			return nil, &ParseError{Row: rowNum, Column: "UnitPrice", Value: rawPrice, Err: err}
		}

		rawDate := strings.TrimSpace(field(record, cols.dateCol))
		date, err := parseInvoiceDate(rawDate)
		if err != nil {
			return nil, &ParseError{Row: rowNum, Column: "InvoiceDate", Value: rawDate, Err: err}
		}

		row := Transaction{
			InvoiceID:   strings.TrimSpace(field(record, cols.invoiceCol)),
			CustomerID:  customerID,
			Description: strings.TrimSpace(field(record, cols.descCol)),
			Country:     strings.TrimSpace(field(record, cols.countryCol)),
			Quantity:    quantity,
			UnitPrice:   price,
			InvoiceDate: date,
		}

		key := rowKey{
			invoice:  row.InvoiceID,
			customer: row.CustomerID,
			desc:     row.Description,
			country:  row.Country,
			quantity: row.Quantity,
			price:    row.UnitPrice,
			date:     row.InvoiceDate,
		}
		if _, ok := seen[key]; ok {
			duplicates++
			continue
		}
		seen[key] = struct{}{}

		row.TotalPrice = float64(row.Quantity) * row.UnitPrice
		rows = append(rows, row)
	}

	if dropped > 0 || duplicates > 0 {
		slog.Info("dataset cleaned",
			slog.Int("dropped_no_customer", dropped),
			slog.Int("duplicates_removed", duplicates))
	}

	return &Table{rows: rows}, nil
}

// findColumnIndices locates the expected columns in the header, matching the
// canonical names first and falling back to lowercase variants.
func findColumnIndices(header []string) (columnIndices, error) {
	cols := columnIndices{
		invoiceCol:  -1,
		customerCol: -1,
		dateCol:     -1,
		descCol:     -1,
		quantityCol: -1,
		priceCol:    -1,
		countryCol:  -1,
	}

	for i, col := range header {
		clean := strings.TrimSpace(trimBOM(col))

		switch clean {
		case "InvoiceNo":
			cols.invoiceCol = i
		case "CustomerID":
			cols.customerCol = i
		case "InvoiceDate":
			cols.dateCol = i
		case "Description":
			cols.descCol = i
		case "Quantity":
			cols.quantityCol = i
		case "UnitPrice":
			cols.priceCol = i
		case "Country":
			cols.countryCol = i
		default:
			switch strings.ToLower(clean) {
			case "invoiceno", "invoice_no", "invoice":
				cols.invoiceCol = i
			case "customerid", "customer_id":
				cols.customerCol = i
			case "invoicedate", "invoice_date", "date":
				cols.dateCol = i
			case "description", "product":
				cols.descCol = i
			case "quantity", "qty":
				cols.quantityCol = i
			case "unitprice", "unit_price", "price":
				cols.priceCol = i
			case "country":
				cols.countryCol = i
			}
		}
	}

	var missing []string
	if cols.invoiceCol == -1 {
		missing = append(missing, "InvoiceNo")
	}
	if cols.customerCol == -1 {
		missing = append(missing, "CustomerID")
	}
	if cols.dateCol == -1 {
		missing = append(missing, "InvoiceDate")
	}
	if cols.descCol == -1 {
		missing = append(missing, "Description")
	}
	if cols.quantityCol == -1 {
		missing = append(missing, "Quantity")
	}
	if cols.priceCol == -1 {
		missing = append(missing, "UnitPrice")
	}
	if cols.countryCol == -1 {
		missing = append(missing, "Country")
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("required columns not found: %v, header: %v", missing, header)
	}

	return cols, nil
}

// trimBOM strips a leading UTF-8 byte order mark from a header cell.
// Through the ISO-8859-1 decoder the three BOM bytes surface as "ï»¿"
// rather than U+FEFF, so both forms are trimmed.
func trimBOM(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	return strings.TrimPrefix(s, "ï»¿")
}

// parseInvoiceDate tries each known timestamp layout in order.
func parseInvoiceDate(value string) (time.Time, error) {
	for _, layout := range invoiceDateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format")
}

// field returns the cell at index i, or the empty string when the record is
// shorter than the header.
func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
