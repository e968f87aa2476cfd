package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads the retail dataset from an Excel workbook. The dataset is
// also distributed as .xlsx; the first sheet is expected to carry the same
// columns as the CSV export. Cleaning rules match Load exactly.
func LoadXLSX(path string) (*Table, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	records, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset has no data rows")
	}

	cols, err := findColumnIndices(records[0])
	if err != nil {
		return nil, err
	}

	// Numeric customer cells can render with a spurious decimal tail
	// ("17850.0"); strip it so IDs stay exact text across both formats.
	for _, record := range records[1:] {
		if cols.customerCol < len(record) {
			record[cols.customerCol] = strings.TrimSuffix(record[cols.customerCol], ".0")
		}
	}

	table, err := buildTable(records)
	if err != nil {
		return nil, err
	}

	slog.Info("dataset loaded from workbook",
		slog.String("path", path),
		slog.String("sheet", sheets[0]),
		slog.Int("rows", table.Len()))

	return table, nil
}
