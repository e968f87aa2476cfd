package services

import "errors"

// Service errors
var (
	// ErrEmptyDataset is returned when a dataset parses cleanly but
	// yields zero canonical rows.
	ErrEmptyDataset = errors.New("dataset contains no usable rows")

	// ErrUnknownReport is returned for an export name the service does
	// not produce.
	ErrUnknownReport = errors.New("unknown report")
)
