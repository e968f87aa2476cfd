package errors

import "net/http"

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined errors for the dataset taxonomy
var (
	// ErrDatasetEmpty is the 422 raised when a dataset parses cleanly
	// but yields zero canonical rows.
	ErrDatasetEmpty = New(http.StatusUnprocessableEntity, "DATASET_EMPTY", "Dataset has no usable rows")

	// ErrReportNotFound is the 404 for an unknown export report name.
	ErrReportNotFound = New(http.StatusNotFound, "REPORT_NOT_FOUND", "Unknown report name")
)
