package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retaildash/internal/dataset"
)

func newTestHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func TestErrorToProblem(t *testing.T) {
	handler := newTestHandler()
	req := httptest.NewRequest("GET", "/api/dashboard", nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "dataset not found",
			err:        fmt.Errorf("load: %w", dataset.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantType:   TypeDatasetNotFound,
		},
		{
			name:       "parse error",
			err:        &dataset.ParseError{Row: 7, Column: "Quantity", Value: "ten"},
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeDatasetMalformed,
		},
		{
			name:       "deadline exceeded",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "api error",
			err:        ErrDatasetEmpty,
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeDatasetEmpty,
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("something broke"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := handler.ErrorToProblem(tt.err, req)
			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, "/api/dashboard", problem.Instance)
		})
	}
}

func TestErrorToProblemParseErrorExtensions(t *testing.T) {
	handler := newTestHandler()
	req := httptest.NewRequest("GET", "/api/dashboard", nil)

	problem := handler.ErrorToProblem(&dataset.ParseError{Row: 7, Column: "Quantity", Value: "ten"}, req)
	assert.Equal(t, 7, problem.Extensions["row"])
	assert.Equal(t, "Quantity", problem.Extensions["column"])
}

func TestHandleErrorRendersProblemJSON(t *testing.T) {
	handler := newTestHandler()
	req := httptest.NewRequest("GET", "/api/rfm", nil)
	rec := httptest.NewRecorder()

	handler.HandleError(rec, req, fmt.Errorf("load: %w", dataset.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, TypeDatasetNotFound, body["type"])
	assert.Contains(t, body, "trace_id")
}

func TestProblemDetailsMarshalIncludesExtensions(t *testing.T) {
	problem := NewProblemDetails(http.StatusUnprocessableEntity, TypeDatasetMalformed, "Dataset Malformed", "bad cell", "/api/dashboard").
		WithExtension("row", 3)

	raw, err := json.Marshal(problem)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, float64(3), decoded["row"])
	assert.Equal(t, "bad cell", decoded["detail"])
}
