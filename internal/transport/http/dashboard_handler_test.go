package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retaildash/internal/config"
	"retaildash/internal/infrastructure"
	"retaildash/internal/services"
)

const fixtureCSV = `InvoiceNo,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country
536365,WHITE HANGING HEART,10,1/15/2011 9:26,2,17850,United Kingdom
536366,GLASS STAR LANTERN,1,1/20/2011 14:10,100,13047,France
536367,WHITE METAL LANTERN,5,2/3/2011 10:00,2,17850,United Kingdom
536368,WHITE METAL LANTERN,3,2/10/2011 16:45,2,13047,France
`

func newTestServer(t *testing.T, datasetPath string) *httptest.Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.RateLimitRPS = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Data.DatasetPath = datasetPath
	cfg.Data.HomeMarket = "United Kingdom"
	cfg.Data.SegmentationSeed = 42
	cfg.Data.Segments = 2

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := infrastructure.NewMetrics()
	dashboard := services.NewDashboardService(cfg, logger, metrics)
	health := services.NewHealthService(cfg)

	server := httptest.NewServer(NewRouter(cfg, logger, metrics, dashboard, health))
	t.Cleanup(server.Close)
	return server
}

func fixturePath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "retail.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixtureCSV), 0644))
	return path
}

func TestGetDashboard(t *testing.T) {
	server := newTestServer(t, fixturePath(t))

	resp, err := http.Get(server.URL + "/api/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var data struct {
		Rows           int     `json:"rows"`
		TotalRevenue   float64 `json:"total_revenue"`
		RetentionRate  float64 `json:"retention_rate"`
		MonthlyRevenue []struct {
			Month string  `json:"month"`
			Value float64 `json:"value"`
		} `json:"monthly_revenue"`
		MovingAverage []*float64 `json:"moving_average"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))

	assert.Equal(t, 4, data.Rows)
	assert.InDelta(t, 136.0, data.TotalRevenue, 1e-9)
	assert.InDelta(t, 100.0, data.RetentionRate, 1e-9)
	require.Len(t, data.MonthlyRevenue, 2)
	assert.Equal(t, "2011-01", data.MonthlyRevenue[0].Month)
	// NaN cells must arrive as JSON null, never break encoding.
	require.Len(t, data.MovingAverage, 2)
	assert.Nil(t, data.MovingAverage[0])
}

func TestGetDashboardMissingDataset(t *testing.T) {
	server := newTestServer(t, filepath.Join(t.TempDir(), "absent.csv"))

	resp, err := http.Get(server.URL + "/api/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/problem+json")

	var problem struct {
		Type    string `json:"type"`
		Status  int    `json:"status"`
		TraceID string `json:"trace_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&problem))
	assert.Equal(t, "/errors/dataset/not-found", problem.Type)
	assert.Equal(t, http.StatusNotFound, problem.Status)
	assert.NotEmpty(t, problem.TraceID)
}

func TestGetDashboardMalformedDataset(t *testing.T) {
	csv := "InvoiceNo,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country\n" +
		"536365,WHITE HANGING HEART,ten,1/15/2011 9:26,2,17850,United Kingdom\n"
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	server := newTestServer(t, path)
	resp, err := http.Get(server.URL + "/api/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var problem struct {
		Type   string `json:"type"`
		Column string `json:"column"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&problem))
	assert.Equal(t, "/errors/dataset/malformed", problem.Type)
	assert.Equal(t, "Quantity", problem.Column)
}

func TestGetDashboardEmptyDataset(t *testing.T) {
	// Header plus rows that are all dropped for missing CustomerID.
	csv := "InvoiceNo,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country\n" +
		"536365,WHITE HANGING HEART,10,1/15/2011 9:26,2,,United Kingdom\n"
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	server := newTestServer(t, path)
	resp, err := http.Get(server.URL + "/api/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/problem+json")

	var problem struct {
		Type string `json:"type"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&problem))
	assert.Equal(t, "/errors/dataset/empty", problem.Type)
}

func TestGetHeatmap(t *testing.T) {
	server := newTestServer(t, fixturePath(t))

	resp, err := http.Get(server.URL + "/api/heatmap")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Countries []string    `json:"countries"`
		Cells     [][]float64 `json:"cells"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
	assert.Equal(t, []string{"France", "United Kingdom"}, data.Countries)
	require.Len(t, data.Cells, 2)
	require.Len(t, data.Cells[0], 12)
}

func TestExportReport(t *testing.T) {
	server := newTestServer(t, fixturePath(t))

	resp, err := http.Get(server.URL + "/api/export/monthly-revenue")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "monthly-revenue.csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "month,revenue", lines[0])
}

func TestExportUnknownReport(t *testing.T) {
	server := newTestServer(t, fixturePath(t))

	resp, err := http.Get(server.URL + "/api/export/bogus")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/problem+json")
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t, fixturePath(t))

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "ok", status.Checks["dataset"])
}

func TestHealthzDegraded(t *testing.T) {
	server := newTestServer(t, filepath.Join(t.TempDir(), "absent.csv"))

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t, fixturePath(t))

	// Serve one API request so the counters have samples.
	resp, err := http.Get(server.URL + "/api/dashboard")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "retaildash_dataset_rows")
	assert.Contains(t, string(body), "retaildash_http_requests_total")
}

func TestVersionEndpoint(t *testing.T) {
	server := newTestServer(t, fixturePath(t))

	resp, err := http.Get(server.URL + "/version")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info struct {
		Version string `json:"version"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.NotEmpty(t, info.Version)
}
