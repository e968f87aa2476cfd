package services

import (
	"context"
	"os"
	"runtime"
	"time"

	"retaildash/internal/config"
	"retaildash/pkg/contracts"
)

// HealthService reports process and dataset health for /healthz.
type HealthService struct {
	cfg       *config.Config
	startTime time.Time
}

// HealthStatus is the /healthz response body.
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	GoVersion string            `json:"go_version"`
	Checks    map[string]string `json:"checks"`
}

// NewHealthService creates a health service anchored at process start.
func NewHealthService(cfg *config.Config) *HealthService {
	return &HealthService{cfg: cfg, startTime: time.Now()}
}

// Health returns the current health status. The dataset check stats the
// configured source file without loading it.
func (h *HealthService) Health(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   contracts.Version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		GoVersion: runtime.Version(),
		Checks:    map[string]string{},
	}

	if _, err := os.Stat(h.cfg.Data.DatasetPath); err != nil {
		status.Status = "degraded"
		status.Checks["dataset"] = "missing: " + h.cfg.Data.DatasetPath
	} else {
		status.Checks["dataset"] = "ok"
	}
	return status
}
