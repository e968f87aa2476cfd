package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"retaildash/internal/config"
	apierrors "retaildash/internal/errors"
	"retaildash/internal/infrastructure"
	"retaildash/internal/middleware"
	"retaildash/internal/services"
)

// NewRouter assembles the full server router: middleware chain, API
// routes, health and Prometheus endpoints.
func NewRouter(cfg *config.Config, logger *slog.Logger, metrics *infrastructure.Metrics, dashboard *services.DashboardService, health *services.HealthService) chi.Router {
	errorHandler := apierrors.NewErrorHandler(logger, cfg.Logging.Development)
	rateLimiter := middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(rateLimiter.Handler)
	r.Use(requestMetrics(metrics))

	r.Mount("/api", NewDashboardHandler(dashboard, logger, errorHandler).Routes())

	healthHandler := NewHealthHandler(health, logger)
	r.Get("/healthz", healthHandler.HealthCheck)
	r.Get("/version", healthHandler.Version)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return r
}

// requestMetrics counts served requests by route pattern and status.
func requestMetrics(metrics *infrastructure.Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		})
	}
}
