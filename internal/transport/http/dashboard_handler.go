package http

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "retaildash/internal/errors"
	"retaildash/internal/infrastructure"
	"retaildash/internal/services"
)

// DashboardHandler serves the JSON metric endpoints and CSV exports.
type DashboardHandler struct {
	service      *services.DashboardService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service *services.DashboardService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       infrastructure.WithComponent(logger, "dashboard_handler"),
		errorHandler: errorHandler,
	}
}

// Routes returns the /api routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/dashboard", h.GetDashboard)
	r.Get("/heatmap", h.GetHeatmap)
	r.Get("/cohorts", h.GetCohorts)
	r.Get("/rfm", h.GetRFM)
	r.Get("/segmentation", h.GetSegmentation)
	r.Get("/export/{report}", h.ExportReport)

	return r
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, data)
}

// GetHeatmap handles GET /api/heatmap
func (h *DashboardHandler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Heatmap(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, data)
}

// GetCohorts handles GET /api/cohorts
func (h *DashboardHandler) GetCohorts(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Cohorts(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, data)
}

// GetRFM handles GET /api/rfm
func (h *DashboardHandler) GetRFM(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.RFM(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, records)
}

// GetSegmentation handles GET /api/segmentation
func (h *DashboardHandler) GetSegmentation(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Segmentation(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, data)
}

// ExportReport handles GET /api/export/{report}. The report is built
// into a buffer first so a failure can still produce a problem document
// instead of a truncated download.
func (h *DashboardHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	report := chi.URLParam(r, "report")

	var buf bytes.Buffer
	if err := h.service.Export(r.Context(), report, &buf); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report+`.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleServiceError maps service sentinels onto the API error taxonomy
// before delegating to the central handler.
func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyDataset):
		err = apierrors.ErrDatasetEmpty
	case errors.Is(err, services.ErrUnknownReport):
		err = apierrors.NewWithDetails(apierrors.ErrReportNotFound.StatusCode,
			apierrors.ErrReportNotFound.ErrorCode, err.Error(),
			map[string]interface{}{"available": services.ReportNames()})
	}
	h.errorHandler.HandleError(w, r, err)
}
