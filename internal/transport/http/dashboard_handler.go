package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "meddash/internal/errors"
	"meddash/internal/exporter"
)

// DashboardHandler serves the dashboard views with RFC 7807 errors
type DashboardHandler struct {
	service      DashboardServiceInterface
	parser       *QueryParser
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		parser:       NewQueryParser(),
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes, mounted under /api
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/data", h.GetData)
	r.Get("/stats", h.GetStats)

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", h.ListDocuments)
		r.Get("/export", h.ExportDocuments)
	})

	r.Get("/doctors", h.GetDoctors)

	r.Route("/patients", func(r chi.Router) {
		r.Get("/", h.ListPatients)
		r.Get("/{rut}", h.GetPatient)
	})

	r.Get("/prestaciones", h.GetPrestaciones)
	r.Get("/activities", h.GetActivities)

	return r
}

// GetData handles GET /api/data. The body is {documents, stats} without the
// success envelope, and a missing data file still answers 200.
func (h *DashboardHandler) GetData(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Data(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, data)
}

// GetStats handles GET /api/stats?year=&month=
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	query, err := h.parser.Stats(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	stats, err := h.service.Stats(r.Context(), query.Year, query.Month)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	respondSuccess(w, r, stats)
}

// ListDocuments handles GET /api/documents
func (h *DashboardHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	query, err := h.parser.Documents(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	page, err := h.service.ListDocuments(r.Context(), query.DocumentFilter, query.Page, query.PerPage)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	respondSuccess(w, r, page)
}

// ExportDocuments handles GET /api/documents/export and responds with an
// attachment. The export is buffered; a failed export yields a problem
// response.
func (h *DashboardHandler) ExportDocuments(w http.ResponseWriter, r *http.Request) {
	query, err := h.parser.Export(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	format, err := exporter.ParseFormat(query.Format)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	count, err := h.service.Export(r.Context(), &buf, format, query.DocumentFilter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := h.service.ExportFilename(format)
	h.logger.InfoContext(r.Context(), "serving export",
		slog.String("format", string(format)),
		slog.String("filename", filename),
		slog.Int("documents", count),
		slog.Int("bytes", buf.Len()))

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Export-Count", strconv.Itoa(count))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "failed to send export", slog.String("error", err.Error()))
	}
}

// GetDoctors handles GET /api/doctors
func (h *DashboardHandler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Doctors(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	respondSuccess(w, r, report)
}

// ListPatients handles GET /api/patients
func (h *DashboardHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.service.Patients(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	respondSuccess(w, r, patients)
}

// GetPatient handles GET /api/patients/{rut}
func (h *DashboardHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	rut := chi.URLParam(r, "rut")
	if len(rut) > 20 {
		h.errorHandler.HandleError(w, r, apierrors.InvalidFields(apierrors.FieldError{
			Field: "rut", Message: "must be at most 20 characters",
		}))
		return
	}

	profile, err := h.service.Patient(r.Context(), rut)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	respondSuccess(w, r, profile)
}

// GetPrestaciones handles GET /api/prestaciones
func (h *DashboardHandler) GetPrestaciones(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Prestaciones(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	respondSuccess(w, r, summary)
}

// GetActivities handles GET /api/activities?limit=
func (h *DashboardHandler) GetActivities(w http.ResponseWriter, r *http.Request) {
	query, err := h.parser.Activities(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	feed, err := h.service.Activities(r.Context(), query.Limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	respondSuccess(w, r, feed)
}
