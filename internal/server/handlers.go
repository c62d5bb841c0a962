package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/citanz/dashboard/backend/internal/domain"
	"github.com/citanz/dashboard/backend/internal/export"
	"github.com/citanz/dashboard/backend/internal/loader"
	"github.com/citanz/dashboard/backend/internal/service"
)

// Export formats accepted by the export endpoint.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandlers exposes the dashboard views over HTTP.
type DashboardHandlers struct {
	logger  *slog.Logger
	service *service.DatasetService
}

// NewDashboardHandlers constructs a DashboardHandlers instance.
func NewDashboardHandlers(logger *slog.Logger, svc *service.DatasetService) *DashboardHandlers {
	return &DashboardHandlers{
		logger:  logger,
		service: svc,
	}
}

// handleView serves one named view.
func (h *DashboardHandlers) handleView(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}

		view, err := h.service.View(r.Context(), name)
		if err != nil {
			h.failLoad(w, r, err, "view", name)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}

func (h *DashboardHandlers) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	snap, err := h.service.Snapshot(r.Context())
	if err != nil {
		h.failLoad(w, r, err, "view", "dashboard")
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (h *DashboardHandlers) handleLoadReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	report, err := h.service.LoadReport(r.Context())
	if err != nil {
		h.failLoad(w, r, err, "view", "load_report")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *DashboardHandlers) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	query := r.URL.Query()
	format := strings.ToLower(strings.TrimSpace(query.Get("format")))
	if format == "" {
		format = FormatXLSX
	}
	view := strings.TrimSpace(query.Get("view"))

	switch format {
	case FormatXLSX:
	case FormatCSV:
		if view == "" {
			writeError(w, http.StatusBadRequest, "view is required for csv export")
			return
		}
		if !isView(view) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown view %q", view))
			return
		}
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		return
	}

	snap, err := h.service.Snapshot(r.Context())
	if err != nil {
		h.failLoad(w, r, err, "view", "export")
		return
	}

	var buf bytes.Buffer
	var contentType, filename string
	stamp := snap.GeneratedAt.Format("20060102")
	if format == FormatCSV {
		err = export.WriteCSV(&buf, snap, view)
		contentType = "text/csv; charset=utf-8"
		filename = fmt.Sprintf("%s-%s.csv", view, stamp)
	} else {
		err = export.WriteWorkbook(&buf, snap)
		contentType = xlsxContentType
		filename = fmt.Sprintf("dashboard-%s.xlsx", stamp)
	}
	if err != nil {
		h.logger.Error("export failed", "error", err, "format", format, "view", view, "request_id", requestIDFrom(r.Context()))
		writeError(w, http.StatusInternalServerError, "failed to render export")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// failLoad maps dataset errors to responses. Missing columns are reported
// verbatim so operators can fix the export.
func (h *DashboardHandlers) failLoad(w http.ResponseWriter, r *http.Request, err error, attrs ...any) {
	attrs = append(attrs, "error", err, "request_id", requestIDFrom(r.Context()))
	switch {
	case errors.Is(err, context.Canceled):
		h.logger.Warn("request cancelled", attrs...)
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	case errors.Is(err, domain.ErrUnknownView):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, loader.ErrMissingColumns):
		h.logger.Error("dataset schema invalid", attrs...)
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		h.logger.Error("failed to load dataset", attrs...)
		writeError(w, http.StatusInternalServerError, "failed to load dataset")
	}
}

func isView(name string) bool {
	for _, v := range domain.ViewNames {
		if v == name {
			return true
		}
	}
	return false
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
