package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/citanz/dashboard/backend/internal/domain"
	"github.com/citanz/dashboard/backend/internal/metrics"
)

// RouterDependencies collects handler dependencies.
type RouterDependencies struct {
	Health           HealthService
	API              *DashboardHandlers
	APIBase          string
	MetricsEnabled   bool
	AllowedOrigins   []string
	AllowCredentials bool
}

// NewRouter wires the dashboard routes under deps.APIBase plus the health and
// metrics endpoints.
func NewRouter(logger *slog.Logger, deps RouterDependencies) http.Handler {
	mux := http.NewServeMux()
	handle := func(route string, h http.Handler) {
		mux.Handle(route, instrument(route, h))
	}

	handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		payload := map[string]any{
			"status": "ok",
		}

		if deps.Health != nil {
			if err := deps.Health.Probe(ctx); err != nil {
				logger.Error("health probe failed", "error", err, "request_id", requestIDFrom(r.Context()))
				status = http.StatusServiceUnavailable
				payload["status"] = "degraded"
				payload["error"] = err.Error()
			}
		}

		respondJSON(w, status, payload)
	}))

	if deps.MetricsEnabled {
		mux.Handle("/metrics", metrics.Handler())
	}

	if deps.API != nil {
		base := deps.APIBase
		for _, name := range domain.ViewNames {
			handle(base+"/"+name, deps.API.handleView(name))
		}
		handle(base+"/dashboard", http.HandlerFunc(deps.API.handleDashboard))
		handle(base+"/load_report", http.HandlerFunc(deps.API.handleLoadReport))
		handle(base+"/export", http.HandlerFunc(deps.API.handleExport))
	}

	handler := http.Handler(loggingMiddleware(logger, mux))
	if len(deps.AllowedOrigins) > 0 {
		handler = corsMiddleware(deps.AllowedOrigins, deps.AllowCredentials)(handler)
	}
	return requestIDMiddleware(handler)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}
