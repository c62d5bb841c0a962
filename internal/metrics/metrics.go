// Package metrics holds the Prometheus collectors of the dashboard backend.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"route", "code"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	}, []string{"route"})
	LoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_dataset_loads_total",
		Help: "Dataset loads by source and result",
	}, []string{"source", "result"})
	LoadDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_dataset_load_duration_ms",
		Help:    "Dataset load and parse duration in milliseconds",
		Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"source"})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_dataset_cache_hits_total",
		Help: "Dataset requests served from cache",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_dataset_cache_misses_total",
		Help: "Dataset requests that triggered a load",
	})
	DatasetRows = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dashboard_dataset_rows",
		Help: "Rows of the cached dataset by dataset and outcome (kept, filtered)",
	}, []string{"dataset", "outcome"})
	UnparsedCells = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dashboard_dataset_unparsed_cells",
		Help: "Non-empty cells of the cached dataset that failed to parse, by column",
	}, []string{"dataset", "column"})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(LoadsTotal)
	prometheus.MustRegister(LoadDurationMs)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(DatasetRows)
	prometheus.MustRegister(UnparsedCells)
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }
