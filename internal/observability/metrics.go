package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	storeOperationsTotal   *prometheus.CounterVec
	percentageRecomputes   *prometheus.CounterVec
	changeEventsTotal      *prometheus.CounterVec
	httpRequestsTotal      *prometheus.CounterVec
	httpLatencySeconds     *prometheus.HistogramVec
	spreadsheetImportsRows prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		storeOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projeval_store_operations_total",
			Help: "Store operations grouped by entity, operation and outcome.",
		}, []string{"entity", "operation", "outcome"})

		percentageRecomputes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projeval_percentage_recomputes_total",
			Help: "Marks percentage derivations grouped by trigger.",
		}, []string{"trigger"})

		changeEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projeval_change_events_total",
			Help: "Change events published grouped by transport and outcome.",
		}, []string{"transport", "outcome"})

		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projeval_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "projeval_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		spreadsheetImportsRows = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "projeval_marks_import_rows_total",
			Help: "Marks rows written by spreadsheet imports.",
		})

		prometheus.MustRegister(
			storeOperationsTotal,
			percentageRecomputes,
			changeEventsTotal,
			httpRequestsTotal,
			httpLatencySeconds,
			spreadsheetImportsRows,
		)
	})
}

// StoreOperations exposes the store operation counter.
func StoreOperations() *prometheus.CounterVec {
	RegisterMetrics()
	return storeOperationsTotal
}

// PercentageRecomputes exposes the percentage derivation counter.
func PercentageRecomputes() *prometheus.CounterVec {
	RegisterMetrics()
	return percentageRecomputes
}

// ChangeEvents exposes the change publication counter.
func ChangeEvents() *prometheus.CounterVec {
	RegisterMetrics()
	return changeEventsTotal
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// ImportedMarksRows exposes the imported rows counter.
func ImportedMarksRows() prometheus.Counter {
	RegisterMetrics()
	return spreadsheetImportsRows
}
