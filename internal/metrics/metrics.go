package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the various metrics used for monitoring the application.
// It includes counters and a histogram for collection operations,
// a histogram for backing store access, a gauge for the collection size
// and a histogram for served HTTP requests.
type Metrics struct {
	Operations          *prometheus.CounterVec
	OperationDuration   *prometheus.HistogramVec
	StoreQueryDuration  *prometheus.HistogramVec
	Employees           prometheus.Gauge
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with the provided Registerer.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		Operations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_operations_total",
			Help: "Total number of collection operations by outcome.",
		}, []string{"operation", "status"}),
		OperationDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_operation_duration_seconds",
			Help:    "Duration of a full load, compute and save cycle of a collection operation.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		StoreQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_store_query_duration_seconds",
			Help:    "Duration of backing store reads and writes.",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend", "query_type"}), // query_type: 'load', 'save'
		Employees: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "hestia_employees",
			Help: "Number of employees in the collection as last seen by the store.",
		}),
		HTTPRequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_http_request_duration_seconds",
			Help:    "Duration of served HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}

	return metrics
}
