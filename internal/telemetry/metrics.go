package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal — количество обработанных HTTP запросов.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curl2make_http_requests_total",
		Help: "Total HTTP requests handled by curl2make-api",
	}, []string{"method", "status"})

	// ConversionsTotal — количество конверсий по каналу и результату.
	ConversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curl2make_conversions_total",
		Help: "Total curl conversions by source and status",
	}, []string{"source", "status"})

	// ConversionDuration — длительность конверсии.
	ConversionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "curl2make_conversion_duration_seconds",
		Help:    "Duration of curl parsing and blueprint generation",
		Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01},
	})

	// AuditRecordsTotal — записи аудита по результату (stored, failed, pruned).
	AuditRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curl2make_audit_records_total",
		Help: "Audit records processed by result",
	}, []string{"result"})
)

// ObserveConversion записывает метрики одной конверсии.
func ObserveConversion(source, status string, d time.Duration) {
	ConversionsTotal.WithLabelValues(source, status).Inc()
	ConversionDuration.Observe(d.Seconds())
}
