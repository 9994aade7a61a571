package telemetry

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// PrometheusMetrics counts requests and observes their duration, labelled by method and status
type PrometheusMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ coreport.Metrics = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics registers the request collectors on reg
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "service_request_counter",
			Help:      "Total number of requests handled by the ledger services",
		}, []string{"method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "service_request_duration_seconds",
			Help:      "Histogram of request durations for the ledger services",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register request metrics: %w", err)
		}
	}
	return m, nil
}

// RecordRequest adds one request outcome
func (m *PrometheusMetrics) RecordRequest(method, status string, elapsed time.Duration) {
	m.requests.WithLabelValues(method, status).Inc()
	m.duration.WithLabelValues(method, status).Observe(elapsed.Seconds())
}
