package gateway

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates Prometheus instrumentation for the gateway client.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorTotal      *prometheus.CounterVec
}

// NewMetrics registers the gateway collectors on a private registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "caa"
	}
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_requests_total",
		Help:      "Total number of backend requests",
	}, []string{"base", "param", "outcome"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_request_duration_seconds",
		Help:      "Duration of backend requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"base", "param"})

	errorTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_errors_total",
		Help:      "Backend request failures by error kind",
	}, []string{"kind"})

	registry.MustRegister(requestTotal, requestDuration, errorTotal)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		errorTotal:      errorTotal,
	}
}

// Handler exposes the gateway metrics for scraping.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return m.handler
}

func (m *Metrics) observe(base, param, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestTotal.WithLabelValues(base, param, outcome).Inc()
	m.requestDuration.WithLabelValues(base, param).Observe(duration.Seconds())
}

func (m *Metrics) observeError(kind string) {
	if m == nil {
		return
	}
	m.errorTotal.WithLabelValues(kind).Inc()
}
