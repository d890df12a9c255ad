// Package metrics содержит Prometheus-метрики deck-api.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "deckapi"

	// ResultOK и ResultError используются как значение label "result"
	ResultOK    = "ok"
	ResultError = "error"
)

// Manager владеет собственным реестром и всеми метриками сервиса
type Manager struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	backendOperations   *prometheus.CounterVec
}

// NewManager создает менеджер метрик на отдельном реестре
func NewManager() *Manager {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	m := &Manager{registry: registry}

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	m.backendOperations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_operations_total",
			Help:      "Calls to the database and storage bucket by operation and result",
		},
		[]string{"op", "result"},
	)

	return m
}

// ObserveHTTP фиксирует один обработанный HTTP запрос
func (m *Manager) ObserveHTTP(route, method, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, status).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, status).Observe(elapsed.Seconds())
}

// ObserveBackend фиксирует вызов бэкенда. err == nil считается успехом
func (m *Manager) ObserveBackend(op string, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.backendOperations.WithLabelValues(op, result).Inc()
}

// Handler отдает метрики в формате Prometheus
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
