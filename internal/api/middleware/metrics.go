// metrics.go — Prometheus HTTP метрики сервиса.
// Регистрирует метрики: docstore_http_requests_total, docstore_http_request_duration_seconds.
// Бизнес-метрики (docstore_files_total, docstore_operations_total) экспортируются
// для обновления из сервисного слоя.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// unmatchedRoute — метка пути для запросов, не попавших ни в один маршрут.
const unmatchedRoute = "unmatched"

// HTTP метрики
var (
	// httpRequestsTotal — общее количество HTTP-запросов.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docstore_http_requests_total",
			Help: "Общее количество HTTP-запросов",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration — гистограмма длительности HTTP-запросов.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "docstore_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Бизнес-метрики (экспортируются для обновления из сервисного слоя)
var (
	// FilesTotal — текущее количество записей в документе метаданных.
	FilesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "docstore_files_total",
			Help: "Текущее количество файлов в хранилище",
		},
	)

	// OperationsTotal — общее количество файловых операций.
	// operation: upload, download, delete; result: success, rejected, not_found, error.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docstore_operations_total",
			Help: "Общее количество файловых операций",
		},
		[]string{"operation", "result"},
	)
)

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
// В метку path попадает шаблон маршрута chi (/download/{stored_name}),
// а не фактический путь, чтобы не раздувать кардинальность.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := newResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(wrapped.statusCode)
			path := routePattern(r)

			httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
		})
	}
}

// routePattern возвращает шаблон маршрута chi для запроса.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}
