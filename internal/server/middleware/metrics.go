package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// httpRequestsTotal считает запросы по методу, шаблону route и статусу
var httpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "splitwiser_http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"method", "pattern", "status"},
)

// httpRequestDuration измеряет длительность запросов
var httpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "splitwiser_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "pattern"},
)

// MetricsMiddleware создает middleware для сбора Prometheus метрик
// Метки используют шаблон route (r.Pattern), а не конкретный путь,
// чтобы не раздувать кардинальность метрик
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapped, r)

			pattern := r.Pattern
			if pattern == "" {
				pattern = "unmatched"
			}

			httpRequestsTotal.WithLabelValues(
				r.Method,
				pattern,
				strconv.Itoa(wrapped.statusCode),
			).Inc()
			httpRequestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
		})
	}
}
