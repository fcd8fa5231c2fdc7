package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Requisições HTTP por método, rota e status
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

const unmatchedRoute = "unmatched"

type routeLabelKey struct{}

// routeLabel é preenchido pela rota casada para manter a cardinalidade baixa
type routeLabel struct {
	path string
}

// Metrics registra contagem, latência e requisições em andamento
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			httpInFlight.Inc()
			defer httpInFlight.Dec()

			label := &routeLabel{path: unmatchedRoute}
			srw := newStatusResponseWriter(w)

			next.ServeHTTP(srw, r.WithContext(context.WithValue(r.Context(), routeLabelKey{}, label)))

			labels := prometheus.Labels{
				"method": r.Method,
				"route":  label.path,
				"status": strconv.Itoa(srw.statusCode),
			}
			httpRequestsTotal.With(labels).Inc()
			httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
		})
	}
}

// RouteLabel marca a requisição com o template da rota registrada
func RouteLabel(path string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if label, ok := r.Context().Value(routeLabelKey{}).(*routeLabel); ok {
				label.path = path
			}
			next.ServeHTTP(w, r)
		})
	}
}
