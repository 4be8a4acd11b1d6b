package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// RequestsCollectorName counts HTTP requests per route and status code
	RequestsCollectorName = "estimator_http_requests_total"

	// LatencyCollectorName is the request duration histogram in milliseconds
	LatencyCollectorName = "estimator_http_request_duration_milliseconds"

	// EstimatesCollectorName counts computed estimates by endpoint and preset
	EstimatesCollectorName = "estimator_estimates_total"
)

var latencyBuckets = []float64{1, 5, 10, 50, 100, 500}

// Metrics holds the server's prometheus collectors
type Metrics struct {
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	estimates *prometheus.CounterVec
}

// cacheStats is implemented by estimators that memoize results
type cacheStats interface {
	Stats() (hits, misses int64)
}

// NewMetrics creates the collectors and registers them with reg.
// Cache counters are registered only when est reports cache stats.
func NewMetrics(reg prometheus.Registerer, est interface{}) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: RequestsCollectorName,
			Help: "Number of HTTP requests partitioned by status code, method and HTTP path.",
		}, []string{"code", "method", "path"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    LatencyCollectorName,
			Help:    "Time spent on the request partitioned by status code, method and HTTP path.",
			Buckets: latencyBuckets,
		}, []string{"code", "method", "path"}),
		estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: EstimatesCollectorName,
			Help: "Number of estimates computed partitioned by endpoint and preset.",
		}, []string{"endpoint", "preset"}),
	}

	reg.MustRegister(m.requests, m.latency, m.estimates)

	if stats, ok := est.(cacheStats); ok {
		reg.MustRegister(
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Name: "estimator_cache_hits_total",
				Help: "Number of engine results served from the cache.",
			}, func() float64 {
				hits, _ := stats.Stats()
				return float64(hits)
			}),
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Name: "estimator_cache_misses_total",
				Help: "Number of engine results computed.",
			}, func() float64 {
				_, misses := stats.Stats()
				return float64(misses)
			}),
		)
	}

	return m
}

// Handler records request count and latency by route pattern
func (m *Metrics) Handler(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			rp := rctx.RoutePattern()
			code := strconv.Itoa(ww.Status())
			m.requests.WithLabelValues(code, r.Method, rp).Inc()
			m.latency.WithLabelValues(code, r.Method, rp).Observe(float64(time.Since(start).Milliseconds()))
		}
	}
	return http.HandlerFunc(fn)
}

// Estimated counts one estimate
func (m *Metrics) Estimated(endpoint, preset string) {
	m.estimates.WithLabelValues(endpoint, preset).Inc()
}
