// Package metrics defines the Prometheus instrumentation for the service:
// HTTP request metrics with normalized route labels, conversion counters,
// and Earth-orientation fetch/cache gauges.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alttime_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "alttime_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	conversionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alttime_conversions_total",
			Help: "Total conversions computed, by system and outcome.",
		},
		[]string{"system", "outcome"},
	)

	eopFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alttime_eop_fetch_total",
			Help: "Earth-orientation fetch attempts by outcome.",
		},
		[]string{"outcome"},
	)

	eopDUT1Seconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "alttime_eop_dut1_seconds",
			Help: "Most recently fetched UT1-UTC correction in seconds.",
		},
	)

	eopSampleAgeSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "alttime_eop_sample_age_seconds",
			Help: "Age of the cached Earth-orientation sample in seconds.",
		},
	)

	streamConnectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alttime_stream_connections_total",
			Help: "SSE stream connect/disconnect events.",
		},
		[]string{"event"},
	)

	streamsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "alttime_streams_active",
			Help: "Currently connected SSE streams.",
		},
	)

	streamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alttime_stream_errors_total",
			Help: "SSE stream errors by reason.",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpDurationSeconds,
		conversionsTotal,
		eopFetchTotal,
		eopDUT1Seconds,
		eopSampleAgeSeconds,
		streamConnectionsTotal,
		streamsActive,
		streamErrorsTotal,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordConversion counts one conversion for the given system.
// Outcome is "ok", "out_of_range" or "error".
func RecordConversion(system, outcome string) {
	conversionsTotal.WithLabelValues(system, outcome).Inc()
}

// RecordEOPFetch counts one fetch attempt ("success", "error", "superseded").
func RecordEOPFetch(outcome string) {
	eopFetchTotal.WithLabelValues(outcome).Inc()
}

// SetDUT1 publishes the latest DUT1 value.
func SetDUT1(seconds float64) {
	eopDUT1Seconds.Set(seconds)
}

// SetEOPSampleAge publishes the age of the cached sample.
func SetEOPSampleAge(seconds float64) {
	eopSampleAgeSeconds.Set(seconds)
}

// IncStreamConnections counts a stream lifecycle event ("connect", "disconnect").
func IncStreamConnections(event string) {
	streamConnectionsTotal.WithLabelValues(event).Inc()
}

// IncStreamsActive increments the active stream gauge.
func IncStreamsActive() {
	streamsActive.Inc()
}

// DecStreamsActive decrements the active stream gauge.
func DecStreamsActive() {
	streamsActive.Dec()
}

// IncStreamErrors counts a stream error by reason.
func IncStreamErrors(reason string) {
	streamErrorsTotal.WithLabelValues(reason).Inc()
}

// knownRoutes are exact paths that keep their own label.
var knownRoutes = map[string]bool{
	"/":                    true,
	"/healthz":             true,
	"/readyz":              true,
	"/metrics":             true,
	"/api/v1/systems":      true,
	"/api/v1/convert":      true,
	"/api/v1/eop":          true,
	"/api/v1/stream/ticks": true,
}

// normalizeRoute collapses parameterized and unknown paths to bounded
// labels so scanner traffic cannot explode metric cardinality.
func normalizeRoute(path string) string {
	if knownRoutes[path] {
		return path
	}
	if strings.HasPrefix(path, "/api/v1/convert/") {
		return "/api/v1/convert/{system}"
	}
	return "other"
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming handlers working behind the wrapper.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(rw.statusCode)
		route := normalizeRoute(r.URL.Path)

		httpRequestsTotal.WithLabelValues(route, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(route, r.Method).Observe(duration)
	})
}
