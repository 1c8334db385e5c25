package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the dashboard's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "clientconnect",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight page requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clientconnect",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of page requests handled.",
		},
		[]string{"method", "pattern", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "clientconnect",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of page requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "pattern"},
	)

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clientconnect",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of requests sent to the CRM API.",
		},
		[]string{"code", "method"},
	)

	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "clientconnect",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of CRM API requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		apiRequests,
		apiDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentRoundTripper counts and times outgoing API calls.
func InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperCounter(apiRequests,
		promhttp.InstrumentRoundTripperDuration(apiDuration, next))
}

// InstrumentHandler wraps a routed handler with HTTP metrics collection.
// The route pattern is used as the label so ids in paths do not explode cardinality.
func InstrumentHandler(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next(rec, r)

		pattern := r.Pattern
		if pattern == "" {
			pattern = "unmatched"
		}
		httpRequests.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
