package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "safewalk",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "safewalk",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "path"})

	// Routing metrics
	RouteCalculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "safewalk",
		Subsystem: "routing",
		Name:      "calculations_total",
		Help:      "Total safe-route calculations by outcome",
	}, []string{"outcome"})

	providerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "safewalk",
		Subsystem: "routing",
		Name:      "provider_request_duration_seconds",
		Help:      "Duration of routing provider requests",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"op"})

	// Generative service metrics
	genaiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "safewalk",
		Subsystem: "genai",
		Name:      "request_duration_seconds",
		Help:      "Duration of generative service requests",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"op"})

	GenAIFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "safewalk",
		Subsystem: "genai",
		Name:      "fallbacks_total",
		Help:      "Total generative calls that degraded to a deterministic fallback",
	}, []string{"op"})

	// Pin store metrics
	PinEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "safewalk",
		Subsystem: "pins",
		Name:      "events_total",
		Help:      "Total pin store mutations",
	}, []string{"action"})

	SummaryCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "safewalk",
		Subsystem: "cache",
		Name:      "summary_lookups_total",
		Help:      "Area summary cache lookups by result",
	}, []string{"result"})
)

// TimeProviderRequest observes the duration of one routing provider call
// when the returned func is deferred.
func TimeProviderRequest(op string) func() {
	start := time.Now()
	return func() {
		providerRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

// TimeGenAIRequest observes the duration of one generative service call.
func TimeGenAIRequest(op string) func() {
	start := time.Now()
	return func() {
		genaiRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

// ObserveHTTPRequest records one served HTTP request.
func ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
