package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rbxdoc",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rbxdoc",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	documentLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rbxdoc",
			Subsystem: "decode",
			Name:      "loads_total",
			Help:      "Document load attempts by outcome.",
		},
		[]string{"outcome"},
	)
	documentLoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rbxdoc",
			Subsystem: "decode",
			Name:      "load_duration_seconds",
			Help:      "Document load duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, documentLoads, documentLoadDuration)
	})
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

func RecordDocumentLoad(err error, duration time.Duration) {
	RegisterMetrics()
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	documentLoads.WithLabelValues(outcome).Inc()
	documentLoadDuration.Observe(duration.Seconds())
}
