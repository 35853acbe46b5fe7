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
			Namespace: "xclockd",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total admin API requests.",
		},
		[]string{"card", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "xclockd",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Admin API request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"card", "method", "path", "status"},
	)
	registerWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xclockd",
			Subsystem: "clock",
			Name:      "register_writes_total",
			Help:      "Control register writes issued to the clock chip.",
		},
		[]string{"clock", "result"},
	)
	clockRate = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "xclockd",
			Subsystem: "clock",
			Name:      "rate_hz",
			Help:      "Clock output rate as last recalculated; 0 when unknown.",
		},
		[]string{"clock"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, registerWrites, clockRate)
	})
}

func RecordHTTPRequest(card, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(card, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(card, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordRegisterWrite(clock string, err error) {
	RegisterMetrics()
	result := "ok"
	if err != nil {
		result = "error"
	}
	registerWrites.WithLabelValues(clock, result).Inc()
}

func RecordClockRate(clock string, hz uint32) {
	RegisterMetrics()
	clockRate.WithLabelValues(clock).Set(float64(hz))
}
