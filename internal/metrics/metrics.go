package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const unmatchedRoute = "unmatched"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "foodsaver",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodsaver",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "foodsaver",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	itemsShared = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "foodsaver",
			Subsystem: "food",
			Name:      "items_shared_total",
			Help:      "Total number of food items shared.",
		},
	)

	reservations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodsaver",
			Subsystem: "transactions",
			Name:      "status_changes_total",
			Help:      "Total number of transaction status changes, including new reservations.",
		},
		[]string{"status"},
	)

	signIns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodsaver",
			Subsystem: "auth",
			Name:      "sign_ins_total",
			Help:      "Total number of sign-in attempts.",
		},
		[]string{"method", "success"},
	)

	sweepRuns = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "foodsaver",
			Subsystem: "jobs",
			Name:      "run_duration_seconds",
			Help:      "Duration of background job runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"job", "success"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		itemsShared,
		reservations,
		signIns,
		sweepRuns,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency per route pattern.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		// unmatched requests share one label so stray paths cannot grow the series set
		path := c.Route().Path
		if path == "" || path == "/" {
			path = unmatchedRoute
		}
		method := strings.ToUpper(c.Method())

		httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}

func RecordItemShared() {
	itemsShared.Inc()
}

func RecordTransactionStatus(status string) {
	reservations.WithLabelValues(status).Inc()
}

func RecordSignIn(method string, success bool) {
	signIns.WithLabelValues(method, strconv.FormatBool(success)).Inc()
}

func RecordJobRun(job string, duration time.Duration, success bool) {
	if duration <= 0 {
		duration = time.Millisecond
	}
	sweepRuns.WithLabelValues(job, strconv.FormatBool(success)).Observe(duration.Seconds())
}
