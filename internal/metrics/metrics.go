// Package metrics exposes Prometheus instrumentation for the HTTP surface and
// the dashboard actions.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aroundyou",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aroundyou",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// CartAdds counts successful add-to-cart actions.
	CartAdds = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "aroundyou",
		Subsystem: "cart",
		Name:      "adds_total",
		Help:      "Products added to consumer carts.",
	})

	// OrderStatusUpdates counts status writes by target status and outcome.
	OrderStatusUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aroundyou",
			Subsystem: "orders",
			Name:      "status_updates_total",
			Help:      "Order status updates issued by merchants.",
		},
		[]string{"status", "outcome"},
	)

	// FetchFailures counts failed dashboard fetches by list.
	FetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aroundyou",
			Subsystem: "dashboard",
			Name:      "fetch_failures_total",
			Help:      "Dashboard list fetches that failed.",
		},
		[]string{"list"},
	)
)

// Middleware records request counts and latencies.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		httpRequests.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the Prometheus exposition format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
