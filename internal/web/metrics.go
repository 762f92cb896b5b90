package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Number of handled HTTP requests partitioned by method and status.",
	},
	[]string{"method", "status"},
)

// countRequests counts every handled request for the /metrics endpoint.
func countRequests() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		httpRequestsTotal.WithLabelValues(
			c.Method(),
			strconv.Itoa(c.Response().StatusCode()),
		).Inc()

		return err
	}
}
