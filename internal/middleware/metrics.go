package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/NitishV2006/OneOrbit/internal/monitoring"
)

// Metrics records request counts and durations per route.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		monitoring.RequestCount.WithLabelValues(c.Method(), path, strconv.Itoa(c.Response().StatusCode())).Inc()
		monitoring.RequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}
