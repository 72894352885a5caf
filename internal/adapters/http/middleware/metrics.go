package middleware

import (
	"errors"
	"time"

	"bms-backend/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records every request against its route pattern, so /apply/:id
// stays one series however many ids are seen
func Metrics(rec metrics.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		route := "unmatched"
		if status != fiber.StatusNotFound || err == nil {
			route = c.Route().Path
		}

		rec.RecordRequest(c.Method(), route, status, time.Since(start))
		return err
	}
}
