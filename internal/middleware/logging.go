package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Logging middleware that logs route, status code and response time.
// Websocket upgrades are logged by the session itself.
func Logging() fiber.Handler {
	return logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/ws"
		},
		Format:     "${time} | ${status} | ${latency} | ${method} | ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
		CustomTags: map[string]logger.LogFunc{
			"latency": func(output logger.Buffer, _ *fiber.Ctx, data *logger.Data, _ string) (int, error) {
				latency := float64(data.Stop.Sub(data.Start).Nanoseconds()) / float64(time.Millisecond)
				return fmt.Fprintf(output, "%6.1fms", latency)
			},
		},
	})
}
