package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LoggingMiddleware logs one line per request with latency and status.
func LoggingMiddleware(logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		latency := time.Since(start)

		logger.Printf("%s %s%s%s %s %s%d%s %s",
			c.IP(),
			getMethodColor(c.Method()), c.Method(), "\033[0m",
			c.Path(),
			getStatusColor(status), status, "\033[0m",
			latency,
		)

		return err
	}
}

func getStatusColor(status int) string {
	switch {
	case status >= 500:
		return "\033[31m"
	case status >= 400:
		return "\033[33m"
	case status >= 300:
		return "\033[36m"
	case status >= 200:
		return "\033[32m"
	default:
		return "\033[37m"
	}
}

func getMethodColor(method string) string {
	switch method {
	case "GET":
		return "\033[34m"
	case "POST":
		return "\033[33m"
	case "PUT":
		return "\033[36m"
	case "DELETE":
		return "\033[31m"
	case "PATCH":
		return "\033[32m"
	default:
		return "\033[37m"
	}
}
