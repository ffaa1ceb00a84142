package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"cv-parser/internal/services"
)

// RateLimit throttles by client IP using the sliding-window limiter. When the
// cache backend is unreachable the request is let through; throttling is an
// abuse guard, not a dependency the API should die on.
func RateLimit(limiter services.RateLimiter, maxRequests int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, err := limiter.Admit(c.UserContext(), c.IP())
		if err != nil {
			log.Printf("⚠️  Rate limiter unavailable, letting request through: %v\n", err)
			return c.Next()
		}

		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": fmt.Sprintf("Rate limit exceeded. Max %d requests per %d seconds.",
					maxRequests, int(window.Seconds())),
			})
		}

		return c.Next()
	}
}
