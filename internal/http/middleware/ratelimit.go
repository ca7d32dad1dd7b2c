package middleware

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// RateLimiter applies a token bucket per client IP. rps <= 0 disables it.
func RateLimiter(rps float64, burst int) fiber.Handler {
	if rps <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	var limiters sync.Map // client IP -> *rate.Limiter

	return func(c *fiber.Ctx) error {
		v, _ := limiters.LoadOrStore(c.IP(), rate.NewLimiter(rate.Limit(rps), burst))
		if !v.(*rate.Limiter).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many requests"})
		}
		return c.Next()
	}
}
