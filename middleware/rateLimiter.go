package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimiter allows max requests per window for each client IP. A max of
// zero disables the limit.
func RateLimiter(max int, window time.Duration, message string) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponse(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// APIRateLimiter guards every /api route.
func APIRateLimiter(max int) fiber.Handler {
	return RateLimiter(max, time.Minute, "Too many requests, please try again later")
}

// AuthRateLimiter guards register and login.
func AuthRateLimiter(max int) fiber.Handler {
	return RateLimiter(max, time.Minute, "Too many authentication attempts, please try again later")
}
