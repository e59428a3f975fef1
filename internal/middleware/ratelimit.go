package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
)

// RateLimitMiddleware creates an IP-based rate limiter for the public
// login route.
func RateLimitMiddleware() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        15,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return GetRealIP(c)
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Too many requests",
				"message":     "Please slow down. Try again in a minute.",
				"retry_after": 60,
			})
		},
		SkipFailedRequests:     false,
		SkipSuccessfulRequests: false,
	})
}

// GetRealIP extracts the real client IP from headers or connection
// Priority: X-Real-IP > X-Forwarded-For > c.IP()
func GetRealIP(c fiber.Ctx) string {
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
		return forwardedFor
	}

	return c.IP()
}
