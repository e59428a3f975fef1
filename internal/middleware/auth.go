package middleware

import (
	"strings"

	"github.com/craigderington/m3data-api/internal/services"
	"github.com/gofiber/fiber/v3"
)

const (
	// ContextKeyUserID is the key for user ID in context
	ContextKeyUserID = "user_id"
	// ContextKeyUsername is the key for username in context
	ContextKeyUsername = "username"
)

// AuthMiddleware validates the bearer token and attaches the resolved
// identity to the request context. Every failure mode (missing header,
// malformed token, expired token, bad signature, incomplete payload)
// yields the same unauthorized response; callers cannot tell them
// apart.
func AuthMiddleware(jwtService *services.JWTService) fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var token string

		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if token == "" {
			return unauthorized(c)
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			return unauthorized(c)
		}

		c.Locals(ContextKeyUserID, claims.UserID)
		c.Locals(ContextKeyUsername, claims.Username)

		return c.Next()
	}
}

func unauthorized(c fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "Unauthorized",
		"message": "Authentication required",
	})
}

// GetUserID gets the user ID from context
func GetUserID(c fiber.Ctx) int64 {
	if id, ok := c.Locals(ContextKeyUserID).(int64); ok {
		return id
	}
	return 0
}

// GetUsername gets the username from context
func GetUsername(c fiber.Ctx) string {
	if username, ok := c.Locals(ContextKeyUsername).(string); ok {
		return username
	}
	return ""
}
