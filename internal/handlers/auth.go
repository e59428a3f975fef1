package handlers

import (
	"context"
	"errors"

	"github.com/craigderington/m3data-api/internal/models"
	"github.com/craigderington/m3data-api/internal/services"
	"github.com/gofiber/fiber/v3"
)

// Authenticator verifies credentials and issues a persisted token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*models.User, string, error)
}

type AuthHandler struct {
	auth Authenticator
}

func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/v1.0/auth/login
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Bad Request",
			"message": "Username and password are required",
		})
	}

	user, token, err := h.auth.Login(context.Background(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserInactive) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "Forbidden",
				"message": "Account is deactivated",
			})
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "Invalid username or password",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal Server Error",
			"message": "Failed to log in",
		})
	}

	return c.JSON(fiber.Map{
		"user":  user.ToResponse(),
		"token": token,
	})
}

// Index handles GET /api/v1.0 and lists the available routes.
func Index(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"login":  "/api/v1.0/auth/login",
		"ipaddr": "/api/v1.0/ipaddr/<ip_addr>",
		"sms":    "/api/v1.0/sms/<number>",
		"geo":    "/api/v1.0/geo/<lat>/<lng>",
		"name":   "/api/v1.0/name/<first>/<last>",
	})
}
