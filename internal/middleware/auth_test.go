package middleware_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/craigderington/m3data-api/internal/middleware"
	"github.com/craigderington/m3data-api/internal/services"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func protectedApp(jwtService *services.JWTService) *fiber.App {
	app := fiber.New()
	app.Get("/protected", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  middleware.GetUserID(c),
			"username": middleware.GetUsername(c),
		})
	}, middleware.AuthMiddleware(jwtService))
	return app
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := services.NewJWTService(testSecret, time.Hour)

	t.Run("valid token attaches identity", func(t *testing.T) {
		token, err := jwtService.GenerateToken(42, "apiuser")
		require.NoError(t, err)

		app := protectedApp(jwtService)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"user_id":42,"username":"apiuser"}`, string(raw))
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		app := protectedApp(jwtService)

		resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired and forged tokens are indistinguishable", func(t *testing.T) {
		expired, err := services.NewJWTService(testSecret, -time.Hour).GenerateToken(42, "apiuser")
		require.NoError(t, err)

		valid, err := jwtService.GenerateToken(42, "apiuser")
		require.NoError(t, err)
		forged := valid[:len(valid)-4] + "AAAA"

		app := protectedApp(jwtService)

		var bodies []string
		for _, token := range []string{expired, forged, "not-a-token"} {
			req := httptest.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			bodies = append(bodies, string(raw))
		}

		// Callers must not be able to tell which failure occurred.
		assert.Equal(t, bodies[0], bodies[1])
		assert.Equal(t, bodies[1], bodies[2])
	})

	t.Run("token signed with a different key is rejected", func(t *testing.T) {
		other, err := services.NewJWTService("some-other-secret", time.Hour).GenerateToken(42, "apiuser")
		require.NoError(t, err)

		app := protectedApp(jwtService)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+other)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
