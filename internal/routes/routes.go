package routes

import (
	"github.com/craigderington/m3data-api/internal/handlers"
	"github.com/craigderington/m3data-api/internal/middleware"
	"github.com/craigderington/m3data-api/internal/services"
	"github.com/gofiber/fiber/v3"
)

func SetupRoutes(app *fiber.App, jwtService *services.JWTService, authHandler *handlers.AuthHandler, lookupHandler *handlers.LookupHandler) {
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "M3 Data API is running",
		})
	})

	api := app.Group("/api")
	v1 := api.Group("/v1.0")

	// Index: route listing, no auth required
	v1.Get("/", handlers.Index)
	v1.Get("/index", handlers.Index)

	// Public login route, rate limited per IP
	v1.Post("/auth/login", authHandler.Login, middleware.RateLimitMiddleware())

	// ==================
	// Protected Lookup Routes (Bearer token)
	// ==================
	protected := v1.Group("", middleware.AuthMiddleware(jwtService))

	protected.Get("/ipaddr/:ip", lookupHandler.ByIP)
	protected.Get("/sms/:number", lookupHandler.ByPhone)
	protected.Get("/geo/:lat/:lng", lookupHandler.ByCoordinates)
	protected.Get("/name/:first/:last", lookupHandler.ByName)
}
