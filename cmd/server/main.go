package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/craigderington/m3data-api/config"
	"github.com/craigderington/m3data-api/internal/database"
	"github.com/craigderington/m3data-api/internal/handlers"
	"github.com/craigderington/m3data-api/internal/middleware"
	"github.com/craigderington/m3data-api/internal/rabbitmq"
	"github.com/craigderington/m3data-api/internal/routes"
	"github.com/craigderington/m3data-api/internal/services"
	workers "github.com/craigderington/m3data-api/internal/worker"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database successfully")

	if err := database.CreateSchema(context.Background(), db); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	// Initialize services
	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.TokenExpiry)
	authService := services.NewAuthService(db, jwtService)
	lookupService := services.NewLookupService(db)
	accessLogService := services.NewAccessLogService(db)
	geocodeService := services.NewGeocodeService()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:       "M3 Data API",
		CaseSensitive: true,
		StrictRouting: false,
		ServerHeader:  "M3Data",
		ErrorHandler:  customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			log.Printf("PANIC RECOVERED: %v", e)
			log.Printf("Request: %s %s", c.Method(), c.Path())
			log.Printf("Stack trace:\n%s", string(debug.Stack()))
		},
	}))
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${method} ${path} (${latency})\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// Setup RabbitMQ; the API runs degraded without it (no alert
	// dispatch, lookups unaffected)
	var mq *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mq, err = rabbitmq.Connect(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("Failed to connect to RabbitMQ: %v", err)
		} else {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go func() {
				emailService := services.NewEmailService()
				smsService := services.NewSMSService()
				alertWorker := workers.NewAlertWorker(mq, emailService, smsService, cfg.AlertRecipients)

				if err := alertWorker.StartWorker(ctx); err != nil {
					log.Printf("Worker failed: %v", err)
				}
			}()

			defer mq.Close()
		}
	}

	// Setup handlers and routes
	authHandler := handlers.NewAuthHandler(authService)
	var publisher handlers.AlertPublisher
	if mq != nil {
		publisher = mq
	}
	lookupHandler := handlers.NewLookupHandler(lookupService, accessLogService, geocodeService, publisher)

	routes.SetupRoutes(app, jwtService, authHandler, lookupHandler)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error shutting down: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting server on %s", addr)
	log.Printf("Environment: %s", cfg.Env)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func customErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   "Error",
		"message": err.Error(),
	})
}
