// Command tokensweep regenerates the bearer token for every active
// user. It is meant to run from cron, outside request traffic; each
// user's token swap is its own statement, so an interrupted sweep
// leaves a mixed set of old and new tokens until the next run.
package main

import (
	"context"
	"log"

	"github.com/craigderington/m3data-api/config"
	"github.com/craigderington/m3data-api/internal/database"
	"github.com/craigderington/m3data-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.TokenExpiry)
	authService := services.NewAuthService(db, jwtService)

	refreshed, err := authService.RefreshAllTokens(context.Background())
	if err != nil {
		log.Fatalf("Token sweep failed after %d users: %v", refreshed, err)
	}

	log.Printf("Refreshed tokens for %d active users", refreshed)
}
