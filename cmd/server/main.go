package main

import (
	"log"

	"github.com/circlio/backend/internal/router"
	"github.com/circlio/backend/pkg/config"
	"github.com/circlio/backend/pkg/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database and broker connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize connections: %v", err)
	}
	defer db.CloseDB() // Ensure connections are closed when main exits

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Postgres, db.Redis, db.Nats)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
