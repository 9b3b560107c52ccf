package main

import (
	"log"

	"coursehub/config"
	"coursehub/database"
	"coursehub/jobs"
	"coursehub/middleware"
	"coursehub/routes"
	"coursehub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatalf("Error seeding database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg)

	// Nightly counter reconciliation
	scheduler := jobs.StartScheduler(db, logger)
	defer scheduler.Stop()

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
