package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/NitishV2006/OneOrbit/internal/config"
	"github.com/NitishV2006/OneOrbit/internal/database"
	"github.com/NitishV2006/OneOrbit/internal/middleware"
	"github.com/NitishV2006/OneOrbit/internal/monitoring"
	"github.com/NitishV2006/OneOrbit/internal/routes"
	"github.com/NitishV2006/OneOrbit/pkg/utils"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger := utils.NewLogger(cfg.AppEnv)
	defer func() { _ = zapLogger.Sync() }()

	monitoring.Register()

	// 2. Connect to Database (optional; falls back to in-memory storage)
	if cfg.DBUrl != "" {
		if err := database.ConnectDB(cfg.DBUrl, zapLogger); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB()
	}

	// 3. Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(cors.New())
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(middleware.Metrics())

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	if err := routes.RegisterRoutes(app, cfg, database.DB, zapLogger); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	// 4. Start Server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
