package main

import (
	"fmt"
	"log"
	"time"

	"map-editor/internal/common/config"
	"map-editor/internal/common/middleware"
	"map-editor/internal/gateway/handlers"
	"map-editor/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "API Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("GATEWAY"))
	app.Use(middleware.CORS(cfg.CORSOrigins))

	upstreamTimeout := time.Duration(cfg.WriteTimeout) * time.Second
	editor := proxy.NewUpstream("editor", cfg.EditorURL, upstreamTimeout)
	maps := proxy.NewUpstream("maps", cfg.MapsURL, upstreamTimeout)

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe(map[string]handlers.Pinger{
		"editor": editor,
		"maps":   maps,
	}))
	app.Get("/health/startup", handlers.StartupProbe)

	// ============================================================
	// API Routes
	// ============================================================

	app.Get("/api/v1", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Map Editor API v1",
			"status":  "ok",
		})
	})

	editor.Mount(app, "/api/v1/editor")
	maps.Mount(app, "/api/v1/maps")

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting API Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying /api/v1/editor to %s, /api/v1/maps to %s", cfg.EditorURL, cfg.MapsURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
