package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"map-editor/internal/common/config"
	"map-editor/internal/common/middleware"
	"map-editor/internal/editor/handlers"
	"map-editor/internal/editor/profile"
	"map-editor/internal/editor/session"
	"map-editor/internal/editor/submit"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Editor Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3001"
	}

	opts, err := profile.Load(cfg.EditorProfile)
	if err != nil {
		log.Fatalf("load editor profile: %v", err)
	}

	sessions := session.NewRegistry(opts)
	metrics := handlers.NewMetrics()

	submitTimeout := time.Duration(cfg.SubmitTimeout) * time.Second
	var submitter handlers.Submitter
	if cfg.MapsURL != "" {
		submitter = submit.NewClient(cfg.MapsURL, submitTimeout)
	} else {
		log.Printf("[EDITOR] MAPS_URL is empty, saving is disabled")
	}

	editorHandler := handlers.NewEditorHandler(sessions, submitter, metrics, submitTimeout)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Editor Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("EDITOR"))
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready", "sessions": sessions.Len()})
	})

	app.Get("/metrics", metrics.Handler())

	// ============================================================
	// Editor Routes
	// ============================================================

	editorHandler.Register(app)

	// ============================================================
	// Idle Session Sweep
	// ============================================================

	idle := time.Duration(cfg.SessionIdleMinutes) * time.Minute
	if idle > 0 {
		go func() {
			ticker := time.NewTicker(idle / 4)
			defer ticker.Stop()
			for range ticker.C {
				if n := sessions.Sweep(idle); n > 0 {
					metrics.SetSessions(sessions.Len())
					log.Printf("[EDITOR] Closed %d idle sessions", n)
				}
			}
		}()
	}

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Editor Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
