package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

// Pinger описывает зависимость, которую проверяет readiness.
type Pinger interface {
	Ping() error
}

// LivenessProbe проверяет, что приложение работает
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe готов, когда отвечают все зависимости. Ответ перечисляет
// недоступные по имени.
func ReadinessProbe(deps map[string]Pinger) fiber.Handler {
	return func(c fiber.Ctx) error {
		failed := fiber.Map{}
		for name, dep := range deps {
			if err := dep.Ping(); err != nil {
				failed[name] = err.Error()
			}
		}
		if len(failed) > 0 {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "not ready",
				"failed": failed,
			})
		}
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	}
}

func StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}
