package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institucion-api/database"
	"github.com/sahilchouksey/institucion-api/utils/response"
	"go.uber.org/zap"
)

// HandleCheckHealth handles GET /health. It answers 503 when the database
// does not respond.
func HandleCheckHealth(store database.Storage, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.HealthCheck(); err != nil {
			log.Warn("health check failed", zap.Error(err))
			return response.ServiceUnavailable(c, "database unavailable")
		}
		return response.Success(c, fiber.Map{"status": "ok"})
	}
}
