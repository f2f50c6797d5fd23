package handler

import (
	"context"
	"time"

	"hackmatch/internal/database"
	"hackmatch/internal/infrastructure/cache"
	"hackmatch/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, cache *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.Live)
	app.Get("/health/ready", h.Ready)
}

func (h *HealthHandler) Live(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

// Ready reports dependency state. Redis is optional, so only the database
// gates readiness.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	deps := map[string]string{"database": "ok", "cache": "ok"}

	status := fiber.StatusOK
	if h.db == nil || h.db.Ping(ctx) != nil {
		deps["database"] = "unavailable"
		status = fiber.StatusServiceUnavailable
	}
	if h.cache == nil || h.cache.Ping(ctx) != nil {
		deps["cache"] = "unavailable"
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "not ready", deps)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, deps)
}
