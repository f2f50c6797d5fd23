package routes

import (
	"hackmatch/internal/config"
	"hackmatch/internal/database"
	"hackmatch/internal/delivery/http/handler"
	v1 "hackmatch/internal/delivery/http/routes/v1"
	"hackmatch/internal/infrastructure/cache"
	"hackmatch/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	WS     *ws.Handler
}

func Register(app *fiber.App, deps Deps) {
	if app == nil {
		return
	}

	handler.NewHealthHandler(deps.DB, deps.Cache).RegisterRoutes(app)

	if deps.WS != nil {
		app.Get("/ws/teams", deps.WS.HandleTeamsWS)
	}

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), deps.Config, deps.DB, deps.Cache, deps.Hub)
}
