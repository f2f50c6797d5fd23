package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hackmatch/internal/config"
	"hackmatch/internal/database/migration"
	"hackmatch/internal/database/seeder"
	"hackmatch/internal/delivery/http/middleware"
	"hackmatch/internal/delivery/http/routes"
	"hackmatch/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

func New(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, c)

	var wsHandler *ws.Handler
	if c != nil && c.Hub != nil {
		wsHandler = ws.NewHandler(c.Hub, c.Logger)
	}

	routes.Register(f, routes.Deps{
		Config: cfg,
		DB:     c.DB,
		Cache:  c.Cache,
		Hub:    c.Hub,
		WS:     wsHandler,
	})

	return &App{Fiber: f}
}

// Bootstrap builds the container, applies pending migrations and seed
// data, starts the websocket hub and returns the HTTP app with a
// cleanup func for shutdown.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("build container: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := (migration.Runner{Dir: "migrations"}).Run(ctx, c.DB.SQLDB()); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, c.DB); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("run seeders: %w", err)
	}

	go c.Hub.Run()

	app := New(cfg, c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	if c != nil {
		app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	}
	app.Use(middleware.NewErrorMiddleware().Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
