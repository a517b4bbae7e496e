package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"freelance-trends/internal/config"
	"freelance-trends/internal/delivery/http/handler"
	"freelance-trends/internal/delivery/http/middleware"
	"freelance-trends/internal/delivery/http/routes"
	"freelance-trends/internal/ws"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registry := routes.NewRegistry(
		middleware.NewAccessLogMiddleware(c.Logger),
		middleware.NewErrorMiddleware(c.Logger),
		handler.NewHealthHandler(c.Config.App.AppName, c.DB, c.Cache, c.JobUC),
		handler.NewA2AHandler(c.Agent, c.Logger),
		handler.NewTrendsHandler(c.TrendUC),
		handler.NewJobsHandler(c.JobUC),
		handler.NewAdminHandler(c.Ingest, c.TrendUC, c.DB, c.Cache, c.Hub, c.Config.Ingest.IntervalMinutes),
		ws.NewHandler(c.Hub, c.Logger),
	)
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container, starts the background workers and
// returns the app with its cleanup function.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	a := New(c)

	go c.Hub.Run()

	if cfg.Ingest.IntervalMinutes > 0 {
		if err := c.Scheduler.Start(context.Background()); err != nil {
			_ = c.Close()
			return nil, nil, err
		}
	}

	cleanup := func() error {
		if cfg.Ingest.IntervalMinutes > 0 {
			c.Scheduler.Stop()
		}
		return c.Close()
	}
	return a, cleanup, nil
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
