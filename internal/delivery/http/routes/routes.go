package routes

import (
	"github.com/gofiber/fiber/v3"

	"freelance-trends/internal/delivery/http/handler"
	"freelance-trends/internal/delivery/http/middleware"
	"freelance-trends/internal/ws"
)

type Registry struct {
	access *middleware.AccessLogMiddleware
	errors *middleware.ErrorMiddleware
	health *handler.HealthHandler
	a2a    *handler.A2AHandler
	trends *handler.TrendsHandler
	jobs   *handler.JobsHandler
	admin  *handler.AdminHandler
	events *ws.Handler
}

func NewRegistry(
	access *middleware.AccessLogMiddleware,
	errs *middleware.ErrorMiddleware,
	health *handler.HealthHandler,
	a2a *handler.A2AHandler,
	trends *handler.TrendsHandler,
	jobs *handler.JobsHandler,
	admin *handler.AdminHandler,
	events *ws.Handler,
) *Registry {
	return &Registry{
		access: access,
		errors: errs,
		health: health,
		a2a:    a2a,
		trends: trends,
		jobs:   jobs,
		admin:  admin,
		events: events,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Use(r.access.Middleware())
	app.Use(r.errors.Middleware())

	app.Get("/", r.health.HandleRoot)
	app.Get("/health", r.health.HandleHealth)

	app.Post("/a2a/freelance", r.a2a.HandleRPC)

	api := app.Group("/api")

	trends := api.Group("/trends")
	trends.Get("/skills", r.trends.HandleSkills)
	trends.Get("/roles", r.trends.HandleRoles)
	trends.Get("/clusters", r.trends.HandleClusters)
	trends.Get("/analyses", r.trends.HandleAnalyses)

	api.Get("/jobs", r.jobs.HandleListJobs)

	admin := api.Group("/admin")
	admin.Post("/scrape", r.admin.HandleScrape)
	admin.Post("/analyze", r.admin.HandleAnalyze)
	admin.Get("/status", r.admin.HandleStatus)

	if r.events != nil {
		app.Get("/ws/events", r.events.HandleTrendsWS)
	}
}
