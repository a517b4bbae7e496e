package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"freelance-trends/internal/delivery/http/dto"
	"freelance-trends/internal/pkg/response"
	"freelance-trends/internal/repository"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type statsProvider interface {
	Stats(ctx context.Context) (repository.JobStats, error)
}

type HealthHandler struct {
	appName string
	db      pinger
	cache   pinger
	stats   statsProvider
}

func NewHealthHandler(appName string, db pinger, cache pinger, stats statsProvider) *HealthHandler {
	return &HealthHandler{appName: appName, db: db, cache: cache, stats: stats}
}

// HandleHealth reports overall service health. A down database degrades
// the status but still answers 200 so orchestrators can see details.
func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	out := dto.HealthResponse{
		Status: "healthy",
		Agent:  h.appName,
		Cache:  "connected",
	}

	if err := h.db.Ping(c.Context()); err != nil {
		out.Status = "degraded"
	} else {
		out.Database.Connected = true
		if stats, err := h.stats.Stats(c.Context()); err == nil {
			out.Database.TotalJobs = stats.TotalJobs
			out.Database.Jobs24h = stats.Jobs24h
		}
	}

	if h.cache == nil || h.cache.Ping(c.Context()) != nil {
		out.Cache = "bypassed"
	}

	return response.Success(c, fiber.StatusOK, "success", out)
}

// HandleRoot describes the service and its entry points.
func (h *HealthHandler) HandleRoot(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, "success", dto.ServiceInfoResponse{
		Name:        h.appName,
		Description: "Tracks remote freelance job postings and surfaces skill and role trends.",
		Capabilities: []string{
			"trending_skills", "trending_roles", "latest_analysis",
			"search_jobs", "statistics", "trigger_scrape", "trigger_analyze",
		},
		Endpoints: []string{
			"POST /a2a/freelance",
			"GET /health",
			"GET /api/trends/skills",
			"GET /api/trends/roles",
			"GET /api/trends/clusters",
			"GET /api/trends/analyses",
			"GET /api/jobs",
			"GET /ws/events",
		},
	})
}
