package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"freelance-trends/internal/delivery/http/dto"
	"freelance-trends/internal/delivery/http/middleware"
	"freelance-trends/internal/ingest"
	"freelance-trends/internal/pkg/response"
	"freelance-trends/internal/usecase"
)

type ingestRunner interface {
	Ingest(ctx context.Context) (ingest.Result, error)
}

type clientCounter interface {
	ClientCount() int
}

type AdminHandler struct {
	ingest          ingestRunner
	trends          *usecase.TrendUsecase
	db              pinger
	cache           pinger
	clients         clientCounter
	intervalMinutes int
}

func NewAdminHandler(ing ingestRunner, trends *usecase.TrendUsecase, db pinger, cache pinger, clients clientCounter, intervalMinutes int) *AdminHandler {
	return &AdminHandler{ingest: ing, trends: trends, db: db, cache: cache, clients: clients, intervalMinutes: intervalMinutes}
}

func (h *AdminHandler) HandleScrape(c fiber.Ctx) error {
	res, err := h.ingest.Ingest(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "success", dto.ScrapeResponse{
		FeedsProcessed: res.FeedsProcessed,
		TotalFetched:   res.TotalFetched,
		JobsAdded:      res.JobsAdded,
	})
}

func (h *AdminHandler) HandleAnalyze(c fiber.Ctx) error {
	windowDays, err := parseQueryInt(c, "window_days", 30)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid window_days", nil, err)
	}
	minMentions, err := parseQueryInt(c, "min_mentions", 2)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid min_mentions", nil, err)
	}

	snap, err := h.trends.Analyze(c.Context(), windowDays, minMentions)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "", nil, err)
		case errors.Is(err, usecase.ErrAnalysisInFlight):
			return middleware.NewAppError(fiber.StatusConflict, "analysis already running", nil, err)
		default:
			return err
		}
	}

	return response.Success(c, fiber.StatusOK, "success", dto.AnalyzeResponse{
		TotalJobsAnalyzed:   snap.TotalJobs,
		TrendingSkillsCount: len(snap.Skills),
		TrendingRolesCount:  len(snap.Roles),
		WindowDays:          snap.WindowDays,
		CreatedAt:           snap.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func (h *AdminHandler) HandleStatus(c fiber.Ctx) error {
	out := dto.AdminStatusResponse{
		Database:              "connected",
		Cache:                 "connected",
		ScrapeIntervalMinutes: h.intervalMinutes,
	}
	if h.db.Ping(c.Context()) != nil {
		out.Database = "down"
	}
	if h.cache == nil || h.cache.Ping(c.Context()) != nil {
		out.Cache = "bypassed"
	}
	if h.clients != nil {
		out.ConnectedClients = h.clients.ClientCount()
	}
	if snap, err := h.trends.LatestSnapshot(c.Context()); err == nil {
		latest := snap.CreatedAt.UTC().Format(time.RFC3339)
		out.LatestAnalysis = &latest
	}
	return response.Success(c, fiber.StatusOK, "success", out)
}
