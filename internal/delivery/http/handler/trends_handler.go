package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"freelance-trends/internal/delivery/http/dto"
	"freelance-trends/internal/delivery/http/middleware"
	"freelance-trends/internal/pkg/response"
	"freelance-trends/internal/usecase"
)

type TrendsHandler struct {
	trends *usecase.TrendUsecase
}

func NewTrendsHandler(trends *usecase.TrendUsecase) *TrendsHandler {
	return &TrendsHandler{trends: trends}
}

func (h *TrendsHandler) HandleSkills(c fiber.Ctx) error {
	snap, err := h.trends.LatestSnapshot(c.Context())
	if err != nil {
		return mapTrendError(err)
	}
	view := dto.NewSnapshotResponse(snap)
	return response.Success(c, fiber.StatusOK, "success", fiber.Map{
		"window_days": view.WindowDays,
		"skills":      view.Skills,
		"created_at":  view.CreatedAt,
	})
}

func (h *TrendsHandler) HandleRoles(c fiber.Ctx) error {
	snap, err := h.trends.LatestSnapshot(c.Context())
	if err != nil {
		return mapTrendError(err)
	}
	view := dto.NewSnapshotResponse(snap)
	return response.Success(c, fiber.StatusOK, "success", fiber.Map{
		"window_days": view.WindowDays,
		"roles":       view.Roles,
		"created_at":  view.CreatedAt,
	})
}

func (h *TrendsHandler) HandleClusters(c fiber.Ctx) error {
	windowDays, err := parseQueryInt(c, "window_days", 30)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid window_days", nil, err)
	}
	minCoOccurrence, err := parseQueryInt(c, "min_co_occurrence", 2)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid min_co_occurrence", nil, err)
	}

	clusters, err := h.trends.Clusters(c.Context(), windowDays, minCoOccurrence)
	if err != nil {
		return mapTrendError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", fiber.Map{
		"window_days":       windowDays,
		"min_co_occurrence": minCoOccurrence,
		"clusters":          dto.NewClusterResponses(clusters),
	})
}

func (h *TrendsHandler) HandleAnalyses(c fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid limit", nil, err)
	}

	snaps, err := h.trends.Analyses(c.Context(), limit)
	if err != nil {
		return mapTrendError(err)
	}
	out := make([]dto.SnapshotResponse, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, dto.NewSnapshotResponse(s))
	}
	return response.Success(c, fiber.StatusOK, "success", out)
}

func mapTrendError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrNoAnalysis):
		return middleware.NewAppError(fiber.StatusNotFound, "no analysis available yet", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "", nil, err)
	default:
		return err
	}
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}
