package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"freelance-trends/internal/delivery/http/dto"
	"freelance-trends/internal/delivery/http/middleware"
	"freelance-trends/internal/pkg/response"
	"freelance-trends/internal/repository"
	"freelance-trends/internal/usecase"
)

type JobsHandler struct {
	jobs *usecase.JobUsecase
}

func NewJobsHandler(jobs *usecase.JobUsecase) *JobsHandler {
	return &JobsHandler{jobs: jobs}
}

func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid limit", nil, err)
	}

	postings, err := h.jobs.ListJobs(c.Context(), repository.JobFilter{
		Title:   c.Query("title"),
		Company: c.Query("company"),
		Tags:    parseTagsQuery(c.Query("tags")),
		Limit:   limit,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "", nil, err)
		}
		return err
	}

	return response.Success(c, fiber.StatusOK, "success", dto.NewJobResponses(postings))
}

func parseTagsQuery(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
