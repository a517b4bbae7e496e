package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"freelance-trends/internal/delivery/http/middleware"
	"freelance-trends/internal/domain/trend"
	"freelance-trends/internal/pkg/response"
	"freelance-trends/internal/usecase"
)

type restAnalyzer struct {
	hasLatest bool
}

func (a restAnalyzer) ComputeSnapshot(context.Context, time.Time, int, int) (trend.Snapshot, error) {
	return trend.Snapshot{WindowDays: 30, TotalJobs: 4}, nil
}

func (a restAnalyzer) ComputeClusters(context.Context, time.Time, int, int) ([]trend.Cluster, error) {
	return []trend.Cluster{{Skills: []string{"python", "sql"}, Weight: 3}}, nil
}

func (a restAnalyzer) Latest(context.Context) (trend.Snapshot, bool) {
	return trend.Snapshot{
		WindowDays: 30,
		TotalJobs:  4,
		Skills:     []trend.SkillTrend{{Name: "python", Count: 3, Prior: 1, Growth: trend.PercentGrowth(200)}},
		Roles:      []trend.RoleTrend{{Name: "backend", Count: 2, TopSkills: []string{"python"}}},
		CreatedAt:  time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
	}, a.hasLatest
}

func newTrendsApp(hasLatest bool) *fiber.App {
	uc := usecase.NewTrendUsecase(restAnalyzer{hasLatest: hasLatest}, nil, nil, nil, nil)
	h := NewTrendsHandler(uc)

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	app.Get("/api/trends/skills", h.HandleSkills)
	app.Get("/api/trends/roles", h.HandleRoles)
	app.Get("/api/trends/clusters", h.HandleClusters)
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, response.SemanticResponse) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	var sr response.SemanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return resp.StatusCode, sr
}

func TestHandleSkills(t *testing.T) {
	status, sr := getJSON(t, newTrendsApp(true), "/api/trends/skills")
	if status != 200 || sr.Status != 200 {
		t.Fatalf("expected 200, got http=%d body=%d", status, sr.Status)
	}

	data, ok := sr.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %T", sr.Data)
	}
	skills, ok := data["skills"].([]any)
	if !ok || len(skills) != 1 {
		t.Fatalf("expected one skill entry, got %v", data["skills"])
	}
	entry := skills[0].(map[string]any)
	if entry["growth_percentage"] != "+200.0%" {
		t.Fatalf("expected formatted growth, got %v", entry["growth_percentage"])
	}
}

func TestHandleSkills_NoAnalysis(t *testing.T) {
	status, sr := getJSON(t, newTrendsApp(false), "/api/trends/skills")
	if status != 404 || sr.Status != 404 {
		t.Fatalf("expected 404 when no analysis exists, got http=%d body=%d", status, sr.Status)
	}
}

func TestHandleClusters(t *testing.T) {
	status, sr := getJSON(t, newTrendsApp(true), "/api/trends/clusters?window_days=30&min_co_occurrence=2")
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	data := sr.Data.(map[string]any)
	clusters, ok := data["clusters"].([]any)
	if !ok || len(clusters) != 1 {
		t.Fatalf("expected one cluster, got %v", data["clusters"])
	}
}

func TestHandleClusters_BadParams(t *testing.T) {
	app := newTrendsApp(true)

	for _, path := range []string{
		"/api/trends/clusters?window_days=abc",
		"/api/trends/clusters?window_days=0",
		"/api/trends/clusters?min_co_occurrence=-1",
	} {
		status, _ := getJSON(t, app, path)
		if status != 400 {
			t.Fatalf("%s: expected 400, got %d", path, status)
		}
	}
}
