package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"freelance-trends/internal/agent"
	"freelance-trends/internal/delivery/http/dto"
	"freelance-trends/internal/domain/job"
	"freelance-trends/internal/domain/trend"
	"freelance-trends/internal/repository"
)

type rpcAnalyzer struct{}

func (rpcAnalyzer) ComputeSnapshot(context.Context, time.Time, int, int) (trend.Snapshot, error) {
	return trend.Snapshot{
		WindowDays: 30,
		TotalJobs:  2,
		Skills:     []trend.SkillTrend{{Name: "python", Count: 2, Growth: trend.NewGrowth()}},
	}, nil
}

func (a rpcAnalyzer) Latest(ctx context.Context) (trend.Snapshot, bool) {
	snap, _ := a.ComputeSnapshot(ctx, time.Time{}, 0, 0)
	return snap, true
}

type rpcSearcher struct{}

func (rpcSearcher) ListFiltered(context.Context, repository.JobFilter) ([]job.Posting, error) {
	return nil, nil
}

func (rpcSearcher) Stats(context.Context) (repository.JobStats, error) {
	return repository.JobStats{TotalJobs: 2}, nil
}

type rpcScraper struct{ err error }

func (s rpcScraper) Ingest(context.Context) (agent.ScrapeResult, error) {
	if s.err != nil {
		return agent.ScrapeResult{}, s.err
	}
	return agent.ScrapeResult{FeedsProcessed: 1, TotalFetched: 3, JobsAdded: 3}, nil
}

func newRPCApp(scrapeErr error) *fiber.App {
	a := agent.New(rpcAnalyzer{}, rpcSearcher{}, rpcScraper{err: scrapeErr}, nil)
	app := fiber.New()
	app.Post("/a2a/freelance", NewA2AHandler(a, nil).HandleRPC)
	return app
}

func postRPC(t *testing.T, app *fiber.App, body string) dto.JSONRPCResponse {
	t.Helper()

	req := httptest.NewRequest("POST", "/a2a/freelance", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("expected HTTP 200 for JSON-RPC, got %d", resp.StatusCode)
	}

	var out dto.JSONRPCResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return out
}

func decodeTask(t *testing.T, result any) dto.TaskResponse {
	t.Helper()

	b, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	var task dto.TaskResponse
	if err := json.Unmarshal(b, &task); err != nil {
		t.Fatalf("unmarshal task: %v", err)
	}
	return task
}

func TestHandleRPC_MalformedBody(t *testing.T) {
	out := postRPC(t, newRPCApp(nil), "{not json")
	if out.Error == nil || out.Error.Code != dto.CodeInvalidRequest {
		t.Fatalf("expected -32600, got %+v", out.Error)
	}
}

func TestHandleRPC_InvalidEnvelope(t *testing.T) {
	app := newRPCApp(nil)

	for _, body := range []string{
		`{"jsonrpc":"1.0","id":1,"method":"message/send","params":{}}`,
		`{"jsonrpc":"2.0","method":"message/send","params":{}}`,
		`{"jsonrpc":"2.0","id":null,"method":"message/send","params":{}}`,
	} {
		out := postRPC(t, app, body)
		if out.Error == nil || out.Error.Code != dto.CodeInvalidRequest {
			t.Fatalf("body %s: expected -32600, got %+v", body, out.Error)
		}
	}
}

func TestHandleRPC_MethodNotFound(t *testing.T) {
	out := postRPC(t, newRPCApp(nil), `{"jsonrpc":"2.0","id":1,"method":"tasks/get","params":{}}`)
	if out.Error == nil || out.Error.Code != dto.CodeMethodNotFound {
		t.Fatalf("expected -32601, got %+v", out.Error)
	}
}

func TestHandleRPC_InvalidParams(t *testing.T) {
	app := newRPCApp(nil)

	for _, body := range []string{
		`{"jsonrpc":"2.0","id":1,"method":"message/send","params":{"message":{"kind":"message","role":"user","parts":[]}}}`,
		`{"jsonrpc":"2.0","id":1,"method":"message/send","params":"nope"}`,
		`{"jsonrpc":"2.0","id":1,"method":"execute","params":{"messages":[]}}`,
	} {
		out := postRPC(t, app, body)
		if out.Error == nil || out.Error.Code != dto.CodeInvalidParams {
			t.Fatalf("body %s: expected -32602, got %+v", body, out.Error)
		}
	}
}

func TestHandleRPC_SendMessage(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":7,"method":"message/send","params":{"message":{"kind":"message","role":"user","parts":[{"kind":"text","text":"show trending skills"}]}}}`
	out := postRPC(t, newRPCApp(nil), body)

	if out.Error != nil {
		t.Fatalf("unexpected rpc error: %+v", out.Error)
	}
	if string(out.ID) != "7" {
		t.Fatalf("expected echoed id 7, got %s", out.ID)
	}

	task := decodeTask(t, out.Result)
	if task.Kind != "task" {
		t.Fatalf("expected kind=task, got %q", task.Kind)
	}
	if task.Status.State != "completed" {
		t.Fatalf("expected completed, got %q", task.Status.State)
	}
	if task.Status.Message == nil || !strings.Contains(task.Status.Message.Text(), "Top Trending Skills") {
		t.Fatalf("expected composed text, got %+v", task.Status.Message)
	}
	if len(task.Artifacts) == 0 || task.Artifacts[0].Name != "trending_skills" {
		t.Fatalf("expected trending_skills artifact, got %+v", task.Artifacts)
	}
	if len(task.History) != 2 {
		t.Fatalf("expected user+agent history, got %d messages", len(task.History))
	}
}

func TestHandleRPC_ExecuteKeepsContext(t *testing.T) {
	app := newRPCApp(nil)

	first := `{"jsonrpc":"2.0","id":1,"method":"execute","params":{"contextId":"ctx-1","messages":[{"kind":"message","role":"user","parts":[{"kind":"text","text":"help"}]}]}}`
	out := postRPC(t, app, first)
	if out.Error != nil {
		t.Fatalf("unexpected rpc error: %+v", out.Error)
	}
	task := decodeTask(t, out.Result)
	if task.ContextID != "ctx-1" {
		t.Fatalf("expected caller contextId kept, got %q", task.ContextID)
	}

	second := `{"jsonrpc":"2.0","id":2,"method":"execute","params":{"contextId":"ctx-1","messages":[{"kind":"message","role":"user","parts":[{"kind":"text","text":"show stats"}]}]}}`
	out = postRPC(t, app, second)
	task = decodeTask(t, out.Result)
	if len(task.History) != 4 {
		t.Fatalf("expected history across turns, got %d messages", len(task.History))
	}
}

func TestHandleRPC_DispatchFailureIsFailedTask(t *testing.T) {
	app := newRPCApp(errors.New("feeds unreachable"))

	body := `{"jsonrpc":"2.0","id":1,"method":"message/send","params":{"message":{"kind":"message","role":"user","parts":[{"kind":"text","text":"scrape jobs"}]}}}`
	out := postRPC(t, app, body)

	if out.Error != nil {
		t.Fatalf("dispatch failure must not become an rpc error, got %+v", out.Error)
	}
	task := decodeTask(t, out.Result)
	if task.Status.State != "failed" {
		t.Fatalf("expected failed task, got %q", task.Status.State)
	}
	if task.Status.Message == nil || !strings.Contains(task.Status.Message.Text(), "Error:") {
		t.Fatalf("expected readable failure message, got %+v", task.Status.Message)
	}
}
