package agent

import (
	"strings"
	"testing"

	"freelance-trends/internal/domain/trend"
	"freelance-trends/internal/repository"
)

func TestComposeTrendingSkills_Format(t *testing.T) {
	text, artifact := ComposeTrendingSkills(testSnapshot())

	if !strings.Contains(text, "**Top Trending Skills (Last 30 Days)**") {
		t.Fatalf("missing heading: %q", text)
	}
	if !strings.Contains(text, "1. **Python**: 2 mentions (+100.0%)") {
		t.Fatalf("expected numbered line with signed growth: %q", text)
	}
	if !strings.Contains(text, "2. **Sql**: 2 mentions (new)") {
		t.Fatalf(`expected "new" rendered as a literal label: %q`, text)
	}

	if artifact.Name != "trending_skills" {
		t.Fatalf("expected trending_skills artifact, got %q", artifact.Name)
	}
	if len(artifact.Parts) != 1 || artifact.Parts[0].Kind != PartKindData {
		t.Fatalf("expected one data part, got %+v", artifact.Parts)
	}
	skills, ok := artifact.Parts[0].Data["skills"].([]map[string]any)
	if !ok || len(skills) != 2 {
		t.Fatalf("expected 2 skill entries in artifact, got %+v", artifact.Parts[0].Data)
	}
}

func TestComposeTrendingSkills_Empty(t *testing.T) {
	text, _ := ComposeTrendingSkills(trend.Snapshot{WindowDays: 30})
	if !strings.Contains(text, "No trending skills data available yet") {
		t.Fatalf("expected empty-state message, got %q", text)
	}
}

func TestComposeStats(t *testing.T) {
	text, artifact := ComposeStats(repository.JobStats{
		TotalJobs: 42, Jobs24h: 3, Jobs7d: 12, Companies: 9, TopSkills: []string{"go", "python"},
	})

	if !strings.Contains(text, "Total Jobs Tracked: 42") {
		t.Fatalf("missing totals: %q", text)
	}
	if artifact.Name != "statistics" {
		t.Fatalf("expected statistics artifact, got %q", artifact.Name)
	}
	if artifact.Parts[0].Data["total_jobs"] != 42 {
		t.Fatalf("artifact payload must mirror the dispatch result, got %+v", artifact.Parts[0].Data)
	}
}

func TestComposeScrapeResult(t *testing.T) {
	text, artifact := ComposeScrapeResult(ScrapeResult{FeedsProcessed: 5, TotalFetched: 40, JobsAdded: 7})

	if !strings.Contains(text, "New Jobs: 7") {
		t.Fatalf("missing counts: %q", text)
	}
	if artifact.Name != "scrape_result" || artifact.Parts[0].Data["jobs_added"] != 7 {
		t.Fatalf("unexpected artifact: %+v", artifact)
	}
}
