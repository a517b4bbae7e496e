package trends

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"freelance-trends/internal/domain/job"
	"freelance-trends/internal/domain/trend"
)

type fakeStore struct {
	postings []job.Posting
	err      error
}

func (s fakeStore) ListWindow(_ context.Context, start, end time.Time) ([]job.Posting, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]job.Posting, 0)
	for _, p := range s.postings {
		if !p.PostedAt.Before(start) && p.PostedAt.Before(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

type memHistory struct {
	mu        sync.Mutex
	snapshots []trend.Snapshot
	appendErr error
	latestErr error
}

func (h *memHistory) Append(_ context.Context, s trend.Snapshot) error {
	if h.appendErr != nil {
		return h.appendErr
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snapshots = append(h.snapshots, s)
	return nil
}

func (h *memHistory) Latest(_ context.Context) (trend.Snapshot, bool, error) {
	if h.latestErr != nil {
		return trend.Snapshot{}, false, h.latestErr
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.snapshots) == 0 {
		return trend.Snapshot{}, false, nil
	}
	return h.snapshots[len(h.snapshots)-1], true, nil
}

func (h *memHistory) List(_ context.Context, limit int) ([]trend.Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]trend.Snapshot, 0, limit)
	for i := len(h.snapshots) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, h.snapshots[i])
	}
	return out, nil
}

func posting(title string, postedAt time.Time, tags ...string) job.Posting {
	return job.Posting{Title: title, Tags: tags, PostedAt: postedAt}
}

var windowEnd = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func TestComputeSnapshot_InvalidParameters(t *testing.T) {
	a := NewAnalyzer(fakeStore{}, &memHistory{}, nil)

	if _, err := a.ComputeSnapshot(context.Background(), windowEnd, 0, 2); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for windowDays=0, got %v", err)
	}
	if _, err := a.ComputeSnapshot(context.Background(), windowEnd, 30, -1); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for minMentions=-1, got %v", err)
	}
}

func TestComputeSnapshot_EndToEnd(t *testing.T) {
	cur := windowEnd.AddDate(0, 0, -10)
	prev := windowEnd.AddDate(0, 0, -40)

	store := fakeStore{postings: []job.Posting{
		posting("Backend Engineer", cur, "python", "sql"),
		posting("Fullstack Developer", cur, "python", "react"),
		posting("Data Analyst", cur, "sql"),
		posting("Backend Engineer", prev, "python"),
	}}
	hist := &memHistory{}
	a := NewAnalyzer(store, hist, nil)

	snap, err := a.ComputeSnapshot(context.Background(), windowEnd, 30, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	counts := snap.SkillCounts()
	if len(counts) != 2 || counts["python"] != 2 || counts["sql"] != 2 {
		t.Fatalf("expected {python:2, sql:2}, got %v", counts)
	}
	if _, ok := counts["react"]; ok {
		t.Fatalf("react below minMentions must be excluded")
	}

	if snap.Skills[0].Name != "python" || snap.Skills[1].Name != "sql" {
		t.Fatalf("expected order [python, sql], got [%s, %s]", snap.Skills[0].Name, snap.Skills[1].Name)
	}
	if g := snap.Skills[0].Growth; g.New || g.Percent != 100.0 {
		t.Fatalf("expected python growth +100.0, got %v", g)
	}
	if g := snap.Skills[1].Growth; !g.New {
		t.Fatalf("expected sql growth new, got %v", g)
	}
	if snap.TotalJobs != 3 {
		t.Fatalf("expected 3 jobs analyzed, got %d", snap.TotalJobs)
	}

	if got, ok, _ := hist.Latest(context.Background()); !ok || got.TotalJobs != 3 {
		t.Fatalf("snapshot must be appended to history before returning")
	}
}

func TestComputeSnapshot_GrowthMath(t *testing.T) {
	cases := []struct {
		prior, current int
		wantNew        bool
		wantPercent    float64
	}{
		{prior: 10, current: 15, wantPercent: 50.0},
		{prior: 0, current: 3, wantNew: true},
		{prior: 3, current: 1, wantPercent: -66.7},
		{prior: 4, current: 4, wantPercent: 0.0},
	}

	for _, tc := range cases {
		cur := windowEnd.AddDate(0, 0, -1)
		prev := windowEnd.AddDate(0, 0, -31)
		var postings []job.Posting
		for i := 0; i < tc.current; i++ {
			postings = append(postings, posting("Dev", cur, "go"))
		}
		for i := 0; i < tc.prior; i++ {
			postings = append(postings, posting("Dev", prev, "go"))
		}

		a := NewAnalyzer(fakeStore{postings: postings}, &memHistory{}, nil)
		snap, err := a.ComputeSnapshot(context.Background(), windowEnd, 30, 0)
		if err != nil {
			t.Fatalf("prior=%d current=%d: unexpected err: %v", tc.prior, tc.current, err)
		}
		if len(snap.Skills) != 1 {
			t.Fatalf("prior=%d current=%d: expected 1 skill, got %d", tc.prior, tc.current, len(snap.Skills))
		}
		g := snap.Skills[0].Growth
		if g.New != tc.wantNew {
			t.Fatalf("prior=%d current=%d: expected new=%v, got %v", tc.prior, tc.current, tc.wantNew, g)
		}
		if !tc.wantNew && g.Percent != tc.wantPercent {
			t.Fatalf("prior=%d current=%d: expected %.1f, got %.1f", tc.prior, tc.current, tc.wantPercent, g.Percent)
		}
	}
}

func TestComputeSnapshot_TagNormalization(t *testing.T) {
	cur := windowEnd.AddDate(0, 0, -1)
	store := fakeStore{postings: []job.Posting{
		posting("Dev", cur, "Python", "  python "),
		posting("Dev", cur, "python"),
	}}
	a := NewAnalyzer(store, &memHistory{}, nil)

	snap, err := a.ComputeSnapshot(context.Background(), windowEnd, 30, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	counts := snap.SkillCounts()
	if counts["python"] != 2 {
		t.Fatalf(`expected "Python" and "python " to count as one skill per posting, got %v`, counts)
	}
}

func TestComputeSnapshot_EmptyWindow(t *testing.T) {
	hist := &memHistory{}
	a := NewAnalyzer(fakeStore{}, hist, nil)

	snap, err := a.ComputeSnapshot(context.Background(), windowEnd, 7, 1)
	if err != nil {
		t.Fatalf("empty window must not fail, got %v", err)
	}
	if len(snap.Skills) != 0 || len(snap.Roles) != 0 || snap.TotalJobs != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
	if len(hist.snapshots) != 1 {
		t.Fatalf("empty snapshot must still be appended")
	}
}

func TestComputeSnapshot_TieBreakOrdering(t *testing.T) {
	cur := windowEnd.AddDate(0, 0, -1)
	prev := windowEnd.AddDate(0, 0, -31)
	store := fakeStore{postings: []job.Posting{
		// all three at count 2 in the current window
		posting("Dev", cur, "rising", "fresh", "falling"),
		posting("Dev", cur, "rising", "fresh", "falling"),
		// prior: rising 1 (+100%), fresh 0 (new), falling 4 (-50%)
		posting("Dev", prev, "rising", "falling"),
		posting("Dev", prev, "falling"),
		posting("Dev", prev, "falling"),
		posting("Dev", prev, "falling"),
	}}
	a := NewAnalyzer(store, &memHistory{}, nil)

	snap, err := a.ComputeSnapshot(context.Background(), windowEnd, 30, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := []string{snap.Skills[0].Name, snap.Skills[1].Name, snap.Skills[2].Name}
	want := []string{"rising", "fresh", "falling"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestComputeSnapshot_UpstreamFailure(t *testing.T) {
	a := NewAnalyzer(fakeStore{err: errors.New("boom")}, &memHistory{}, nil)
	if _, err := a.ComputeSnapshot(context.Background(), windowEnd, 30, 1); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}

	a = NewAnalyzer(fakeStore{postings: []job.Posting{posting("Dev", windowEnd.AddDate(0, 0, -1), "go")}},
		&memHistory{appendErr: errors.New("boom")}, nil)
	if _, err := a.ComputeSnapshot(context.Background(), windowEnd, 30, 0); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream on append failure, got %v", err)
	}
}

func TestTagCounts_SumEqualsPostingTagPairs(t *testing.T) {
	cur := windowEnd.AddDate(0, 0, -1)
	postings := []job.Posting{
		posting("Dev", cur, "go", "sql"),
		posting("Dev", cur, "go"),
		posting("Dev", cur, "react", "go", "sql"),
	}

	counts := tagCounts(postings)
	sum := 0
	for _, c := range counts {
		sum += c
	}

	pairs := 0
	for _, p := range postings {
		pairs += len(p.NormalizedTags())
	}
	if sum != pairs {
		t.Fatalf("expected sum of counts %d to equal (posting, tag) pairs %d", sum, pairs)
	}
}

func TestLatest(t *testing.T) {
	hist := &memHistory{}
	a := NewAnalyzer(fakeStore{}, hist, nil)

	if _, ok := a.Latest(context.Background()); ok {
		t.Fatalf("expected no analysis yet")
	}

	if _, err := a.ComputeSnapshot(context.Background(), windowEnd, 30, 1); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := a.Latest(context.Background()); !ok {
		t.Fatalf("expected latest snapshot after compute")
	}

	// lookup failures degrade to none, never an error
	a = NewAnalyzer(fakeStore{}, &memHistory{latestErr: errors.New("boom")}, nil)
	if _, ok := a.Latest(context.Background()); ok {
		t.Fatalf("expected ok=false on history failure")
	}
}

func TestRoleForTitle(t *testing.T) {
	cases := map[string]string{
		"Senior Backend Engineer":      "backend",
		"Full Stack React Developer":   "fullstack",
		"React Developer":              "frontend",
		"DevOps / SRE":                 "devops",
		"Data Scientist":               "data",
		"Senior Product Manager":       "product",
		"iOS Engineer":                 "mobile",
		"Underwater Basket Weaver":     "other",
		"":                             "other",
		"Quality Assurance Specialist": "qa",
	}
	for title, want := range cases {
		if got := RoleForTitle(title); got != want {
			t.Fatalf("RoleForTitle(%q): expected %q, got %q", title, want, got)
		}
	}
}
