package trends

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"freelance-trends/internal/domain/job"
	"freelance-trends/internal/domain/trend"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUpstream         = errors.New("upstream failure")
)

// JobStore is the read surface the analyzer aggregates over.
type JobStore interface {
	ListWindow(ctx context.Context, start, end time.Time) ([]job.Posting, error)
}

// History is the append-only snapshot history collaborator.
type History interface {
	Append(ctx context.Context, s trend.Snapshot) error
	Latest(ctx context.Context) (trend.Snapshot, bool, error)
	List(ctx context.Context, limit int) ([]trend.Snapshot, error)
}

// Analyzer turns raw postings into time-windowed frequency, growth and
// co-occurrence statistics. It owns no persistent state; results are
// appended to History.
type Analyzer struct {
	store   JobStore
	history History
	logger  *log.Logger
}

func NewAnalyzer(store JobStore, history History, logger *log.Logger) *Analyzer {
	return &Analyzer{store: store, history: history, logger: logger}
}

// ComputeSnapshot aggregates the window [windowEnd-windowDays, windowEnd)
// against the immediately preceding equal-length window, retains skills and
// roles with at least minMentions current mentions, and appends the result
// to History before returning it. An empty window yields an empty snapshot,
// not an error.
func (a *Analyzer) ComputeSnapshot(ctx context.Context, windowEnd time.Time, windowDays, minMentions int) (trend.Snapshot, error) {
	if windowDays <= 0 || minMentions < 0 {
		return trend.Snapshot{}, fmt.Errorf("%w: windowDays=%d minMentions=%d", ErrInvalidParameter, windowDays, minMentions)
	}

	windowEnd = windowEnd.UTC()
	windowStart := windowEnd.AddDate(0, 0, -windowDays)
	priorStart := windowStart.AddDate(0, 0, -windowDays)

	current, err := a.store.ListWindow(ctx, windowStart, windowEnd)
	if err != nil {
		return trend.Snapshot{}, fmt.Errorf("%w: query current window: %v", ErrUpstream, err)
	}
	prior, err := a.store.ListWindow(ctx, priorStart, windowStart)
	if err != nil {
		return trend.Snapshot{}, fmt.Errorf("%w: query prior window: %v", ErrUpstream, err)
	}

	snapshot := trend.Snapshot{
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		WindowDays:  windowDays,
		TotalJobs:   len(current),
		Skills:      rankSkills(tagCounts(current), tagCounts(prior), minMentions),
		Roles:       rankRoles(current, minMentions),
		CreatedAt:   time.Now().UTC(),
	}

	if err := a.history.Append(ctx, snapshot); err != nil {
		return trend.Snapshot{}, fmt.Errorf("%w: append snapshot: %v", ErrUpstream, err)
	}

	if a.logger != nil {
		a.logger.Printf("[Trends] Snapshot computed | window_days=%d jobs=%d skills=%d roles=%d",
			windowDays, snapshot.TotalJobs, len(snapshot.Skills), len(snapshot.Roles))
	}
	return snapshot, nil
}

// Latest returns the most recent history entry. The second return reports
// whether any analysis exists yet; lookup failures degrade to none.
func (a *Analyzer) Latest(ctx context.Context) (trend.Snapshot, bool) {
	s, ok, err := a.history.Latest(ctx)
	if err != nil {
		if a.logger != nil {
			a.logger.Printf("[Trends] Latest lookup failed | error=%v", err)
		}
		return trend.Snapshot{}, false
	}
	return s, ok
}

// tagCounts counts (posting, tag) pairs per normalized tag. A tag repeated
// inside one posting counts once: the tag list is an ordered set.
func tagCounts(postings []job.Posting) map[string]int {
	counts := make(map[string]int)
	for _, p := range postings {
		for _, tag := range p.NormalizedTags() {
			counts[tag]++
		}
	}
	return counts
}

// rankSkills filters by minMentions, attaches growth against the prior
// window and orders by descending count; ties are broken by descending
// growth where positive numeric growth ranks above "new" and "new" ranks
// above zero or negative growth.
func rankSkills(current, prior map[string]int, minMentions int) []trend.SkillTrend {
	out := make([]trend.SkillTrend, 0, len(current))
	for name, count := range current {
		if count < minMentions {
			continue
		}
		p := prior[name]
		var g trend.Growth
		if p > 0 {
			g = trend.PercentGrowth(float64(count-p) / float64(p) * 100)
		} else {
			g = trend.NewGrowth()
		}
		out = append(out, trend.SkillTrend{Name: name, Count: count, Prior: p, Growth: g})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		ra, rb := growthRank(a.Growth), growthRank(b.Growth)
		if ra != rb {
			return ra > rb
		}
		if !a.Growth.New && a.Growth.Percent != b.Growth.Percent {
			return a.Growth.Percent > b.Growth.Percent
		}
		return a.Name < b.Name
	})
	return out
}

func growthRank(g trend.Growth) int {
	switch {
	case !g.New && g.Percent > 0:
		return 2
	case g.New:
		return 1
	default:
		return 0
	}
}

func rankRoles(postings []job.Posting, minMentions int) []trend.RoleTrend {
	counts := make(map[string]int)
	skillsByRole := make(map[string]map[string]int)
	for _, p := range postings {
		role := RoleForTitle(p.Title)
		counts[role]++
		for _, tag := range p.NormalizedTags() {
			if skillsByRole[role] == nil {
				skillsByRole[role] = make(map[string]int)
			}
			skillsByRole[role][tag]++
		}
	}

	out := make([]trend.RoleTrend, 0, len(counts))
	for role, count := range counts {
		if count < minMentions {
			continue
		}
		out = append(out, trend.RoleTrend{Name: role, Count: count, TopSkills: topSkills(skillsByRole[role], 3)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func topSkills(counts map[string]int, limit int) []string {
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name: name, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.name)
	}
	return out
}
