package trend

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Growth is the percentage change in a skill's mention count between a
// window and its immediate predecessor. A skill absent from the prior
// window carries the "new" marker instead of a percentage.
type Growth struct {
	New     bool
	Percent float64
}

// NewGrowth marks a skill with no prior-window baseline.
func NewGrowth() Growth {
	return Growth{New: true}
}

// PercentGrowth rounds the percentage to one decimal.
func PercentGrowth(pct float64) Growth {
	return Growth{Percent: math.Round(pct*10) / 10}
}

// String renders "+50.0%", "-12.5%" or the literal "new" label.
func (g Growth) String() string {
	if g.New {
		return "new"
	}
	return fmt.Sprintf("%+.1f%%", g.Percent)
}

func (g Growth) MarshalJSON() ([]byte, error) {
	if g.New {
		return json.Marshal("new")
	}
	return json.Marshal(g.Percent)
}

func (g *Growth) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s != "new" {
			return fmt.Errorf("unknown growth marker %q", s)
		}
		*g = Growth{New: true}
		return nil
	}
	var pct float64
	if err := json.Unmarshal(b, &pct); err != nil {
		return err
	}
	*g = Growth{Percent: pct}
	return nil
}

// SkillTrend is one ranked skill entry in a snapshot.
type SkillTrend struct {
	Name   string `json:"skill_name"`
	Count  int    `json:"current_mentions"`
	Prior  int    `json:"prior_mentions"`
	Growth Growth `json:"growth_percentage"`
}

// RoleTrend is one ranked role bucket in a snapshot.
type RoleTrend struct {
	Name      string   `json:"role_name"`
	Count     int      `json:"job_count"`
	TopSkills []string `json:"top_skills"`
}

// Snapshot is the immutable result of one aggregation run over a window.
// Skills and Roles are ordered by rank; history entries are append-only.
type Snapshot struct {
	WindowStart time.Time    `json:"window_start"`
	WindowEnd   time.Time    `json:"window_end"`
	WindowDays  int          `json:"window_days"`
	TotalJobs   int          `json:"total_jobs_analyzed"`
	Skills      []SkillTrend `json:"trending_skills"`
	Roles       []RoleTrend  `json:"trending_roles"`
	CreatedAt   time.Time    `json:"created_at"`
}

// SkillCounts returns the snapshot's skill→count view.
func (s Snapshot) SkillCounts() map[string]int {
	out := make(map[string]int, len(s.Skills))
	for _, sk := range s.Skills {
		out[sk.Name] = sk.Count
	}
	return out
}

// RoleCounts returns the snapshot's role→count view.
func (s Snapshot) RoleCounts() map[string]int {
	out := make(map[string]int, len(s.Roles))
	for _, r := range s.Roles {
		out[r.Name] = r.Count
	}
	return out
}

// Cluster groups skills that co-occur in the same postings. Ephemeral:
// not persisted unless the caller stores it.
type Cluster struct {
	Skills []string `json:"skills"`
	Weight int      `json:"weight"`
}
