package dto

import (
	"time"

	"freelance-trends/internal/domain/trend"
)

type SkillTrendResponse struct {
	SkillName       string `json:"skill_name"`
	CurrentMentions int    `json:"current_mentions"`
	PriorMentions   int    `json:"prior_mentions"`
	Growth          string `json:"growth_percentage"`
}

type RoleTrendResponse struct {
	RoleName  string   `json:"role_name"`
	JobCount  int      `json:"job_count"`
	TopSkills []string `json:"top_skills"`
}

type SnapshotResponse struct {
	WindowStart string               `json:"window_start"`
	WindowEnd   string               `json:"window_end"`
	WindowDays  int                  `json:"window_days"`
	TotalJobs   int                  `json:"total_jobs"`
	Skills      []SkillTrendResponse `json:"skills"`
	Roles       []RoleTrendResponse  `json:"roles"`
	CreatedAt   string               `json:"created_at"`
}

type ClusterResponse struct {
	Skills []string `json:"skills"`
	Weight int      `json:"weight"`
}

func NewSnapshotResponse(s trend.Snapshot) SnapshotResponse {
	skills := make([]SkillTrendResponse, 0, len(s.Skills))
	for _, sk := range s.Skills {
		skills = append(skills, SkillTrendResponse{
			SkillName:       sk.Name,
			CurrentMentions: sk.Count,
			PriorMentions:   sk.Prior,
			Growth:          sk.Growth.String(),
		})
	}
	roles := make([]RoleTrendResponse, 0, len(s.Roles))
	for _, r := range s.Roles {
		roles = append(roles, RoleTrendResponse{
			RoleName:  r.Name,
			JobCount:  r.Count,
			TopSkills: r.TopSkills,
		})
	}
	return SnapshotResponse{
		WindowStart: s.WindowStart.UTC().Format(time.RFC3339),
		WindowEnd:   s.WindowEnd.UTC().Format(time.RFC3339),
		WindowDays:  s.WindowDays,
		TotalJobs:   s.TotalJobs,
		Skills:      skills,
		Roles:       roles,
		CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func NewClusterResponses(clusters []trend.Cluster) []ClusterResponse {
	out := make([]ClusterResponse, 0, len(clusters))
	for _, c := range clusters {
		out = append(out, ClusterResponse{Skills: c.Skills, Weight: c.Weight})
	}
	return out
}
