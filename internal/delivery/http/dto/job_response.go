package dto

import (
	"time"

	"freelance-trends/internal/domain/job"
)

type JobResponse struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Location string   `json:"location"`
	Tags     []string `json:"tags"`
	URL      string   `json:"url"`
	PostedAt string   `json:"posted_at"`
}

func NewJobResponses(postings []job.Posting) []JobResponse {
	out := make([]JobResponse, 0, len(postings))
	for _, p := range postings {
		out = append(out, JobResponse{
			ID:       p.ID.String(),
			Title:    p.Title,
			Company:  p.Company,
			Location: p.Location,
			Tags:     p.NormalizedTags(),
			URL:      p.SourceURL,
			PostedAt: p.PostedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
