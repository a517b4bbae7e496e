package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

type AnalysisCompletedEvent struct {
	Type           string `json:"type"`
	TotalJobs      int    `json:"total_jobs"`
	TrendingSkills int    `json:"trending_skills"`
	WindowDays     int    `json:"window_days"`
	Timestamp      string `json:"timestamp"`
}

type JobsIngestedEvent struct {
	Type           string `json:"type"`
	FeedsProcessed int    `json:"feeds_processed"`
	TotalFetched   int    `json:"total_fetched"`
	JobsAdded      int    `json:"jobs_added"`
	Timestamp      string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifyAnalysisCompleted(totalJobs, trendingSkills, windowDays int) {
	h := defaultHub.Load()
	if h == nil {
		return
	}
	b, err := json.Marshal(AnalysisCompletedEvent{
		Type:           "analysis_completed",
		TotalJobs:      totalJobs,
		TrendingSkills: trendingSkills,
		WindowDays:     windowDays,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	h.Broadcast(b)
}

func NotifyJobsIngested(feedsProcessed, totalFetched, jobsAdded int) {
	h := defaultHub.Load()
	if h == nil {
		return
	}
	b, err := json.Marshal(JobsIngestedEvent{
		Type:           "jobs_ingested",
		FeedsProcessed: feedsProcessed,
		TotalFetched:   totalFetched,
		JobsAdded:      jobsAdded,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	h.Broadcast(b)
}
