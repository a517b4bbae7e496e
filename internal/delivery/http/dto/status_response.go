package dto

type DatabaseHealth struct {
	Connected bool `json:"connected"`
	TotalJobs int  `json:"total_jobs"`
	Jobs24h   int  `json:"jobs_24h"`
}

type HealthResponse struct {
	Status   string         `json:"status"`
	Agent    string         `json:"agent"`
	Database DatabaseHealth `json:"database"`
	Cache    string         `json:"cache"`
}

type ServiceInfoResponse struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Capabilities []string `json:"capabilities"`
	Endpoints    []string `json:"endpoints"`
}

type ScrapeResponse struct {
	FeedsProcessed int `json:"feeds_processed"`
	TotalFetched   int `json:"total_fetched"`
	JobsAdded      int `json:"jobs_added"`
}

type AnalyzeResponse struct {
	TotalJobsAnalyzed   int    `json:"total_jobs_analyzed"`
	TrendingSkillsCount int    `json:"trending_skills_count"`
	TrendingRolesCount  int    `json:"trending_roles_count"`
	WindowDays          int    `json:"window_days"`
	CreatedAt           string `json:"created_at"`
}

type AdminStatusResponse struct {
	Database              string  `json:"database"`
	Cache                 string  `json:"cache"`
	ScrapeIntervalMinutes int     `json:"scrape_interval_minutes"`
	ConnectedClients      int     `json:"connected_clients"`
	LatestAnalysis        *string `json:"latest_analysis"`
}
