package app

import (
	"context"

	"freelance-trends/internal/agent"
	"freelance-trends/internal/domain/trend"
	"freelance-trends/internal/ingest"
	"freelance-trends/internal/usecase"
	"freelance-trends/internal/ws"
)

// scrapeAdapter lets the agent trigger ingestion without knowing the
// ingest package's result type.
type scrapeAdapter struct {
	svc *ingest.Service
}

func (s scrapeAdapter) Ingest(ctx context.Context) (agent.ScrapeResult, error) {
	res, err := s.svc.Ingest(ctx)
	if err != nil {
		return agent.ScrapeResult{}, err
	}
	return agent.ScrapeResult{
		FeedsProcessed: res.FeedsProcessed,
		TotalFetched:   res.TotalFetched,
		JobsAdded:      res.JobsAdded,
	}, nil
}

type wsAnalysisNotifier struct{}

func (wsAnalysisNotifier) AnalysisCompleted(snap trend.Snapshot) {
	ws.NotifyAnalysisCompleted(snap.TotalJobs, len(snap.Skills), snap.WindowDays)
}

// ingestObserver fans one ingestion result out to websocket subscribers
// and drops the cached trend views that the new postings invalidate.
type ingestObserver struct {
	trends *usecase.TrendUsecase
}

func (o ingestObserver) JobsIngested(res ingest.Result) {
	ws.NotifyJobsIngested(res.FeedsProcessed, res.TotalFetched, res.JobsAdded)
	o.trends.InvalidateAfterIngest(context.Background())
}
