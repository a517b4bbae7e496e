package ingest

import (
	"context"
	"fmt"
	"log"

	"freelance-trends/internal/domain/job"
)

// Result summarizes one ingestion run.
type Result struct {
	FeedsProcessed int
	TotalFetched   int
	JobsAdded      int
}

type feedFetcher interface {
	FetchFeed(ctx context.Context, feedURL string) ([]job.Posting, error)
}

type postingStore interface {
	UpsertPostings(ctx context.Context, postings []job.Posting) (int, error)
}

// Observer is notified after a run that stored at least one posting.
type Observer interface {
	JobsIngested(res Result)
}

type Service struct {
	fetcher  feedFetcher
	store    postingStore
	feeds    []string
	observer Observer
	logger   *log.Logger
}

func NewService(fetcher feedFetcher, store postingStore, feeds []string, observer Observer, logger *log.Logger) *Service {
	if len(feeds) == 0 {
		feeds = defaultFeedURLs
	}
	return &Service{fetcher: fetcher, store: store, feeds: feeds, observer: observer, logger: logger}
}

// Ingest fetches every configured feed and stores the postings. A feed
// that fails is logged and skipped; the run only errors when no feed
// could be read or the store rejects the batch.
func (s *Service) Ingest(ctx context.Context) (Result, error) {
	var (
		res      Result
		postings []job.Posting
	)

	for _, feed := range s.feeds {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		fetched, err := s.fetcher.FetchFeed(ctx, feed)
		if err != nil {
			if s.logger != nil {
				s.logger.Printf("[Ingest] Feed failed | url=%s err=%v", feed, err)
			}
			continue
		}
		res.FeedsProcessed++
		res.TotalFetched += len(fetched)
		postings = append(postings, fetched...)
	}

	if res.FeedsProcessed == 0 {
		return Result{}, fmt.Errorf("all %d feeds failed", len(s.feeds))
	}

	added, err := s.store.UpsertPostings(ctx, postings)
	if err != nil {
		return Result{}, fmt.Errorf("store postings: %w", err)
	}
	res.JobsAdded = added

	if s.logger != nil {
		s.logger.Printf("[Ingest] Run complete | feeds=%d fetched=%d added=%d", res.FeedsProcessed, res.TotalFetched, res.JobsAdded)
	}
	if s.observer != nil && res.JobsAdded > 0 {
		s.observer.JobsIngested(res)
	}
	return res, nil
}
