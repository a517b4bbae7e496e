package ingest

import (
	"context"
	"errors"
	"testing"

	"freelance-trends/internal/domain/job"
)

type stubFetcher struct {
	byURL map[string][]job.Posting
	errs  map[string]error
}

func (f stubFetcher) FetchFeed(_ context.Context, feedURL string) ([]job.Posting, error) {
	if err := f.errs[feedURL]; err != nil {
		return nil, err
	}
	return f.byURL[feedURL], nil
}

type stubStore struct {
	added    int
	err      error
	received []job.Posting
}

func (s *stubStore) UpsertPostings(_ context.Context, postings []job.Posting) (int, error) {
	s.received = postings
	return s.added, s.err
}

type stubObserver struct {
	results []Result
}

func (o *stubObserver) JobsIngested(res Result) {
	o.results = append(o.results, res)
}

func TestIngest_AggregatesFeeds(t *testing.T) {
	fetcher := stubFetcher{
		byURL: map[string][]job.Posting{
			"a": {{Title: "one"}, {Title: "two"}},
			"b": {{Title: "three"}},
		},
		errs: map[string]error{"c": errors.New("timeout")},
	}
	store := &stubStore{added: 2}
	observer := &stubObserver{}
	svc := NewService(fetcher, store, []string{"a", "b", "c"}, observer, nil)

	res, err := svc.Ingest(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.FeedsProcessed != 2 {
		t.Fatalf("expected 2 processed feeds, got %d", res.FeedsProcessed)
	}
	if res.TotalFetched != 3 {
		t.Fatalf("expected 3 fetched, got %d", res.TotalFetched)
	}
	if res.JobsAdded != 2 {
		t.Fatalf("expected store-reported added count, got %d", res.JobsAdded)
	}
	if len(store.received) != 3 {
		t.Fatalf("expected all fetched postings stored, got %d", len(store.received))
	}
	if len(observer.results) != 1 || observer.results[0] != res {
		t.Fatalf("expected one observer notification with the result, got %+v", observer.results)
	}
}

func TestIngest_AllFeedsFailed(t *testing.T) {
	fetcher := stubFetcher{errs: map[string]error{"a": errors.New("down")}}
	svc := NewService(fetcher, &stubStore{}, []string{"a"}, nil, nil)

	if _, err := svc.Ingest(context.Background()); err == nil {
		t.Fatalf("expected error when every feed fails")
	}
}

func TestIngest_StoreFailure(t *testing.T) {
	fetcher := stubFetcher{byURL: map[string][]job.Posting{"a": {{Title: "one"}}}}
	svc := NewService(fetcher, &stubStore{err: errors.New("db down")}, []string{"a"}, nil, nil)

	if _, err := svc.Ingest(context.Background()); err == nil {
		t.Fatalf("expected store error to surface")
	}
}

func TestIngest_NoObserverCallWithoutNewJobs(t *testing.T) {
	fetcher := stubFetcher{byURL: map[string][]job.Posting{"a": {{Title: "one"}}}}
	observer := &stubObserver{}
	svc := NewService(fetcher, &stubStore{added: 0}, []string{"a"}, observer, nil)

	if _, err := svc.Ingest(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(observer.results) != 0 {
		t.Fatalf("expected no notification when nothing was added, got %+v", observer.results)
	}
}
