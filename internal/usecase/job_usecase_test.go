package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"freelance-trends/internal/domain/job"
	"freelance-trends/internal/repository"
)

type stubJobRepo struct {
	postings   []job.Posting
	stats      repository.JobStats
	err        error
	lastFilter repository.JobFilter
	statCalls  int
}

func (r *stubJobRepo) ListFiltered(_ context.Context, filter repository.JobFilter) ([]job.Posting, error) {
	r.lastFilter = filter
	return r.postings, r.err
}

func (r *stubJobRepo) Stats(_ context.Context) (repository.JobStats, error) {
	r.statCalls++
	return r.stats, r.err
}

func TestListJobs_DefaultsAndCaps(t *testing.T) {
	repo := &stubJobRepo{}
	u := NewJobUsecase(repo, nil, nil)

	if _, err := u.ListJobs(context.Background(), repository.JobFilter{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.lastFilter.Limit != defaultJobListLimit {
		t.Fatalf("expected default limit %d, got %d", defaultJobListLimit, repo.lastFilter.Limit)
	}

	_, err := u.ListJobs(context.Background(), repository.JobFilter{Limit: maxJobListLimit + 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for oversized limit, got %v", err)
	}
}

func TestListJobs_NormalizesTags(t *testing.T) {
	repo := &stubJobRepo{}
	u := NewJobUsecase(repo, nil, nil)

	_, err := u.ListJobs(context.Background(), repository.JobFilter{Tags: []string{"  Python ", "", "SQL"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(repo.lastFilter.Tags, []string{"python", "sql"}) {
		t.Fatalf("expected normalized tags, got %v", repo.lastFilter.Tags)
	}
}

func TestStats_Cached(t *testing.T) {
	repo := &stubJobRepo{stats: repository.JobStats{TotalJobs: 7}}
	cache := newFakeCache()
	u := NewJobUsecase(repo, cache, nil)

	first, err := u.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := u.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.TotalJobs != 7 || second.TotalJobs != 7 {
		t.Fatalf("expected stats passthrough, got %+v / %+v", first, second)
	}
	if repo.statCalls != 1 {
		t.Fatalf("expected one repository hit, got %d", repo.statCalls)
	}
}
