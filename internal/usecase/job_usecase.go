package usecase

import (
	"context"
	"log"
	"strings"

	"freelance-trends/internal/domain/job"
	"freelance-trends/internal/repository"
)

const (
	defaultJobListLimit = 20
	maxJobListLimit     = 50
)

type jobStore interface {
	ListFiltered(ctx context.Context, filter repository.JobFilter) ([]job.Posting, error)
	Stats(ctx context.Context) (repository.JobStats, error)
}

type JobUsecase struct {
	jobs   jobStore
	cache  TrendCache
	logger *log.Logger
}

func NewJobUsecase(jobs jobStore, cache TrendCache, logger *log.Logger) *JobUsecase {
	return &JobUsecase{jobs: jobs, cache: cache, logger: logger}
}

func (u *JobUsecase) ListJobs(ctx context.Context, filter repository.JobFilter) ([]job.Posting, error) {
	if filter.Limit == 0 {
		filter.Limit = defaultJobListLimit
	}
	if filter.Limit < 0 || filter.Limit > maxJobListLimit {
		return nil, ErrInvalidInput
	}

	filter.Title = strings.TrimSpace(filter.Title)
	filter.Company = strings.TrimSpace(filter.Company)
	tags := make([]string, 0, len(filter.Tags))
	for _, t := range filter.Tags {
		if n := job.NormalizeTag(t); n != "" {
			tags = append(tags, n)
		}
	}
	filter.Tags = tags

	return u.jobs.ListFiltered(ctx, filter)
}

func (u *JobUsecase) Stats(ctx context.Context) (repository.JobStats, error) {
	if u.cache != nil {
		var cached repository.JobStats
		hit, err := u.cache.GetJSON(ctx, statsCacheKey, &cached)
		if err == nil && hit {
			if u.logger != nil {
				u.logger.Printf("[Jobs] Cache HIT: %s", statsCacheKey)
			}
			return cached, nil
		}
	}

	stats, err := u.jobs.Stats(ctx)
	if err != nil {
		return repository.JobStats{}, err
	}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, statsCacheKey, stats, statsCacheTTL)
	}
	return stats, nil
}
