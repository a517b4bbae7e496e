package usecase

import (
	"context"
	"fmt"
	"time"
)

// TrendCache is the slice of the Redis wrapper the usecases depend on.
type TrendCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

const (
	latestSnapshotCacheKey = "trends:latest"
	analyzeLockKey         = "trends:analyze:lock"
	statsCacheKey          = "jobs:stats"

	snapshotCacheTTL = 10 * time.Minute
	clustersCacheTTL = 10 * time.Minute
	statsCacheTTL    = time.Minute
	analyzeLockTTL   = 2 * time.Minute
)

func clustersCacheKey(windowDays, minCoOccurrence int) string {
	return fmt.Sprintf("trends:clusters:%d:%d", windowDays, minCoOccurrence)
}
