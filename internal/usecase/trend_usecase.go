package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"freelance-trends/internal/domain/trend"
	"freelance-trends/internal/trends"
)

type trendAnalyzer interface {
	ComputeSnapshot(ctx context.Context, windowEnd time.Time, windowDays, minMentions int) (trend.Snapshot, error)
	ComputeClusters(ctx context.Context, windowEnd time.Time, windowDays, minCoOccurrence int) ([]trend.Cluster, error)
	Latest(ctx context.Context) (trend.Snapshot, bool)
}

type analysisNotifier interface {
	AnalysisCompleted(snap trend.Snapshot)
}

type snapshotLister interface {
	List(ctx context.Context, limit int) ([]trend.Snapshot, error)
}

type TrendUsecase struct {
	analyzer trendAnalyzer
	history  snapshotLister
	cache    TrendCache
	notifier analysisNotifier
	logger   *log.Logger
	now      func() time.Time
}

func NewTrendUsecase(analyzer trendAnalyzer, history snapshotLister, cache TrendCache, notifier analysisNotifier, logger *log.Logger) *TrendUsecase {
	return &TrendUsecase{analyzer: analyzer, history: history, cache: cache, notifier: notifier, logger: logger, now: time.Now}
}

const (
	defaultAnalysesLimit = 10
	maxAnalysesLimit     = 50
)

// Analyses lists stored snapshots, most recent first.
func (u *TrendUsecase) Analyses(ctx context.Context, limit int) ([]trend.Snapshot, error) {
	if limit == 0 {
		limit = defaultAnalysesLimit
	}
	if limit < 0 || limit > maxAnalysesLimit {
		return nil, ErrInvalidInput
	}
	if u.history == nil {
		return nil, ErrInternal
	}
	return u.history.List(ctx, limit)
}

// LatestSnapshot serves the most recent stored analysis. It never
// triggers a new computation; ErrNoAnalysis signals an empty history.
func (u *TrendUsecase) LatestSnapshot(ctx context.Context) (trend.Snapshot, error) {
	if u.cache != nil {
		var cached trend.Snapshot
		hit, err := u.cache.GetJSON(ctx, latestSnapshotCacheKey, &cached)
		if err == nil && hit {
			if u.logger != nil {
				u.logger.Printf("[Trends] Cache HIT: %s", latestSnapshotCacheKey)
			}
			return cached, nil
		}
	}

	snap, ok := u.analyzer.Latest(ctx)
	if !ok {
		return trend.Snapshot{}, ErrNoAnalysis
	}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, latestSnapshotCacheKey, snap, snapshotCacheTTL)
	}
	return snap, nil
}

func (u *TrendUsecase) Clusters(ctx context.Context, windowDays, minCoOccurrence int) ([]trend.Cluster, error) {
	if windowDays <= 0 || minCoOccurrence <= 0 {
		return nil, ErrInvalidInput
	}

	key := clustersCacheKey(windowDays, minCoOccurrence)
	if u.cache != nil {
		var cached []trend.Cluster
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			if u.logger != nil {
				u.logger.Printf("[Trends] Cache HIT: %s", key)
			}
			return cached, nil
		}
	}

	clusters, err := u.analyzer.ComputeClusters(ctx, u.now().UTC(), windowDays, minCoOccurrence)
	if err != nil {
		if errors.Is(err, trends.ErrInvalidParameter) {
			return nil, ErrInvalidInput
		}
		return nil, err
	}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, clusters, clustersCacheTTL)
	}
	return clusters, nil
}

// Analyze runs a fresh snapshot computation. A short Redis lock keeps
// concurrent admin triggers from stacking up; ErrAnalysisInFlight is
// returned to the later caller.
func (u *TrendUsecase) Analyze(ctx context.Context, windowDays, minMentions int) (trend.Snapshot, error) {
	if windowDays <= 0 || minMentions <= 0 {
		return trend.Snapshot{}, ErrInvalidInput
	}

	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, analyzeLockKey, "1", analyzeLockTTL)
		if err == nil && !ok {
			return trend.Snapshot{}, ErrAnalysisInFlight
		}
		defer func() { _ = u.cache.Delete(ctx, analyzeLockKey) }()
	}

	snap, err := u.analyzer.ComputeSnapshot(ctx, u.now().UTC(), windowDays, minMentions)
	if err != nil {
		if errors.Is(err, trends.ErrInvalidParameter) {
			return trend.Snapshot{}, ErrInvalidInput
		}
		return trend.Snapshot{}, err
	}

	u.invalidate(ctx)
	if u.notifier != nil {
		u.notifier.AnalysisCompleted(snap)
	}
	return snap, nil
}

// InvalidateAfterIngest drops derived views once new postings land.
func (u *TrendUsecase) InvalidateAfterIngest(ctx context.Context) {
	u.invalidate(ctx)
}

func (u *TrendUsecase) invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	_ = u.cache.Delete(ctx, latestSnapshotCacheKey, statsCacheKey)
	_ = u.cache.DeleteByPattern(ctx, "trends:clusters:*")
}
