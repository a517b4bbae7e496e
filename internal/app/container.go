package app

import (
	"context"
	"log"
	"os"
	"time"

	"freelance-trends/internal/agent"
	"freelance-trends/internal/config"
	"freelance-trends/internal/database"
	"freelance-trends/internal/database/migration"
	dbpostgres "freelance-trends/internal/database/postgres"
	"freelance-trends/internal/infrastructure/cache"
	"freelance-trends/internal/ingest"
	"freelance-trends/internal/repository"
	"freelance-trends/internal/trends"
	"freelance-trends/internal/usecase"
	"freelance-trends/internal/ws"
)

type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis

	Jobs      repository.JobRepository
	Snapshots repository.SnapshotRepository

	Analyzer *trends.Analyzer
	TrendUC  *usecase.TrendUsecase
	JobUC    *usecase.JobUsecase

	Ingest    *ingest.Service
	Scheduler *ingest.Scheduler

	Agent *agent.Agent
	Hub   *ws.Hub
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := (migration.Runner{}).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	jobs := repository.NewPostgresJobRepository(db)
	snapshots := repository.NewPostgresSnapshotRepository(db)

	analyzer := trends.NewAnalyzer(jobs, snapshots, logger)

	hub := ws.NewHub(logger)
	ws.SetDefaultHub(hub)

	trendUC := usecase.NewTrendUsecase(analyzer, snapshots, redisCache, wsAnalysisNotifier{}, logger)
	jobUC := usecase.NewJobUsecase(jobs, redisCache, logger)

	ingestSvc := ingest.NewService(
		ingest.NewFeedScraper(),
		jobs,
		ingest.ParseFeedURLs(cfg.Ingest.FeedURLs),
		ingestObserver{trends: trendUC},
		logger,
	)
	scheduler := ingest.NewScheduler(ingestSvc, cfg.Ingest.IntervalMinutes, logger)

	ag := agent.New(analyzer, jobs, scrapeAdapter{svc: ingestSvc}, logger)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Cache:     redisCache,
		Jobs:      jobs,
		Snapshots: snapshots,
		Analyzer:  analyzer,
		TrendUC:   trendUC,
		JobUC:     jobUC,
		Ingest:    ingestSvc,
		Scheduler: scheduler,
		Agent:     ag,
		Hub:       hub,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
