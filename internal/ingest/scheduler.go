package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler runs periodic ingestion on a cron interval.
type Scheduler struct {
	cron    *cron.Cron
	service *Service
	spec    string
	logger  *log.Logger
}

func NewScheduler(service *Service, intervalMinutes int, logger *log.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		service: service,
		spec:    fmt.Sprintf("@every %dm", intervalMinutes),
		logger:  logger,
	}
}

// Start registers the job and kicks off one immediate run so the store
// is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	if s.logger != nil {
		s.logger.Printf("[Ingest] Scheduler started | spec=%s", s.spec)
	}

	go s.run(ctx)
	return nil
}

// Stop halts the schedule. In-flight runs finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	if s.logger != nil {
		s.logger.Printf("[Ingest] Scheduler stopped")
	}
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := s.service.Ingest(ctx); err != nil && s.logger != nil {
		s.logger.Printf("[Ingest] Scheduled run failed | err=%v", err)
	}
}
