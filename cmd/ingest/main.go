package main

import (
	"context"
	"flag"
	"log"
	"time"

	"freelance-trends/internal/app"
	"freelance-trends/internal/config"
)

// One-shot ingestion run, useful for cron jobs and backfills outside the
// server's own scheduler.
func main() {
	timeout := flag.Duration("timeout", 5*time.Minute, "overall run timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := c.Ingest.Ingest(ctx)
	if err != nil {
		log.Fatalf("ingestion failed: %v", err)
	}
	log.Printf("ingestion done feeds=%d fetched=%d added=%d", res.FeedsProcessed, res.TotalFetched, res.JobsAdded)
}
