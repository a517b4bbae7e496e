package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/google/uuid"

	"freelance-trends/internal/domain/job"
)

const collectorUserAgent = "freelance-trends/1.0 (+https://github.com/freelance-trends)"

// FeedScraper pulls job postings out of RSS feeds.
type FeedScraper struct {
	now func() time.Time
}

func NewFeedScraper() *FeedScraper {
	return &FeedScraper{now: time.Now}
}

// FetchFeed downloads one RSS feed and maps its items to postings.
func (s *FeedScraper) FetchFeed(ctx context.Context, feedURL string) ([]job.Posting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := colly.NewCollector(colly.UserAgent(collectorUserAgent))
	c.SetRequestTimeout(25 * time.Second)

	var (
		postings []job.Posting
		fetchErr error
	)

	c.OnXML("//item", func(e *colly.XMLElement) {
		title := strings.TrimSpace(e.ChildText("title"))
		link := strings.TrimSpace(e.ChildText("link"))
		if title == "" || link == "" {
			return
		}

		company, position := splitFeedTitle(title)
		description := e.ChildText("description")
		now := s.now().UTC()

		postings = append(postings, job.Posting{
			ID:        uuid.New(),
			Title:     position,
			Company:   company,
			Location:  strings.TrimSpace(e.ChildText("region")),
			Tags:      ExtractTags(title + " " + description),
			SourceURL: link,
			PostedAt:  parsePubDate(e.ChildText("pubDate"), now),
			CreatedAt: now,
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("fetch %s: %w", feedURL, err)
	})

	if err := c.Visit(feedURL); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", feedURL, err)
	}
	c.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	return postings, nil
}

// splitFeedTitle handles the "Company: Position" convention used by the
// We Work Remotely feeds. Titles without the separator become the
// position with an unknown company.
func splitFeedTitle(title string) (company, position string) {
	if idx := strings.Index(title, ": "); idx > 0 {
		return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+2:])
	}
	return "Unknown", title
}

var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
}

func parsePubDate(raw string, fallback time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return fallback
}
