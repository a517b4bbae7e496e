package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Remote Programming Jobs</title>
    <item>
      <title>Acme Corp: Senior Python Developer</title>
      <region>Anywhere in the World</region>
      <category>Programming</category>
      <description>Build APIs with Python, Django and PostgreSQL.</description>
      <pubDate>Mon, 10 Aug 2026 09:30:00 +0000</pubDate>
      <link>https://example.com/jobs/1</link>
    </item>
    <item>
      <title>Plain Title Without Company</title>
      <description>Work with React and TypeScript.</description>
      <pubDate>not a date</pubDate>
      <link>https://example.com/jobs/2</link>
    </item>
    <item>
      <title>Broken Item Without Link</title>
      <description>Should be skipped.</description>
    </item>
  </channel>
</rss>`

func TestFetchFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	postings, err := NewFeedScraper().FetchFeed(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(postings) != 2 {
		t.Fatalf("expected 2 postings (item without link skipped), got %d", len(postings))
	}

	first := postings[0]
	if first.Company != "Acme Corp" || first.Title != "Senior Python Developer" {
		t.Fatalf("expected split title, got company=%q title=%q", first.Company, first.Title)
	}
	if first.Location != "Anywhere in the World" {
		t.Fatalf("unexpected location %q", first.Location)
	}
	if first.SourceURL != "https://example.com/jobs/1" {
		t.Fatalf("unexpected source url %q", first.SourceURL)
	}
	want := time.Date(2026, 8, 10, 9, 30, 0, 0, time.UTC)
	if !first.PostedAt.Equal(want) {
		t.Fatalf("expected pubDate %v, got %v", want, first.PostedAt)
	}
	if len(first.Tags) == 0 || first.Tags[0] != "python" {
		t.Fatalf("expected python tag from title and description, got %v", first.Tags)
	}

	second := postings[1]
	if second.Company != "Unknown" || second.Title != "Plain Title Without Company" {
		t.Fatalf("expected fallback company, got company=%q title=%q", second.Company, second.Title)
	}
	if second.PostedAt.IsZero() {
		t.Fatalf("expected fallback PostedAt for unparseable pubDate")
	}
}

func TestFetchFeed_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewFeedScraper().FetchFeed(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected error for failing feed")
	}
}

func TestSplitFeedTitle(t *testing.T) {
	company, position := splitFeedTitle("Acme: Backend Engineer")
	if company != "Acme" || position != "Backend Engineer" {
		t.Fatalf("got %q / %q", company, position)
	}
	company, position = splitFeedTitle("Standalone Role")
	if company != "Unknown" || position != "Standalone Role" {
		t.Fatalf("got %q / %q", company, position)
	}
}
