package ingest

import "strings"

// We Work Remotely category feeds polled when FEED_URLS is unset.
var defaultFeedURLs = []string{
	"https://weworkremotely.com/categories/remote-programming-jobs.rss",
	"https://weworkremotely.com/categories/remote-full-stack-programming-jobs.rss",
	"https://weworkremotely.com/categories/remote-front-end-programming-jobs.rss",
	"https://weworkremotely.com/categories/remote-back-end-programming-jobs.rss",
	"https://weworkremotely.com/categories/remote-devops-sysadmin-jobs.rss",
	"https://weworkremotely.com/categories/remote-design-jobs.rss",
}

// ParseFeedURLs splits a comma-separated override list, falling back to
// the built-in feeds when the list is empty.
func ParseFeedURLs(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultFeedURLs
	}
	parts := strings.Split(raw, ",")
	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			urls = append(urls, p)
		}
	}
	if len(urls) == 0 {
		return defaultFeedURLs
	}
	return urls
}
