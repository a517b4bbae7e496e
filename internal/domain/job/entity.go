package job

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Posting is one ingested job ad. Immutable once stored; tags are
// normalized at write time.
type Posting struct {
	ID        uuid.UUID
	Title     string
	Company   string
	Location  string
	Tags      []string
	SourceURL string
	PostedAt  time.Time
	CreatedAt time.Time
}

// NormalizeTag trims and lower-cases a skill tag so that "Python" and
// "python " count as the same skill. Returns "" for blank input.
func NormalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeTags normalizes every tag and drops blanks and duplicates,
// preserving first-seen order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		n := NormalizeTag(t)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// NormalizedTags returns the posting's tag set normalized and deduplicated.
func (p Posting) NormalizedTags() []string {
	return NormalizeTags(p.Tags)
}
