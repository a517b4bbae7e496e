package trends

import (
	"context"
	"fmt"
	"sort"
	"time"

	"freelance-trends/internal/domain/job"
	"freelance-trends/internal/domain/trend"
)

// ComputeClusters builds a skill co-occurrence graph over the window
// [windowEnd-windowDays, windowEnd): an edge between two normalized skills
// exists when they appear together in the tags of one posting, weighted by
// the number of such postings. Edges below minCoOccurrence are dropped and
// the remaining skills are grouped by connected component. Skills with no
// qualifying edge belong to no cluster.
func (a *Analyzer) ComputeClusters(ctx context.Context, windowEnd time.Time, windowDays, minCoOccurrence int) ([]trend.Cluster, error) {
	if windowDays <= 0 || minCoOccurrence <= 0 {
		return nil, fmt.Errorf("%w: windowDays=%d minCoOccurrence=%d", ErrInvalidParameter, windowDays, minCoOccurrence)
	}

	windowEnd = windowEnd.UTC()
	postings, err := a.store.ListWindow(ctx, windowEnd.AddDate(0, 0, -windowDays), windowEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: query window: %v", ErrUpstream, err)
	}

	return clusterPostings(postings, minCoOccurrence), nil
}

type skillPair struct {
	a, b string
}

func orderedPair(a, b string) skillPair {
	if a > b {
		a, b = b, a
	}
	return skillPair{a: a, b: b}
}

func clusterPostings(postings []job.Posting, minCoOccurrence int) []trend.Cluster {
	weights := make(map[skillPair]int)
	for _, p := range postings {
		tags := p.NormalizedTags()
		for i := 0; i < len(tags); i++ {
			for j := i + 1; j < len(tags); j++ {
				weights[orderedPair(tags[i], tags[j])]++
			}
		}
	}

	parent := make(map[string]string)
	var find func(string) string
	find = func(s string) string {
		if parent[s] != s {
			parent[s] = find(parent[s])
		}
		return parent[s]
	}
	union := func(a, b string) {
		if _, ok := parent[a]; !ok {
			parent[a] = a
		}
		if _, ok := parent[b]; !ok {
			parent[b] = b
		}
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	retained := make(map[skillPair]int)
	for pair, w := range weights {
		if w < minCoOccurrence {
			continue
		}
		retained[pair] = w
		union(pair.a, pair.b)
	}

	members := make(map[string][]string)
	for skill := range parent {
		root := find(skill)
		members[root] = append(members[root], skill)
	}
	clusterWeight := make(map[string]int)
	for pair, w := range retained {
		clusterWeight[find(pair.a)] += w
	}

	out := make([]trend.Cluster, 0, len(members))
	for root, skills := range members {
		sort.Strings(skills)
		out = append(out, trend.Cluster{Skills: skills, Weight: clusterWeight[root]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Skills[0] < out[j].Skills[0]
	})
	return out
}
