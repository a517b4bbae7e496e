package agent

import (
	"fmt"
	"strings"
	"time"

	"freelance-trends/internal/domain/job"
	"freelance-trends/internal/domain/trend"
	"freelance-trends/internal/repository"
)

// The composer holds no state: every message and artifact below is
// derived solely from the dispatch result passed in.

const maxListedItems = 10

func ComposeTrendingSkills(snap trend.Snapshot) (string, Artifact) {
	var b strings.Builder
	fmt.Fprintf(&b, "**Top Trending Skills (Last %d Days)**\n\n", snap.WindowDays)

	if len(snap.Skills) == 0 {
		b.WriteString("No trending skills data available yet. Try running an analysis first.\n")
	} else {
		for i, s := range snap.Skills {
			if i >= maxListedItems {
				break
			}
			fmt.Fprintf(&b, "%d. **%s**: %d mentions (%s)\n", i+1, titleCase(s.Name), s.Count, s.Growth)
		}
	}

	skills := make([]map[string]any, 0, len(snap.Skills))
	for _, s := range snap.Skills {
		skills = append(skills, skillEntry(s))
	}
	return b.String(), DataArtifact("trending_skills", map[string]any{"skills": skills})
}

func ComposeTrendingRoles(snap trend.Snapshot) (string, Artifact) {
	var b strings.Builder
	fmt.Fprintf(&b, "**Top Trending Job Roles (Last %d Days)**\n\n", snap.WindowDays)

	if len(snap.Roles) == 0 {
		b.WriteString("No trending roles data available yet.\n")
	} else {
		for i, r := range snap.Roles {
			if i >= maxListedItems {
				break
			}
			skills := "N/A"
			if len(r.TopSkills) > 0 {
				skills = strings.Join(r.TopSkills, ", ")
			}
			fmt.Fprintf(&b, "%d. **%s**: %d jobs\n   Top Skills: %s\n\n", i+1, titleCase(r.Name), r.Count, skills)
		}
	}

	roles := make([]map[string]any, 0, len(snap.Roles))
	for _, r := range snap.Roles {
		roles = append(roles, map[string]any{
			"role_name":  r.Name,
			"job_count":  r.Count,
			"top_skills": r.TopSkills,
		})
	}
	return b.String(), DataArtifact("trending_roles", map[string]any{"roles": roles})
}

func ComposeJobSearch(postings []job.Posting) (string, Artifact) {
	var b strings.Builder
	if len(postings) == 0 {
		b.WriteString("No jobs found matching your criteria.")
	} else {
		fmt.Fprintf(&b, "**Found %d Recent Remote Jobs**\n\n", len(postings))
		for i, p := range postings {
			if i >= maxListedItems {
				break
			}
			skills := "N/A"
			if tags := p.NormalizedTags(); len(tags) > 0 {
				if len(tags) > 5 {
					tags = tags[:5]
				}
				skills = strings.Join(tags, ", ")
			}
			fmt.Fprintf(&b, "%d. **%s** at %s\n   Skills: %s\n   Posted: %s\n", i+1, p.Title, p.Company, skills, p.PostedAt.Format("2006-01-02"))
			if p.SourceURL != "" {
				fmt.Fprintf(&b, "   Apply: %s\n", p.SourceURL)
			}
			b.WriteString("\n")
		}
	}

	jobs := make([]map[string]any, 0, len(postings))
	for _, p := range postings {
		jobs = append(jobs, map[string]any{
			"id":          p.ID.String(),
			"position":    p.Title,
			"company":     p.Company,
			"location":    p.Location,
			"tags":        p.NormalizedTags(),
			"url":         p.SourceURL,
			"date_posted": p.PostedAt.Format(time.RFC3339),
		})
	}
	return b.String(), DataArtifact("job_search_results", map[string]any{"jobs": jobs})
}

func ComposeStats(stats repository.JobStats) (string, Artifact) {
	var b strings.Builder
	b.WriteString("**Freelance Jobs Statistics**\n\n")
	fmt.Fprintf(&b, "Total Jobs Tracked: %d\n", stats.TotalJobs)
	fmt.Fprintf(&b, "Last 24 Hours: %d jobs\n", stats.Jobs24h)
	fmt.Fprintf(&b, "Last 7 Days: %d jobs\n", stats.Jobs7d)
	fmt.Fprintf(&b, "Active Companies: %d\n", stats.Companies)
	if len(stats.TopSkills) > 0 {
		fmt.Fprintf(&b, "Top Skills: %s\n", strings.Join(stats.TopSkills, ", "))
	}

	return b.String(), DataArtifact("statistics", map[string]any{
		"total_jobs":      stats.TotalJobs,
		"jobs_24h":        stats.Jobs24h,
		"jobs_7d":         stats.Jobs7d,
		"total_companies": stats.Companies,
		"top_skills":      stats.TopSkills,
	})
}

func ComposeScrapeResult(result ScrapeResult) (string, Artifact) {
	var b strings.Builder
	b.WriteString("**Feed Scraping Completed**\n\n")
	fmt.Fprintf(&b, "Feeds Processed: %d\n", result.FeedsProcessed)
	fmt.Fprintf(&b, "Fetched: %d jobs\n", result.TotalFetched)
	fmt.Fprintf(&b, "New Jobs: %d\n", result.JobsAdded)

	return b.String(), DataArtifact("scrape_result", map[string]any{
		"feeds_processed": result.FeedsProcessed,
		"total_fetched":   result.TotalFetched,
		"jobs_added":      result.JobsAdded,
	})
}

func ComposeAnalysisResult(snap trend.Snapshot) (string, Artifact) {
	var b strings.Builder
	b.WriteString("**Trend Analysis Completed**\n\n")
	fmt.Fprintf(&b, "Analyzed %d jobs over %d days\n", snap.TotalJobs, snap.WindowDays)
	fmt.Fprintf(&b, "Found %d trending skills\n", len(snap.Skills))
	fmt.Fprintf(&b, "Found %d trending roles\n", len(snap.Roles))

	return b.String(), DataArtifact("analysis_result", map[string]any{
		"total_jobs_analyzed":   snap.TotalJobs,
		"trending_skills_count": len(snap.Skills),
		"trending_roles_count":  len(snap.Roles),
		"window_days":           snap.WindowDays,
	})
}

func ComposeLatestAnalysis(snap trend.Snapshot) (string, Artifact) {
	var b strings.Builder
	b.WriteString("**Latest Trend Analysis**\n\n")
	fmt.Fprintf(&b, "Date: %s\n", snap.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Jobs Analyzed: %d\n", snap.TotalJobs)
	fmt.Fprintf(&b, "Trending Skills: %d\n", len(snap.Skills))

	if len(snap.Skills) > 0 {
		b.WriteString("\n**Top 3 Trending Skills:**\n")
		for i, s := range snap.Skills {
			if i >= 3 {
				break
			}
			fmt.Fprintf(&b, "- %s: %s\n", titleCase(s.Name), s.Growth)
		}
	}

	skills := make([]map[string]any, 0, len(snap.Skills))
	for _, s := range snap.Skills {
		skills = append(skills, skillEntry(s))
	}
	return b.String(), DataArtifact("latest_analysis", map[string]any{
		"analysis_date":   snap.CreatedAt.Format(time.RFC3339),
		"window_days":     snap.WindowDays,
		"trending_skills": skills,
	})
}

func HelpText() string {
	return `**Freelance Trends Agent - Available Commands**

I track remote freelance jobs and identify emerging skill trends.

**Statistics**
- "show statistics" - Overall job market stats
- "show stats" - Same as above

**Trends**
- "show trending skills" - Top trending technologies
- "show trending roles" - Most popular positions
- "latest analysis" - Most recent trend analysis

**Search**
- "search jobs" - Find recent job postings

**Actions**
- "scrape jobs" - Fetch the latest postings from job feeds
- "analyze trends" - Run a fresh trend analysis

Just ask naturally and I'll help you discover remote job trends.`
}

func skillEntry(s trend.SkillTrend) map[string]any {
	return map[string]any{
		"skill_name":        s.Name,
		"current_mentions":  s.Count,
		"prior_mentions":    s.Prior,
		"growth_percentage": s.Growth.String(),
	}
}

// titleCase capitalizes the first letter of each word; tags are stored
// lower-cased so this is display-only.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
