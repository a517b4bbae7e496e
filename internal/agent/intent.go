package agent

import "strings"

// Intent is the classified purpose of an incoming utterance.
type Intent string

const (
	IntentStats          Intent = "stats"
	IntentTrendingSkills Intent = "trending_skills"
	IntentTrendingRoles  Intent = "trending_roles"
	IntentLatestAnalysis Intent = "latest_analysis"
	IntentSearchJobs     Intent = "search_jobs"
	IntentTriggerScrape  Intent = "trigger_scrape"
	IntentTriggerAnalyze Intent = "trigger_analyze"
	IntentHelp           Intent = "help"
	IntentUnknown        Intent = "unknown"
)

// Topical reports whether the intent is worth remembering as the
// conversation's last discussed topic.
func (i Intent) Topical() bool {
	switch i {
	case IntentStats, IntentTrendingSkills, IntentTrendingRoles, IntentLatestAnalysis, IntentSearchJobs:
		return true
	}
	return false
}

type intentRule struct {
	phrases []string
	intent  Intent
}

// intentRules is a static, ordered decision table: the first rule with a
// phrase contained in the lower-cased utterance wins. Multi-word specific
// phrases are ordered before generic single-word ones so "show trending
// skills" never falls through to the stats rule.
var intentRules = []intentRule{
	{phrases: []string{"trending skills", "top skills", "popular skills"}, intent: IntentTrendingSkills},
	{phrases: []string{"trending roles", "popular roles", "trending positions"}, intent: IntentTrendingRoles},
	{phrases: []string{"latest analysis", "latest insights", "newest report"}, intent: IntentLatestAnalysis},
	{phrases: []string{"analyze trends", "run analysis", "analyse trends"}, intent: IntentTriggerAnalyze},
	{phrases: []string{"scrape jobs", "fetch jobs", "update jobs", "fetch latest listings"}, intent: IntentTriggerScrape},
	{phrases: []string{"search jobs", "find jobs", "job search"}, intent: IntentSearchJobs},
	{phrases: []string{"show statistics", "show stats", "market stats", "statistics", "stats"}, intent: IntentStats},
	{phrases: []string{"help", "commands", "what can you do"}, intent: IntentHelp},
}

// ClassifyIntent evaluates the rule table against the utterance. Anything
// unmatched is IntentUnknown, which the composer renders as help text.
func ClassifyIntent(utterance string) Intent {
	text := strings.ToLower(strings.TrimSpace(utterance))
	if text == "" {
		return IntentUnknown
	}
	for _, rule := range intentRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(text, phrase) {
				return rule.intent
			}
		}
	}
	return IntentUnknown
}
