package agent

import "testing"

func TestClassifyIntent(t *testing.T) {
	cases := map[string]Intent{
		"show trending skills":        IntentTrendingSkills,
		"trending skills please":      IntentTrendingSkills,
		"show trending roles":         IntentTrendingRoles,
		"show stats":                  IntentStats,
		"show statistics":             IntentStats,
		"latest analysis":             IntentLatestAnalysis,
		"search jobs":                 IntentSearchJobs,
		"find jobs":                   IntentSearchJobs,
		"scrape jobs":                 IntentTriggerScrape,
		"analyze trends":              IntentTriggerAnalyze,
		"help":                        IntentHelp,
		"SHOW TRENDING SKILLS":        IntentTrendingSkills,
		"askjdhaksjdh":                IntentUnknown,
		"":                            IntentUnknown,
		"what are the trending roles": IntentTrendingRoles,
	}

	for utterance, want := range cases {
		if got := ClassifyIntent(utterance); got != want {
			t.Fatalf("ClassifyIntent(%q): expected %s, got %s", utterance, want, got)
		}
	}
}

func TestClassifyIntent_SpecificBeforeGeneric(t *testing.T) {
	// "show trending skills" must match the skills rule even though the
	// generic stats phrases appear later in the table.
	if got := ClassifyIntent("show trending skills stats"); got != IntentTrendingSkills {
		t.Fatalf("expected specific rule to win, got %s", got)
	}
}
