package ingest

import (
	"regexp"
	"strings"
)

// knownSkills are the technology keywords scanned for in posting titles
// and descriptions. Matches become the posting's tags.
var knownSkills = []string{
	"python", "javascript", "typescript", "java", "golang", "go", "rust",
	"ruby", "php", "c++", "c#", "swift", "kotlin", "scala", "elixir",
	"react", "vue", "angular", "svelte", "next.js", "node.js", "django",
	"flask", "fastapi", "rails", "laravel", "spring",
	"postgresql", "postgres", "mysql", "mongodb", "redis", "elasticsearch",
	"sql", "graphql", "kafka", "rabbitmq",
	"aws", "gcp", "azure", "docker", "kubernetes", "terraform", "ansible",
	"linux", "ci/cd", "git",
	"machine learning", "deep learning", "data science", "pandas", "pytorch",
	"tensorflow", "nlp", "llm",
	"figma", "sketch", "ui/ux", "ux", "ui",
	"flutter", "react native", "ios", "android",
	"wordpress", "shopify", "salesforce", "seo",
}

var skillPatterns = compileSkillPatterns()

// Word-boundary matching keeps "go" from firing inside "google" and
// "ui" inside "builder". Symbol-bearing names (c++, node.js, ci/cd)
// are quoted wholesale.
func compileSkillPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(knownSkills))
	for _, s := range knownSkills {
		patterns[s] = regexp.MustCompile(`(?i)(^|[^a-z0-9+#./])` + regexp.QuoteMeta(s) + `($|[^a-z0-9+#./])`)
	}
	return patterns
}

// ExtractTags scans free text for known skill keywords. The result is
// lowercase and ordered by the keyword list, with "golang" folded into
// "go".
func ExtractTags(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	seen := make(map[string]struct{})
	tags := make([]string, 0, 8)
	for _, s := range knownSkills {
		if !skillPatterns[s].MatchString(text) {
			continue
		}
		tag := s
		if tag == "golang" {
			tag = "go"
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
