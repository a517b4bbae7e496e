package trends

import "strings"

// RoleOther is the catch-all bucket for titles no rule matches.
const RoleOther = "other"

type roleRule struct {
	bucket   string
	keywords []string
}

// roleRules is evaluated in order against the lower-cased title; the first
// rule with a matching keyword wins. More specific buckets come first so
// "Full Stack React Developer" lands in fullstack, not frontend.
var roleRules = []roleRule{
	{bucket: "fullstack", keywords: []string{"full stack", "full-stack", "fullstack"}},
	{bucket: "devops", keywords: []string{"devops", "site reliability", "sre", "platform engineer", "infrastructure engineer", "cloud engineer"}},
	{bucket: "mobile", keywords: []string{"mobile", "ios", "android", "flutter", "react native"}},
	{bucket: "data", keywords: []string{"data engineer", "data scientist", "data analyst", "machine learning", "ml engineer", "analytics"}},
	{bucket: "frontend", keywords: []string{"frontend", "front end", "front-end", "react", "vue", "angular"}},
	{bucket: "backend", keywords: []string{"backend", "back end", "back-end", "api engineer", "golang", "python developer", "java developer", "ruby", "php"}},
	{bucket: "design", keywords: []string{"designer", "design", "ux researcher", "ui/ux"}},
	{bucket: "qa", keywords: []string{"qa", "quality assurance", "test engineer", "tester"}},
	{bucket: "product", keywords: []string{"product manager", "product owner"}},
}

// RoleForTitle classifies a posting title into a coarse role bucket.
func RoleForTitle(title string) string {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return RoleOther
	}
	for _, r := range roleRules {
		for _, kw := range r.keywords {
			if strings.Contains(t, kw) {
				return r.bucket
			}
		}
	}
	return RoleOther
}
