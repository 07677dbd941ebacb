package analyze

import (
	"regexp"
	"strings"

	"github.com/hyperjump/briefpipe/internal/models"
)

// issueRules are evaluated in order on every page: "Whether ...?" clauses
// first, explicitly labeled issue blocks second.
var issueRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bWhether\b[^?\n]{10,400}\?`),
	regexp.MustCompile(`(?i)\bIssue\s+No\.?\s*\d+\s*[:\-–]?\s*([^\n]{10,400})`),
}

// provisionMentionRe finds Article/Section mentions inside an issue clause.
var provisionMentionRe = regexp.MustCompile(`(?i)\b(?:Article|Section)\s+\d+[A-Za-z]?(?:\(\d+\))?`)

// extractLegalIssues collects issue clauses, attaching any statute provision
// mentions found within the same clause. Deduped by exact trimmed content.
func extractLegalIssues(pages []pageRef) []models.LegalIssue {
	issues := []models.LegalIssue{}
	seen := map[string]bool{}
	for _, p := range pages {
		for i, re := range issueRules {
			for _, m := range re.FindAllStringSubmatch(p.page.Text, -1) {
				content := m[0]
				if i > 0 && len(m) > 1 {
					content = m[1]
				}
				content = strings.TrimSpace(content)
				if seen[content] {
					continue
				}
				seen[content] = true
				var related []string
				for _, prov := range provisionMentionRe.FindAllString(content, -1) {
					related = append(related, normalizeProvision(prov))
				}
				issues = append(issues, models.LegalIssue{
					Content:         content,
					RelatedStatutes: related,
					Sources:         []models.SourceReference{p.source(content)},
				})
			}
		}
	}
	return issues
}

// normalizeProvision canonicalizes casing and spacing ("section  10" -> "Section 10").
func normalizeProvision(s string) string {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return strings.TrimSpace(s)
	}
	kind := strings.ToLower(fields[0])
	return strings.ToUpper(kind[:1]) + kind[1:] + " " + fields[1]
}
