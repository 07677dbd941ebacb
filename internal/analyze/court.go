package analyze

import (
	"regexp"
	"strings"

	"github.com/hyperjump/briefpipe/internal/models"
)

// Ordered pattern cascades for court identification. For each field the first
// match across pages wins; later patterns are progressively looser.
var courtNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bIN THE (SUPREME COURT OF [A-Z][A-Za-z ]+)`),
	regexp.MustCompile(`(?i)\bIN THE ([A-Z][A-Za-z ]+ HIGH COURT(?:[,]? [A-Z][A-Za-z ]+)?)`),
	regexp.MustCompile(`(?i)\bIN THE (HIGH COURT OF [A-Z][A-Za-z ]+)`),
	regexp.MustCompile(`(?i)\bIN THE COURT OF ([A-Z][A-Za-z ,.-]+)`),
	regexp.MustCompile(`(?i)\bBEFORE THE ([A-Z][A-Za-z ]+ (?:TRIBUNAL|COMMISSION|AUTHORITY))`),
}

var caseNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b((?:Writ Petition|W\.?\s?P\.?|Civil Appeal|Criminal Appeal|Crl\.?\s?A\.?|Const\.?\s?P(?:etition)?\.?|Suit|Appeal|Petition|Case|F\.?I\.?R\.?)\s*No\.?\s*[\w./-]+(?:\s*(?:of|/)\s*\d{4})?)`),
	regexp.MustCompile(`(?i)\bCase\s*#\s*([\w./-]+)`),
}

// caseTypeKeywords maps a keyword found anywhere in the text to a case type
// label. Evaluated in order; first hit wins.
var caseTypeKeywords = []struct {
	keyword string
	label   string
}{
	{"writ petition", "Writ Petition"},
	{"constitutional petition", "Constitutional Petition"},
	{"criminal appeal", "Criminal Appeal"},
	{"civil appeal", "Civil Appeal"},
	{"first information report", "Criminal Case"},
	{"civil suit", "Civil Suit"},
	{"family suit", "Family Suit"},
	{"appeal", "Appeal"},
	{"petition", "Petition"},
	{"suit", "Suit"},
}

var judgePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bBefore:?\s+((?:Mr\.?\s+|Mrs\.?\s+|Ms\.?\s+)?Justice\s+[A-Z][\w .'-]{2,60})`),
	regexp.MustCompile(`(?i)\bHon'?ble\s+((?:Mr\.?\s+|Mrs\.?\s+|Ms\.?\s+)?Justice\s+[A-Z][\w .'-]{2,60})`),
	regexp.MustCompile(`(?i)\bPresent:?\s+((?:Mr\.?\s+|Mrs\.?\s+|Ms\.?\s+)?Justice\s+[A-Z][\w .'-]{2,60})`),
}

// extractCourtInfo fills each field with its first match across pages.
// Returns nil only when neither a court name nor a case number is found
// anywhere in the set.
func extractCourtInfo(pages []pageRef) *models.CourtInfo {
	info := &models.CourtInfo{}
	for _, p := range pages {
		text := p.page.Text
		if info.CourtName == "" {
			for _, re := range courtNamePatterns {
				if m := re.FindStringSubmatch(text); m != nil {
					info.CourtName = strings.TrimSpace(m[1])
					info.Sources = append(info.Sources, p.source(m[0]))
					break
				}
			}
		}
		if info.CaseNumber == "" {
			for _, re := range caseNumberPatterns {
				if m := re.FindStringSubmatch(text); m != nil {
					info.CaseNumber = strings.TrimSpace(m[1])
					info.Sources = append(info.Sources, p.source(m[0]))
					break
				}
			}
		}
		if info.CaseType == "" {
			lower := strings.ToLower(text)
			for _, kw := range caseTypeKeywords {
				if strings.Contains(lower, kw.keyword) {
					info.CaseType = kw.label
					break
				}
			}
		}
		if info.Judge == "" {
			for _, re := range judgePatterns {
				if m := re.FindStringSubmatch(text); m != nil {
					info.Judge = strings.TrimSpace(m[1])
					info.Sources = append(info.Sources, p.source(m[0]))
					break
				}
			}
		}
	}
	if info.CourtName == "" && info.CaseNumber == "" {
		return nil
	}
	return info
}
