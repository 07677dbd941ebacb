package analyze

import (
	"regexp"
	"strings"

	"github.com/hyperjump/briefpipe/internal/models"
)

// partyLabelRules match explicit role label lines ("PETITIONER: Ali Raza").
// Evaluated in order per page; the first occurrence per role across all pages
// is kept.
var partyLabelRules = []struct {
	re   *regexp.Regexp
	role models.PartyRole
}{
	{regexp.MustCompile(`(?im)^\s*PETITIONERS?\s*[:\-–]\s*(.{2,80}?)\s*$`), models.RolePetitioner},
	{regexp.MustCompile(`(?im)^\s*APPELLANTS?\s*[:\-–]\s*(.{2,80}?)\s*$`), models.RoleAppellant},
	{regexp.MustCompile(`(?im)^\s*(?:RESPONDENTS?|DEFENDANTS?)\s*[:\-–]\s*(.{2,80}?)\s*$`), models.RoleRespondent},
}

// versusRe is the fallback "X v. Y" caption pattern, used only when no
// explicit labels were found anywhere in the set.
var versusRe = regexp.MustCompile(`([A-Z][\w.&' ]{1,60}?)\s+[Vv](?:s|ersus)?\.?\s+([A-Z][\w.&' ]{1,60})`)

// counselRe picks up counsel named near a party label.
var counselRe = regexp.MustCompile(`(?i)\bthrough\s+(?:his|her|its|their\s+)?\s*(?:counsel|advocate)\s+([A-Z][\w. ]{2,60})`)

// extractParties returns the parties to the case. Explicit label lines win;
// the versus-caption fallback fires only when no label matched at all.
func extractParties(pages []pageRef) []models.Party {
	parties := []models.Party{}
	seen := map[models.PartyRole]bool{}

	for _, p := range pages {
		for _, rule := range partyLabelRules {
			if seen[rule.role] {
				continue
			}
			m := rule.re.FindStringSubmatch(p.page.Text)
			if m == nil {
				continue
			}
			name := strings.TrimSpace(strings.TrimRight(m[1], ".,"))
			if name == "" {
				continue
			}
			party := models.Party{
				Name:    name,
				Role:    rule.role,
				Sources: []models.SourceReference{p.source(m[0])},
			}
			if cm := counselRe.FindStringSubmatch(p.page.Text); cm != nil {
				party.Counsel = strings.TrimSpace(cm[1])
			}
			parties = append(parties, party)
			seen[rule.role] = true
		}
	}
	if len(parties) > 0 {
		return parties
	}

	// No explicit labels anywhere: fall back to the case caption.
	for _, p := range pages {
		m := versusRe.FindStringSubmatch(p.page.Text)
		if m == nil {
			continue
		}
		src := p.source(m[0])
		return []models.Party{
			{Name: strings.TrimSpace(m[1]), Role: models.RolePetitioner, Sources: []models.SourceReference{src}},
			{Name: strings.TrimSpace(m[2]), Role: models.RoleRespondent, Sources: []models.SourceReference{src}},
		}
	}
	return parties
}
