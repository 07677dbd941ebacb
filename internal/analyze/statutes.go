package analyze

import (
	"regexp"
	"strings"

	"github.com/hyperjump/briefpipe/internal/models"
)

// statuteSourceCap bounds stored source references per statute.
const statuteSourceCap = 3

// constitutionName is the attribution for bare Article mentions.
const constitutionName = "Constitution of Pakistan, 1973"

// sectionActWindow is how far (in characters) a Section mention may sit from
// an Act name on the same page and still be attributed to it.
const sectionActWindow = 200

// statuteNameRe matches "<Name> Act/Ordinance/Order/Code/Rules/Regulation, <year>".
var statuteNameRe = regexp.MustCompile(`\b([A-Z][\w'()\- ]*?(?:Act|Ordinance|Order|Code|Rules|Regulations?))\s*,?\s*(\d{4})\b`)

// bareArticleRe and bareSectionRe match provision mentions outside statute names.
var (
	bareArticleRe = regexp.MustCompile(`\bArticle\s+(\d+[A-Z]?(?:\(\d+\))?)`)
	bareSectionRe = regexp.MustCompile(`\bSection\s+(\d+[A-Z]?(?:\(\d+\))?)`)
)

// statuteAccumulator dedupes statutes by lowercase trimmed name, accumulating
// deduped provisions and capped sources while preserving first-seen order.
type statuteAccumulator struct {
	order []string
	byKey map[string]*models.StatuteRef
}

func newStatuteAccumulator() *statuteAccumulator {
	return &statuteAccumulator{byKey: map[string]*models.StatuteRef{}}
}

func (acc *statuteAccumulator) add(name, provision string, src models.SourceReference) {
	key := strings.ToLower(strings.TrimSpace(name))
	ref, ok := acc.byKey[key]
	if !ok {
		ref = &models.StatuteRef{Name: strings.TrimSpace(name), Provisions: []string{}}
		acc.byKey[key] = ref
		acc.order = append(acc.order, key)
	}
	if provision != "" && !contains(ref.Provisions, provision) {
		ref.Provisions = append(ref.Provisions, provision)
	}
	if len(ref.Sources) < statuteSourceCap {
		ref.Sources = append(ref.Sources, src)
	}
}

func (acc *statuteAccumulator) list() []models.StatuteRef {
	out := make([]models.StatuteRef, 0, len(acc.order))
	for _, key := range acc.order {
		out = append(out, *acc.byKey[key])
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// extractStatutes detects named statutes, bare Article mentions (attributed
// to the Constitution), and Section mentions attributed to the nearest Act
// name within sectionActWindow characters on the same page.
func extractStatutes(pages []pageRef) []models.StatuteRef {
	acc := newStatuteAccumulator()
	for _, p := range pages {
		text := p.page.Text

		type namedStatute struct {
			name string
			pos  int
		}
		var named []namedStatute
		for _, loc := range statuteNameRe.FindAllStringSubmatchIndex(text, -1) {
			name := strings.TrimSpace(text[loc[2]:loc[3]]) + ", " + text[loc[4]:loc[5]]
			named = append(named, namedStatute{name: name, pos: loc[0]})
			acc.add(name, "", p.source(text[loc[0]:loc[1]]))
		}

		for _, m := range bareArticleRe.FindAllStringSubmatch(text, -1) {
			acc.add(constitutionName, "Article "+m[1], p.source(m[0]))
		}

		for _, loc := range bareSectionRe.FindAllStringSubmatchIndex(text, -1) {
			provision := "Section " + text[loc[2]:loc[3]]
			best, bestDist := "", sectionActWindow+1
			for _, ns := range named {
				dist := loc[0] - ns.pos
				if dist < 0 {
					dist = -dist
				}
				if dist < bestDist {
					best, bestDist = ns.name, dist
				}
			}
			if best == "" {
				continue
			}
			acc.add(best, provision, p.source(text[loc[0]:loc[1]]))
		}
	}
	return acc.list()
}
