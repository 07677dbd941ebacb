package analyze

import (
	"regexp"

	"github.com/hyperjump/briefpipe/internal/models"
)

// factSectionRe marks fact sections in documents that are not petitions or
// FIRs ("FACTS", "BRIEF FACTS", the "That the ..." pleading style).
var factSectionRe = regexp.MustCompile(`(?i)\b(?:BRIEF FACTS|FACTS OF THE CASE|FACTS)\b|\bThat the\b`)

// extractFacts collects numbered facts from fact-bearing documents. A
// document participates when its type is petition or FIR, or any of its pages
// contains a fact section marker; the decision is per document, so numbered
// items on continuation pages after a "FACTS" heading are kept. Order is
// assigned by discovery sequence and stays contiguous 1..N.
func extractFacts(pages []pageRef) []models.Fact {
	bearing := map[*models.UploadedDocument]bool{}
	for _, p := range pages {
		if factBearing(p) {
			bearing[p.doc] = true
		}
	}

	facts := []models.Fact{}
	order := 0
	for _, p := range pages {
		if !bearing[p.doc] {
			continue
		}
		for _, item := range scanNumberedItems(p.page.Text) {
			order++
			facts = append(facts, models.Fact{
				Content: item.content,
				Date:    parseDate(item.content),
				Order:   order,
				Sources: []models.SourceReference{p.source(item.content)},
			})
		}
	}
	return facts
}

func factBearing(p pageRef) bool {
	if p.doc.DocumentType == models.TypePetition || p.doc.DocumentType == models.TypeFIR {
		return true
	}
	return factSectionRe.MatchString(p.page.Text)
}
