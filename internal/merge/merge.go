// Package merge combines partial case records from chunked analysis into one
// canonical record.
package merge

import (
	"strings"

	"github.com/hyperjump/briefpipe/internal/models"
)

// issuePrefixLength is the lowercase content prefix used to dedupe legal issues.
const issuePrefixLength = 100

// Merge combines chunks into a single case record. Zero chunks yield the
// canonical empty record; one chunk is returned unchanged. Inputs are never
// mutated.
//
// Per-field semantics for two or more chunks:
//   - court info: first non-nil wins
//   - parties: deduped by case-insensitive trimmed name, first kept
//   - facts: concatenated, order renumbered to 1..N
//   - legal issues: deduped by lowercase content prefix
//   - statutes: deduped by lowercase trimmed name; the first occurrence's
//     provisions are kept as-is and a later chunk's additional provisions for
//     the same name are dropped (known gap, kept for parity)
//   - arguments and raw documents: concatenated
func Merge(chunks []*models.ExtractedCaseData) *models.ExtractedCaseData {
	if len(chunks) == 0 {
		return models.NewExtractedCaseData()
	}
	if len(chunks) == 1 {
		return chunks[0]
	}

	out := models.NewExtractedCaseData()
	seenParty := map[string]bool{}
	seenIssue := map[string]bool{}
	seenStatute := map[string]bool{}

	for _, chunk := range chunks {
		if out.CourtInfo == nil && chunk.CourtInfo != nil {
			out.CourtInfo = chunk.CourtInfo
		}
		for _, party := range chunk.Parties {
			key := strings.ToLower(strings.TrimSpace(party.Name))
			if seenParty[key] {
				continue
			}
			seenParty[key] = true
			out.Parties = append(out.Parties, party)
		}
		for _, fact := range chunk.Facts {
			fact.Order = len(out.Facts) + 1
			out.Facts = append(out.Facts, fact)
		}
		for _, issue := range chunk.LegalIssues {
			key := strings.ToLower(issue.Content)
			if len(key) > issuePrefixLength {
				key = key[:issuePrefixLength]
			}
			if seenIssue[key] {
				continue
			}
			seenIssue[key] = true
			out.LegalIssues = append(out.LegalIssues, issue)
		}
		for _, statute := range chunk.Statutes {
			key := strings.ToLower(strings.TrimSpace(statute.Name))
			if seenStatute[key] {
				continue
			}
			seenStatute[key] = true
			out.Statutes = append(out.Statutes, statute)
		}
		out.Arguments = append(out.Arguments, chunk.Arguments...)
		out.RawDocuments = append(out.RawDocuments, chunk.RawDocuments...)
	}
	return out
}
