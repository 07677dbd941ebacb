// Package precedent derives a search query from a case record and runs it
// against a precedent store. Ranking is the store's responsibility.
package precedent

import (
	"context"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/hyperjump/briefpipe/internal/models"
)

// DefaultLimit is the number of precedents requested per query.
const DefaultLimit = 10

// keywordCap bounds the keyword set to the first collected keywords.
const keywordCap = 20

// Searcher is the external precedent store boundary. Implementations return
// ranked results for a single query.
type Searcher interface {
	Search(ctx context.Context, q *models.PrecedentQuery) ([]*models.PrecedentResult, error)
}

// Matcher builds precedent queries from extracted case data.
type Matcher struct {
	searcher Searcher
	limit    int
	logger   *zap.Logger
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithLimit overrides the per-query result limit.
func WithLimit(n int) MatcherOption {
	return func(m *Matcher) {
		if n > 0 {
			m.limit = n
		}
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) MatcherOption {
	return func(m *Matcher) { m.logger = l }
}

// NewMatcher returns a Matcher querying searcher.
func NewMatcher(searcher Searcher, opts ...MatcherOption) *Matcher {
	m := &Matcher{searcher: searcher, limit: DefaultLimit, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match derives keywords and legal areas from data and issues one query.
// When both derivations come up empty it returns nil without touching the
// store at all.
func (m *Matcher) Match(ctx context.Context, data *models.ExtractedCaseData) ([]*models.PrecedentResult, error) {
	keywords := deriveKeywords(data)
	areas := deriveLegalAreas(data)
	if len(keywords) == 0 && len(areas) == 0 {
		m.logger.Debug("no precedent signal, skipping query")
		return nil, nil
	}
	q := &models.PrecedentQuery{
		Query:      strings.Join(keywords, " "),
		LegalAreas: areas,
		Limit:      m.limit,
	}
	m.logger.Debug("precedent query", zap.String("query", q.Query), zap.Strings("areas", areas))
	return m.searcher.Search(ctx, q)
}

// deriveKeywords collects keywords from issue text (words over 4 chars,
// including related statutes), statute names and provisions (over 3 chars),
// and argument citations (over 4 chars), capped to the first keywordCap
// collected.
func deriveKeywords(data *models.ExtractedCaseData) []string {
	var keywords []string
	seen := map[string]bool{}
	add := func(text string, minLen int) {
		for _, w := range splitWords(text) {
			if len(w) <= minLen || seen[w] {
				continue
			}
			if len(keywords) >= keywordCap {
				return
			}
			seen[w] = true
			keywords = append(keywords, w)
		}
	}
	for _, issue := range data.LegalIssues {
		add(issue.Content, 4)
		for _, s := range issue.RelatedStatutes {
			add(s, 4)
		}
	}
	for _, statute := range data.Statutes {
		add(statute.Name, 3)
		for _, p := range statute.Provisions {
			add(p, 3)
		}
	}
	for _, arg := range data.Arguments {
		for _, c := range arg.SupportingCitations {
			add(c, 4)
		}
	}
	return keywords
}

// caseTypeAreas maps case-type keywords to legal areas, in evaluation order.
var caseTypeAreas = []struct {
	keyword string
	area    string
}{
	{"constitutional", "Constitutional"},
	{"writ", "Constitutional"},
	{"criminal", "Criminal"},
	{"family", "Family"},
	{"corporate", "Corporate"},
}

// statuteAreas sniffs statute names for legal areas.
var statuteAreas = []struct {
	keywords []string
	area     string
}{
	{[]string{"constitution", "article"}, "Constitutional"},
	{[]string{"penal", "criminal"}, "Criminal"},
	{[]string{"family", "marriage", "dissolution"}, "Family"},
	{[]string{"income tax", "finance act"}, "Tax"},
	{[]string{"companies", "secp"}, "Corporate"},
	{[]string{"land acquisition"}, "Land"},
	{[]string{"civil servants", "appointment"}, "Employment"},
}

// deriveLegalAreas tags the case with coarse legal areas from its case type
// and statute names.
func deriveLegalAreas(data *models.ExtractedCaseData) []string {
	var areas []string
	seen := map[string]bool{}
	addArea := func(area string) {
		if !seen[area] {
			seen[area] = true
			areas = append(areas, area)
		}
	}
	if data.CourtInfo != nil {
		caseType := strings.ToLower(data.CourtInfo.CaseType)
		for _, ct := range caseTypeAreas {
			if strings.Contains(caseType, ct.keyword) {
				addArea(ct.area)
			}
		}
	}
	for _, statute := range data.Statutes {
		name := strings.ToLower(statute.Name)
		for _, sa := range statuteAreas {
			for _, kw := range sa.keywords {
				if strings.Contains(name, kw) {
					addArea(sa.area)
					break
				}
			}
		}
	}
	return areas
}

// splitWords lowercases and splits on anything that is not a letter or digit.
func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
