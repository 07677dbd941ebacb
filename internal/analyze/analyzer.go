// Package analyze turns paginated document text into a structured,
// source-attributed case record. Each sub-extractor is an ordered list of
// (pattern, handler) rules evaluated across documents in caller order, then
// pages in page order, so "first match wins" fields are deterministic.
package analyze

import (
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/briefpipe/internal/models"
	"github.com/hyperjump/briefpipe/pkg/utils"
)

// snippetLength bounds source reference snippets.
const snippetLength = 150

// minItemLength discards numbered list items too short to be meaningful.
const minItemLength = 20

// Analyzer extracts a case record from extracted documents.
type Analyzer struct {
	logger *zap.Logger
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) AnalyzerOption {
	return func(a *Analyzer) { a.logger = l }
}

// NewAnalyzer returns an Analyzer.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze extracts a structured case record from the documents. Only
// documents with status extracted participate. Absence of signal for any
// field yields an empty container, never an error; downstream consumers treat
// empties as "needs manual review".
func (a *Analyzer) Analyze(docs []*models.UploadedDocument) *models.ExtractedCaseData {
	pages := collectPages(docs)
	data := models.NewExtractedCaseData()
	data.CourtInfo = extractCourtInfo(pages)
	data.Parties = extractParties(pages)
	data.Facts = extractFacts(pages)
	data.LegalIssues = extractLegalIssues(pages)
	data.Statutes = extractStatutes(pages)
	data.Arguments = extractArguments(pages)
	for _, d := range docs {
		if d.Status == models.StatusExtracted {
			data.RawDocuments = append(data.RawDocuments, d.ID)
		}
	}
	a.logger.Debug("analysis complete",
		zap.Int("parties", len(data.Parties)),
		zap.Int("facts", len(data.Facts)),
		zap.Int("issues", len(data.LegalIssues)),
		zap.Int("statutes", len(data.Statutes)),
		zap.Int("arguments", len(data.Arguments)))
	return data
}

// pageRef is one page of one document, carrying enough context to build
// source references.
type pageRef struct {
	doc  *models.UploadedDocument
	page models.Page
}

// collectPages flattens extracted documents into caller order, pages in page
// number order.
func collectPages(docs []*models.UploadedDocument) []pageRef {
	var out []pageRef
	for _, d := range docs {
		if d.Status != models.StatusExtracted {
			continue
		}
		for _, p := range d.Pages {
			out = append(out, pageRef{doc: d, page: p})
		}
	}
	return out
}

// source builds a source reference for matched text on this page.
func (p pageRef) source(matched string) models.SourceReference {
	return models.SourceReference{
		DocumentID:   p.doc.ID,
		DocumentName: p.doc.FileName,
		DocumentType: p.doc.DocumentType,
		PageNumber:   p.page.Number,
		Snippet:      utils.Snippet(matched, snippetLength),
	}
}

// numberedItemRe marks "N. content" / "N) content" list item starts.
var numberedItemRe = regexp.MustCompile(`(?m)^\s*(\d{1,3})[.)]\s+`)

// numberedItem is one entry of a numbered list.
type numberedItem struct {
	number  int
	content string
}

// scanNumberedItems extracts numbered list items: each item's content runs
// from its marker to the next marker or end of text. Items shorter than
// minItemLength are discarded.
func scanNumberedItems(text string) []numberedItem {
	locs := numberedItemRe.FindAllStringSubmatchIndex(text, -1)
	items := make([]numberedItem, 0, len(locs))
	for i, loc := range locs {
		start := loc[1]
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		content := strings.TrimSpace(text[start:end])
		if len(content) < minItemLength {
			continue
		}
		num := 0
		for _, c := range text[loc[2]:loc[3]] {
			num = num*10 + int(c-'0')
		}
		items = append(items, numberedItem{number: num, content: content})
	}
	return items
}

// datePatterns are common date shapes inside fact text, tried in order.
var datePatterns = []struct {
	re      *regexp.Regexp
	layouts []string
}{
	{regexp.MustCompile(`\b\d{1,2}[./-]\d{1,2}[./-]\d{4}\b`), []string{"2.1.2006", "2/1/2006", "2-1-2006"}},
	{regexp.MustCompile(`\b\d{1,2}(?:st|nd|rd|th)?\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s*,?\s*\d{4}\b`), []string{"2 January 2006", "2 January, 2006"}},
	{regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}\s*,?\s*\d{4}\b`), []string{"January 2, 2006", "January 2 2006"}},
}

var ordinalSuffixRe = regexp.MustCompile(`(\d)(?:st|nd|rd|th)\b`)

// parseDate finds the first recognizable date in s, or nil.
func parseDate(s string) *time.Time {
	for _, p := range datePatterns {
		match := p.re.FindString(s)
		if match == "" {
			continue
		}
		match = ordinalSuffixRe.ReplaceAllString(match, "$1")
		for _, layout := range p.layouts {
			if t, err := time.Parse(layout, match); err == nil {
				return &t
			}
		}
	}
	return nil
}
