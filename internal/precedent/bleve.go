package precedent

import (
	"context"
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/hyperjump/briefpipe/internal/models"
)

// BleveStore is an in-process precedent store backed by a Bleve index. It is
// the default Searcher implementation; the matcher only depends on the
// interface.
type BleveStore struct {
	index bleve.Index
}

// NewBleveStore creates or opens a Bleve precedent index at path. An existing
// index is opened and reused; remove the directory to force a rebuild after
// mapping changes.
func NewBleveStore(path string) (*BleveStore, error) {
	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open precedent index: %w", openErr)
		}
		return &BleveStore{index: index}, nil
	}

	index, err := bleve.New(path, buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create precedent index: %w", err)
	}
	return &BleveStore{index: index}, nil
}

// NewMemBleveStore creates an in-memory store, used by tests and one-shot runs.
func NewMemBleveStore() (*BleveStore, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory precedent index: %w", err)
	}
	return &BleveStore{index: index}, nil
}

// buildIndexMapping maps precedent fields: analyzed text for matching,
// keyword terms for the legal-area filter.
func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so statute and
	// case-name keywords match exactly as derived by the matcher.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("case_name", textFieldMapping)
	docMapping.AddFieldMappingsAt("citation", textFieldMapping)
	docMapping.AddFieldMappingsAt("summary", textFieldMapping)
	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	docMapping.AddFieldMappingsAt("legal_areas", keywordFieldMapping)
	im.AddDocumentMapping("precedent", docMapping)
	im.DefaultType = "precedent"
	im.DefaultMapping = docMapping
	return im
}

// Index adds or replaces a precedent.
func (s *BleveStore) Index(ctx context.Context, p *models.Precedent) error {
	return s.index.Index(p.ID, p)
}

// Search runs one ranked query. Keywords match over case name, citation, and
// summary; legal areas, when present, filter as exact terms.
func (s *BleveStore) Search(ctx context.Context, q *models.PrecedentQuery) ([]*models.PrecedentResult, error) {
	var matches []blevequery.Query
	for _, field := range []string{"case_name", "citation", "summary"} {
		mq := bleve.NewMatchQuery(q.Query)
		mq.SetField(field)
		matches = append(matches, mq)
	}
	var full blevequery.Query = bleve.NewDisjunctionQuery(matches...)

	if len(q.LegalAreas) > 0 {
		var areaTerms []blevequery.Query
		for _, area := range q.LegalAreas {
			tq := bleve.NewTermQuery(area)
			tq.SetField("legal_areas")
			areaTerms = append(areaTerms, tq)
		}
		full = bleve.NewConjunctionQuery(full, bleve.NewDisjunctionQuery(areaTerms...))
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	req := bleve.NewSearchRequestOptions(full, limit, 0, false)
	req.Fields = []string{"case_name", "citation", "summary", "legal_areas"}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("precedent search failed: %w", err)
	}

	results := make([]*models.PrecedentResult, 0, len(res.Hits))
	for _, hit := range res.Hits {
		results = append(results, &models.PrecedentResult{
			Precedent: &models.Precedent{
				ID:         hit.ID,
				CaseName:   fieldString(hit.Fields, "case_name"),
				Citation:   fieldString(hit.Fields, "citation"),
				Summary:    fieldString(hit.Fields, "summary"),
				LegalAreas: fieldStrings(hit.Fields, "legal_areas"),
			},
			RelevanceScore: hit.Score,
		})
	}
	return results, nil
}

// Close closes the underlying index.
func (s *BleveStore) Close() error {
	return s.index.Close()
}

func fieldString(fields map[string]interface{}, name string) string {
	if v, ok := fields[name].(string); ok {
		return v
	}
	return ""
}

func fieldStrings(fields map[string]interface{}, name string) []string {
	switch v := fields[name].(type) {
	case string:
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
