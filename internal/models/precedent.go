package models

// Precedent is a previously decided case retrievable from the precedent store.
type Precedent struct {
	ID         string   `json:"id"`
	CaseName   string   `json:"case_name"`
	Citation   string   `json:"citation"`
	Summary    string   `json:"summary"`
	LegalAreas []string `json:"legal_areas,omitempty"`
}

// PrecedentQuery is the single request shape issued to the precedent store.
type PrecedentQuery struct {
	Query      string   `json:"query"`
	LegalAreas []string `json:"legal_areas,omitempty"`
	Limit      int      `json:"limit"`
}

// PrecedentResult is one ranked hit from the precedent store. Scoring is the
// store's responsibility; results are consumed in the order returned.
type PrecedentResult struct {
	Precedent      *Precedent `json:"precedent"`
	RelevanceScore float64    `json:"relevance_score"`
}
