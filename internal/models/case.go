package models

import "time"

// SourceReference points an extracted entity back to the document and page it
// came from, for reviewer traceability. Immutable once attached.
type SourceReference struct {
	DocumentID   string       `json:"document_id"`
	DocumentName string       `json:"document_name"`
	DocumentType DocumentType `json:"document_type"`
	PageNumber   int          `json:"page_number"`
	Snippet      string       `json:"snippet"`
}

// PartyRole is the role a party plays in the case.
type PartyRole string

const (
	RolePetitioner PartyRole = "petitioner"
	RoleRespondent PartyRole = "respondent"
	RoleAppellant  PartyRole = "appellant"
	RoleOther      PartyRole = "other"
)

// Party is a named party to the case.
type Party struct {
	Name    string            `json:"name"`
	Role    PartyRole         `json:"role"`
	Counsel string            `json:"counsel,omitempty"`
	Sources []SourceReference `json:"sources"`
}

// Fact is a single material fact. Order is contiguous 1..N within one
// ExtractedCaseData, in list order.
type Fact struct {
	Content string            `json:"content"`
	Date    *time.Time        `json:"date,omitempty"`
	Order   int               `json:"order"`
	Sources []SourceReference `json:"sources"`
}

// LegalIssue is a question of law framed by the case.
type LegalIssue struct {
	Content         string            `json:"content"`
	RelatedStatutes []string          `json:"related_statutes"`
	Sources         []SourceReference `json:"sources"`
}

// StatuteRef is a statute cited by the case along with the provisions invoked.
type StatuteRef struct {
	Name       string            `json:"name"`
	Provisions []string          `json:"provisions"`
	Sources    []SourceReference `json:"sources"`
}

// ArgumentSide identifies which party advances an argument.
type ArgumentSide string

const (
	SidePetitioner ArgumentSide = "petitioner"
	SideRespondent ArgumentSide = "respondent"
)

// Argument is one contention advanced by a side.
type Argument struct {
	Content             string            `json:"content"`
	Side                ArgumentSide      `json:"side"`
	SupportingCitations []string          `json:"supporting_citations"`
	Sources             []SourceReference `json:"sources"`
}

// CourtInfo holds court and case identification extracted from the documents.
type CourtInfo struct {
	CourtName  string            `json:"court_name"`
	CaseNumber string            `json:"case_number"`
	CaseType   string            `json:"case_type"`
	Judge      string            `json:"judge,omitempty"`
	Sources    []SourceReference `json:"sources"`
}

// ExtractedCaseData is the structured case record produced by one analysis
// run. It is an immutable snapshot: merging produces a new record and never
// mutates the inputs.
type ExtractedCaseData struct {
	CourtInfo    *CourtInfo    `json:"court_info"`
	Parties      []Party       `json:"parties"`
	Facts        []Fact        `json:"facts"`
	LegalIssues  []LegalIssue  `json:"legal_issues"`
	Statutes     []StatuteRef  `json:"statutes"`
	Arguments    []Argument    `json:"arguments"`
	RawDocuments []string      `json:"raw_documents"`
}

// NewExtractedCaseData returns the canonical empty record: nil court info and
// empty (non-nil) lists.
func NewExtractedCaseData() *ExtractedCaseData {
	return &ExtractedCaseData{
		Parties:      []Party{},
		Facts:        []Fact{},
		LegalIssues:  []LegalIssue{},
		Statutes:     []StatuteRef{},
		Arguments:    []Argument{},
		RawDocuments: []string{},
	}
}
