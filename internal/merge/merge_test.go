package merge

import (
	"testing"

	"github.com/hyperjump/briefpipe/internal/models"
)

func TestMerge_empty(t *testing.T) {
	got := Merge(nil)
	if got == nil {
		t.Fatal("nil record")
	}
	if got.CourtInfo != nil {
		t.Error("court info should be nil")
	}
	if got.Parties == nil || got.Facts == nil || got.LegalIssues == nil ||
		got.Statutes == nil || got.Arguments == nil || got.RawDocuments == nil {
		t.Error("lists must be empty, not nil")
	}
}

func TestMerge_singleChunkUnchanged(t *testing.T) {
	chunk := &models.ExtractedCaseData{
		CourtInfo: &models.CourtInfo{CourtName: "Lahore High Court"},
		Facts: []models.Fact{
			{Content: "Notice was served on 5 March 2021.", Order: 1},
		},
	}
	if got := Merge([]*models.ExtractedCaseData{chunk}); got != chunk {
		t.Error("single chunk must be returned as-is")
	}
}

func TestMerge_courtInfoFirstNonNil(t *testing.T) {
	chunks := []*models.ExtractedCaseData{
		{},
		{CourtInfo: &models.CourtInfo{CourtName: "Sindh High Court", CaseNumber: "C.P. 99/2022"}},
		{CourtInfo: &models.CourtInfo{CourtName: "Supreme Court of Pakistan"}},
	}
	got := Merge(chunks)
	if got.CourtInfo == nil || got.CourtInfo.CourtName != "Sindh High Court" {
		t.Fatalf("want first non-nil court info, got %+v", got.CourtInfo)
	}
}

func TestMerge_partyDedup(t *testing.T) {
	chunks := []*models.ExtractedCaseData{
		{Parties: []models.Party{
			{Name: "Ali Khan ", Role: models.RolePetitioner},
			{Name: "The State", Role: models.RoleRespondent},
		}},
		{Parties: []models.Party{
			{Name: "ali khan", Role: models.RolePetitioner},
			{Name: "Zafar Iqbal", Role: models.RoleRespondent},
		}},
	}
	got := Merge(chunks)
	if len(got.Parties) != 3 {
		t.Fatalf("got %d parties, want 3", len(got.Parties))
	}
	if got.Parties[0].Name != "Ali Khan " {
		t.Errorf("first occurrence must win, got %q", got.Parties[0].Name)
	}
}

func TestMerge_factsRenumbered(t *testing.T) {
	chunks := []*models.ExtractedCaseData{
		{Facts: []models.Fact{
			{Content: "The agreement was executed.", Order: 1},
			{Content: "Payment fell due.", Order: 2},
		}},
		{Facts: []models.Fact{
			{Content: "A legal notice was issued.", Order: 1},
		}},
	}
	got := Merge(chunks)
	if len(got.Facts) != 3 {
		t.Fatalf("got %d facts, want 3", len(got.Facts))
	}
	for i, fact := range got.Facts {
		if fact.Order != i+1 {
			t.Errorf("fact %d has order %d, want %d", i, fact.Order, i+1)
		}
	}
	// Renumbering must not touch the input chunks.
	if chunks[1].Facts[0].Order != 1 {
		t.Errorf("input chunk mutated: order %d", chunks[1].Facts[0].Order)
	}
}

func TestMerge_issueDedupByPrefix(t *testing.T) {
	long := "Whether the suit is barred by limitation under Article 120 of the Limitation Act given that the cause of action arose"
	chunks := []*models.ExtractedCaseData{
		{LegalIssues: []models.LegalIssue{{Content: long + " in 2015?"}}},
		{LegalIssues: []models.LegalIssue{
			{Content: long + " much earlier than pleaded?"},
			{Content: "Whether the respondent was denied due process?"},
		}},
	}
	got := Merge(chunks)
	if len(got.LegalIssues) != 2 {
		t.Fatalf("got %d issues, want 2 (same 100-char prefix collapses)", len(got.LegalIssues))
	}
}

func TestMerge_statuteFirstOccurrenceWins(t *testing.T) {
	chunks := []*models.ExtractedCaseData{
		{Statutes: []models.StatuteRef{
			{Name: "Contract Act, 1872", Provisions: []string{"Section 73"}},
		}},
		{Statutes: []models.StatuteRef{
			{Name: "contract act, 1872", Provisions: []string{"Section 74"}},
			{Name: "Specific Relief Act, 1877", Provisions: []string{"Section 12"}},
		}},
	}
	got := Merge(chunks)
	if len(got.Statutes) != 2 {
		t.Fatalf("got %d statutes, want 2", len(got.Statutes))
	}
	first := got.Statutes[0]
	if first.Name != "Contract Act, 1872" {
		t.Errorf("got name %q", first.Name)
	}
	if len(first.Provisions) != 1 || first.Provisions[0] != "Section 73" {
		t.Errorf("later chunk provisions must not be merged in, got %v", first.Provisions)
	}
}

func TestMerge_argumentsAndRawDocumentsConcatenated(t *testing.T) {
	chunks := []*models.ExtractedCaseData{
		{
			Arguments:    []models.Argument{{Content: "The contract is void.", Side: models.SidePetitioner}},
			RawDocuments: []string{"doc-1"},
		},
		{
			Arguments:    []models.Argument{{Content: "The claim is time barred.", Side: models.SideRespondent}},
			RawDocuments: []string{"doc-2", "doc-3"},
		},
	}
	got := Merge(chunks)
	if len(got.Arguments) != 2 {
		t.Errorf("got %d arguments, want 2", len(got.Arguments))
	}
	if len(got.RawDocuments) != 3 {
		t.Errorf("got %d raw documents, want 3", len(got.RawDocuments))
	}
}
