package render

import (
	"strings"
	"testing"

	"github.com/hyperjump/briefpipe/internal/models"
)

var sectionTitles = []string{
	"Case Header",
	"Parties",
	"Statement of Facts",
	"Questions of Law",
	"Statutory Provisions",
	"Arguments for the Petitioner",
	"Arguments for the Respondent",
	"Relevant Precedents",
	"Comparative Analysis",
	"Preliminary Analysis",
}

func TestSections_emptyRecord(t *testing.T) {
	sections := Sections(models.NewExtractedCaseData(), nil)
	if len(sections) != len(sectionTitles) {
		t.Fatalf("got %d sections, want %d", len(sections), len(sectionTitles))
	}
	for i, sec := range sections {
		if sec.Title != sectionTitles[i] {
			t.Errorf("section %d title %q, want %q", i, sec.Title, sectionTitles[i])
		}
		if sec.Content == "" {
			t.Errorf("section %q has empty content", sec.Title)
		}
		if sec.ID == "" {
			t.Errorf("section %q has no id", sec.Title)
		}
		if sec.ReviewStatus != models.ReviewPending {
			t.Errorf("section %q status %q", sec.Title, sec.ReviewStatus)
		}
		if sec.RegenerationCount != 0 {
			t.Errorf("section %q regeneration count %d", sec.Title, sec.RegenerationCount)
		}
	}
	if !strings.Contains(sections[2].Content, "No material facts") {
		t.Errorf("facts fallback missing: %q", sections[2].Content)
	}
	if !strings.Contains(sections[7].Content, "No relevant precedents") {
		t.Errorf("precedents fallback missing: %q", sections[7].Content)
	}
}

func TestSections_populated(t *testing.T) {
	data := models.NewExtractedCaseData()
	data.CourtInfo = &models.CourtInfo{
		CourtName:  "High Court of Sindh",
		CaseNumber: "C.P. No. D-1234 of 2023",
		CaseType:   "Constitutional Petition",
	}
	data.Parties = []models.Party{
		{Name: "Ali Raza", Role: models.RolePetitioner, Counsel: "Mr. Khalid Anwar"},
		{Name: "The State", Role: models.RoleRespondent},
	}
	data.Facts = []models.Fact{
		{Content: "The agreement was executed in Karachi.", Order: 1},
	}
	data.LegalIssues = []models.LegalIssue{
		{Content: "Whether the notification is ultra vires?", RelatedStatutes: []string{"Article 199"}},
	}
	data.Statutes = []models.StatuteRef{
		{Name: "Constitution of Pakistan, 1973", Provisions: []string{"Article 199"}},
	}
	data.Arguments = []models.Argument{
		{Content: "The notification lacks statutory backing.", Side: models.SidePetitioner},
	}
	precedents := []*models.PrecedentResult{
		{Precedent: &models.Precedent{CaseName: "Mustafa Impex v. Government of Pakistan", Citation: "PLD 2016 SC 808", Summary: "Executive authority of the federal government."}},
	}

	sections := Sections(data, precedents)

	header := sections[0].Content
	if !strings.Contains(header, "High Court of Sindh") || !strings.Contains(header, "C.P. No. D-1234 of 2023") {
		t.Errorf("header: %q", header)
	}
	if !strings.Contains(sections[1].Content, "Ali Raza (petitioner), through counsel Mr. Khalid Anwar") {
		t.Errorf("parties: %q", sections[1].Content)
	}
	if !strings.HasPrefix(sections[2].Content, "1. The agreement was executed in Karachi.") {
		t.Errorf("facts: %q", sections[2].Content)
	}
	if !strings.Contains(sections[3].Content, "[Article 199]") {
		t.Errorf("issues: %q", sections[3].Content)
	}
	if !strings.Contains(sections[4].Content, "Constitution of Pakistan, 1973: Article 199") {
		t.Errorf("statutes: %q", sections[4].Content)
	}
	if !strings.Contains(sections[5].Content, "The notification lacks statutory backing.") {
		t.Errorf("petitioner arguments: %q", sections[5].Content)
	}
	if !strings.Contains(sections[6].Content, "No arguments for the respondent") {
		t.Errorf("respondent fallback: %q", sections[6].Content)
	}
	if !strings.Contains(sections[7].Content, "PLD 2016 SC 808") {
		t.Errorf("precedents: %q", sections[7].Content)
	}
	if !strings.Contains(sections[9].Content, "PLD 2016 SC 808") {
		t.Errorf("preliminary analysis: %q", sections[9].Content)
	}
}

func TestComparativeMatrix_positionalPairing(t *testing.T) {
	data := models.NewExtractedCaseData()
	data.LegalIssues = []models.LegalIssue{
		{Content: "Whether the suit is maintainable?"},
		{Content: "Whether limitation bars the claim?"},
	}
	data.Arguments = []models.Argument{
		{Content: "The suit is maintainable in its present form.", Side: models.SidePetitioner},
		{Content: "The suit is incompetent.", Side: models.SideRespondent},
	}

	sec := comparativeMatrixSection(data)
	lines := strings.Split(sec.Content, "\n")
	var issue2 int
	for i, line := range lines {
		if strings.HasPrefix(line, "Issue 2:") {
			issue2 = i
		}
	}
	if issue2 == 0 {
		t.Fatalf("second issue row missing: %q", sec.Content)
	}
	// One argument per side: the second issue has nothing to pair with.
	if lines[issue2+1] != "Petitioner: no corresponding argument extracted." {
		t.Errorf("got %q", lines[issue2+1])
	}
	if lines[issue2+2] != "Respondent: no corresponding argument extracted." {
		t.Errorf("got %q", lines[issue2+2])
	}
	if !strings.Contains(lines[1], "The suit is maintainable in its present form.") {
		t.Errorf("first pairing: %q", lines[1])
	}
}

func TestPreliminaryAnalysis_topThreeCitations(t *testing.T) {
	precedents := []*models.PrecedentResult{
		{Precedent: &models.Precedent{Citation: "PLD 2016 SC 808"}},
		{Precedent: &models.Precedent{Citation: "2021 SCMR 1"}},
		{Precedent: &models.Precedent{Citation: "PLD 2019 SC 675"}},
		{Precedent: &models.Precedent{Citation: "2010 CLC 100"}},
	}
	sec := preliminaryAnalysisSection(models.NewExtractedCaseData(), precedents)
	if strings.Contains(sec.Content, "2010 CLC 100") {
		t.Errorf("more than three citations listed: %q", sec.Content)
	}
	if !strings.Contains(sec.Content, "PLD 2019 SC 675") {
		t.Errorf("third citation missing: %q", sec.Content)
	}
	if !strings.Contains(sec.Content, "reviewed by qualified counsel") {
		t.Errorf("disclaimer missing: %q", sec.Content)
	}
}
