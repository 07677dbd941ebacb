// Package render deterministically transforms a case record and precedent
// results into ordered draft brief sections.
package render

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hyperjump/briefpipe/internal/models"
)

// Fallback texts used whenever a section's backing list is empty. Section
// content is never left empty; an explicit notice tells the reviewer what to
// supply manually.
const (
	fallbackCourtInfo  = "Court and case details could not be extracted from the uploaded documents. Please review the documents and enter the court name and case number manually."
	fallbackParties    = "No parties could be identified in the uploaded documents. Please review and add the parties manually."
	fallbackFacts      = "No material facts could be extracted from the uploaded documents. Please review the documents and add facts manually."
	fallbackIssues     = "No legal issues could be identified. Please frame the questions of law manually."
	fallbackStatutes   = "No statutory provisions were detected in the uploaded documents."
	fallbackPetArgs    = "No arguments for the petitioner were extracted. Please review and add submissions manually."
	fallbackRespArgs   = "No arguments for the respondent were extracted. Please review and add submissions manually."
	fallbackPrecedents = "No relevant precedents were found for this case. Consider searching the precedent database manually."
	fallbackMatrix     = "A comparative analysis could not be prepared because no legal issues were extracted."

	disclaimer = "This preliminary analysis was generated automatically from the uploaded documents and must be reviewed by qualified counsel before use."
)

// Sections renders the fixed, ordered list of draft brief sections. Every
// section starts pending review with a zero regeneration count; review
// transitions happen outside this package.
func Sections(data *models.ExtractedCaseData, precedents []*models.PrecedentResult) []*models.EnhancedBriefSection {
	return []*models.EnhancedBriefSection{
		caseHeaderSection(data),
		partiesSection(data),
		factsSection(data),
		issuesSection(data),
		statutesSection(data),
		argumentsSection(data, models.SidePetitioner, "Arguments for the Petitioner", fallbackPetArgs),
		argumentsSection(data, models.SideRespondent, "Arguments for the Respondent", fallbackRespArgs),
		precedentsSection(precedents),
		comparativeMatrixSection(data),
		preliminaryAnalysisSection(data, precedents),
	}
}

func newSection(title, content string, sources []models.SourceReference) *models.EnhancedBriefSection {
	return &models.EnhancedBriefSection{
		ID:           uuid.New().String(),
		Title:        title,
		Content:      content,
		Sources:      sources,
		ReviewStatus: models.ReviewPending,
	}
}

func caseHeaderSection(data *models.ExtractedCaseData) *models.EnhancedBriefSection {
	info := data.CourtInfo
	if info == nil {
		return newSection("Case Header", fallbackCourtInfo, nil)
	}
	var b strings.Builder
	if info.CourtName != "" {
		fmt.Fprintf(&b, "In the %s\n", info.CourtName)
	}
	if info.CaseNumber != "" {
		fmt.Fprintf(&b, "Case No: %s\n", info.CaseNumber)
	}
	if info.CaseType != "" {
		fmt.Fprintf(&b, "Case Type: %s\n", info.CaseType)
	}
	if info.Judge != "" {
		fmt.Fprintf(&b, "Before: %s\n", info.Judge)
	}
	return newSection("Case Header", strings.TrimSpace(b.String()), info.Sources)
}

func partiesSection(data *models.ExtractedCaseData) *models.EnhancedBriefSection {
	if len(data.Parties) == 0 {
		return newSection("Parties", fallbackParties, nil)
	}
	var b strings.Builder
	var sources []models.SourceReference
	for _, p := range data.Parties {
		fmt.Fprintf(&b, "%s (%s)", p.Name, p.Role)
		if p.Counsel != "" {
			fmt.Fprintf(&b, ", through counsel %s", p.Counsel)
		}
		b.WriteByte('\n')
		sources = append(sources, p.Sources...)
	}
	return newSection("Parties", strings.TrimSpace(b.String()), sources)
}

func factsSection(data *models.ExtractedCaseData) *models.EnhancedBriefSection {
	if len(data.Facts) == 0 {
		return newSection("Statement of Facts", fallbackFacts, nil)
	}
	var b strings.Builder
	var sources []models.SourceReference
	for _, f := range data.Facts {
		fmt.Fprintf(&b, "%d. %s", f.Order, f.Content)
		if f.Date != nil {
			fmt.Fprintf(&b, " (dated %s)", f.Date.Format("02.01.2006"))
		}
		b.WriteString("\n\n")
		sources = append(sources, f.Sources...)
	}
	return newSection("Statement of Facts", strings.TrimSpace(b.String()), sources)
}

func issuesSection(data *models.ExtractedCaseData) *models.EnhancedBriefSection {
	if len(data.LegalIssues) == 0 {
		return newSection("Questions of Law", fallbackIssues, nil)
	}
	var b strings.Builder
	var sources []models.SourceReference
	for i, issue := range data.LegalIssues {
		fmt.Fprintf(&b, "%d. %s", i+1, issue.Content)
		if len(issue.RelatedStatutes) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(issue.RelatedStatutes, "; "))
		}
		b.WriteString("\n\n")
		sources = append(sources, issue.Sources...)
	}
	return newSection("Questions of Law", strings.TrimSpace(b.String()), sources)
}

func statutesSection(data *models.ExtractedCaseData) *models.EnhancedBriefSection {
	if len(data.Statutes) == 0 {
		return newSection("Statutory Provisions", fallbackStatutes, nil)
	}
	var b strings.Builder
	var sources []models.SourceReference
	for _, s := range data.Statutes {
		b.WriteString(s.Name)
		if len(s.Provisions) > 0 {
			fmt.Fprintf(&b, ": %s", strings.Join(s.Provisions, ", "))
		}
		b.WriteByte('\n')
		sources = append(sources, s.Sources...)
	}
	return newSection("Statutory Provisions", strings.TrimSpace(b.String()), sources)
}

func argumentsSection(data *models.ExtractedCaseData, side models.ArgumentSide, title, fallback string) *models.EnhancedBriefSection {
	var b strings.Builder
	var sources []models.SourceReference
	n := 0
	for _, arg := range data.Arguments {
		if arg.Side != side {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d. %s", n, arg.Content)
		if len(arg.SupportingCitations) > 0 {
			fmt.Fprintf(&b, "\nReliance: %s", strings.Join(arg.SupportingCitations, "; "))
		}
		b.WriteString("\n\n")
		sources = append(sources, arg.Sources...)
	}
	if n == 0 {
		return newSection(title, fallback, nil)
	}
	return newSection(title, strings.TrimSpace(b.String()), sources)
}

func precedentsSection(precedents []*models.PrecedentResult) *models.EnhancedBriefSection {
	if len(precedents) == 0 {
		return newSection("Relevant Precedents", fallbackPrecedents, nil)
	}
	var b strings.Builder
	for i, r := range precedents {
		fmt.Fprintf(&b, "%d. %s, %s\n%s\n\n", i+1, r.Precedent.CaseName, r.Precedent.Citation, r.Precedent.Summary)
	}
	return newSection("Relevant Precedents", strings.TrimSpace(b.String()), nil)
}

// comparativeMatrixSection pairs issues with arguments by list position, not
// by semantic matching.
func comparativeMatrixSection(data *models.ExtractedCaseData) *models.EnhancedBriefSection {
	if len(data.LegalIssues) == 0 {
		return newSection("Comparative Analysis", fallbackMatrix, nil)
	}
	var petitioner, respondent []models.Argument
	for _, arg := range data.Arguments {
		if arg.Side == models.SidePetitioner {
			petitioner = append(petitioner, arg)
		} else {
			respondent = append(respondent, arg)
		}
	}
	var b strings.Builder
	for i, issue := range data.LegalIssues {
		fmt.Fprintf(&b, "Issue %d: %s\n", i+1, issue.Content)
		if i < len(petitioner) {
			fmt.Fprintf(&b, "Petitioner: %s\n", petitioner[i].Content)
		} else {
			b.WriteString("Petitioner: no corresponding argument extracted.\n")
		}
		if i < len(respondent) {
			fmt.Fprintf(&b, "Respondent: %s\n", respondent[i].Content)
		} else {
			b.WriteString("Respondent: no corresponding argument extracted.\n")
		}
		b.WriteByte('\n')
	}
	return newSection("Comparative Analysis", strings.TrimSpace(b.String()), nil)
}

func preliminaryAnalysisSection(data *models.ExtractedCaseData, precedents []*models.PrecedentResult) *models.EnhancedBriefSection {
	var b strings.Builder
	fmt.Fprintf(&b, "The record raises %d legal issue(s) supported by %d extracted fact(s), citing %d statute(s). %d relevant precedent(s) were identified.",
		len(data.LegalIssues), len(data.Facts), len(data.Statutes), len(precedents))
	if len(precedents) > 0 {
		top := precedents
		if len(top) > 3 {
			top = top[:3]
		}
		citations := make([]string, 0, len(top))
		for _, r := range top {
			citations = append(citations, r.Precedent.Citation)
		}
		fmt.Fprintf(&b, " The strongest authorities appear to be: %s.", strings.Join(citations, "; "))
	}
	b.WriteString(" " + disclaimer)
	return newSection("Preliminary Analysis", b.String(), nil)
}
