package analyze

import (
	"regexp"

	"github.com/hyperjump/briefpipe/internal/models"
)

// sideMarkerRules classify a page as carrying one side's arguments. Evaluated
// in order; the first marker found on a page decides its side.
var sideMarkerRules = []struct {
	re   *regexp.Regexp
	side models.ArgumentSide
}{
	{regexp.MustCompile(`(?i)\b(?:petitioner|appellant)s?'?s?\s+(?:arguments?|submissions?|contentions?)`), models.SidePetitioner},
	{regexp.MustCompile(`(?i)\b(?:respondent|defendant)s?'?s?\s+(?:arguments?|submissions?|contentions?)`), models.SideRespondent},
	{regexp.MustCompile(`(?i)\bon behalf of the (?:petitioner|appellant)`), models.SidePetitioner},
	{regexp.MustCompile(`(?i)\bon behalf of the (?:respondent|defendant)`), models.SideRespondent},
}

// citationRe matches "X v. Y (citation)" style case citations.
var citationRe = regexp.MustCompile(`[A-Z][\w.&' ]{1,60}?\s+[Vv](?:s|ersus)?\.?\s+[A-Z][\w.&' ]{1,60}?\s*\([^)]{2,60}\)`)

// extractArguments scans pages with a side marker for numbered contentions,
// attaching any case citations found within each item.
func extractArguments(pages []pageRef) []models.Argument {
	args := []models.Argument{}
	for _, p := range pages {
		side, ok := pageSide(p.page.Text)
		if !ok {
			continue
		}
		for _, item := range scanNumberedItems(p.page.Text) {
			args = append(args, models.Argument{
				Content:             item.content,
				Side:                side,
				SupportingCitations: citationRe.FindAllString(item.content, -1),
				Sources:             []models.SourceReference{p.source(item.content)},
			})
		}
	}
	return args
}

func pageSide(text string) (models.ArgumentSide, bool) {
	for _, rule := range sideMarkerRules {
		if rule.re.MatchString(text) {
			return rule.side, true
		}
	}
	return "", false
}
