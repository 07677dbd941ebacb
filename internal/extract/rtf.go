package extract

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/lu4p/cat/rtftxt"

	"github.com/hyperjump/briefpipe/internal/models"
)

var (
	rtfControlGroup = regexp.MustCompile(`\{\\[^{}]*\}`)
	rtfControlWord  = regexp.MustCompile(`\\[a-zA-Z]+-?\d*\s?`)
	rtfWhitespace   = regexp.MustCompile(`\s+`)
)

// extractRTF recovers plain text from RTF as one page. The rtftxt parser is
// tried first; when it fails, control groups and words are stripped directly,
// which recovers approximate text from malformed files.
func extractRTF(content []byte) ([]models.Page, error) {
	if buf, err := rtftxt.Text(bytes.NewReader(content)); err == nil {
		if text := strings.TrimSpace(buf.String()); text != "" {
			return []models.Page{{Text: text}}, nil
		}
	}
	return []models.Page{{Text: stripRTF(string(content))}}, nil
}

// stripRTF removes control groups ({\...}), control words (\word123), the
// remaining braces, and collapses whitespace.
func stripRTF(s string) string {
	s = rtfControlGroup.ReplaceAllString(s, "")
	s = rtfControlWord.ReplaceAllString(s, "")
	s = strings.NewReplacer("{", "", "}", "").Replace(s)
	return strings.TrimSpace(rtfWhitespace.ReplaceAllString(s, " "))
}
