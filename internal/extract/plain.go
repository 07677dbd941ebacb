package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/hyperjump/briefpipe/internal/models"
)

// extractPlain returns content verbatim as one page, validating it is valid
// UTF-8. Invalid sequences are replaced with the replacement character.
func extractPlain(content []byte) ([]models.Page, error) {
	text := string(content)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	return []models.Page{{Text: text}}, nil
}
