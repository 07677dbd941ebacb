package extract

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hyperjump/briefpipe/internal/models"
	"github.com/hyperjump/briefpipe/internal/ocr"
)

// extractImage runs OCR through the controller. Every failure mode (missing
// controller, engine creation error, timeout, no text detected) is converted
// to a descriptive placeholder page; an OCR failure never escapes document
// extraction.
func (e *Extractor) extractImage(ctx context.Context, fileName string, content []byte) []models.Page {
	if e.ocr == nil {
		return []models.Page{{Text: ocrFailedPlaceholder(fileName)}}
	}
	text, err := e.ocr.Recognize(ctx, content)
	if err != nil {
		e.logger.Warn("OCR failed", zap.String("file", fileName), zap.Error(err))
		if errors.Is(err, ocr.ErrNoText) {
			return []models.Page{{Text: fmt.Sprintf("[Image file: %s — no readable text detected]", fileName)}}
		}
		return []models.Page{{Text: ocrFailedPlaceholder(fileName)}}
	}
	return []models.Page{{Text: text}}
}

func ocrFailedPlaceholder(fileName string) string {
	return fmt.Sprintf("[Image file: %s — OCR extraction failed]", fileName)
}
