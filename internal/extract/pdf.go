package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/hyperjump/briefpipe/internal/models"
)

// extractPDF extracts text page by page. A single page's failure yields a
// placeholder page instead of aborting the document. Reader initialization is
// retried once before the failure is surfaced; both attempts failing is the
// only fatal outcome for a PDF.
func (e *Extractor) extractPDF(content []byte, onProgress func(int)) ([]models.Page, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		e.logger.Warn("PDF reader init failed, retrying", zap.Error(err))
		r, err = pdf.NewReader(bytes.NewReader(content), int64(len(content)))
		if err != nil {
			return nil, fmt.Errorf("open PDF: %w", err)
		}
	}

	numPages := r.NumPage()
	pages := make([]models.Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		text, err := pdfPageText(r, i)
		if err != nil {
			e.logger.Warn("PDF page extraction failed", zap.Int("page", i), zap.Error(err))
			text = fmt.Sprintf("[Page %d: extraction failed]", i)
		}
		pages = append(pages, models.Page{Text: text})
		onProgress(i * 100 / numPages)
	}
	return pages, nil
}

// pdfPageText reads one page's plain text. The underlying decoder panics on
// some malformed content streams, so the panic is converted to an error here.
func pdfPageText(r *pdf.Reader, n int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page %d decode panic: %v", n, rec)
		}
	}()
	page := r.Page(n)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d is null", n)
	}
	return page.GetPlainText(nil)
}
