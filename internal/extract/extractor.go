// Package extract provides per-format text extraction producing paginated
// text. Partial failures (a bad page, a bad sheet, failed OCR) degrade to
// placeholder content; unsupported formats and unreadable containers return
// errors.
package extract

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hyperjump/briefpipe/internal/models"
	"github.com/hyperjump/briefpipe/internal/ocr"
)

// ErrUnsupportedFormat reports a format no extractor handles. Callers use it
// to mark a document skipped rather than errored.
var ErrUnsupportedFormat = errors.New("extract: unsupported file format")

// Result is the paginated output of one extraction.
type Result struct {
	TotalPages int
	Pages      []models.Page
	FullText   string
}

// Extractor extracts paginated plain text from document bytes. The OCR
// controller is only used for image formats and may be nil when images are
// not expected.
type Extractor struct {
	ocr    *ocr.Controller
	logger *zap.Logger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) ExtractorOption {
	return func(e *Extractor) { e.logger = l }
}

// NewExtractor returns an Extractor. ocrController may be nil; image files
// then degrade to the OCR failure placeholder.
func NewExtractor(ocrController *ocr.Controller, opts ...ExtractorOption) *Extractor {
	e := &Extractor{ocr: ocrController, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract extracts text from content according to format. fileName is used in
// placeholder messages. onProgress, when non-nil, receives percentages in
// 0..100; formats without page granularity report only 100.
func (e *Extractor) Extract(ctx context.Context, fileName string, fmtTag models.Format, content []byte, onProgress func(int)) (*Result, error) {
	if onProgress == nil {
		onProgress = func(int) {}
	}
	var (
		pages []models.Page
		err   error
	)
	switch fmtTag {
	case models.FormatPDF:
		pages, err = e.extractPDF(content, onProgress)
	case models.FormatDOCX:
		pages, err = extractDOCX(content)
	case models.FormatSpreadsheet:
		pages, err = extractSpreadsheet(fileName, content)
	case models.FormatText:
		pages, err = extractPlain(content)
	case models.FormatRTF:
		pages, err = extractRTF(content)
	case models.FormatDoc:
		pages = legacyDocPages(fileName)
	case models.FormatImage:
		pages = e.extractImage(ctx, fileName, content)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, fmtTag)
	}
	if err != nil {
		return nil, err
	}
	onProgress(100)
	return buildResult(pages), nil
}

// buildResult numbers pages sequentially and joins them into full text.
func buildResult(pages []models.Page) *Result {
	full := ""
	for i := range pages {
		pages[i].Number = i + 1
		if i > 0 {
			full += "\n\n"
		}
		full += pages[i].Text
	}
	return &Result{TotalPages: len(pages), Pages: pages, FullText: full}
}

// legacyDocPages returns the fixed placeholder for binary .doc files, which
// are deliberately not parsed.
func legacyDocPages(fileName string) []models.Page {
	return []models.Page{{
		Text: fmt.Sprintf("[Legacy document: %s. Binary .doc files are not parsed; please convert to .docx and re-upload.]", fileName),
	}}
}
