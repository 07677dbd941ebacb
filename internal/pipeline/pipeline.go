// Package pipeline orchestrates the brief pipeline: format detection,
// extraction, analysis, merging, precedent matching, and section rendering.
package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/briefpipe/internal/analyze"
	"github.com/hyperjump/briefpipe/internal/extract"
	"github.com/hyperjump/briefpipe/internal/format"
	"github.com/hyperjump/briefpipe/internal/merge"
	"github.com/hyperjump/briefpipe/internal/models"
	"github.com/hyperjump/briefpipe/internal/precedent"
	"github.com/hyperjump/briefpipe/internal/render"
)

// DefaultChunkSize is how many documents are analyzed per chunk before the
// partial records are merged.
const DefaultChunkSize = 5

// DocumentInput is one uploaded file entering the pipeline. DocumentType is
// caller-supplied and drives which analyzers activate.
type DocumentInput struct {
	FileName     string
	DocumentType models.DocumentType
	Content      []byte
}

// Pipeline wires the pipeline stages together.
type Pipeline struct {
	extractor *extract.Extractor
	analyzer  *analyze.Analyzer
	matcher   *precedent.Matcher
	chunkSize int
	logger    *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithChunkSize overrides how many documents are analyzed per chunk.
func WithChunkSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.chunkSize = n
		}
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a Pipeline. matcher may be nil; briefs are then rendered
// without precedents.
func New(extractor *extract.Extractor, analyzer *analyze.Analyzer, matcher *precedent.Matcher, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor: extractor,
		analyzer:  analyzer,
		matcher:   matcher,
		chunkSize: DefaultChunkSize,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessDocument detects the format and extracts one document. It never
// returns an error: an unsupported format leaves the document skipped, any
// other failure leaves it in the error state, and all degraded outcomes are
// recorded on the document itself.
func (p *Pipeline) ProcessDocument(ctx context.Context, in DocumentInput) *models.UploadedDocument {
	now := time.Now()
	doc := &models.UploadedDocument{
		ID:           uuid.New().String(),
		FileName:     in.FileName,
		FileSize:     int64(len(in.Content)),
		DocumentType: in.DocumentType,
		FileFormat:   format.Detect(in.FileName, in.Content),
		Status:       models.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	doc.Status = models.StatusExtracting
	res, err := p.extractor.Extract(ctx, doc.FileName, doc.FileFormat, in.Content, func(pct int) {
		doc.Progress = pct
	})
	doc.UpdatedAt = time.Now()
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat):
		doc.Status = models.StatusSkipped
		p.logger.Info("document skipped", zap.String("file", doc.FileName), zap.String("format", string(doc.FileFormat)))
	case err != nil:
		doc.Status = models.StatusError
		doc.Error = err.Error()
		p.logger.Warn("document extraction failed", zap.String("file", doc.FileName), zap.Error(err))
	default:
		doc.Status = models.StatusExtracted
		doc.Progress = 100
		doc.TotalPages = res.TotalPages
		doc.Pages = res.Pages
	}
	return doc
}

// ProcessBatch extracts all inputs concurrently. The returned slice preserves
// input order regardless of completion order, so downstream "first match
// wins" analysis stays deterministic. The OCR controller still serializes
// recognition globally. A batch always completes, even if every document
// degrades or fails.
func (p *Pipeline) ProcessBatch(ctx context.Context, inputs []DocumentInput) []*models.UploadedDocument {
	docs := make([]*models.UploadedDocument, len(inputs))
	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in DocumentInput) {
			defer wg.Done()
			docs[i] = p.ProcessDocument(ctx, in)
		}(i, in)
	}
	wg.Wait()
	return docs
}

// BuildBrief analyzes the documents in chunks, merges the partial records,
// matches precedents, and renders brief sections. A precedent store failure
// degrades to a brief without precedents rather than failing the run.
func (p *Pipeline) BuildBrief(ctx context.Context, docs []*models.UploadedDocument) (*models.ExtractedCaseData, []*models.EnhancedBriefSection) {
	var chunks []*models.ExtractedCaseData
	for start := 0; start < len(docs); start += p.chunkSize {
		end := start + p.chunkSize
		if end > len(docs) {
			end = len(docs)
		}
		chunks = append(chunks, p.analyzer.Analyze(docs[start:end]))
	}
	data := merge.Merge(chunks)

	var precedents []*models.PrecedentResult
	if p.matcher != nil {
		var err error
		precedents, err = p.matcher.Match(ctx, data)
		if err != nil {
			p.logger.Warn("precedent matching failed, rendering without precedents", zap.Error(err))
			precedents = nil
		}
	}

	return data, render.Sections(data, precedents)
}
