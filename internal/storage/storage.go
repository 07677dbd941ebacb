// Package storage defines the persistence interface for uploaded documents
// and draft briefs.
package storage

import (
	"context"

	"github.com/hyperjump/briefpipe/internal/models"
)

// Storage defines document and brief persistence operations.
type Storage interface {
	// Document operations
	SaveDocument(ctx context.Context, doc *models.UploadedDocument) error
	GetDocument(ctx context.Context, id string) (*models.UploadedDocument, error)
	ListDocuments(ctx context.Context, offset, limit int) ([]*models.UploadedDocument, error)
	DeleteDocument(ctx context.Context, id string) error

	// Brief operations
	SaveBrief(ctx context.Context, brief *models.Brief) error
	GetBrief(ctx context.Context, id string) (*models.Brief, error)

	// Section review operations, driven by external human review.
	UpdateSectionReview(ctx context.Context, sectionID string, status models.ReviewStatus, flagNote string) error
	IncrementRegeneration(ctx context.Context, sectionID string) error

	Close() error
}
