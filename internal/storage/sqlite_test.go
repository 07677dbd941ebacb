package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hyperjump/briefpipe/internal/models"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "briefpipe.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStorage: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testDocument() *models.UploadedDocument {
	return &models.UploadedDocument{
		ID:           uuid.New().String(),
		FileName:     "petition.pdf",
		FileSize:     2048,
		DocumentType: models.TypePetition,
		FileFormat:   models.FormatPDF,
		Status:       models.StatusExtracted,
		Progress:     100,
		TotalPages:   2,
		Pages: []models.Page{
			{Number: 1, Text: "IN THE HIGH COURT OF SINDH"},
			{Number: 2, Text: "1. That the petitioner is aggrieved."},
		},
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	doc := testDocument()
	if err := store.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}

	got, err := store.GetDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got.FileName != doc.FileName || got.DocumentType != doc.DocumentType || got.Status != doc.Status {
		t.Errorf("got %+v", got)
	}
	if len(got.Pages) != 2 || got.Pages[1].Text != doc.Pages[1].Text {
		t.Errorf("pages %+v", got.Pages)
	}
}

func TestSaveDocument_replaces(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	doc := testDocument()
	doc.Status = models.StatusExtracting
	if err := store.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	doc.Status = models.StatusExtracted
	if err := store.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("SaveDocument (update): %v", err)
	}
	got, err := store.GetDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got.Status != models.StatusExtracted {
		t.Errorf("status %s", got.Status)
	}
}

func TestGetDocument_missing(t *testing.T) {
	store := newTestStorage(t)
	if _, err := store.GetDocument(context.Background(), "no-such-id"); err == nil {
		t.Fatal("want error for missing document")
	}
}

func TestListAndDeleteDocuments(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	first := testDocument()
	second := testDocument()
	second.FileName = "reply.docx"
	first.CreatedAt = time.Now().Add(-time.Hour)
	for _, d := range []*models.UploadedDocument{first, second} {
		if err := store.SaveDocument(ctx, d); err != nil {
			t.Fatalf("SaveDocument: %v", err)
		}
	}

	docs, err := store.ListDocuments(ctx, 0, 10)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents", len(docs))
	}
	if docs[0].ID != first.ID {
		t.Errorf("list not in creation order: %s first", docs[0].FileName)
	}

	if err := store.DeleteDocument(ctx, first.ID); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	docs, err = store.ListDocuments(ctx, 0, 10)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != second.ID {
		t.Errorf("after delete: %+v", docs)
	}
}

func testBrief() *models.Brief {
	return &models.Brief{
		ID: uuid.New().String(),
		Sections: []*models.EnhancedBriefSection{
			{
				ID:      uuid.New().String(),
				Title:   "Case Header",
				Content: "In the High Court of Sindh",
				Sources: []models.SourceReference{
					{DocumentID: "doc-1", DocumentName: "petition.pdf", PageNumber: 1, Snippet: "IN THE HIGH COURT"},
				},
				ReviewStatus: models.ReviewPending,
			},
			{
				ID:           uuid.New().String(),
				Title:        "Statement of Facts",
				Content:      "1. That the petitioner is aggrieved.",
				ReviewStatus: models.ReviewPending,
			},
		},
	}
}

func TestBriefRoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	brief := testBrief()
	if err := store.SaveBrief(ctx, brief); err != nil {
		t.Fatalf("SaveBrief: %v", err)
	}

	got, err := store.GetBrief(ctx, brief.ID)
	if err != nil {
		t.Fatalf("GetBrief: %v", err)
	}
	if len(got.Sections) != 2 {
		t.Fatalf("got %d sections", len(got.Sections))
	}
	if got.Sections[0].Title != "Case Header" || got.Sections[1].Title != "Statement of Facts" {
		t.Errorf("section order: %q, %q", got.Sections[0].Title, got.Sections[1].Title)
	}
	if len(got.Sections[0].Sources) != 1 || got.Sections[0].Sources[0].DocumentID != "doc-1" {
		t.Errorf("sources %+v", got.Sections[0].Sources)
	}
	if got.Sections[0].ReviewStatus != models.ReviewPending {
		t.Errorf("status %s", got.Sections[0].ReviewStatus)
	}
}

func TestUpdateSectionReview(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	brief := testBrief()
	if err := store.SaveBrief(ctx, brief); err != nil {
		t.Fatalf("SaveBrief: %v", err)
	}
	secID := brief.Sections[0].ID

	if err := store.UpdateSectionReview(ctx, secID, models.ReviewFlagged, "facts look wrong"); err != nil {
		t.Fatalf("UpdateSectionReview: %v", err)
	}
	got, err := store.GetBrief(ctx, brief.ID)
	if err != nil {
		t.Fatalf("GetBrief: %v", err)
	}
	if got.Sections[0].ReviewStatus != models.ReviewFlagged {
		t.Errorf("status %s", got.Sections[0].ReviewStatus)
	}
	if got.Sections[0].FlagNote != "facts look wrong" {
		t.Errorf("flag note %q", got.Sections[0].FlagNote)
	}

	if err := store.UpdateSectionReview(ctx, secID, models.ReviewApproved, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if err := store.UpdateSectionReview(ctx, secID, models.ReviewPending, ""); err == nil {
		t.Error("pending is not a valid review target")
	}
	if err := store.UpdateSectionReview(ctx, secID, "published", ""); err == nil {
		t.Error("unknown status accepted")
	}
	if err := store.UpdateSectionReview(ctx, "no-such-section", models.ReviewApproved, ""); err == nil {
		t.Error("missing section accepted")
	}
}

func TestIncrementRegeneration(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	brief := testBrief()
	if err := store.SaveBrief(ctx, brief); err != nil {
		t.Fatalf("SaveBrief: %v", err)
	}
	secID := brief.Sections[1].ID

	for i := 0; i < 3; i++ {
		if err := store.IncrementRegeneration(ctx, secID); err != nil {
			t.Fatalf("IncrementRegeneration: %v", err)
		}
	}
	got, err := store.GetBrief(ctx, brief.ID)
	if err != nil {
		t.Fatalf("GetBrief: %v", err)
	}
	if got.Sections[1].RegenerationCount != 3 {
		t.Errorf("count %d", got.Sections[1].RegenerationCount)
	}

	if err := store.IncrementRegeneration(ctx, "no-such-section"); err == nil {
		t.Error("missing section accepted")
	}
}
