// Package models defines core data structures for uploaded documents, the
// extracted case record, brief sections, and precedent queries.
package models

import "time"

// DocumentType classifies an uploaded legal document. It is supplied by the
// caller at upload time and drives which analyzers activate (e.g. fact
// extraction only runs on petitions and FIRs).
type DocumentType string

const (
	TypePetition         DocumentType = "petition"
	TypeWrittenArguments DocumentType = "written_arguments"
	TypeEvidence         DocumentType = "evidence"
	TypeAffidavit        DocumentType = "affidavit"
	TypeCourtOrder       DocumentType = "court_order"
	TypePreviousJudgment DocumentType = "previous_judgment"
	TypeFIR              DocumentType = "fir"
	TypeStatutoryExtract DocumentType = "statutory_extract"
	TypeContract         DocumentType = "contract"
	TypeSpreadsheet      DocumentType = "spreadsheet"
	TypeOther            DocumentType = "other"
)

// Format is the detected file format of an uploaded document.
type Format string

const (
	FormatPDF         Format = "pdf"
	FormatDOCX        Format = "docx"
	FormatDoc         Format = "doc"
	FormatSpreadsheet Format = "spreadsheet"
	FormatText        Format = "text"
	FormatRTF         Format = "rtf"
	FormatImage       Format = "image"
	FormatUnsupported Format = "unsupported"
)

// DocumentStatus is the extraction lifecycle state of an uploaded document.
// Documents move pending -> extracting -> extracted|skipped|error and the
// terminal states are never left.
type DocumentStatus string

const (
	StatusPending    DocumentStatus = "pending"
	StatusExtracting DocumentStatus = "extracting"
	StatusExtracted  DocumentStatus = "extracted"
	StatusSkipped    DocumentStatus = "skipped"
	StatusError      DocumentStatus = "error"
)

// Page is one page of extracted text. Pages are kept in increasing page
// number order within a document.
type Page struct {
	Number int    `json:"number" db:"number"`
	Text   string `json:"text" db:"text"`
}

// UploadedDocument represents one uploaded file and its extraction state.
// Only the extraction subsystem mutates it after creation.
type UploadedDocument struct {
	ID           string         `json:"id" db:"id"`
	FileName     string         `json:"file_name" db:"file_name"`
	FileSize     int64          `json:"file_size" db:"file_size"`
	DocumentType DocumentType   `json:"document_type" db:"document_type"`
	FileFormat   Format         `json:"file_format" db:"file_format"`
	Status       DocumentStatus `json:"status" db:"status"`
	Progress     int            `json:"progress" db:"progress"`
	TotalPages   int            `json:"total_pages" db:"total_pages"`
	Pages        []Page         `json:"pages" db:"pages"`
	Error        string         `json:"error,omitempty" db:"error"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// Terminal reports whether the document's status will no longer change.
func (d *UploadedDocument) Terminal() bool {
	return d.Status == StatusExtracted || d.Status == StatusSkipped || d.Status == StatusError
}
