// Package storage provides the SQLite implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/briefpipe/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		file_name TEXT NOT NULL,
		file_size INTEGER NOT NULL,
		document_type TEXT NOT NULL,
		file_format TEXT NOT NULL,
		status TEXT NOT NULL,
		progress INTEGER NOT NULL,
		total_pages INTEGER NOT NULL,
		pages TEXT NOT NULL,
		error TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at);

	CREATE TABLE IF NOT EXISTS briefs (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS brief_sections (
		id TEXT PRIMARY KEY,
		brief_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		sources TEXT NOT NULL,
		review_status TEXT NOT NULL,
		flag_note TEXT,
		regeneration_count INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (brief_id) REFERENCES briefs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_sections_brief_id ON brief_sections(brief_id, position);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveDocument inserts or replaces a document, including its extracted pages.
func (s *SQLiteStorage) SaveDocument(ctx context.Context, doc *models.UploadedDocument) error {
	pagesJSON, err := json.Marshal(doc.Pages)
	if err != nil {
		return fmt.Errorf("failed to marshal pages: %w", err)
	}
	doc.UpdatedAt = time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = doc.UpdatedAt
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents
		 (id, file_name, file_size, document_type, file_format, status, progress, total_pages, pages, error, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.FileName, doc.FileSize, string(doc.DocumentType), string(doc.FileFormat),
		string(doc.Status), doc.Progress, doc.TotalPages, string(pagesJSON), doc.Error,
		doc.CreatedAt, doc.UpdatedAt,
	)
	return err
}

// GetDocument returns a document by ID.
func (s *SQLiteStorage) GetDocument(ctx context.Context, id string) (*models.UploadedDocument, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, file_name, file_size, document_type, file_format, status, progress, total_pages, pages, error, created_at, updated_at
		 FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

// ListDocuments returns documents ordered by creation time.
func (s *SQLiteStorage) ListDocuments(ctx context.Context, offset, limit int) ([]*models.UploadedDocument, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, file_name, file_size, document_type, file_format, status, progress, total_pages, pages, error, created_at, updated_at
		 FROM documents ORDER BY created_at LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.UploadedDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// DeleteDocument removes a document by ID.
func (s *SQLiteStorage) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row rowScanner) (*models.UploadedDocument, error) {
	var doc models.UploadedDocument
	var pagesJSON string
	var errText sql.NullString
	err := row.Scan(&doc.ID, &doc.FileName, &doc.FileSize, &doc.DocumentType, &doc.FileFormat,
		&doc.Status, &doc.Progress, &doc.TotalPages, &pagesJSON, &errText, &doc.CreatedAt, &doc.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("document not found")
	}
	if err != nil {
		return nil, err
	}
	if errText.Valid {
		doc.Error = errText.String
	}
	if pagesJSON != "" {
		if err := json.Unmarshal([]byte(pagesJSON), &doc.Pages); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pages: %w", err)
		}
	}
	return &doc, nil
}

// SaveBrief inserts a brief and its sections in one transaction.
func (s *SQLiteStorage) SaveBrief(ctx context.Context, brief *models.Brief) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if brief.CreatedAt.IsZero() {
		brief.CreatedAt = time.Now()
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO briefs (id, created_at) VALUES (?, ?)`,
		brief.ID, brief.CreatedAt); err != nil {
		return err
	}
	for i, sec := range brief.Sections {
		sourcesJSON, err := json.Marshal(sec.Sources)
		if err != nil {
			return fmt.Errorf("failed to marshal sources: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO brief_sections (id, brief_id, position, title, content, sources, review_status, flag_note, regeneration_count)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sec.ID, brief.ID, i, sec.Title, sec.Content, string(sourcesJSON),
			string(sec.ReviewStatus), sec.FlagNote, sec.RegenerationCount); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetBrief returns a brief with its sections in position order.
func (s *SQLiteStorage) GetBrief(ctx context.Context, id string) (*models.Brief, error) {
	var brief models.Brief
	err := s.db.QueryRowContext(ctx, `SELECT id, created_at FROM briefs WHERE id = ?`, id).
		Scan(&brief.ID, &brief.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("brief not found: %s", id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, sources, review_status, flag_note, regeneration_count
		 FROM brief_sections WHERE brief_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sec models.EnhancedBriefSection
		var sourcesJSON string
		var flagNote sql.NullString
		if err := rows.Scan(&sec.ID, &sec.Title, &sec.Content, &sourcesJSON,
			&sec.ReviewStatus, &flagNote, &sec.RegenerationCount); err != nil {
			return nil, err
		}
		if flagNote.Valid {
			sec.FlagNote = flagNote.String
		}
		if sourcesJSON != "" {
			if err := json.Unmarshal([]byte(sourcesJSON), &sec.Sources); err != nil {
				return nil, fmt.Errorf("failed to unmarshal sources: %w", err)
			}
		}
		brief.Sections = append(brief.Sections, &sec)
	}
	return &brief, rows.Err()
}

// UpdateSectionReview transitions a section's review state. Only approved and
// flagged are valid targets; the pipeline itself never calls this.
func (s *SQLiteStorage) UpdateSectionReview(ctx context.Context, sectionID string, status models.ReviewStatus, flagNote string) error {
	if status != models.ReviewApproved && status != models.ReviewFlagged {
		return fmt.Errorf("invalid review status: %s", status)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE brief_sections SET review_status = ?, flag_note = ? WHERE id = ?`,
		string(status), flagNote, sectionID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("section not found: %s", sectionID)
	}
	return nil
}

// IncrementRegeneration bumps a section's regeneration count.
func (s *SQLiteStorage) IncrementRegeneration(ctx context.Context, sectionID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE brief_sections SET regeneration_count = regeneration_count + 1 WHERE id = ?`, sectionID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("section not found: %s", sectionID)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
