package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/briefpipe/internal/models"
	"github.com/hyperjump/briefpipe/internal/pipeline"
)

// maxUploadBytes bounds multipart uploads (50 MB).
const maxUploadBytes = 50 << 20

// handleUploadDocument accepts a multipart upload ("file" plus a
// "document_type" form value), runs detection and extraction, and stores the
// resulting document. Extraction failures are recorded on the document, not
// returned as HTTP errors.
func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	docType := models.DocumentType(r.FormValue("document_type"))
	if docType == "" {
		docType = models.TypeOther
	}
	doc := s.pipeline.ProcessDocument(r.Context(), pipeline.DocumentInput{
		FileName:     header.Filename,
		DocumentType: docType,
		Content:      content,
	})
	if err := s.storage.SaveDocument(r.Context(), doc); err != nil {
		s.logger.Error("save document failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	docs, err := s.storage.ListDocuments(r.Context(), offset, limit)
	if err != nil {
		s.logger.Error("list documents failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if docs == nil {
		docs = []*models.UploadedDocument{}
	}
	s.respondJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.storage.GetDocument(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "document not found")
		return
	}
	s.respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.storage.GetDocument(r.Context(), id); err != nil {
		s.respondError(w, http.StatusNotFound, "document not found")
		return
	}
	if err := s.storage.DeleteDocument(r.Context(), id); err != nil {
		s.logger.Error("delete document failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}

// createBriefRequest selects the documents to analyze, in the order given.
// Order matters: first-match-wins extraction follows it.
type createBriefRequest struct {
	DocumentIDs []string `json:"document_ids"`
}

func (s *Server) handleCreateBrief(w http.ResponseWriter, r *http.Request) {
	var req createBriefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.DocumentIDs) == 0 {
		s.respondError(w, http.StatusBadRequest, "document_ids cannot be empty")
		return
	}

	docs := make([]*models.UploadedDocument, 0, len(req.DocumentIDs))
	for _, id := range req.DocumentIDs {
		doc, err := s.storage.GetDocument(r.Context(), id)
		if err != nil {
			s.respondError(w, http.StatusNotFound, "document not found: "+id)
			return
		}
		if !doc.Terminal() {
			s.respondError(w, http.StatusConflict, "document still processing: "+id)
			return
		}
		docs = append(docs, doc)
	}

	_, sections := s.pipeline.BuildBrief(r.Context(), docs)
	brief := &models.Brief{
		ID:        uuid.New().String(),
		Sections:  sections,
		CreatedAt: time.Now(),
	}
	if err := s.storage.SaveBrief(r.Context(), brief); err != nil {
		s.logger.Error("save brief failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, brief)
}

func (s *Server) handleGetBrief(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	brief, err := s.storage.GetBrief(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "brief not found")
		return
	}
	s.respondJSON(w, http.StatusOK, brief)
}

// reviewRequest carries the reviewer's decision for one section.
type reviewRequest struct {
	Status   models.ReviewStatus `json:"status"`
	FlagNote string              `json:"flag_note,omitempty"`
}

func (s *Server) handleReviewSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.storage.UpdateSectionReview(r.Context(), id, req.Status, req.FlagNote); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(req.Status)})
}

func (s *Server) handleRegenerateSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.storage.IncrementRegeneration(r.Context(), id); err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"id": id, "status": "regeneration requested"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
