package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"tutor-api/internal/api/shared"
	"tutor-api/internal/domain"
	"tutor-api/internal/service"
)

// DocumentHandler handles the document upload, retrieval, and discussion
// endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
	maxFileSize     int64
	validator       *validator.Validate
}

// NewDocumentHandler creates a new DocumentHandler. maxFileSizeMB bounds the
// accepted upload size.
func NewDocumentHandler(documentService service.DocumentService, maxFileSizeMB int) *DocumentHandler {
	if maxFileSizeMB <= 0 {
		maxFileSizeMB = 20
	}
	return &DocumentHandler{
		documentService: documentService,
		maxFileSize:     int64(maxFileSizeMB) << 20,
		validator:       validator.New(),
	}
}

// Upload handles POST /documents. The PDF arrives as the "file" part of a
// multipart form; processing is synchronous and the response carries the
// stored document with its generated flashcards.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		if errors.As(err, new(*http.MaxBytesError)) {
			shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing file upload")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("failed to read uploaded file", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	doc, cards, err := h.documentService.ProcessUpload(r.Context(), userID, header.Filename, data)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, DocumentDetailResponse{
		Document:   documentToResponse(doc),
		Flashcards: cardsToResponse(cards),
	})
}

// List handles GET /documents with optional limit and offset query
// parameters.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	limit := parseQueryInt(r, "limit", 20)
	offset := parseQueryInt(r, "offset", 0)

	docs, err := h.documentService.ListDocuments(r.Context(), userID, limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, documentToResponse(doc))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// Get handles GET /documents/{id}.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, documentID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	doc, cards, err := h.documentService.GetDocument(r.Context(), userID, documentID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DocumentDetailResponse{
		Document:   documentToResponse(doc),
		Flashcards: cardsToResponse(cards),
	})
}

// Delete handles DELETE /documents/{id}.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, documentID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(r.Context(), userID, documentID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Discuss handles POST /documents/{id}/discuss. Answers are grounded in the
// stored document content; provider outages still produce a 200 with the
// fallback text.
func (h *DocumentHandler) Discuss(w http.ResponseWriter, r *http.Request) {
	userID, documentID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req DiscussRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	reply, err := h.documentService.Discuss(r.Context(), userID, documentID, req.Question)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TutorResponse{Response: reply})
}

// parseQueryInt reads a non-negative integer query parameter, falling back
// to def when absent or malformed.
func parseQueryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
