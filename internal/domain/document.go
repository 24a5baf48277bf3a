package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// DocumentStatus represents the processing state of an uploaded document.
type DocumentStatus string

// Possible document status values
const (
	DocumentStatusProcessing          DocumentStatus = "processing"
	DocumentStatusCompleted           DocumentStatus = "completed"
	DocumentStatusCompletedWithErrors DocumentStatus = "completed_with_errors"
	DocumentStatusFailed              DocumentStatus = "failed"
)

// Common validation errors for Document
var (
	ErrDocumentIDEmpty       = errors.New("document ID cannot be empty")
	ErrDocumentUserIDEmpty   = errors.New("document user ID cannot be empty")
	ErrDocumentFilenameEmpty = errors.New("document filename cannot be empty")
	ErrDocumentContentEmpty  = errors.New("document content cannot be empty")
	ErrDocumentStatusInvalid = errors.New("invalid document status")
)

// Document represents an uploaded PDF after text extraction. It keeps the
// extracted content and the model-generated summary so follow-up chat
// requests can be grounded without re-uploading the file.
type Document struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Filename  string         `json:"filename"`
	Content   string         `json:"content"`
	Summary   string         `json:"summary"`
	PageCount int            `json:"page_count"`
	Status    DocumentStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewDocument creates a Document from extracted PDF text. The summary is
// filled in later once the model reply arrives; status starts as processing.
func NewDocument(userID uuid.UUID, filename, content string, pageCount int) (*Document, error) {
	doc := &Document{
		ID:        uuid.New(),
		UserID:    userID,
		Filename:  filename,
		Content:   content,
		PageCount: pageCount,
		Status:    DocumentStatusProcessing,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return doc, nil
}

// Validate checks if the Document has valid data.
func (d *Document) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDocumentIDEmpty
	}
	if d.UserID == uuid.Nil {
		return ErrDocumentUserIDEmpty
	}
	if d.Filename == "" {
		return ErrDocumentFilenameEmpty
	}
	if d.Content == "" {
		return ErrDocumentContentEmpty
	}
	if !isValidDocumentStatus(d.Status) {
		return ErrDocumentStatusInvalid
	}
	return nil
}

// UpdateStatus sets a new status and refreshes the UpdatedAt timestamp.
func (d *Document) UpdateStatus(status DocumentStatus) error {
	if !isValidDocumentStatus(status) {
		return ErrDocumentStatusInvalid
	}
	d.Status = status
	d.UpdatedAt = time.Now().UTC()
	return nil
}

func isValidDocumentStatus(status DocumentStatus) bool {
	switch status {
	case DocumentStatusProcessing, DocumentStatusCompleted,
		DocumentStatusCompletedWithErrors, DocumentStatusFailed:
		return true
	default:
		return false
	}
}
