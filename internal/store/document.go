package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"tutor-api/internal/domain"
)

// DocumentStore defines the interface for document data persistence.
type DocumentStore interface {
	// Create saves a new document to the store.
	// Returns ErrInvalidEntity wrapping the validation error if the document
	// fails domain validation.
	Create(ctx context.Context, doc *domain.Document) error

	// GetByID retrieves a document by its unique ID.
	// Returns ErrDocumentNotFound if the document does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)

	// ListByUser retrieves the user's documents ordered by creation time,
	// newest first. Content is included; callers that only need metadata
	// should project what they need.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Document, error)

	// UpdateStatus transitions a document's processing status.
	// Returns ErrDocumentNotFound if the document does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus) error

	// UpdateSummary stores the generated summary for a document.
	// Returns ErrDocumentNotFound if the document does not exist.
	UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error

	// Delete removes a document and, through foreign keys, its cards.
	// Returns ErrDocumentNotFound if the document does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new DocumentStore instance that uses the provided
	// transaction, allowing multiple operations to execute atomically.
	WithTx(tx *sql.Tx) DocumentStore
}
