package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"tutor-api/internal/domain"
)

// CardStore defines the interface for flashcard data persistence, including
// the review scheduling state each card carries.
type CardStore interface {
	// CreateMany saves a batch of cards in one operation. All cards must
	// belong to the same user and document. Returns ErrInvalidEntity
	// wrapping the first validation error encountered.
	CreateMany(ctx context.Context, cards []*domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// ListByDocument retrieves all cards generated from one document,
	// ordered by creation time.
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*domain.Card, error)

	// NextDue retrieves the user's card with the earliest due time at or
	// before now. Returns ErrCardNotFound when nothing is due.
	NextDue(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.Card, error)

	// UpdateScheduling persists a card's review scheduling state after a
	// review. Returns ErrCardNotFound if the card does not exist.
	UpdateScheduling(ctx context.Context, card *domain.Card) error

	// RecordReview appends one review log entry.
	RecordReview(ctx context.Context, log *domain.ReviewLog) error

	// WithTx returns a new CardStore instance that uses the provided
	// transaction, allowing multiple operations to execute atomically.
	WithTx(tx *sql.Tx) CardStore
}
