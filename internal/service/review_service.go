package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	fsrs "github.com/open-spaced-repetition/go-fsrs"

	"tutor-api/internal/domain"
	"tutor-api/internal/platform/logger"
	"tutor-api/internal/store"
)

// ReviewService schedules flashcard reviews using the FSRS algorithm.
type ReviewService interface {
	// NextCard returns the user's card with the earliest due time.
	// Returns ErrCardNotFound when nothing is due.
	NextCard(ctx context.Context, userID uuid.UUID) (*domain.Card, error)

	// SubmitReview records a review with the given rating (1=Again, 2=Hard,
	// 3=Good, 4=Easy) and reschedules the card. Returns the updated card.
	SubmitReview(ctx context.Context, userID, cardID uuid.UUID, rating int) (*domain.Card, error)
}

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	db       *sql.DB
	cards    store.CardStore
	params   fsrs.Parameters
	timeFunc func() time.Time // Injectable for testing
	logger   *slog.Logger
}

// NewReviewService creates a ReviewService using the default FSRS parameters.
func NewReviewService(db *sql.DB, cards store.CardStore, log *slog.Logger) ReviewService {
	if db == nil {
		panic("db cannot be nil")
	}
	if cards == nil {
		panic("card store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &reviewServiceImpl{
		db:       db,
		cards:    cards,
		params:   fsrs.DefaultParam(),
		timeFunc: time.Now,
		logger:   log.With(slog.String("component", "review_service")),
	}
}

// NextCard implements ReviewService.NextCard.
func (s *reviewServiceImpl) NextCard(ctx context.Context, userID uuid.UUID) (*domain.Card, error) {
	card, err := s.cards.NextDue(ctx, userID, s.timeFunc().UTC())
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("fetching next due card: %w", err)
	}
	return card, nil
}

// SubmitReview implements ReviewService.SubmitReview.
func (s *reviewServiceImpl) SubmitReview(ctx context.Context, userID, cardID uuid.UUID, rating int) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	fsrsRating, err := toFSRSRating(rating)
	if err != nil {
		return nil, err
	}

	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("fetching card: %w", err)
	}
	if card.UserID != userID {
		return nil, ErrNotOwned
	}

	now := s.timeFunc().UTC()
	scheduling := s.params.Repeat(card.ToFSRSCard(), now)
	info, ok := scheduling[fsrsRating]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRating, rating)
	}
	card.ApplyFSRSCard(info.Card)

	reviewLog := &domain.ReviewLog{
		ID:            uuid.New(),
		CardID:        card.ID,
		Rating:        rating,
		ScheduledDays: int(info.ReviewLog.ScheduledDays),
		ElapsedDays:   int(info.ReviewLog.ElapsedDays),
		State:         int(info.ReviewLog.State),
		ReviewedAt:    now,
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txCards := s.cards.WithTx(tx)
		if err := txCards.UpdateScheduling(ctx, card); err != nil {
			return err
		}
		return txCards.RecordReview(ctx, reviewLog)
	})
	if err != nil {
		log.Error("failed to persist review",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return nil, err
	}

	log.Info("review recorded",
		slog.String("card_id", card.ID.String()),
		slog.Int("rating", rating),
		slog.Time("next_due", card.Due))
	return card, nil
}

// toFSRSRating maps the API's 1-4 rating onto the scheduler's rating type.
func toFSRSRating(rating int) (fsrs.Rating, error) {
	switch rating {
	case 1:
		return fsrs.Again, nil
	case 2:
		return fsrs.Hard, nil
	case 3:
		return fsrs.Good, nil
	case 4:
		return fsrs.Easy, nil
	default:
		return 0, fmt.Errorf("%w: %d (expected 1-4)", ErrInvalidRating, rating)
	}
}
