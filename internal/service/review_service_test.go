package service

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	fsrs "github.com/open-spaced-repetition/go-fsrs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutor-api/internal/domain"
	"tutor-api/internal/store"
)

// mockCardStore serves a fixed set of cards from memory.
type mockCardStore struct {
	cards map[uuid.UUID]*domain.Card
}

func newMockCardStore(cards ...*domain.Card) *mockCardStore {
	m := &mockCardStore{cards: make(map[uuid.UUID]*domain.Card)}
	for _, c := range cards {
		m.cards[c.ID] = c
	}
	return m
}

func (m *mockCardStore) CreateMany(ctx context.Context, cards []*domain.Card) error {
	for _, c := range cards {
		m.cards[c.ID] = c
	}
	return nil
}

func (m *mockCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	card, ok := m.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	return card, nil
}

func (m *mockCardStore) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*domain.Card, error) {
	var out []*domain.Card
	for _, c := range m.cards {
		if c.DocumentID == documentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCardStore) NextDue(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.Card, error) {
	var next *domain.Card
	for _, c := range m.cards {
		if c.UserID != userID || c.Due.After(now) {
			continue
		}
		if next == nil || c.Due.Before(next.Due) {
			next = c
		}
	}
	if next == nil {
		return nil, store.ErrCardNotFound
	}
	return next, nil
}

func (m *mockCardStore) UpdateScheduling(ctx context.Context, card *domain.Card) error {
	if _, ok := m.cards[card.ID]; !ok {
		return store.ErrCardNotFound
	}
	m.cards[card.ID] = card
	return nil
}

func (m *mockCardStore) RecordReview(ctx context.Context, log *domain.ReviewLog) error {
	return nil
}

func (m *mockCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return m
}

var _ store.CardStore = (*mockCardStore)(nil)

func newTestReviewService(cards store.CardStore, now time.Time) *reviewServiceImpl {
	return &reviewServiceImpl{
		cards:    cards,
		params:   fsrs.DefaultParam(),
		timeFunc: func() time.Time { return now },
		logger:   slog.Default(),
	}
}

func TestReviewServiceNextCard(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Now().UTC()

	t.Run("returns the earliest due card", func(t *testing.T) {
		t.Parallel()

		early, err := domain.NewCard(userID, uuid.New(), "", "Early front", "Early back")
		require.NoError(t, err)
		early.Due = now.Add(-2 * time.Hour)

		late, err := domain.NewCard(userID, uuid.New(), "", "Late front", "Late back")
		require.NoError(t, err)
		late.Due = now.Add(-1 * time.Hour)

		svc := newTestReviewService(newMockCardStore(early, late), now)
		card, err := svc.NextCard(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, early.ID, card.ID)
	})

	t.Run("maps an empty queue to ErrCardNotFound", func(t *testing.T) {
		t.Parallel()

		svc := newTestReviewService(newMockCardStore(), now)
		_, err := svc.NextCard(context.Background(), userID)
		assert.ErrorIs(t, err, ErrCardNotFound)
	})
}

func TestReviewServiceSubmitReviewValidation(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Now().UTC()

	t.Run("rejects an out-of-range rating before touching the store", func(t *testing.T) {
		t.Parallel()

		svc := newTestReviewService(newMockCardStore(), now)
		_, err := svc.SubmitReview(context.Background(), userID, uuid.New(), 5)
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("unknown card yields ErrCardNotFound", func(t *testing.T) {
		t.Parallel()

		svc := newTestReviewService(newMockCardStore(), now)
		_, err := svc.SubmitReview(context.Background(), userID, uuid.New(), 3)
		assert.ErrorIs(t, err, ErrCardNotFound)
	})

	t.Run("another user's card yields ErrNotOwned", func(t *testing.T) {
		t.Parallel()

		card, err := domain.NewCard(uuid.New(), uuid.New(), "", "Front", "Back")
		require.NoError(t, err)

		svc := newTestReviewService(newMockCardStore(card), now)
		_, err = svc.SubmitReview(context.Background(), userID, card.ID, 3)
		assert.ErrorIs(t, err, ErrNotOwned)
	})
}

func TestToFSRSRating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rating int
		want   fsrs.Rating
		ok     bool
	}{
		{1, fsrs.Again, true},
		{2, fsrs.Hard, true},
		{3, fsrs.Good, true},
		{4, fsrs.Easy, true},
		{0, 0, false},
		{5, 0, false},
	}

	for _, tc := range tests {
		got, err := toFSRSRating(tc.rating)
		if tc.ok {
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		} else {
			assert.ErrorIs(t, err, ErrInvalidRating)
		}
	}
}
