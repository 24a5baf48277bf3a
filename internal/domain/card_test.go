package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	fsrs "github.com/open-spaced-repetition/go-fsrs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	docID := uuid.New()

	t.Run("creates a card with fresh scheduling state", func(t *testing.T) {
		t.Parallel()

		card, err := NewCard(userID, docID, "Cells", "What is the basic unit of life?", "The cell")
		require.NoError(t, err)
		assert.Equal(t, userID, card.UserID)
		assert.Equal(t, docID, card.DocumentID)
		assert.True(t, card.Due.IsZero())
		assert.Zero(t, card.Reps)
		assert.Zero(t, card.State)
	})

	t.Run("topic is optional", func(t *testing.T) {
		t.Parallel()

		_, err := NewCard(userID, docID, "", "Front", "Back")
		assert.NoError(t, err)
	})

	tests := []struct {
		name    string
		front   string
		back    string
		wantErr error
	}{
		{"empty front", "", "Back", ErrCardFrontEmpty},
		{"empty back", "Front", "", ErrCardBackEmpty},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewCard(userID, docID, "", tc.front, tc.back)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCardFSRSRoundTrip(t *testing.T) {
	t.Parallel()

	card, err := NewCard(uuid.New(), uuid.New(), "Topic", "Front", "Back")
	require.NoError(t, err)

	now := time.Now().UTC()
	scheduled := fsrs.Card{
		Due:           now.Add(24 * time.Hour),
		Stability:     3.5,
		Difficulty:    5.2,
		ElapsedDays:   1,
		ScheduledDays: 1,
		Reps:          2,
		Lapses:        1,
		State:         fsrs.Review,
		LastReview:    now,
	}

	card.ApplyFSRSCard(scheduled)

	assert.Equal(t, scheduled.Due, card.Due)
	assert.Equal(t, 2, card.Reps)
	assert.Equal(t, 1, card.Lapses)
	assert.Equal(t, int(fsrs.Review), card.State)

	back := card.ToFSRSCard()
	assert.Equal(t, scheduled, back)
}
