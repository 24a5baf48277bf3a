package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	fsrs "github.com/open-spaced-repetition/go-fsrs"
)

// Common validation errors for Card
var (
	ErrCardIDEmpty     = errors.New("card ID cannot be empty")
	ErrCardUserIDEmpty = errors.New("card user ID cannot be empty")
	ErrCardFrontEmpty  = errors.New("card front cannot be empty")
	ErrCardBackEmpty   = errors.New("card back cannot be empty")
)

// Card is a flashcard generated from an uploaded document, together with its
// FSRS scheduling state. A freshly generated card has never been reviewed:
// Due is zero and State is fsrs.New.
type Card struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	DocumentID uuid.UUID `json:"document_id"`
	Topic      string    `json:"topic"`
	Front      string    `json:"front"`
	Back       string    `json:"back"`

	// FSRS scheduling state
	Due           time.Time `json:"due,omitempty"`
	Stability     float64   `json:"-"`
	Difficulty    float64   `json:"-"`
	ElapsedDays   int       `json:"-"`
	ScheduledDays int       `json:"-"`
	Reps          int       `json:"reps"`
	Lapses        int       `json:"lapses"`
	State         int       `json:"-"`
	LastReview    time.Time `json:"last_review,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCard creates a flashcard owned by the given user, sourced from the given
// document. Returns an error if validation fails.
func NewCard(userID, documentID uuid.UUID, topic, front, back string) (*Card, error) {
	card := &Card{
		ID:         uuid.New(),
		UserID:     userID,
		DocumentID: documentID,
		Topic:      topic,
		Front:      front,
		Back:       back,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}
	if c.UserID == uuid.Nil {
		return ErrCardUserIDEmpty
	}
	if c.Front == "" {
		return ErrCardFrontEmpty
	}
	if c.Back == "" {
		return ErrCardBackEmpty
	}
	return nil
}

// ToFSRSCard maps the card's scheduling fields onto an fsrs.Card for the
// scheduler.
func (c *Card) ToFSRSCard() fsrs.Card {
	card := fsrs.Card{
		Due:           c.Due,
		Stability:     c.Stability,
		Difficulty:    c.Difficulty,
		ElapsedDays:   uint64(maxInt(c.ElapsedDays, 0)),
		ScheduledDays: uint64(maxInt(c.ScheduledDays, 0)),
		Reps:          uint64(maxInt(c.Reps, 0)),
		Lapses:        uint64(maxInt(c.Lapses, 0)),
		State:         fsrs.State(maxInt(c.State, 0)),
		LastReview:    c.LastReview,
	}
	return card
}

// ApplyFSRSCard writes the scheduler's output back onto the card.
func (c *Card) ApplyFSRSCard(f fsrs.Card) {
	c.Due = f.Due
	c.Stability = f.Stability
	c.Difficulty = f.Difficulty
	c.ElapsedDays = int(f.ElapsedDays)
	c.ScheduledDays = int(f.ScheduledDays)
	c.Reps = int(f.Reps)
	c.Lapses = int(f.Lapses)
	c.State = int(f.State)
	c.LastReview = f.LastReview
	c.UpdatedAt = time.Now().UTC()
}

// ReviewLog records one review of a card and the schedule it produced.
type ReviewLog struct {
	ID            uuid.UUID `json:"id"`
	CardID        uuid.UUID `json:"card_id"`
	Rating        int       `json:"rating"`
	ScheduledDays int       `json:"scheduled_days"`
	ElapsedDays   int       `json:"elapsed_days"`
	State         int       `json:"state"`
	ReviewedAt    time.Time `json:"reviewed_at"`
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
