package api

import (
	"time"

	"github.com/google/uuid"

	"tutor-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TutorRequest defines the payload for the tutoring endpoint. The preference
// fields select how the explanation is written; background is optional.
type TutorRequest struct {
	Subject       string `json:"subject"        validate:"required"`
	Level         string `json:"level"          validate:"required"`
	LearningStyle string `json:"learning_style" validate:"required"`
	Language      string `json:"language"       validate:"required"`
	Background    string `json:"background"`
	Question      string `json:"question"       validate:"required"`
}

// Preferences maps the request fields onto a domain preference set.
func (r TutorRequest) Preferences() domain.PreferenceSet {
	return domain.PreferenceSet{
		Subject:       r.Subject,
		Level:         r.Level,
		LearningStyle: r.LearningStyle,
		Language:      r.Language,
		Background:    r.Background,
	}
}

// TutorResponse defines the response for the tutoring and discussion
// endpoints.
type TutorResponse struct {
	Response string `json:"response"`
}

// QuizRequest defines the payload for the quiz generation endpoint.
type QuizRequest struct {
	Subject      string `json:"subject"       validate:"required"`
	Level        string `json:"level"         validate:"required"`
	Language     string `json:"language"`
	NumQuestions int    `json:"num_questions" validate:"required,min=1,max=10"`
}

// Preferences maps the quiz request fields onto a domain preference set.
// Quiz prompts only use the subject, level, and language.
func (r QuizRequest) Preferences() domain.PreferenceSet {
	return domain.PreferenceSet{
		Subject:  r.Subject,
		Level:    r.Level,
		Language: r.Language,
	}
}

// QuizQuestionResponse is one multiple-choice question in a quiz response.
type QuizQuestionResponse struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// QuizResponse defines the response for the quiz generation endpoint.
// Message is set instead of questions when the model reply could not be
// reshaped into a quiz.
type QuizResponse struct {
	Quiz    []QuizQuestionResponse `json:"quiz"`
	Message string                 `json:"message,omitempty"`
}

// DocumentResponse is the client view of an uploaded document. The extracted
// content is omitted; clients work with the summary and flashcards.
type DocumentResponse struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Summary   string    `json:"summary,omitempty"`
	PageCount int       `json:"page_count"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// FlashcardResponse is the client view of one generated flashcard.
type FlashcardResponse struct {
	ID         uuid.UUID `json:"id"`
	DocumentID uuid.UUID `json:"document_id"`
	Topic      string    `json:"topic,omitempty"`
	Front      string    `json:"front"`
	Back       string    `json:"back"`
	Due        time.Time `json:"due,omitempty"`
	Reps       int       `json:"reps"`
	Lapses     int       `json:"lapses"`
}

// DocumentDetailResponse combines a document with its flashcards.
type DocumentDetailResponse struct {
	Document   DocumentResponse    `json:"document"`
	Flashcards []FlashcardResponse `json:"flashcards"`
}

// DiscussRequest defines the payload for the document discussion endpoint.
type DiscussRequest struct {
	Question string `json:"question" validate:"required"`
}

// ReviewRequest defines the payload for the card review endpoint.
// Rating follows the FSRS scale: 1=Again, 2=Hard, 3=Good, 4=Easy.
type ReviewRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=4"`
}

func documentToResponse(doc *domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:        doc.ID,
		Filename:  doc.Filename,
		Summary:   doc.Summary,
		PageCount: doc.PageCount,
		Status:    string(doc.Status),
		CreatedAt: doc.CreatedAt,
	}
}

func cardToResponse(card *domain.Card) FlashcardResponse {
	return FlashcardResponse{
		ID:         card.ID,
		DocumentID: card.DocumentID,
		Topic:      card.Topic,
		Front:      card.Front,
		Back:       card.Back,
		Due:        card.Due,
		Reps:       card.Reps,
		Lapses:     card.Lapses,
	}
}

func cardsToResponse(cards []*domain.Card) []FlashcardResponse {
	out := make([]FlashcardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, cardToResponse(card))
	}
	return out
}

func quizToResponse(questions []domain.QuizQuestion) []QuizQuestionResponse {
	out := make([]QuizQuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, QuizQuestionResponse{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	return out
}
