package domain

import "fmt"

// Common validation errors for QuizQuestion. Each wraps ErrValidation so the
// API layer classifies them as bad requests.
var (
	ErrEmptyQuizQuestion   = fmt.Errorf("%w: quiz question cannot be empty", ErrValidation)
	ErrQuizOptionCount     = fmt.Errorf("%w: quiz question must have exactly four options", ErrValidation)
	ErrEmptyQuizOption     = fmt.Errorf("%w: quiz option cannot be empty", ErrValidation)
	ErrQuizAnswerNotOption = fmt.Errorf("%w: correct answer must be one of the options", ErrValidation)
)

// QuizOptionCount is the number of choices every quiz question carries.
const QuizOptionCount = 4

// QuizQuestion is a single multiple-choice item reshaped from the model's
// free-text reply.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Validate checks structural invariants: a non-empty question, exactly four
// non-empty options, and a correct answer that matches one of the options.
func (q QuizQuestion) Validate() error {
	if q.Question == "" {
		return ErrEmptyQuizQuestion
	}
	if len(q.Options) != QuizOptionCount {
		return ErrQuizOptionCount
	}
	for _, opt := range q.Options {
		if opt == "" {
			return ErrEmptyQuizOption
		}
	}
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return nil
		}
	}
	return ErrQuizAnswerNotOption
}
