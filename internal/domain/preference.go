package domain

import (
	"fmt"
	"strings"
)

// Common validation errors for PreferenceSet. Each wraps ErrValidation so the
// API layer classifies them as bad requests.
var (
	ErrEmptySubject       = fmt.Errorf("%w: subject cannot be empty", ErrValidation)
	ErrEmptyLevel         = fmt.Errorf("%w: level cannot be empty", ErrValidation)
	ErrEmptyLearningStyle = fmt.Errorf("%w: learning style cannot be empty", ErrValidation)
	ErrEmptyLanguage      = fmt.Errorf("%w: language cannot be empty", ErrValidation)
)

// PreferenceSet is the tuple of learning preferences a user selects for one
// request. It carries no identity and no lifecycle beyond a single request.
type PreferenceSet struct {
	Subject       string `json:"subject"`
	Level         string `json:"level"`
	LearningStyle string `json:"learning_style"`
	Language      string `json:"language"`

	// Background describes prior knowledge ("Beginner", "Some Knowledge",
	// "Experienced"). Optional; quiz generation does not use it.
	Background string `json:"background,omitempty"`
}

// Validate checks that every required preference field is present.
// Whitespace-only values count as empty.
func (p PreferenceSet) Validate() error {
	if strings.TrimSpace(p.Subject) == "" {
		return ErrEmptySubject
	}
	if strings.TrimSpace(p.Level) == "" {
		return ErrEmptyLevel
	}
	if strings.TrimSpace(p.LearningStyle) == "" {
		return ErrEmptyLearningStyle
	}
	if strings.TrimSpace(p.Language) == "" {
		return ErrEmptyLanguage
	}
	return nil
}

// ValidateForQuiz checks only the fields quiz generation depends on.
func (p PreferenceSet) ValidateForQuiz() error {
	if strings.TrimSpace(p.Subject) == "" {
		return ErrEmptySubject
	}
	if strings.TrimSpace(p.Level) == "" {
		return ErrEmptyLevel
	}
	return nil
}
