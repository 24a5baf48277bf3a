package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"tutor-api/internal/domain"
	"tutor-api/internal/generation"
	"tutor-api/internal/service"
	"tutor-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty subject", domain.ErrEmptySubject, http.StatusBadRequest},
		{"empty level", domain.ErrEmptyLevel, http.StatusBadRequest},
		{"empty learning style", domain.ErrEmptyLearningStyle, http.StatusBadRequest},
		{"empty language", domain.ErrEmptyLanguage, http.StatusBadRequest},
		{"wrapped preference error", fmt.Errorf("building prompt: %w", domain.ErrEmptySubject), http.StatusBadRequest},
		{"invalid quiz question", domain.ErrQuizOptionCount, http.StatusBadRequest},
		{"empty prompt", generation.ErrEmptyPrompt, http.StatusBadRequest},
		{"invalid rating", service.ErrInvalidRating, http.StatusBadRequest},
		{"document not found", service.ErrDocumentNotFound, http.StatusNotFound},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"transient provider failure", generation.ErrTransientFailure, http.StatusBadGateway},
		{"unknown error", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("preference errors get a field-safe message", func(t *testing.T) {
		t.Parallel()
		for _, err := range []error{
			domain.ErrEmptySubject,
			domain.ErrEmptyLevel,
			domain.ErrEmptyLearningStyle,
			domain.ErrEmptyLanguage,
		} {
			assert.Equal(t, "Preference fields cannot be empty or whitespace", GetSafeErrorMessage(err))
		}
	})

	t.Run("unknown errors stay generic", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(fmt.Errorf("pq: relation missing")))
	})
}
