package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"tutor-api/internal/api/shared"
	"tutor-api/internal/domain"
	"tutor-api/internal/service"
)

// CardHandler handles the flashcard review endpoints.
type CardHandler struct {
	reviewService service.ReviewService
	validator     *validator.Validate
}

// NewCardHandler creates a new CardHandler with the given dependencies.
func NewCardHandler(reviewService service.ReviewService) *CardHandler {
	return &CardHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

// NextCard handles GET /cards/next, returning the user's earliest due card.
// Responds 204 when nothing is due.
func (h *CardHandler) NextCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	card, err := h.reviewService.NextCard(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrCardNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// SubmitReview handles POST /cards/{id}/review, recording the rating and
// returning the rescheduled card.
func (h *CardHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req ReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	card, err := h.reviewService.SubmitReview(r.Context(), userID, cardID, req.Rating)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}
