package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"tutor-api/internal/api/shared"
	"tutor-api/internal/generation"
	"tutor-api/internal/service"
)

// TutorHandler handles the question-answering and quiz endpoints.
type TutorHandler struct {
	tutorService service.TutorService
	validator    *validator.Validate
}

// NewTutorHandler creates a new TutorHandler with the given dependencies.
func NewTutorHandler(tutorService service.TutorService) *TutorHandler {
	return &TutorHandler{
		tutorService: tutorService,
		validator:    validator.New(),
	}
}

// Explain handles POST /tutor. The preference fields and the question are
// required; provider outages still produce a 200 with the fallback text.
func (h *TutorHandler) Explain(w http.ResponseWriter, r *http.Request) {
	var req TutorRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	reply, err := h.tutorService.Explain(r.Context(), req.Preferences(), req.Question)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TutorResponse{Response: reply})
}

// GenerateQuiz handles POST /quiz. A reply the parser cannot reshape into
// questions is not an error for the client: the response carries an empty
// quiz and an explanatory message instead.
func (h *TutorHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	questions, err := h.tutorService.GenerateQuiz(r.Context(), req.Preferences(), req.NumQuestions)
	if err != nil {
		if errors.Is(err, generation.ErrInvalidResponse) {
			shared.RespondWithJSON(w, r, http.StatusOK, QuizResponse{
				Quiz:    []QuizQuestionResponse{},
				Message: generation.FallbackParseMessage,
			})
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QuizResponse{Quiz: quizToResponse(questions)})
}
