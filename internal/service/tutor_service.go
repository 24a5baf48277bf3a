package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tutor-api/internal/domain"
	"tutor-api/internal/generation"
	"tutor-api/internal/platform/logger"
)

// TutorService provides the question-answering and quiz-generation
// operations backed by the configured language model.
type TutorService interface {
	// Explain answers a student's question according to their preference
	// set. When the model provider is unreachable it returns the static
	// fallback message instead of an error; the request still succeeds.
	// Returns a validation error before any external call when the
	// preference set is incomplete or the question is blank.
	Explain(ctx context.Context, prefs domain.PreferenceSet, question string) (string, error)

	// GenerateQuiz produces numQuestions multiple-choice questions for the
	// preference set. Provider failures are returned as errors wrapping
	// generation.ErrTransientFailure or generation.ErrGenerationFailed; an
	// unparseable reply wraps generation.ErrInvalidResponse so the caller
	// can substitute default content.
	GenerateQuiz(ctx context.Context, prefs domain.PreferenceSet, numQuestions int) ([]domain.QuizQuestion, error)
}

// tutorServiceImpl implements the TutorService interface.
type tutorServiceImpl struct {
	generator   generation.Generator
	temperature float32
	logger      *slog.Logger
}

// NewTutorService creates a TutorService backed by the given generator.
func NewTutorService(generator generation.Generator, temperature float32, log *slog.Logger) TutorService {
	if generator == nil {
		panic("generator cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &tutorServiceImpl{
		generator:   generator,
		temperature: temperature,
		logger:      log.With(slog.String("component", "tutor_service")),
	}
}

// Explain implements TutorService.Explain.
func (s *tutorServiceImpl) Explain(ctx context.Context, prefs domain.PreferenceSet, question string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	prompt, err := generation.ExplanationPrompt(prefs, question)
	if err != nil {
		return "", err
	}

	reply, err := s.generator.Generate(ctx, generation.Request{
		System:      generation.ExplanationSystem,
		Prompt:      prompt,
		Temperature: s.temperature,
	})
	if err != nil {
		// The student still gets an answer; the provider outage is logged
		// and a static message returned in place of the explanation.
		log.Warn("explanation generation failed, returning fallback",
			slog.String("error", err.Error()),
			slog.String("subject", prefs.Subject))
		return generation.FallbackMessage, nil
	}

	log.Info("explanation generated",
		slog.String("subject", prefs.Subject),
		slog.String("level", prefs.Level),
		slog.Int("reply_length", len(reply)))
	return reply, nil
}

// GenerateQuiz implements TutorService.GenerateQuiz.
func (s *tutorServiceImpl) GenerateQuiz(ctx context.Context, prefs domain.PreferenceSet, numQuestions int) ([]domain.QuizQuestion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	prompt, err := generation.QuizPrompt(prefs, numQuestions)
	if err != nil {
		return nil, err
	}

	reply, err := s.generator.Generate(ctx, generation.Request{
		System:      generation.QuizSystem,
		Prompt:      prompt,
		Temperature: s.temperature,
	})
	if err != nil {
		log.Error("quiz generation failed",
			slog.String("error", err.Error()),
			slog.String("subject", prefs.Subject))
		return nil, fmt.Errorf("generating quiz: %w", err)
	}

	questions, err := generation.ParseQuiz(reply)
	if err != nil {
		log.Warn("quiz reply could not be parsed",
			slog.String("error", err.Error()),
			slog.Int("reply_length", len(reply)))
		if errors.Is(err, generation.ErrInvalidResponse) {
			return nil, fmt.Errorf("parsing quiz reply: %w", err)
		}
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	log.Info("quiz generated",
		slog.String("subject", prefs.Subject),
		slog.Int("requested", numQuestions),
		slog.Int("returned", len(questions)))
	return questions, nil
}
