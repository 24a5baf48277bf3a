package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"tutor-api/internal/config"
	"tutor-api/internal/generation"
	"tutor-api/internal/platform/gemini"
	"tutor-api/internal/platform/openaigen"
	"tutor-api/internal/platform/postgres"
	"tutor-api/internal/service"
	"tutor-api/internal/service/auth"
	"tutor-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore     store.UserStore
	documentStore store.DocumentStore
	cardStore     store.CardStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	generator        generation.Generator
	tutorService     service.TutorService
	documentService  service.DocumentService
	reviewService    service.ReviewService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost, logger)
	app.documentStore = postgres.NewPostgresDocumentStore(db, logger)
	app.cardStore = postgres.NewPostgresCardStore(db, logger)

	provider, err := newGenerator(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	app.generator = timeoutGenerator{
		inner:   provider,
		timeout: time.Duration(cfg.LLM.RequestTimeoutSeconds) * time.Second,
	}
	logger.Info("LLM generator initialized",
		"provider", cfg.LLM.Provider,
		"request_timeout_seconds", cfg.LLM.RequestTimeoutSeconds)

	app.tutorService = service.NewTutorService(app.generator, cfg.LLM.Temperature, logger)
	app.documentService = service.NewDocumentService(
		db,
		app.documentStore,
		app.cardStore,
		app.generator,
		cfg.LLM.Temperature,
		logger,
	)
	app.reviewService = service.NewReviewService(db, app.cardStore, logger)

	logger.Info("application initialized successfully")
	return app, nil
}

// timeoutGenerator bounds each provider call, including any retries inside
// it, with the configured request timeout.
type timeoutGenerator struct {
	inner   generation.Generator
	timeout time.Duration
}

func (g timeoutGenerator) Generate(ctx context.Context, req generation.Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.inner.Generate(ctx, req)
}

// newGenerator builds the language model client selected by the configured
// provider.
func newGenerator(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Generator, error) {
	switch cfg.Provider {
	case "gemini":
		return gemini.NewGenerator(ctx, logger.With("component", "llm_generator"), cfg)
	case "openai":
		return openaigen.NewGenerator(logger.With("component", "llm_generator"), cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
