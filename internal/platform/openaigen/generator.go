// Package openaigen implements the generation.Generator interface using the
// OpenAI chat completions API (or any API-compatible endpoint via the base
// URL override).
package openaigen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"tutor-api/internal/config"
	"tutor-api/internal/generation"
)

// Generator implements generation.Generator against the OpenAI API.
type Generator struct {
	logger *slog.Logger
	client *openai.Client
	model  string
}

// Ensure Generator implements generation.Generator interface
var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates an OpenAI-backed generator from the LLM configuration.
// Returns generation.ErrInvalidConfig if required settings are missing.
func NewGenerator(log *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.OpenAIModel == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}

	return &Generator{
		logger: log.With(slog.String("component", "openai_generator")),
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.OpenAIModel,
	}, nil
}

// Generate implements generation.Generator.
// Failures are classified with the generation package sentinels: API and
// transport errors map to ErrTransientFailure, content-filter refusals to
// ErrContentBlocked, and empty replies to ErrInvalidResponse.
func (g *Generator) Generate(ctx context.Context, req generation.Request) (string, error) {
	if req.Prompt == "" {
		return "", generation.ErrEmptyPrompt
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	g.logger.DebugContext(ctx, "making OpenAI API call",
		"model", g.model,
		"prompt_length", len(req.Prompt))

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: req.Temperature,
	})
	if err != nil {
		g.logger.ErrorContext(ctx, "OpenAI API call failed", "error", err)

		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			// 4xx errors other than rate limiting will not succeed on retry.
			if apiErr.HTTPStatusCode >= 400 && apiErr.HTTPStatusCode < 500 && apiErr.HTTPStatusCode != 429 {
				return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
			}
		}
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", generation.ErrInvalidResponse)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return "", fmt.Errorf("%w: content filtered", generation.ErrContentBlocked)
	}

	text := strings.TrimSpace(choice.Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	g.logger.DebugContext(ctx, "OpenAI API call successful",
		"reply_length", len(text),
		"finish_reason", string(choice.FinishReason))
	return text, nil
}
