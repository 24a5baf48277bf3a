package generation

import "errors"

// Common errors returned by the generation package and its providers
var (
	// ErrGenerationFailed is returned when content generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate content")

	// ErrInvalidResponse is returned when the model reply cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the provider blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error during content generation")

	// ErrInvalidConfig is returned when the provider configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrEmptyPrompt is returned when a prompt is built from empty input
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)

// Fallback content returned to clients when the provider fails or the reply
// cannot be reshaped. Failures are terminal for the request; nothing is
// queued for later.
const (
	// FallbackMessage replaces explanation and chat answers when the
	// provider is unreachable or times out.
	FallbackMessage = "The tutor is temporarily unavailable. Please try again in a moment."

	// FallbackParseMessage replaces content the model produced but this
	// service could not reshape into the requested structure.
	FallbackParseMessage = "Could not generate a response for this request. Please try rephrasing your question."
)
