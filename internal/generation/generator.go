package generation

import "context"

// Request carries one prompt to a provider. System sets the model's role;
// Prompt is the user-visible instruction built by this package.
type Request struct {
	System      string
	Prompt      string
	Temperature float32
}

// Generator is the interface external LLM providers implement. It returns
// the model's raw text reply; reshaping that text into structured content is
// the caller's job via the parsers in this package.
type Generator interface {
	// Generate sends the prompt to the provider and returns the reply text.
	// Implementations classify failures with the sentinel errors in this
	// package (ErrTransientFailure, ErrContentBlocked, ErrInvalidResponse).
	Generate(ctx context.Context, req Request) (string, error)
}
