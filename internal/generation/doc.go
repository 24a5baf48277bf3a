// Package generation defines the boundary between the application core and
// external LLM providers, following the hexagonal architecture pattern. It
// holds the Generator interface, the prompt builders that turn a preference
// set into model instructions, and the parsers that reshape free-text model
// replies into structured quiz and flashcard content.
package generation
