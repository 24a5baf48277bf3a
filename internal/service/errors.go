// Package service provides application-level services for tutoring,
// documents, and review scheduling.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrDocumentNotFound indicates that the document does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrCardNotFound indicates that the card does not exist, or that no card
	// is currently due for review.
	// API layer should map this to HTTP 404 Not Found.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidRating indicates a review rating outside the accepted range.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidRating = errors.New("invalid review rating")
)
