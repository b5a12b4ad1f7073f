package llm

import (
	"errors"
	"fmt"
)

// Completion errors
var (
	// ErrContextOverflow indicates the prompt exceeded the provider's
	// context window.
	ErrContextOverflow = errors.New("provider context window exceeded")

	// ErrEmptyCompletion indicates the provider returned no usable text.
	ErrEmptyCompletion = errors.New("provider returned an empty completion")
)

// APIError is an error response from a completion provider.
type APIError struct {
	// Provider is the client name (e.g., "anthropic", "local").
	Provider string

	// StatusCode is the HTTP status returned.
	StatusCode int

	// RequestID identifies the request for debugging.
	RequestID string

	// Message is the error message from the provider.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s API error (%d) [%s]: %s",
			e.Provider, e.StatusCode, e.RequestID, e.Message)
	}
	return fmt.Sprintf("%s API error (%d): %s", e.Provider, e.StatusCode, e.Message)
}

// Unwrap surfaces overflow-class failures as ErrContextOverflow so that
// wrapped provider errors still satisfy the overflow predicate.
func (e *APIError) Unwrap() error {
	if matchesOverflow(e.Message) {
		return ErrContextOverflow
	}
	return nil
}
