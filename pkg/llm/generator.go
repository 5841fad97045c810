package llm

import (
	"context"
	"errors"
)

var (
	// ErrMissingAPIKey is returned when the generation backend credential
	// is absent. Fatal configuration error; never retried.
	ErrMissingAPIKey = errors.New("generation API key is missing")

	// ErrGeneration is returned when the completion call fails (rate
	// limit, oversized request, network). Surfaced to the session
	// surface; not retried automatically.
	ErrGeneration = errors.New("generation failed")
)

// Generator is the text generation backend contract: one synchronous
// completion call per request, no retries.
type Generator interface {
	// Complete sends the chat request and returns the generated answer text.
	Complete(ctx context.Context, req *ChatRequest) (string, error)

	// Close releases any resources held by the generator.
	Close() error
}

// ErrorResponse is the JSON error payload shape shared by API handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}
