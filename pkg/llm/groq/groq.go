// Package groq implements pkg/llm's Generator client for Groq's
// OpenAI-compatible chat completions API.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/papercomputeco/stacks/pkg/llm"
)

const (
	// DefaultBaseURL is the Groq OpenAI-compatible API base URL.
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// DefaultModel is the default generation model.
	DefaultModel = "llama-3.1-8b-instant"
)

// Generator wraps Groq's chat completions API.
type Generator struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config holds configuration for the Groq generator.
type Config struct {
	// BaseURL is the API base URL including the version prefix.
	// Defaults to DefaultBaseURL if empty.
	BaseURL string

	// APIKey is the Groq API key. Required.
	APIKey string
}

// chatCompletionResponse is the subset of the completions response we consume.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewGenerator creates a new generator for Groq's chat completions API.
// The API key is checked here so a missing credential fails before any
// retrieval work happens.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, llm.ErrMissingAPIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Generator{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			// LLM responses can be slow
			Timeout: 5 * time.Minute,
		},
	}, nil
}

// Complete sends the chat request and returns the generated answer text.
// The call is synchronous and not retried; failures propagate to the caller.
func (g *Generator) Complete(ctx context.Context, req *llm.ChatRequest) (string, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: marshaling request: %v", llm.ErrGeneration, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %v", llm.ErrGeneration, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: sending request: %v", llm.ErrGeneration, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: backend returned status %d: %s", llm.ErrGeneration, resp.StatusCode, string(body))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", llm.ErrGeneration, err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", llm.ErrGeneration)
	}

	return completion.Choices[0].Message.Content, nil
}

// Close releases resources held by the generator.
func (g *Generator) Close() error {
	// HTTP client doesn't require explicit cleanup
	return nil
}

// Ensure Generator implements llm.Generator
var _ llm.Generator = (*Generator)(nil)
