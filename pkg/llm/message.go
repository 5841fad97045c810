// Package llm defines the types and client interface for the text
// generation backend.
package llm

// Message roles. The generation call uses exactly two messages: a system
// instruction and a user message carrying the assembled context.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single role-tagged message in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a chat completion request.
type ChatRequest struct {
	// Model name (e.g., "llama-3.1-8b-instant")
	Model string `json:"model"`

	// Conversation messages, in order
	Messages []Message `json:"messages"`

	// Sampling temperature
	Temperature float64 `json:"temperature"`

	// Maximum number of output tokens
	MaxTokens int `json:"max_tokens"`
}
