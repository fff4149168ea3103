package agents

import (
	"context"
	"errors"
)

// ErrNoProvider is returned when no LLM API key is configured
var ErrNoProvider = errors.New("AI provider not configured")

// Message is one chat turn sent to a provider
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMClient is a chat-completions backend
type LLMClient interface {
	Complete(ctx context.Context, system string, messages []Message) (string, error)
	Name() string
}
