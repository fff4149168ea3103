package agents

import (
	"github.com/bilal-bim/devbrain-ai/config"
)

// NewClientFromConfig builds the configured provider, or nil when no API key is set
func NewClientFromConfig(cfg *config.Config) (LLMClient, string) {
	switch cfg.Provider() {
	case "openai":
		return NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.LLMTimeout), cfg.OpenAIModel
	case "anthropic":
		return NewAnthropicClient(cfg.AnthropicKey, cfg.AnthropicModel, cfg.LLMTimeout), cfg.AnthropicModel
	default:
		return nil, ""
	}
}
