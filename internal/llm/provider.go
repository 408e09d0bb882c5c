// Package llm provides interfaces and implementations for the hosted
// text-generation providers backing the chat assistant.
package llm

import (
	"context"
	"fmt"

	"github.com/mraso/portfolio/internal/config"
)

// Provider defines the interface for LLM providers. The assistant only
// needs request/response chat; streaming is not part of the widget
// contract.
type Provider interface {
	// ChatSync sends messages and waits for the complete response.
	ChatSync(ctx context.Context, messages []Message, opts ChatOptions) (*Response, error)

	// Name returns the provider name (e.g. "anthropic", "openai").
	Name() string

	// DefaultModel returns the default model for this provider.
	DefaultModel() string
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`    // "system", "user", "assistant"
	Content string `json:"content"` // Message content
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: "system", Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: "assistant", Content: content}
}

// ChatOptions configures a chat request.
type ChatOptions struct {
	Model       string  // Model to use (empty = provider default)
	MaxTokens   int     // Maximum tokens in response
	Temperature float64 // Sampling temperature (0-1)
}

// Response represents a complete chat response.
type Response struct {
	Content      string // Response content
	Model        string // Model used
	FinishReason string // Why generation stopped
	Usage        Usage  // Token usage
}

// Usage tracks token usage for a request.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ProviderType represents supported LLM providers.
type ProviderType string

// Supported providers.
const (
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
)

// NewProvider creates a provider based on configuration, auto-detecting
// from available API keys when no provider is set explicitly.
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	name := cfg.Provider
	if name == "" {
		name = detectProvider(cfg)
	}
	if name == "" {
		return nil, fmt.Errorf("no LLM provider configured: set ANTHROPIC_API_KEY or OPENAI_API_KEY")
	}

	switch ProviderType(name) {
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.Model)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", name)
	}
}

// detectProvider picks the first provider with a configured key.
func detectProvider(cfg config.LLMConfig) string {
	if cfg.AnthropicAPIKey != "" {
		return string(ProviderAnthropic)
	}
	if cfg.OpenAIAPIKey != "" {
		return string(ProviderOpenAI)
	}
	return ""
}
