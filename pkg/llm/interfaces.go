// Package llm provides chat-completion clients for the providers the CRM
// agents call: OpenAI, Gemini, and Anthropic.
package llm

import (
	"context"
)

// Provider identifies an upstream LLM provider.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
)

// CompletionResult holds the text and usage stats of one completion.
type CompletionResult struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ChatClient defines the interface for single-shot chat completions.
// Use this interface for dependency injection to enable mocking in tests.
type ChatClient interface {
	// Complete generates a chat completion for the prompt. Each agent calls
	// with a fixed temperature and token ceiling; there is no retry.
	Complete(ctx context.Context, prompt string, systemMessage string, temperature float64, maxTokens int) (*CompletionResult, error)

	// GetModel returns the configured model name.
	GetModel() string

	// GetProvider returns the provider this client talks to.
	GetProvider() Provider
}

// Ensure concrete clients implement ChatClient at compile time.
var (
	_ ChatClient = (*OpenAIClient)(nil)
	_ ChatClient = (*GeminiClient)(nil)
	_ ChatClient = (*AnthropicClient)(nil)
)
