package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/smartcrm/engine/pkg/apperrors"
	"github.com/smartcrm/engine/pkg/config"
)

// ClientFactory is the interface for creating chat clients per provider.
// Use this interface for dependency injection and testing.
type ClientFactory interface {
	// ForProvider returns a client for the given provider. Returns
	// apperrors.ErrMissingAPIKey when the provider's key is not configured;
	// handlers surface that as a 500.
	ForProvider(provider Provider) (ChatClient, error)
}

// Factory creates chat clients from server configuration.
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory.
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{cfg: cfg, logger: logger}
}

// ForProvider implements ClientFactory.
func (f *Factory) ForProvider(provider Provider) (ChatClient, error) {
	switch provider {
	case ProviderOpenAI:
		if f.cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("openai: %w", apperrors.ErrMissingAPIKey)
		}
		return NewOpenAIClient(&OpenAIConfig{
			BaseURL: f.cfg.OpenAI.BaseURL,
			Model:   f.cfg.OpenAI.Model,
			APIKey:  f.cfg.OpenAI.APIKey,
		}, f.logger)

	case ProviderGemini:
		if f.cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("gemini: %w", apperrors.ErrMissingAPIKey)
		}
		return NewGeminiClient(&GeminiConfig{
			BaseURL: f.cfg.Gemini.BaseURL,
			Model:   f.cfg.Gemini.Model,
			APIKey:  f.cfg.Gemini.APIKey,
		}, f.logger)

	case ProviderAnthropic:
		if f.cfg.Anthropic.APIKey == "" {
			return nil, fmt.Errorf("anthropic: %w", apperrors.ErrMissingAPIKey)
		}
		return NewAnthropicClient(&AnthropicConfig{
			Model:  f.cfg.Anthropic.Model,
			APIKey: f.cfg.Anthropic.APIKey,
		}, f.logger)

	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

// Ensure Factory implements ClientFactory at compile time.
var _ ClientFactory = (*Factory)(nil)
