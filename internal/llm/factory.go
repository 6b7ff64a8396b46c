package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"filmdesk/internal/config"
)

// NewClient builds the client for the configured provider. It returns
// ErrNoAPIKey when the provider has no key so callers can run without AI.
func NewClient(ctx context.Context, cfg *config.LLMConfig, logger *zap.Logger) (Client, error) {
	apiKey := cfg.APIKey()
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	logger = logger.Named("llm")
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIClient(apiKey, cfg.BaseURL, cfg.Model, logger), nil
	case "anthropic":
		return NewAnthropicClient(apiKey, cfg.BaseURL, cfg.Model, logger), nil
	case "gemini", "":
		return NewGeminiClient(ctx, apiKey, cfg.Model, logger)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
