package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingAPIKey is returned when the selected provider has no credential
var ErrMissingAPIKey = errors.New("API key is missing")

// ProviderFactory creates providers based on explicit provider choice
type ProviderFactory struct {
	openaiAPIKey string
	geminiAPIKey string
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(openaiAPIKey, geminiAPIKey string) *ProviderFactory {
	return &ProviderFactory{
		openaiAPIKey: openaiAPIKey,
		geminiAPIKey: geminiAPIKey,
	}
}

// GetProvider returns the provider for the given name; an empty name means Gemini
func (f *ProviderFactory) GetProvider(ctx context.Context, providerName string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(providerName)) {
	case providerNameGemini, "":
		if strings.TrimSpace(f.geminiAPIKey) == "" {
			return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
		}
		return NewGeminiProvider(ctx, f.geminiAPIKey)

	case providerNameOpenAI:
		if strings.TrimSpace(f.openaiAPIKey) == "" {
			return nil, fmt.Errorf("openai: %w", ErrMissingAPIKey)
		}
		return NewOpenAIProvider(f.openaiAPIKey), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s (allowed: gemini, openai)", providerName)
	}
}
