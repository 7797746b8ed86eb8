package config

import (
	"os"
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	defaultGeminiModel = "gemini-2.5-flash"
	defaultOpenAIModel = "gpt-4.1-mini"

	// DefaultSessionSecret signs form cookies when SESSION_SECRET is unset; development only
	DefaultSessionSecret = "promptarchitect-dev-session-secret"
)

// Config holds the application configuration
// Note: This service is stateless - generated results are never persisted
type Config struct {
	// Environment
	Environment string
	Port        string

	// LLM provider selection ("gemini" or "openai")
	LLMProvider string

	// LLM API Keys
	GeminiAPIKey string // Google Gemini API key (GEMINI_API_KEY, falls back to API_KEY)
	OpenAIAPIKey string // OpenAI API key for GPT models

	// Models
	GeminiModel string
	OpenAIModel string

	// Web form session signing key
	SessionSecret string

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse
	CloudWatchEnabled bool   // Feature flag for CloudWatch metrics (production only)
}

func Load() *Config {
	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		LLMProvider:       strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", defaultGeminiModel),
		OpenAIModel:       getEnv("OPENAI_MODEL", defaultOpenAIModel),
		SessionSecret:     getEnv("SESSION_SECRET", DefaultSessionSecret),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:      getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:   getEnv("LANGFUSE_ENABLED", "false") == "true",
		CloudWatchEnabled: getEnv("CLOUDWATCH_ENABLED", "true") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

// APIKey returns the credential for the selected provider
func (c *Config) APIKey() string {
	if c.LLMProvider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// Model returns the model identifier for the selected provider
func (c *Config) Model() string {
	if c.LLMProvider == ProviderOpenAI {
		return c.OpenAIModel
	}
	return c.GeminiModel
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// InsecureSessionSecret reports whether production is running with the public default signing key
func (c *Config) InsecureSessionSecret() bool {
	return c.IsProduction() && c.SessionSecret == DefaultSessionSecret
}
