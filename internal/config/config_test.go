package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "LLM_PROVIDER", "GEMINI_API_KEY", "API_KEY",
		"OPENAI_API_KEY", "GEMINI_MODEL", "OPENAI_MODEL", "LANGFUSE_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model())
	assert.Empty(t, cfg.APIKey())
	assert.False(t, cfg.LangfuseEnabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_APIKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy-key")

	cfg := Load()
	assert.Equal(t, "legacy-key", cfg.GeminiAPIKey)

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	cfg = Load()
	assert.Equal(t, "gemini-key", cfg.GeminiAPIKey)
}

func TestConfig_SelectedProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg := Load()

	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, "sk-test", cfg.APIKey())
	assert.Equal(t, "gpt-4o-mini", cfg.Model())
}

func TestConfig_InsecureSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("ENVIRONMENT", "development")

	cfg := Load()
	assert.Equal(t, DefaultSessionSecret, cfg.SessionSecret)
	assert.False(t, cfg.InsecureSessionSecret(), "the default key is fine outside production")

	t.Setenv("ENVIRONMENT", "production")
	cfg = Load()
	assert.True(t, cfg.InsecureSessionSecret())

	t.Setenv("SESSION_SECRET", "a-real-secret-from-the-vault-0001")
	cfg = Load()
	assert.False(t, cfg.InsecureSessionSecret())
}
