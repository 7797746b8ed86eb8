package llm

import (
	"context"
)

// Provider defines the interface for LLM providers
// All providers MUST support structured output (JSON Schema) for reliable response parsing
type Provider interface {
	// Generate performs exactly one call to the generation endpoint.
	// The provider does not judge the returned text; callers validate RawOutput.
	Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string
}

// GenerationRequest contains all parameters needed for generation
type GenerationRequest struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	// Structured output schema - REQUIRED for reliable JSON parsing
	OutputSchema *OutputSchema
	Temperature  float64
}

// OutputSchema defines the expected JSON output structure
type OutputSchema struct {
	Name        string
	Description string
	Schema      map[string]any // JSON Schema object
}

// GenerationResponse contains the result from the LLM
type GenerationResponse struct {
	RawOutput string     `json:"-"` // Raw JSON text output, may be empty
	Usage     TokenUsage `json:"usage"`
}

// TokenUsage is the provider-neutral token accounting for one call
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}
