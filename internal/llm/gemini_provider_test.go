package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiProvider_Name(t *testing.T) {
	// We can't create a real client without an API key
	// So just test the name method with a nil client
	provider := &GeminiProvider{client: nil}
	assert.Equal(t, "gemini", provider.Name())
}

func TestGeminiProvider_BuildContents(t *testing.T) {
	provider := &GeminiProvider{client: nil}

	contents := provider.buildGeminiContents("refine this")
	require.Len(t, contents, 1)
	assert.Equal(t, "user", contents[0].Role)
	require.Len(t, contents[0].Parts, 1)
	assert.Equal(t, "refine this", contents[0].Parts[0].Text)
}

func TestGeminiProvider_BuildGenerateConfig(t *testing.T) {
	provider := &GeminiProvider{client: nil}

	config := provider.buildGenerateConfig(&GenerationRequest{
		Model:        "gemini-2.5-flash",
		SystemPrompt: "system",
		UserPrompt:   "user",
		OutputSchema: ResultOutputSchema(),
		Temperature:  0.7,
	})

	require.NotNil(t, config.SystemInstruction)
	assert.Equal(t, "system", config.SystemInstruction.Parts[0].Text)
	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.7, *config.Temperature, 0.0001)
	require.NotNil(t, config.ResponseSchema)
	assert.Equal(t, genai.TypeObject, config.ResponseSchema.Type)
}

func TestGeminiProvider_ConvertSchema(t *testing.T) {
	geminiSchema := convertSchemaToGemini(GetResultOutputSchema())
	require.NotNil(t, geminiSchema)

	assert.Equal(t, genai.TypeObject, geminiSchema.Type)
	assert.ElementsMatch(t, []string{"optimizedPrompt", "explanation", "tags"}, geminiSchema.Required)

	require.Contains(t, geminiSchema.Properties, "optimizedPrompt")
	assert.Equal(t, genai.TypeString, geminiSchema.Properties["optimizedPrompt"].Type)
	assert.NotEmpty(t, geminiSchema.Properties["optimizedPrompt"].Description)

	require.Contains(t, geminiSchema.Properties, "tags")
	tags := geminiSchema.Properties["tags"]
	assert.Equal(t, genai.TypeArray, tags.Type)
	require.NotNil(t, tags.Items)
	assert.Equal(t, genai.TypeString, tags.Items.Type)
}

func TestGeminiProvider_ConvertSchemaAnyRequired(t *testing.T) {
	schema := map[string]any{
		"type":     "object",
		"required": []any{"a", 1, "b"},
		"properties": map[string]any{
			"a": map[string]any{"type": "integer"},
			"b": map[string]any{"type": "boolean"},
		},
	}

	geminiSchema := convertSchemaToGemini(schema)
	assert.Equal(t, []string{"a", "b"}, geminiSchema.Required)
	assert.Equal(t, genai.TypeInteger, geminiSchema.Properties["a"].Type)
	assert.Equal(t, genai.TypeBoolean, geminiSchema.Properties["b"].Type)
	assert.Nil(t, convertSchemaToGemini(nil))
}

// newTestGeminiProvider points a real genai client at an httptest server
func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := newGeminiProviderWithConfig(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: server.URL},
	})
	require.NoError(t, err)
	return provider
}

func writeGeminiText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
		"usageMetadata": map[string]any{
			"promptTokenCount":     12,
			"candidatesTokenCount": 30,
			"totalTokenCount":      42,
		},
	})
}

func TestGeminiProvider_Generate(t *testing.T) {
	var calls int32
	var body map[string]any
	reply := `{"optimizedPrompt":"p","explanation":"e","tags":["t"]}`

	provider := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.True(t, strings.HasSuffix(r.URL.Path, "gemini-2.5-flash:generateContent"), r.URL.Path)
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(raw, &body))
		writeGeminiText(w, reply)
	})

	resp, err := provider.Generate(context.Background(), &GenerationRequest{
		Model:        "gemini-2.5-flash",
		SystemPrompt: "be an expert",
		UserPrompt:   "Refine this idea",
		OutputSchema: ResultOutputSchema(),
		Temperature:  0.7,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, reply, resp.RawOutput)
	assert.Equal(t, TokenUsage{InputTokens: 12, OutputTokens: 30, TotalTokens: 42}, resp.Usage)

	generationConfig, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok, "request should carry generationConfig")
	assert.Equal(t, "application/json", generationConfig["responseMimeType"])
	assert.InDelta(t, 0.7, generationConfig["temperature"], 0.0001)
	assert.NotNil(t, generationConfig["responseSchema"])
}

func TestGeminiProvider_GenerateEmptyCandidates(t *testing.T) {
	provider := newTestGeminiProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	resp, err := provider.Generate(context.Background(), &GenerationRequest{Model: "gemini-2.5-flash"})
	require.NoError(t, err)
	assert.Empty(t, resp.RawOutput)
}

func TestGeminiProvider_GenerateAPIError(t *testing.T) {
	provider := newTestGeminiProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	})

	resp, err := provider.Generate(context.Background(), &GenerationRequest{Model: "gemini-2.5-flash"})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "gemini request failed")
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestNewGeminiProvider_InvalidKey(t *testing.T) {
	ctx := context.Background()
	provider, err := NewGeminiProvider(ctx, "invalid-key")

	// Client creation does not contact the API, only the first request would fail
	require.NoError(t, err)
	assert.Equal(t, "gemini", provider.Name())
}
