package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/promptarchitect-api/internal/llm"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/logger"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/metrics"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/models"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/observability"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/prompt"
)

// DefaultTemperature is the sampling temperature of every generation call
const DefaultTemperature = 0.7

const missingAPIKeyMessage = "API key is missing. Please check your environment configuration"

// Options configures a PromptGenerator
type Options struct {
	APIKey       string
	Model        string
	ProviderName string // "gemini" (default) or "openai"

	// Provider overrides the provider built from ProviderName, mainly for tests
	Provider llm.Provider

	Tracer   *observability.LangfuseClient
	Recorder metrics.GenerationRecorder
}

// PromptGenerator turns an idea and configuration into a structured prompt with one provider call.
// It holds no mutable state and does not guard against concurrent calls.
type PromptGenerator struct {
	apiKey   string
	model    string
	provider llm.Provider
	builder  *prompt.Builder
	tracer   *observability.LangfuseClient
	recorder metrics.GenerationRecorder
}

// NewPromptGenerator creates a generator. A missing API key is not an error here;
// every Generate call reports it instead.
func NewPromptGenerator(ctx context.Context, opts Options) (*PromptGenerator, error) {
	provider := opts.Provider
	if provider == nil && strings.TrimSpace(opts.APIKey) != "" {
		factory := llm.NewProviderFactory(opts.APIKey, opts.APIKey)
		p, err := factory.GetProvider(ctx, opts.ProviderName)
		if err != nil {
			return nil, fmt.Errorf("failed to create provider: %w", err)
		}
		provider = p
	}

	recorder := opts.Recorder
	if recorder == nil {
		recorder = metrics.Fanout{}
	}

	g := &PromptGenerator{
		apiKey:   opts.APIKey,
		model:    opts.Model,
		provider: provider,
		builder:  prompt.NewPromptBuilder(),
		tracer:   opts.Tracer,
		recorder: recorder,
	}

	providerName := "none"
	if provider != nil {
		providerName = provider.Name()
	}
	log.Printf("✨ PROMPT GENERATOR INITIALIZED:")
	log.Printf("   Provider: %s", providerName)
	log.Printf("   Model: %s", opts.Model)
	log.Printf("   API key configured: %t", g.HasCredential())

	return g, nil
}

// HasCredential reports whether an API key was injected
func (g *PromptGenerator) HasCredential() bool {
	return strings.TrimSpace(g.apiKey) != ""
}

// ProviderName returns the name of the underlying provider, or "" when none is configured
func (g *PromptGenerator) ProviderName() string {
	if g.provider == nil {
		return ""
	}
	return g.provider.Name()
}

// Model returns the model identifier sent with every call
func (g *PromptGenerator) Model() string {
	return g.model
}

// Generate performs exactly one provider call and returns a fully populated result
// or a *GenerationError. Nothing is cached or retried.
func (g *PromptGenerator) Generate(ctx context.Context, idea string, cfg models.Configuration) (*models.GeneratedResult, error) {
	startTime := time.Now()
	providerName := g.ProviderName()

	if !g.HasCredential() || g.provider == nil {
		err := newError(KindConfiguration, missingAPIKeyMessage, nil)
		g.fail(ctx, providerName, startTime, llm.TokenUsage{}, err)
		return nil, err
	}

	if _, err := models.NewGenerationRequest(idea, cfg); err != nil {
		genErr := newError(KindInvalidInput, "invalid generation request", err)
		g.fail(ctx, providerName, startTime, llm.TokenUsage{}, genErr)
		return nil, genErr
	}

	systemPrompt := g.builder.SystemInstruction()
	userPrompt := g.builder.BuildUserPrompt(idea, cfg)

	trace := g.tracer.StartTrace(ctx, "prompt_generation", map[string]interface{}{
		"tone":              string(cfg.Tone),
		"format":            string(cfg.Format),
		"include_reasoning": cfg.IncludeReasoning,
	})
	defer trace.Finish()
	span := trace.Generation(providerName, map[string]interface{}{"temperature": DefaultTemperature})
	defer span.Finish()

	log.Printf("🚀 GENERATION REQUEST: %s model=%s, idea_chars=%d, tone=%s, format=%s",
		providerName, g.model, len(idea), cfg.Tone, cfg.Format)

	resp, err := g.provider.Generate(ctx, &llm.GenerationRequest{
		Model:        g.model,
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		OutputSchema: llm.ResultOutputSchema(),
		Temperature:  DefaultTemperature,
	})
	span.LogResponse(g.model, systemPrompt, userPrompt, resp)
	if err != nil {
		genErr := newError(KindTransport, "generation request failed", err)
		span.SetLevel(observability.LevelError)
		g.fail(ctx, providerName, startTime, llm.TokenUsage{}, genErr)
		return nil, genErr
	}

	if resp == nil || strings.TrimSpace(resp.RawOutput) == "" {
		genErr := newError(KindGeneration, fmt.Sprintf("no response received from %s", providerName), nil)
		span.SetLevel(observability.LevelError)
		g.fail(ctx, providerName, startTime, usageOf(resp), genErr)
		return nil, genErr
	}

	result, err := models.ParseGeneratedResult(resp.RawOutput)
	if err != nil {
		genErr := newError(KindParse, "failed to parse generated result", err)
		genErr.Raw = resp.RawOutput
		span.SetLevel(observability.LevelError)
		g.fail(ctx, providerName, startTime, resp.Usage, genErr)
		return nil, genErr
	}

	duration := time.Since(startTime)
	g.recorder.RecordGeneration(ctx, sample(providerName, g.model, metrics.OutcomeSuccess, duration, resp.Usage))
	logger.LogGenerationRequest(ctx, providerName, g.model, duration, map[string]interface{}{
		"input_tokens":  resp.Usage.InputTokens,
		"output_tokens": resp.Usage.OutputTokens,
		"total_tokens":  resp.Usage.TotalTokens,
	}, logger.Fields{"tags": len(result.Tags)})

	return result, nil
}

// fail logs and records a failed generation
func (g *PromptGenerator) fail(ctx context.Context, providerName string, startTime time.Time, usage llm.TokenUsage, err *GenerationError) {
	duration := time.Since(startTime)
	g.recorder.RecordGeneration(ctx, sample(providerName, g.model, string(err.Kind), duration, usage))

	fields := logger.Fields{
		"provider":    providerName,
		"model":       g.model,
		"error_kind":  string(err.Kind),
		"duration_ms": duration.Milliseconds(),
	}

	// Caller mistakes and cancelled requests are not service faults
	if err.Kind == KindInvalidInput || errors.Is(err, context.Canceled) {
		logger.Warn("Generation rejected: "+err.Error(), fields)
		return
	}
	logger.Error("Generation failed", err, fields)
}

func sample(providerName, model, outcome string, duration time.Duration, usage llm.TokenUsage) metrics.GenerationSample {
	return metrics.GenerationSample{
		Provider:     providerName,
		Model:        model,
		Outcome:      outcome,
		Duration:     duration,
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
		TotalTokens:  usage.TotalTokens,
	}
}

func usageOf(resp *llm.GenerationResponse) llm.TokenUsage {
	if resp == nil {
		return llm.TokenUsage{}
	}
	return resp.Usage
}
