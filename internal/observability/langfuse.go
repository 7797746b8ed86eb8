package observability

import (
	"context"
	"log"
	"time"

	"github.com/Conceptual-Machines/promptarchitect-api/internal/config"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/llm"
	langfuse "github.com/henomis/langfuse-go"
	"github.com/henomis/langfuse-go/model"
)

// Observation levels used by the generator
const (
	LevelDefault = "DEFAULT"
	LevelError   = "ERROR"
)

// LangfuseClient wraps the Langfuse client with our configuration.
// A nil or disabled client turns every trace into a no-op.
type LangfuseClient struct {
	client  *langfuse.Langfuse
	enabled bool
}

// NewLangfuseClient creates the Langfuse client when it is configured
func NewLangfuseClient(ctx context.Context, cfg *config.Config) *LangfuseClient {
	if !cfg.LangfuseEnabled || cfg.LangfuseSecretKey == "" || cfg.LangfusePublicKey == "" {
		log.Println("⚠️  Langfuse not configured (LANGFUSE_ENABLED=false or keys not set)")
		return &LangfuseClient{enabled: false}
	}

	// The henomis SDK reads LANGFUSE_HOST and both keys from the environment
	lf := langfuse.New(ctx)

	log.Printf("✅ Langfuse initialized (host: %s)", cfg.LangfuseHost)
	return &LangfuseClient{
		client:  lf,
		enabled: true,
	}
}

// IsEnabled returns whether Langfuse is enabled
func (c *LangfuseClient) IsEnabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// StartTrace starts a new trace in Langfuse
func (c *LangfuseClient) StartTrace(ctx context.Context, name string, metadata map[string]interface{}) *Trace {
	if !c.IsEnabled() {
		return &Trace{enabled: false, ctx: ctx}
	}

	trace, err := c.client.Trace(&model.Trace{
		Name:     name,
		Metadata: metadata,
	})
	if err != nil {
		log.Printf("⚠️  Failed to create Langfuse trace: %v", err)
		return &Trace{enabled: false, ctx: ctx}
	}

	return &Trace{
		trace:   trace,
		enabled: true,
		ctx:     ctx,
		client:  c.client,
	}
}

// Trace represents a Langfuse trace
type Trace struct {
	trace   *model.Trace
	enabled bool
	ctx     context.Context
	client  *langfuse.Langfuse
}

// Enabled reports whether the trace is sent to Langfuse
func (t *Trace) Enabled() bool {
	return t != nil && t.enabled
}

// Generation creates a new generation span within the trace
func (t *Trace) Generation(name string, metadata map[string]interface{}) *Generation {
	if !t.Enabled() {
		return &Generation{enabled: false}
	}

	now := time.Now()
	gen, err := t.client.Generation(&model.Generation{
		TraceID:   t.trace.ID,
		Name:      name,
		StartTime: &now,
		Metadata:  metadata,
	}, nil)
	if err != nil {
		log.Printf("⚠️  Failed to create Langfuse generation: %v", err)
		return &Generation{enabled: false}
	}

	return &Generation{
		generation: gen,
		enabled:    true,
		client:     t.client,
	}
}

// Finish flushes queued events for the trace.
// Flushing is detached from the request context so a cancelled request still reports.
func (t *Trace) Finish() {
	if !t.Enabled() || t.client == nil {
		return
	}
	t.client.Flush(context.WithoutCancel(t.ctx))
}

// Generation represents a Langfuse generation span
type Generation struct {
	generation *model.Generation
	enabled    bool
	client     *langfuse.Langfuse
}

// Input sets the input for the generation
func (g *Generation) Input(input interface{}) {
	if g.enabled && g.generation != nil {
		g.generation.Input = input
	}
}

// Output sets the output for the generation
func (g *Generation) Output(output interface{}) {
	if g.enabled && g.generation != nil {
		g.generation.Output = output
	}
}

// Metadata adds metadata to the generation
func (g *Generation) Metadata(metadata map[string]interface{}) {
	if !g.enabled || g.generation == nil {
		return
	}
	if md, ok := g.generation.Metadata.(map[string]interface{}); ok && md != nil {
		for k, v := range metadata {
			md[k] = v
		}
		return
	}
	g.generation.Metadata = metadata
}

// SetLevel sets the level of the generation
func (g *Generation) SetLevel(level string) {
	if g.enabled && g.generation != nil {
		g.generation.Level = model.ObservationLevel(level)
	}
}

// LogResponse records the model, prompts, raw output, usage and estimated cost of a call
func (g *Generation) LogResponse(modelName, systemPrompt, userPrompt string, resp *llm.GenerationResponse) {
	if !g.enabled || g.generation == nil {
		return
	}

	g.generation.Model = modelName
	g.Input([]map[string]interface{}{
		{"role": "system", "content": systemPrompt},
		{"role": "user", "content": userPrompt},
	})

	if resp == nil {
		return
	}
	if resp.RawOutput != "" {
		g.Output(resp.RawOutput)
	}

	cost := CalculateCost(modelName, resp.Usage)
	g.generation.Usage = convertUsage(resp.Usage, cost)
	g.Metadata(map[string]interface{}{
		"model":    modelName,
		"cost_usd": FormatCost(cost),
	})
}

// Finish completes the generation and sends it to Langfuse
func (g *Generation) Finish() {
	if !g.enabled || g.generation == nil || g.client == nil {
		return
	}

	now := time.Now()
	g.generation.EndTime = &now
	if _, err := g.client.GenerationEnd(g.generation); err != nil {
		log.Printf("⚠️  Failed to end Langfuse generation: %v", err)
	}
}

// convertUsage converts provider token usage to model.Usage
func convertUsage(usage llm.TokenUsage, cost float64) model.Usage {
	return model.Usage{
		Input:     usage.InputTokens,
		Output:    usage.OutputTokens,
		Total:     usage.TotalTokens,
		Unit:      model.ModelUsageUnitTokens,
		TotalCost: cost,
	}
}
