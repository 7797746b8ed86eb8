package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics records request and generation metrics as Sentry spans
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Always enabled if Sentry is configured
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordGeneration records one generation with its outcome and token usage
func (m *SentryMetrics) RecordGeneration(ctx context.Context, sample GenerationSample) {
	if !m.enabled {
		return
	}

	// Token usage goes on the surrounding transaction as well, for dashboard filtering
	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("llm.provider", sample.Provider)
		transaction.SetTag("llm.model", sample.Model)
		transaction.SetTag("generation.outcome", sample.Outcome)
		transaction.SetData("llm.total_tokens", sample.TotalTokens)
	}

	span := sentry.StartSpan(ctx, "generation.request")
	defer span.Finish()

	span.SetTag("provider", sample.Provider)
	span.SetTag("model", sample.Model)
	span.SetTag("outcome", sample.Outcome)
	span.SetTag("success", fmt.Sprintf("%t", sample.Success()))

	span.SetData("duration_ms", sample.Duration.Milliseconds())
	span.SetData("input_tokens", sample.InputTokens)
	span.SetData("output_tokens", sample.OutputTokens)
	span.SetData("total_tokens", sample.TotalTokens)

	if sample.Success() {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("Generation Request: %s/%s", sample.Provider, sample.Outcome)
}
