package metrics

import (
	"context"
	"time"
)

// GenerationSample describes one completed call to the prompt generator
type GenerationSample struct {
	Provider     string
	Model        string
	Outcome      string // "success" or a generation error kind
	Duration     time.Duration
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Success reports whether the sample is a successful generation
func (s GenerationSample) Success() bool {
	return s.Outcome == OutcomeSuccess
}

// OutcomeSuccess is the outcome label of a successful generation
const OutcomeSuccess = "success"

// GenerationRecorder receives one sample per generation
type GenerationRecorder interface {
	RecordGeneration(ctx context.Context, sample GenerationSample)
}

// APIRecorder receives one sample per HTTP request
type APIRecorder interface {
	RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration)
}

// Fanout forwards generation samples to every recorder, skipping nils
type Fanout []GenerationRecorder

func (f Fanout) RecordGeneration(ctx context.Context, sample GenerationSample) {
	for _, recorder := range f {
		if recorder != nil {
			recorder.RecordGeneration(ctx, sample)
		}
	}
}
