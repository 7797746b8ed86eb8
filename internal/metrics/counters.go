package metrics

import (
	"context"
	"sync"
	"time"
)

// Counters keeps in-process generation totals for the metrics endpoint
type Counters struct {
	mu            sync.Mutex
	byOutcome     map[string]int64
	totalDuration time.Duration
	totalTokens   int64
}

// NewCounters creates an empty set of counters
func NewCounters() *Counters {
	return &Counters{byOutcome: make(map[string]int64)}
}

func (c *Counters) RecordGeneration(_ context.Context, sample GenerationSample) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byOutcome[sample.Outcome]++
	c.totalDuration += sample.Duration
	c.totalTokens += int64(sample.TotalTokens)
}

// CountersSnapshot is a point-in-time copy of Counters
type CountersSnapshot struct {
	Total         int64            `json:"total"`
	ByOutcome     map[string]int64 `json:"by_outcome"`
	AvgDurationMS int64            `json:"avg_duration_ms"`
	TotalTokens   int64            `json:"total_tokens"`
}

// Snapshot returns a copy safe to serialize
func (c *Counters) Snapshot() CountersSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := CountersSnapshot{
		ByOutcome:   make(map[string]int64, len(c.byOutcome)),
		TotalTokens: c.totalTokens,
	}
	for outcome, count := range c.byOutcome {
		snapshot.ByOutcome[outcome] = count
		snapshot.Total += count
	}
	if snapshot.Total > 0 {
		snapshot.AvgDurationMS = c.totalDuration.Milliseconds() / snapshot.Total
	}
	return snapshot
}
