// Package collector holds the state of the prompt form: the idea being edited,
// its configuration, the busy flag and the outcome of the last submission.
package collector

import (
	"context"
	"errors"

	"github.com/Conceptual-Machines/promptarchitect-api/internal/models"
)

// ErrNotSubmittable is returned by Submit when the idea is blank or a request is outstanding
var ErrNotSubmittable = errors.New("submit is unavailable")

// Generator produces a result for an idea and configuration
type Generator interface {
	Generate(ctx context.Context, idea string, cfg models.Configuration) (*models.GeneratedResult, error)
}

// State is a snapshot of the collector
type State struct {
	Idea          string
	Configuration models.Configuration
	Busy          bool
	Result        *models.GeneratedResult
	Err           error
}

// Collector is not safe for concurrent use; the busy flag is its only exclusion.
type Collector struct {
	state     State
	observers []func(State)
}

// New creates a collector with the given starting idea and configuration
func New(idea string, cfg models.Configuration) *Collector {
	return &Collector{state: State{Idea: idea, Configuration: cfg}}
}

// State returns the current state
func (c *Collector) State() State {
	return c.state
}

// OnChange registers an observer called synchronously after every change
func (c *Collector) OnChange(fn func(State)) {
	c.observers = append(c.observers, fn)
}

// SetIdea replaces the idea; ignored while busy
func (c *Collector) SetIdea(idea string) {
	c.edit(func(s *State) { s.Idea = idea })
}

// SetTone replaces the tone; ignored while busy
func (c *Collector) SetTone(tone models.Tone) {
	c.edit(func(s *State) { s.Configuration.Tone = tone })
}

// SetFormat replaces the format; ignored while busy
func (c *Collector) SetFormat(format models.Format) {
	c.edit(func(s *State) { s.Configuration.Format = format })
}

// SetIncludeReasoning toggles the reasoning chain; ignored while busy
func (c *Collector) SetIncludeReasoning(include bool) {
	c.edit(func(s *State) { s.Configuration.IncludeReasoning = include })
}

// SetBusy marks a request as outstanding, which disables every input
func (c *Collector) SetBusy(busy bool) {
	if c.state.Busy == busy {
		return
	}
	c.state.Busy = busy
	c.notify()
}

// Busy reports whether a request is outstanding
func (c *Collector) Busy() bool {
	return c.state.Busy
}

// CanSubmit is false for a blank idea or while busy
func (c *Collector) CanSubmit() bool {
	return !c.state.Busy && !models.IsBlank(c.state.Idea)
}

// Submit calls the generator once and replaces the result and error together.
// The previous outcome is cleared as the request starts, so nothing stale is shown while busy.
func (c *Collector) Submit(ctx context.Context, generator Generator) error {
	if !c.CanSubmit() {
		return ErrNotSubmittable
	}

	c.state.Busy = true
	c.state.Result = nil
	c.state.Err = nil
	c.notify()
	result, err := generator.Generate(ctx, c.state.Idea, c.state.Configuration)

	if err != nil {
		result = nil
	}
	c.state.Result = result
	c.state.Err = err
	c.state.Busy = false
	c.notify()

	return err
}

func (c *Collector) edit(apply func(*State)) {
	if c.state.Busy {
		return
	}
	apply(&c.state)
	c.notify()
}

func (c *Collector) notify() {
	snapshot := c.state
	for _, fn := range c.observers {
		fn(snapshot)
	}
}
