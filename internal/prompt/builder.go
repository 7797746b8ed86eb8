package prompt

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/promptarchitect-api/internal/models"
)

// Builder builds the instructions sent to the generation endpoint
type Builder struct {
	loader *Loader
}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() *Builder {
	return &Builder{
		loader: NewPromptLoader(),
	}
}

// SystemInstruction returns the static system instruction.
// It never depends on user input.
func (b *Builder) SystemInstruction() string {
	return b.loader.GetSystemInstruction()
}

// BuildUserPrompt embeds the idea verbatim in quotes followed by the configuration
// as key/value lines. The idea is not escaped.
func (b *Builder) BuildUserPrompt(idea string, cfg models.Configuration) string {
	var sb strings.Builder

	sb.WriteString("Refine this idea into a perfect prompt:\n")
	sb.WriteString("\"" + idea + "\"\n")
	sb.WriteString("\n")
	sb.WriteString("Configuration:\n")
	fmt.Fprintf(&sb, "- Desired Tone: %s\n", cfg.Tone)
	fmt.Fprintf(&sb, "- Output Format: %s\n", cfg.Format)
	fmt.Fprintf(&sb, "- Include Reasoning Chain: %s\n", cfg.ReasoningLabel())

	return sb.String()
}
