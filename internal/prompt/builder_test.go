package prompt

import (
	"strings"
	"testing"

	"github.com/Conceptual-Machines/promptarchitect-api/internal/models"
)

func TestNewPromptBuilder(t *testing.T) {
	builder := NewPromptBuilder()
	if builder == nil {
		t.Fatal("NewPromptBuilder() returned nil")
		return
	}
	if builder.loader == nil {
		t.Fatal("NewPromptBuilder() created builder with nil loader")
	}
}

func TestSystemInstruction(t *testing.T) {
	builder := NewPromptBuilder()
	instruction := builder.SystemInstruction()

	if instruction == "" {
		t.Fatal("SystemInstruction() returned empty string")
	}

	for _, want := range []string{"PromptArchitect", "Persona", "Step-by-step", "Constraints", "tone", "format"} {
		if !strings.Contains(instruction, want) {
			t.Errorf("SystemInstruction() does not mention %q", want)
		}
	}

	if strings.HasPrefix(instruction, "\n") || strings.HasSuffix(instruction, "\n") {
		t.Error("SystemInstruction() is not trimmed")
	}
}

func TestSystemInstructionIsStatic(t *testing.T) {
	builder := NewPromptBuilder()
	first := builder.SystemInstruction()
	_ = builder.BuildUserPrompt("something entirely different", models.DefaultConfiguration())

	if first != builder.SystemInstruction() {
		t.Error("SystemInstruction() changed between calls")
	}
}

func TestBuildUserPrompt(t *testing.T) {
	builder := NewPromptBuilder()
	idea := "Explain quantum entanglement to a 12-year-old"
	cfg := models.Configuration{
		Tone:             models.ToneProfessional,
		Format:           models.FormatStructured,
		IncludeReasoning: true,
	}

	got := builder.BuildUserPrompt(idea, cfg)

	for _, want := range []string{
		`"Explain quantum entanglement to a 12-year-old"`,
		"- Desired Tone: Professional",
		"- Output Format: Structured (Markdown)",
		"- Include Reasoning Chain: Yes",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("BuildUserPrompt() missing %q in:\n%s", want, got)
		}
	}
}

func TestBuildUserPromptReasoningNo(t *testing.T) {
	builder := NewPromptBuilder()
	cfg := models.Configuration{Tone: models.TonePlayful, Format: models.FormatParagraph}

	got := builder.BuildUserPrompt("a poem", cfg)

	if !strings.Contains(got, "- Include Reasoning Chain: No") {
		t.Errorf("BuildUserPrompt() should render reasoning as No, got:\n%s", got)
	}
}

func TestBuildUserPromptDoesNotEscapeIdea(t *testing.T) {
	builder := NewPromptBuilder()
	idea := "say \"hi\"\nthen <b>stop</b> \\o/"

	got := builder.BuildUserPrompt(idea, models.DefaultConfiguration())

	if !strings.Contains(got, "\""+idea+"\"") {
		t.Errorf("BuildUserPrompt() altered the idea text:\n%s", got)
	}
}
