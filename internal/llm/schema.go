package llm

const resultSchemaName = "generated_prompt"

// GetResultOutputSchema returns the JSON schema for a generated prompt.
// All three fields are required.
func GetResultOutputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"optimizedPrompt": map[string]any{
				"type":        "string",
				"description": "The highly optimized, ready-to-use prompt for an LLM.",
			},
			"explanation": map[string]any{
				"type": "string",
				//nolint:lll // Documentation string
				"description": "A brief explanation of why this prompt structure is effective and what techniques were used (e.g., Chain of Thought, Persona).",
			},
			"tags": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Keywords describing the prompt type (e.g., 'Coding', 'Creative Writing', 'Analysis').",
			},
		},
		"required":             []string{"optimizedPrompt", "explanation", "tags"},
		"additionalProperties": false,
	}
}

// ResultOutputSchema wraps the result schema for a GenerationRequest
func ResultOutputSchema() *OutputSchema {
	return &OutputSchema{
		Name:        resultSchemaName,
		Description: "A refined prompt, an explanation of the techniques used, and descriptive tags",
		Schema:      GetResultOutputSchema(),
	}
}
