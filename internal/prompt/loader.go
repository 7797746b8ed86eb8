package prompt

import (
	"strings"

	"github.com/Conceptual-Machines/promptarchitect-api/pkg/embedded"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetSystemInstruction loads the fixed system instruction
func (l *Loader) GetSystemInstruction() string {
	return strings.TrimSpace(string(embedded.SystemInstructionTxt))
}
