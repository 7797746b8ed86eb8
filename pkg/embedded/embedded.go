package embedded

import (
	_ "embed"
)

// Embed prompt data files
//
//go:embed data/system_instruction.txt
var SystemInstructionTxt []byte
