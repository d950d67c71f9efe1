package engine

import (
	"strings"

	"github.com/nate-ooley/HandyBoss/pkg/types"
)

// jsonInstruction is appended when JSON output is requested and the prompt
// was not already primed for it.
const jsonInstruction = "\nRespond with valid JSON only:"

// composePrompt builds the final prompt string from the user prompt, the
// optional system prompt, and the requested output format.
//
// A non-empty system prompt wraps the exchange as a three-turn transcript
// ending in an open assistant turn. For JSON output, an instruction line is
// appended unless the prompt (trimmed) already ends with "json" — a plain
// suffix check, just enough to avoid duplicate instructions.
func composePrompt(prompt, systemPrompt, format string) string {
	full := prompt
	if systemPrompt != "" {
		full = "System: " + systemPrompt + "\nUser: " + prompt + "\nAssistant:"
	}
	if format == types.FormatJSON && !strings.HasSuffix(strings.TrimSpace(full), "json") {
		full += jsonInstruction
	}
	return full
}
