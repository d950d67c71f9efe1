package engine

import (
	"encoding/json"
	"strings"

	"github.com/nate-ooley/HandyBoss/pkg/types"
)

// formatOutput trims the raw model output and, for JSON format, tries to
// extract and re-serialize an embedded JSON object.
//
// The span is the leftmost '{' through the rightmost '}' — a greedy match,
// not a balanced-brace parse, so trailing braces from later fragments can be
// captured. If no span exists or it does not parse, the trimmed raw text is
// returned unchanged. This is best-effort and never fails.
func formatOutput(raw, format string) string {
	text := strings.TrimSpace(raw)
	if format != types.FormatJSON {
		return text
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return text
	}
	var v any
	if err := json.Unmarshal([]byte(text[start:end+1]), &v); err != nil {
		return text
	}
	out, err := json.Marshal(v)
	if err != nil {
		return text
	}
	return string(out)
}
