package repository

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fencedCodePattern   = regexp.MustCompile("(?s)```(?:javascript|js)?\\s*\\n?(.*?)```")
	leadingProsePattern = regexp.MustCompile(`^(?:Here'?s|Here is|The|This)\b`)
)

// CleanStrategySource strips the wrapping an LLM puts around generated code.
// The fallback order is fixed and deterministic:
//
//  1. structured-JSON attempt: the whole text is a JSON object carrying the
//     code under js_code/code/source;
//  2. fenced-code extraction: the first ``` block wins;
//  3. leading-prose stripping: opening "Here's…"/"The…"/"This…" sentences
//     are dropped until a code-looking line appears.
//
// The result may still be garbage; the entry-point check happens at compile
// time, not here.
func CleanStrategySource(raw string) string {
	text := strings.TrimSpace(raw)

	if extracted, ok := extractFromJSON(text); ok {
		text = strings.TrimSpace(extracted)
	}

	if match := fencedCodePattern.FindStringSubmatch(text); match != nil {
		text = strings.TrimSpace(match[1])
	}

	text = stripLeadingProse(text)

	return text
}

func extractFromJSON(text string) (string, bool) {
	if !strings.HasPrefix(text, "{") {
		return "", false
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return "", false
	}

	for _, key := range []string{"js_code", "code", "source"} {
		if code, ok := payload[key].(string); ok && code != "" {
			return code, true
		}
	}
	return "", false
}

func stripLeadingProse(text string) string {
	lines := strings.Split(text, "\n")
	start := 0
	for start < len(lines) {
		line := strings.TrimSpace(lines[start])
		if line == "" {
			start++
			continue
		}
		if leadingProsePattern.MatchString(line) && !strings.Contains(line, "function") {
			start++
			continue
		}
		break
	}
	return strings.TrimSpace(strings.Join(lines[start:], "\n"))
}
