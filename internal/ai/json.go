package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UnmarshalLenient parses model output that should be JSON but often
// arrives wrapped in markdown fences or surrounded by prose. Strategies,
// in order: direct parse, fence stripping, then extracting the outermost
// object.
func UnmarshalLenient(text string, v any) error {
	text = strings.TrimSpace(text)

	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	stripped := stripFences(text)
	if err := json.Unmarshal([]byte(stripped), v); err == nil {
		return nil
	}

	if extracted, ok := extractObject(stripped); ok {
		if err := json.Unmarshal([]byte(extracted), v); err == nil {
			return nil
		}
	}

	preview := text
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	return fmt.Errorf("response is not valid JSON: %s", preview)
}

// stripFences removes a surrounding ```json ... ``` (or plain ```) block.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	if end := strings.LastIndex(text, "```"); end >= 0 {
		text = text[:end]
	}
	return strings.TrimSpace(text)
}

// extractObject pulls the first balanced top-level {...} out of mixed
// content, respecting strings and escapes.
func extractObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
