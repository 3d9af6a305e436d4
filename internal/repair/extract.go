package repair

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON pulls a JSON object out of a model response. Models wrap
// payloads in fenced code blocks or prefix them with commentary, so the
// response is first stripped of fences and then scanned for the first
// balanced object. If no valid JSON object can be located the extraction
// fails.
func ExtractJSON(text string) ([]byte, error) {
	text = strings.TrimSpace(text)

	// Handle markdown code blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
	}
	text = strings.TrimSpace(text)

	if json.Valid([]byte(text)) {
		return []byte(text), nil
	}

	// Fall back to the first balanced object boundary in the text.
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	if end := matchBrace(text, start); end != -1 {
		candidate := text[start : end+1]
		if json.Valid([]byte(candidate)) {
			return []byte(candidate), nil
		}
	}

	return nil, fmt.Errorf("no valid JSON object could be extracted from response")
}

// matchBrace returns the index of the brace closing the object opened at
// start, skipping string literals and escapes. Returns -1 when unbalanced.
func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
