package content

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Fence wraps an artifact payload in its fenced block:
//
//	```quiz_data
//	{ ... }
//	```
func Fence(tag string, payload []byte) string {
	return "```" + tag + "\n" + strings.TrimSpace(string(payload)) + "\n```"
}

func HasFence(text, tag string) bool {
	return strings.Contains(text, "```"+tag)
}

// ExtractFence returns the body of the first ```tag block in text.
func ExtractFence(text, tag string) ([]byte, bool) {
	marker := "```" + tag
	start := strings.Index(text, marker)
	if start < 0 {
		return nil, false
	}
	rest := text[start+len(marker):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return nil, false
	}
	body := strings.TrimSpace(rest[:end])
	if body == "" {
		return nil, false
	}
	return []byte(body), true
}

// StripCodeFences removes a surrounding markdown code fence, tolerating an
// optional language tag. Classifier replies often arrive wrapped this way.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		first := strings.TrimSpace(s[:idx])
		// A bare language tag on the fence line, e.g. ```json
		if first != "" && !strings.ContainsAny(first, "{}[]") {
			s = s[idx+1:]
		} else if strings.HasPrefix(first, "json") {
			s = strings.TrimPrefix(s, "json")
		}
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// ExtractObjectWithKeys scans free text for a balanced JSON object that
// contains every one of the given top-level keys. Best-effort repair for
// replies where the model emitted the artifact without its fence.
func ExtractObjectWithKeys(text string, keys []string) ([]byte, bool) {
	for start := 0; start < len(text); start++ {
		if text[start] != '{' {
			continue
		}
		end, ok := matchBrace(text, start)
		if !ok {
			continue
		}
		candidate := []byte(text[start : end+1])
		if !json.Valid(candidate) {
			continue
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(candidate, &obj); err != nil {
			continue
		}
		if hasAllKeys(obj, keys) {
			var compact bytes.Buffer
			if err := json.Indent(&compact, candidate, "", "  "); err == nil {
				return compact.Bytes(), true
			}
			return candidate, true
		}
		// Skip past this object so nested matches are not re-scanned.
		start = end
	}
	return nil, false
}

func matchBrace(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
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
				return i, true
			}
		}
	}
	return 0, false
}

func hasAllKeys(obj map[string]json.RawMessage, keys []string) bool {
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			return false
		}
	}
	return true
}
