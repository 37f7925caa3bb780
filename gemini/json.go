package gemini

import (
	"encoding/json"
	"strings"
)

// Model responses are asked to be pure JSON but may arrive wrapped in prose
// or code fences. These helpers carve the JSON payload out defensively;
// failure to find or parse one is reported via the bool, never an error.

// extractJSONObject returns the outermost {...} span in text.
func extractJSONObject(text string) (string, bool) {
	return extractSpan(text, '{', '}')
}

// extractJSONArray returns the outermost [...] span in text.
func extractJSONArray(text string) (string, bool) {
	return extractSpan(text, '[', ']')
}

func extractSpan(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// decodeJSON unmarshals a carved-out JSON span into v.
func decodeJSON(span string, v any) bool {
	return json.Unmarshal([]byte(span), v) == nil
}
