package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject carves the first '{' through the last '}' out of a
// model response and unmarshals it into v. Models often wrap JSON in
// prose or markdown fences; everything outside the braces is discarded.
func ExtractJSONObject(raw string, v any) error {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return ErrNoJSONFound
	}

	candidate := raw[start : end+1]
	if err := json.Unmarshal([]byte(candidate), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return nil
}
