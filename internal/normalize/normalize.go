// Package normalize converts raw model output into the caller's expected
// shape. Models wrap JSON in prose or markdown fences and prepend
// conversational text to documents; everything here is best-effort and never
// returns an error for malformed model output.
package normalize

import (
	"encoding/json"
	"strings"
)

// Keywords extracts a list of keyword strings from raw model output. It
// accepts a bare JSON array, or an object carrying a "keywords" or "skills"
// array field. Any other shape yields an empty list. The list is passed
// through as-is; length limits are enforced at the prompt level, not here.
func Keywords(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []string{}
	}

	var direct []any
	if err := json.Unmarshal([]byte(trimmed), &direct); err == nil {
		return stringSlice(direct)
	}

	var wrapped map[string]any
	if err := json.Unmarshal([]byte(trimmed), &wrapped); err != nil {
		return []string{}
	}
	if arr, ok := wrapped["keywords"].([]any); ok {
		return stringSlice(arr)
	}
	if arr, ok := wrapped["skills"].([]any); ok {
		return stringSlice(arr)
	}
	return []string{}
}

// MergeKeywords unions extracted keywords into an existing list, preserving
// order and dropping duplicates by exact string match. Merging the same
// keywords twice yields the same set.
func MergeKeywords(existing, extracted []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(extracted))
	out := make([]string, 0, len(existing)+len(extracted))
	for _, list := range [][]string{existing, extracted} {
		for _, kw := range list {
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			out = append(out, kw)
		}
	}
	return out
}

func stringSlice(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
