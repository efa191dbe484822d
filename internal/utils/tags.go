package utils

import (
	"encoding/json"
	"strings"
)

// ParseTags accepts either a JSON array of strings or a comma-separated
// list and returns the trimmed, non-empty tags.
func ParseTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		tags = strings.Split(raw, ",")
	}

	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
