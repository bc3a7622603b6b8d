package ai

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// profileDefaults maps every top-level profile key to its empty JSON value.
// Upstream contract: a parsed profile always carries every key, with empty
// defaults rather than absent fields.
var profileDefaults = map[string]string{
	"contact_info":   `{"full_name":"","email":"","phone":"","location":""}`,
	"links":          `{}`,
	"summary":        `""`,
	"education":      `[]`,
	"experience":     `[]`,
	"projects":       `[]`,
	"certifications": `[]`,
	"skills":         `{}`,
	"languages":      `[]`,
}

// CleanModelJSON strips markdown code fences that models wrap around JSON
// payloads and trims surrounding whitespace.
func CleanModelJSON(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	cleaned = strings.TrimSpace(cleaned)

	// Models occasionally prepend prose before the payload; fall back to the
	// outermost JSON object when the whole string is not valid JSON.
	if !gjson.Valid(cleaned) {
		if start := strings.Index(cleaned, "{"); start >= 0 {
			if end := strings.LastIndex(cleaned, "}"); end > start {
				candidate := cleaned[start : end+1]
				if gjson.Valid(candidate) {
					return candidate
				}
			}
		}
	}
	return cleaned
}

// EnsureProfileDefaults fills in any missing top-level profile keys so the
// all-fields-present contract holds even when the model omits empty sections.
func EnsureProfileDefaults(jsonStr string) string {
	if !gjson.Valid(jsonStr) {
		return jsonStr
	}
	for key, def := range profileDefaults {
		if gjson.Get(jsonStr, key).Exists() {
			continue
		}
		if updated, err := sjson.SetRaw(jsonStr, key, def); err == nil {
			jsonStr = updated
		}
	}
	return jsonStr
}
