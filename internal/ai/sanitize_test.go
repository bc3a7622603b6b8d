package ai

import (
	"encoding/json"
	"testing"

	"github.com/tidwall/gjson"

	"resumeforge/internal/types"
)

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain json untouched",
			input: `{"summary":"x"}`,
			want:  `{"summary":"x"}`,
		},
		{
			name:  "json fence stripped",
			input: "```json\n{\"summary\":\"x\"}\n```",
			want:  `{"summary":"x"}`,
		},
		{
			name:  "bare fence stripped",
			input: "```\n{\"summary\":\"x\"}\n```",
			want:  `{"summary":"x"}`,
		},
		{
			name:  "leading prose removed",
			input: "Here is the resume:\n{\"summary\":\"x\"}",
			want:  `{"summary":"x"}`,
		},
		{
			name:  "whitespace trimmed",
			input: "  {\"summary\":\"x\"}\n\n",
			want:  `{"summary":"x"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanModelJSON(tt.input); got != tt.want {
				t.Errorf("CleanModelJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnsureProfileDefaults(t *testing.T) {
	// A model response that only mentions a summary still decodes into a
	// profile with every field present.
	filled := EnsureProfileDefaults(`{"summary":"Engineer"}`)

	for _, key := range []string{
		"contact_info", "links", "summary", "education", "experience",
		"projects", "certifications", "skills", "languages",
	} {
		if !gjson.Get(filled, key).Exists() {
			t.Errorf("key %q missing after defaulting", key)
		}
	}

	var profile types.ResumeProfile
	if err := json.Unmarshal([]byte(filled), &profile); err != nil {
		t.Fatalf("defaulted JSON does not decode: %v", err)
	}
	if profile.Summary != "Engineer" {
		t.Errorf("Summary = %q, want %q", profile.Summary, "Engineer")
	}
	if profile.Links == nil || profile.Skills == nil {
		t.Error("map fields still nil after defaulting")
	}
}

func TestEnsureProfileDefaultsPreservesExisting(t *testing.T) {
	input := `{"skills":{"Technical":["Go"]},"languages":["English"]}`
	filled := EnsureProfileDefaults(input)

	if got := gjson.Get(filled, "skills.Technical.0").String(); got != "Go" {
		t.Errorf("existing skills overwritten: %q", got)
	}
	if got := gjson.Get(filled, "languages.0").String(); got != "English" {
		t.Errorf("existing languages overwritten: %q", got)
	}
}
