package ats

import (
	"strings"
	"testing"

	"resumeforge/internal/types"
)

func TestFlattenResume(t *testing.T) {
	resume := &types.ResumeProfile{
		Contact: types.ContactInfo{FullName: "Jane Roe", Email: "jane@example.com"},
		Links:   map[string]string{"GitHub": "https://github.com/jane"},
		Summary: "Platform engineer.",
		Education: []types.Education{
			{Institution: "State University", Degree: "BSc", Field: "Computer Science"},
		},
		Experience: []types.Experience{
			{
				Company:      "Acme",
				Position:     "SRE",
				StartDate:    "2020",
				EndDate:      "2023",
				Achievements: []string{"Cut deploy time in half."},
			},
		},
		Projects: []types.Project{
			{Title: "homelab", Description: "Self-hosted services", Technologies: []string{"k3s"}, Bullets: []string{"Runs on three nodes"}},
		},
		Certifications: []types.Certification{
			{Name: "CKA"},
			{Name: "AWS SAA", Issuer: "Amazon", Year: "2022"},
		},
		Skills: map[string][]string{
			"Technical": {"Go", "Terraform"},
		},
		Languages: []string{"English", "German"},
	}

	flat := FlattenResume(resume)

	for _, want := range []string{
		"Jane Roe", "jane@example.com", "https://github.com/jane",
		"Platform engineer.", "State University", "Computer Science",
		"Acme", "SRE", "Cut deploy time in half.",
		"homelab", "k3s", "Runs on three nodes",
		"CKA", "AWS SAA — Amazon (2022)",
		"Technical", "Go", "Terraform",
		"English", "German",
	} {
		if !strings.Contains(flat, want) {
			t.Errorf("flattened text missing %q", want)
		}
	}

	// Name precedes summary, summary precedes experience, skills precede languages
	order := []string{"Jane Roe", "Platform engineer.", "Acme", "Terraform", "German"}
	last := -1
	for _, marker := range order {
		idx := strings.Index(flat, marker)
		if idx <= last {
			t.Errorf("field %q out of order in flattened text", marker)
		}
		last = idx
	}

	// The delimiter keeps adjacent fields from merging into one token
	if !strings.Contains(flat, " \n ") {
		t.Error("flattened text missing newline delimiter between fields")
	}
}

func TestFlattenResumeEmpty(t *testing.T) {
	if got := FlattenResume(&types.ResumeProfile{}); got != "" {
		t.Errorf("FlattenResume(empty) = %q, want empty string", got)
	}
	if got := FlattenResume(nil); got != "" {
		t.Errorf("FlattenResume(nil) = %q, want empty string", got)
	}
}

func TestFlattenResumeStable(t *testing.T) {
	resume := &types.ResumeProfile{
		Links: map[string]string{"a": "https://a", "b": "https://b", "c": "https://c"},
		Skills: map[string][]string{
			"Analytics": {"Tableau"},
			"ML & AI":   {"PyTorch"},
			"Tools":     {"Git"},
		},
		Summary: "Enough content to pass the minimum length check.",
	}

	first := FlattenResume(resume)
	for i := 0; i < 10; i++ {
		if got := FlattenResume(resume); got != first {
			t.Fatalf("flatten output unstable across runs")
		}
	}
}
