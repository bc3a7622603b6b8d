package render

import (
	"strings"
	"testing"

	"resumeforge/internal/types"
)

func TestHTMLFullProfile(t *testing.T) {
	resume := &types.ResumeProfile{
		Contact: types.ContactInfo{
			FullName: "Jane Roe",
			Email:    "jane@example.com",
			Phone:    "555-0100",
			Location: "Berlin",
		},
		Links:   map[string]string{"GitHub": "https://github.com/jane"},
		Summary: "Platform engineer with eight years of infrastructure work.",
		Education: []types.Education{
			{Institution: "State University", Degree: "BSc", Field: "Computer Science", GraduationDate: "2016", GPA: "3.8"},
		},
		Experience: []types.Experience{
			{Company: "Acme", Position: "SRE", Location: "Berlin", StartDate: "2020", EndDate: "", Achievements: []string{"Cut deploy time in half."}},
		},
		Projects: []types.Project{
			{Title: "homelab", Description: "Self-hosted services", Bullets: []string{"Runs on three nodes"}},
		},
		Certifications: []types.Certification{
			{Name: "CKA"},
			{Name: "AWS SAA", Issuer: "Amazon", Year: "2022"},
		},
		Skills:    map[string][]string{"Technical": {"Go", "Terraform"}},
		Languages: []string{"English", "German"},
	}

	doc := HTML(resume)

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<div class="name">Jane Roe</div>`,
		`<a href="mailto:jane@example.com"`,
		`<a href="https://github.com/jane" target="_blank">GitHub</a>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}

	for _, section := range []string{"Career Objective", "Skills", "Experience", "Education", "Certificates", "Projects", "Languages"} {
		if !strings.Contains(doc, ">"+section+"<") {
			t.Errorf("rendered HTML missing section %q", section)
		}
	}

	if !strings.Contains(doc, "2020 – Present") {
		t.Error("empty end date should render as Present")
	}
	if !strings.Contains(doc, "AWS SAA — Amazon (2022)") {
		t.Error("detailed certification not normalized to display line")
	}
	if !strings.Contains(doc, "BSc in Computer Science – 3.8") {
		t.Error("education degree line not assembled")
	}
}

func TestHTMLEscapesContent(t *testing.T) {
	resume := &types.ResumeProfile{
		Contact: types.ContactInfo{FullName: `<script>alert("x")</script>`},
		Summary: "Safe & sound",
	}

	doc := HTML(resume)

	if strings.Contains(doc, `<script>alert`) {
		t.Error("rendered HTML contains unescaped script tag")
	}
	if !strings.Contains(doc, "Safe &amp; sound") {
		t.Error("ampersand not escaped")
	}
}

func TestHTMLOmitsEmptySections(t *testing.T) {
	resume := &types.ResumeProfile{
		Contact: types.ContactInfo{FullName: "Jane Roe"},
	}

	doc := HTML(resume)

	for _, section := range []string{"Career Objective", "Skills", "Experience", "Education", "Certificates", "Projects", "Languages"} {
		if strings.Contains(doc, ">"+section+"<") {
			t.Errorf("empty profile should not render section %q", section)
		}
	}
}

func TestHTMLNilProfile(t *testing.T) {
	doc := HTML(nil)
	if !strings.Contains(doc, "<!DOCTYPE html>") {
		t.Error("nil profile should still render a valid document shell")
	}
}
