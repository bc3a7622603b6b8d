package ats

import (
	"testing"

	"resumeforge/internal/types"
)

func resumeWithPositions(positions ...string) *types.ResumeProfile {
	resume := &types.ResumeProfile{}
	for _, p := range positions {
		resume.Experience = append(resume.Experience, types.Experience{Position: p})
	}
	return resume
}

func TestTitleSimilarity(t *testing.T) {
	tests := []struct {
		name   string
		resume *types.ResumeProfile
		jd     string
		want   float64
	}{
		{
			name:   "explicit title label full match",
			resume: resumeWithPositions("Backend Engineer"),
			jd:     "Title: Backend Engineer\nWe build APIs.",
			want:   1.0,
		},
		{
			name:   "seeking phrasing partial match",
			resume: resumeWithPositions("Software Developer"),
			jd:     "We are seeking a senior developer to join our team",
			want:   0.5, // {senior, developer} vs {software, developer}
		},
		{
			name:   "common title fallback",
			resume: resumeWithPositions("Data Scientist"),
			jd:     "Join our data scientist team and build great things together",
			want:   1.0,
		},
		{
			name:   "no title signal is neutral",
			resume: resumeWithPositions("Data Scientist"),
			jd:     "Must know python and sql. Great benefits.",
			want:   0.5,
		},
		{
			name:   "no title signal neutral even with empty resume",
			resume: &types.ResumeProfile{},
			jd:     "Must know python and sql. Great benefits.",
			want:   0.5,
		},
		{
			name:   "title found but resume has no positions",
			resume: &types.ResumeProfile{},
			jd:     "Title: Backend Engineer",
			want:   0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titleSimilarity(tt.resume, tt.jd)
			if got != tt.want {
				t.Errorf("titleSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTitleRulesAreCumulative(t *testing.T) {
	// Both the label rule and the "position" rule fire; their tokens union.
	jd := "Title: Data Engineer\nThis engineer position is remote."
	resume := resumeWithPositions("Data Engineer")

	got := titleSimilarity(resume, jd)
	if got <= 0 || got > 1 {
		t.Fatalf("titleSimilarity() = %v, want in (0,1]", got)
	}
	// "data" and "engineer" match but tokens from the second rule
	// ("this", "is", "remote") dilute the recall below a full score.
	if got == 1.0 {
		t.Errorf("titleSimilarity() = 1.0, expected dilution from cumulative rules")
	}
}
