package ats

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"resumeforge/internal/types"
)

func fixedClock(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
}

func sampleResume() *types.ResumeProfile {
	return &types.ResumeProfile{
		Contact: types.ContactInfo{FullName: "John Doe", Email: "a@b.com"},
		Summary: "Data scientist with 3 years experience in Python and SQL.",
		Experience: []types.Experience{
			{
				Company:      "ABC",
				Position:     "Data Scientist",
				StartDate:    "2021",
				EndDate:      "2023",
				Achievements: []string{"Built ML models."},
			},
		},
		Skills: map[string][]string{
			"Programming & Tools": {"Python", "SQL"},
		},
	}
}

const sampleJD = "Looking for a Data Scientist skilled in Python, SQL, and analytics."

func TestScoreMalformedResume(t *testing.T) {
	scorer := New(WithClock(fixedClock(2025)))

	result := scorer.Score(nil, "any job description")

	want := types.ScoreResult{
		ATSScore:        0,
		KeywordMatches:  types.KeywordMatches{Technical: []string{}, Business: []string{}},
		MissingKeywords: []string{},
		Recommendations: []string{"Resume JSON is empty or malformed"},
		ScoreBreakdown:  types.ScoreBreakdown{},
	}
	if !reflect.DeepEqual(result, want) {
		t.Errorf("Score(nil) = %+v, want %+v", result, want)
	}
}

func TestScoreInsufficientContent(t *testing.T) {
	scorer := New(WithClock(fixedClock(2025)))

	tests := []struct {
		name   string
		resume *types.ResumeProfile
	}{
		{"empty profile", &types.ResumeProfile{}},
		{"nearly empty profile", &types.ResumeProfile{Summary: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scorer.Score(tt.resume, sampleJD)
			if result.ATSScore != 0 {
				t.Errorf("ATSScore = %d, want 0", result.ATSScore)
			}
			if len(result.Recommendations) != 1 || result.Recommendations[0] != "Empty or insufficient resume content" {
				t.Errorf("Recommendations = %v, want insufficient-content message", result.Recommendations)
			}
			if result.ScoreBreakdown != (types.ScoreBreakdown{}) {
				t.Errorf("ScoreBreakdown = %+v, want all zeros", result.ScoreBreakdown)
			}
		})
	}
}

func TestScoreRealisticResume(t *testing.T) {
	scorer := New(WithClock(fixedClock(2025)))

	result := scorer.Score(sampleResume(), sampleJD)

	if result.ATSScore <= 0 || result.ATSScore >= 100 {
		t.Errorf("ATSScore = %d, want strictly between 0 and 100", result.ATSScore)
	}
	if result.Recommendations == nil {
		t.Error("Recommendations is nil, want a list")
	}

	foundAnalytics := false
	for _, kw := range result.MissingKeywords {
		if strings.Contains(kw, "analytics") {
			foundAnalytics = true
		}
	}
	if !foundAnalytics {
		t.Errorf("MissingKeywords = %v, want an entry containing %q", result.MissingKeywords, "analytics")
	}

	// "Data Scientist" appears both as the resume position and as the JD
	// title, so the title factor should be a perfect match.
	if result.ScoreBreakdown.Title != 100 {
		t.Errorf("ScoreBreakdown.Title = %d, want 100", result.ScoreBreakdown.Title)
	}
}

func TestScoreDeterminism(t *testing.T) {
	scorer := New(WithClock(fixedClock(2025)))

	first := scorer.Score(sampleResume(), sampleJD)
	second := scorer.Score(sampleResume(), sampleJD)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated scoring differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestScoreBounds(t *testing.T) {
	scorer := New(WithClock(fixedClock(2025)))

	resumes := []*types.ResumeProfile{
		sampleResume(),
		{
			Summary: strings.Repeat("python sql docker kubernetes aws terraform ", 20),
			Skills:  map[string][]string{"Technical": {"Python", "SQL", "Docker", "Kubernetes", "AWS"}},
			Experience: []types.Experience{
				{Position: "Engineer", StartDate: "2000", EndDate: "Present"},
			},
		},
	}
	jds := []string{sampleJD, "python", strings.Repeat("unrelated words only here ", 10)}

	for i, resume := range resumes {
		for j, jd := range jds {
			result := scorer.Score(resume, jd)
			if result.ATSScore < 0 || result.ATSScore > 100 {
				t.Errorf("resume %d jd %d: ATSScore = %d out of range", i, j, result.ATSScore)
			}
			for name, v := range map[string]int{
				"skills":     result.ScoreBreakdown.Skills,
				"keywords":   result.ScoreBreakdown.Keywords,
				"title":      result.ScoreBreakdown.Title,
				"experience": result.ScoreBreakdown.Experience,
			} {
				if v < 0 || v > 100 {
					t.Errorf("resume %d jd %d: breakdown %s = %d out of range", i, j, name, v)
				}
			}
		}
	}
}

func TestScoreTitleNeutrality(t *testing.T) {
	scorer := New(WithClock(fixedClock(2025)))

	// No title label, no hiring phrasing, no common title phrase: the title
	// factor must sit at exactly the neutral midpoint regardless of resume.
	jd := "Must know python and sql. Competitive salary and benefits."

	result := scorer.Score(sampleResume(), jd)
	if result.ScoreBreakdown.Title != 50 {
		t.Errorf("ScoreBreakdown.Title = %d, want 50", result.ScoreBreakdown.Title)
	}
}

func TestScoreKeywordMonotonicity(t *testing.T) {
	scorer := New(WithClock(fixedClock(2025)))

	base := sampleResume()
	before := scorer.Score(base, sampleJD)

	// "skilled" is in the JD but not in the base resume
	richer := sampleResume()
	richer.Summary += " Highly skilled"
	after := scorer.Score(richer, sampleJD)

	if after.ScoreBreakdown.Keywords < before.ScoreBreakdown.Keywords {
		t.Errorf("keyword score decreased after adding a JD token: %d -> %d",
			before.ScoreBreakdown.Keywords, after.ScoreBreakdown.Keywords)
	}
}

func TestScoreTruncation(t *testing.T) {
	scorer := New(WithClock(fixedClock(2025)))

	var jdWords, resumeWords []string
	for i := 0; i < 60; i++ {
		jdWords = append(jdWords, fmt.Sprintf("matchword%d", i))
		resumeWords = append(resumeWords, fmt.Sprintf("matchword%d", i))
	}
	for i := 0; i < 40; i++ {
		jdWords = append(jdWords, fmt.Sprintf("missingword%d", i))
	}

	resume := &types.ResumeProfile{Summary: strings.Join(resumeWords, " ")}
	result := scorer.Score(resume, strings.Join(jdWords, " "))

	if len(result.KeywordMatches.Technical) > 20 {
		t.Errorf("technical matches = %d, want <= 20", len(result.KeywordMatches.Technical))
	}
	if len(result.KeywordMatches.Business) > 20 {
		t.Errorf("business matches = %d, want <= 20", len(result.KeywordMatches.Business))
	}
	if len(result.MissingKeywords) > 15 {
		t.Errorf("missing keywords = %d, want <= 15", len(result.MissingKeywords))
	}
}

func TestScoreRecommendationTriggers(t *testing.T) {
	scorer := New(WithClock(fixedClock(2025)))

	// A sparse resume against a dense unrelated JD trips every trigger
	resume := &types.ResumeProfile{
		Summary: "Experienced retail associate focused on customer happiness.",
	}
	jd := "Position: Staff Software Engineer. Requires golang kubernetes terraform grpc distributed systems observability on-call leadership."

	result := scorer.Score(resume, jd)

	want := []string{
		"Add more technical skills relevant to the job description",
		"Include more keywords from the job description in your experience bullets",
		"Consider adjusting your job titles to better match the target role",
		"Highlight your years of experience and specific project durations",
		"Emphasize relevant projects, internships, or coursework to strengthen experience",
	}
	if !reflect.DeepEqual(result.Recommendations, want) {
		t.Errorf("Recommendations = %v, want %v", result.Recommendations, want)
	}
}

func TestScoreConcurrentUse(t *testing.T) {
	scorer := New(WithClock(fixedClock(2025)))
	reference := scorer.Score(sampleResume(), sampleJD)

	done := make(chan types.ScoreResult, 8)
	for i := 0; i < 8; i++ {
		go func() {
			done <- scorer.Score(sampleResume(), sampleJD)
		}()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; !reflect.DeepEqual(got, reference) {
			t.Errorf("concurrent result differs: %+v", got)
		}
	}
}

func BenchmarkScore(b *testing.B) {
	scorer := New(WithClock(fixedClock(2025)))
	resume := sampleResume()

	for b.Loop() {
		scorer.Score(resume, sampleJD)
	}
}
