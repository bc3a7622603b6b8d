package ats

import (
	"math"
	"sort"
	"strings"
	"time"

	"resumeforge/internal/types"
)

// Scoring weights. The partition is a design constant, not runtime config.
const (
	weightSkills     = 0.40
	weightKeywords   = 0.30
	weightTitle      = 0.20
	weightExperience = 0.10
)

const (
	// skillsMatchRatio: matching this share of the JD's distinct tokens as
	// resume skills counts as a perfect skills score.
	skillsMatchRatio = 0.3
	// fullCreditYears: total experience at which the experience factor maxes out.
	fullCreditYears = 5.0
	// minResumeChars: flattened resumes shorter than this are rejected as
	// insufficient content.
	minResumeChars = 20

	maxMatchedKeywords = 20
	maxMissingKeywords = 15
)

const (
	recMalformedResume     = "Resume JSON is empty or malformed"
	recInsufficientContent = "Empty or insufficient resume content"
	recAddSkills           = "Add more technical skills relevant to the job description"
	recAddKeywords         = "Include more keywords from the job description in your experience bullets"
	recAdjustTitles        = "Consider adjusting your job titles to better match the target role"
	recHighlightYears      = "Highlight your years of experience and specific project durations"
	recEmphasizeProjects   = "Emphasize relevant projects, internships, or coursework to strengthen experience"
)

// Scorer computes ATS compatibility scores. It is stateless apart from its
// clock and safe for concurrent use.
type Scorer struct {
	now func() time.Time
}

// Option configures a Scorer
type Option func(*Scorer)

// WithClock overrides the current-time source, used to pin the current
// calendar year in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		s.now = now
	}
}

// New creates a Scorer backed by the system clock unless overridden
func New(opts ...Option) *Scorer {
	s := &Scorer{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes a 0-100 ATS compatibility score for a resume against a job
// description, with a per-factor breakdown, matched/missing keyword lists and
// improvement recommendations. It is a pure function of its inputs: no hidden
// state, fully deterministic, and it never fails — malformed input yields a
// zero-score result rather than an error.
func (s *Scorer) Score(resume *types.ResumeProfile, jobDescription string) types.ScoreResult {
	if resume == nil {
		return zeroResult(recMalformedResume)
	}

	resumeText := FlattenResume(resume)
	if len(strings.TrimSpace(resumeText)) < minResumeChars {
		return zeroResult(recInsufficientContent)
	}

	resumeTokens := tokenSet(resumeText)
	jdTokens := tokenSet(jobDescription)

	skillsScore := scoreSkills(resume.Skills, jdTokens)
	keywordScore := scoreKeywords(resumeTokens, jdTokens)
	titleScore := titleSimilarity(resume, jobDescription)

	totalYears := totalYearsExperience(resume, s.now().Year())
	expScore := math.Min(1.0, totalYears/fullCreditYears)

	composite := skillsScore*weightSkills +
		keywordScore*weightKeywords +
		titleScore*weightTitle +
		expScore*weightExperience
	atsScore := clampScore(math.Round(composite * 100))

	matched, missing := partitionKeywords(resumeTokens, jdTokens)
	technical, business := categorizeKeywords(matched)

	return types.ScoreResult{
		ATSScore: atsScore,
		KeywordMatches: types.KeywordMatches{
			Technical: truncate(technical, maxMatchedKeywords),
			Business:  truncate(business, maxMatchedKeywords),
		},
		MissingKeywords: truncate(missing, maxMissingKeywords),
		Recommendations: buildRecommendations(skillsScore, keywordScore, titleScore, expScore, totalYears),
		ScoreBreakdown: types.ScoreBreakdown{
			Skills:     int(math.Round(skillsScore * 100)),
			Keywords:   int(math.Round(keywordScore * 100)),
			Title:      int(math.Round(titleScore * 100)),
			Experience: int(math.Round(expScore * 100)),
		},
	}
}

// scoreSkills measures overlap between the flattened skill entries and the
// JD's token set, scaled so skillsMatchRatio of the JD counts as full credit.
func scoreSkills(skills map[string][]string, jdTokens map[string]struct{}) float64 {
	skillsFlat := make(map[string]struct{})
	for _, items := range skills {
		for _, item := range items {
			addTokens(skillsFlat, item)
		}
	}

	overlap := 0
	for tok := range skillsFlat {
		if _, ok := jdTokens[tok]; ok {
			overlap++
		}
	}

	skillsTotal := max(1, len(jdTokens))
	denominator := math.Max(1, float64(skillsTotal)*skillsMatchRatio)
	return math.Min(1.0, float64(overlap)/denominator)
}

// scoreKeywords measures whole-resume token overlap with the JD
func scoreKeywords(resumeTokens, jdTokens map[string]struct{}) float64 {
	overlap := 0
	for tok := range jdTokens {
		if _, ok := resumeTokens[tok]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(max(1, len(jdTokens)))
}

// partitionKeywords splits the JD's tokens into matched and missing, each
// sorted so repeated runs over the same input produce identical results.
func partitionKeywords(resumeTokens, jdTokens map[string]struct{}) (matched, missing []string) {
	matched = []string{}
	missing = []string{}
	for tok := range jdTokens {
		if _, ok := resumeTokens[tok]; ok {
			matched = append(matched, tok)
		} else {
			missing = append(missing, tok)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)
	return matched, missing
}

// buildRecommendations evaluates the fixed trigger list in order
func buildRecommendations(skillsScore, keywordScore, titleScore, expScore, totalYears float64) []string {
	recommendations := []string{}
	if skillsScore < 0.6 {
		recommendations = append(recommendations, recAddSkills)
	}
	if keywordScore < 0.4 {
		recommendations = append(recommendations, recAddKeywords)
	}
	if titleScore < 0.4 {
		recommendations = append(recommendations, recAdjustTitles)
	}
	if expScore < 0.4 {
		recommendations = append(recommendations, recHighlightYears)
	}
	if totalYears < 2 {
		recommendations = append(recommendations, recEmphasizeProjects)
	}
	return recommendations
}

func zeroResult(recommendation string) types.ScoreResult {
	return types.ScoreResult{
		ATSScore: 0,
		KeywordMatches: types.KeywordMatches{
			Technical: []string{},
			Business:  []string{},
		},
		MissingKeywords: []string{},
		Recommendations: []string{recommendation},
		ScoreBreakdown:  types.ScoreBreakdown{},
	}
}

func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}

func truncate(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
