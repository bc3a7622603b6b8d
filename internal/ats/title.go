package ats

import (
	"regexp"
	"strings"

	"resumeforge/internal/types"
)

// titleRules is the ordered rule table for locating a target job title inside
// a job description. Rules are cumulative: every matching rule contributes its
// captured tokens, they do not short-circuit.
var titleRules = []*regexp.Regexp{
	regexp.MustCompile(`(?:position|role|job|title):\s*([^\n\r,]+)`),
	regexp.MustCompile(`(?:seeking|hiring|looking for)\s+(?:a\s+)?([^\n\r,]+?)(?:\s+to|\s+with|\s+who)`),
	regexp.MustCompile(`([^\n\r,]+?)\s*(?:position|role|opportunity)`),
	regexp.MustCompile(`we are hiring\s+(?:a\s+)?([^\n\r,]+)`),
}

// commonTitles is the fallback scan list used when no rule matched
var commonTitles = []string{
	"data scientist", "machine learning engineer", "software engineer",
	"data engineer", "analyst", "developer", "manager", "director",
	"senior", "junior", "lead", "principal", "staff",
}

// neutralTitleScore is returned when the job description carries no
// detectable title: absence of signal must not penalize or reward.
const neutralTitleScore = 0.5

// titleSimilarity estimates how well the resume's job history matches the
// target role. The result is recall toward the JD's title tokens in [0,1].
func titleSimilarity(resume *types.ResumeProfile, jobDescription string) float64 {
	jdLower := strings.ToLower(jobDescription)

	jdTitleTokens := make(map[string]struct{})
	for _, rule := range titleRules {
		for _, match := range rule.FindAllStringSubmatch(jdLower, -1) {
			addTokens(jdTitleTokens, strings.TrimSpace(match[1]))
		}
	}

	if len(jdTitleTokens) == 0 {
		for _, title := range commonTitles {
			if strings.Contains(jdLower, title) {
				addTokens(jdTitleTokens, title)
			}
		}
	}

	if len(jdTitleTokens) == 0 {
		return neutralTitleScore
	}

	resumeTitleTokens := make(map[string]struct{})
	for _, exp := range resume.Experience {
		if exp.Position != "" {
			addTokens(resumeTitleTokens, strings.ToLower(exp.Position))
		}
	}

	overlap := 0
	for tok := range jdTitleTokens {
		if _, ok := resumeTitleTokens[tok]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(len(jdTitleTokens))
}
