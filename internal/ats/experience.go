package ats

import (
	"regexp"
	"strconv"

	"resumeforge/internal/types"
)

var (
	yearPattern    = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	ongoingPattern = regexp.MustCompile(`(?i)(present|current|now)`)
)

// defaultEntryYears is the heuristic credit for an entry with no start date,
// e.g. an ongoing internship with unspecified duration.
const defaultEntryYears = 0.5

// extractYear pulls a 4-digit year out of a date string. "Present",
// "Current" and "Now" resolve to the current calendar year, as does any
// string with no recognizable year.
func extractYear(dateStr string, currentYear int) int {
	if match := yearPattern.FindString(dateStr); match != "" {
		year, _ := strconv.Atoi(match)
		return year
	}
	if ongoingPattern.MatchString(dateStr) {
		return currentYear
	}
	return currentYear
}

// entryYears computes the contribution of a single experience entry
func entryYears(startDate, endDate string, currentYear int) float64 {
	if startDate == "" {
		return defaultEntryYears
	}
	startYear := extractYear(startDate, currentYear)
	endYear := currentYear
	if endDate != "" {
		endYear = extractYear(endDate, currentYear)
	}
	if endYear < startYear {
		return 0
	}
	return float64(endYear - startYear)
}

// totalYearsExperience sums year spans across all experience entries, uncapped
func totalYearsExperience(resume *types.ResumeProfile, currentYear int) float64 {
	total := 0.0
	for _, exp := range resume.Experience {
		total += entryYears(exp.StartDate, exp.EndDate, currentYear)
	}
	return total
}
