package ats

import (
	"testing"

	"resumeforge/internal/types"
)

func TestEntryYears(t *testing.T) {
	const currentYear = 2025

	tests := []struct {
		name      string
		startDate string
		endDate   string
		want      float64
	}{
		{"plain year span", "2021", "2023", 2},
		{"months around years", "Jan 2019", "Mar 2022", 3},
		{"open-ended present", "2020", "Present", 5},
		{"open-ended current", "2020", "current", 5},
		{"open-ended now", "2020", "NOW", 5},
		{"empty end date defaults to current year", "2022", "", 3},
		{"empty dates give half-year credit", "", "", 0.5},
		{"empty start with end date still half-year", "", "2023", 0.5},
		{"unparseable start contributes zero", "sometime", "2023", 0},
		{"reversed span clamps to zero", "2023", "2020", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entryYears(tt.startDate, tt.endDate, currentYear)
			if got != tt.want {
				t.Errorf("entryYears(%q, %q) = %v, want %v", tt.startDate, tt.endDate, got, tt.want)
			}
		})
	}
}

func TestEntryYearsUnparseableStart(t *testing.T) {
	// A start date with no year and no ongoing marker resolves to the
	// current year, so a "Present" end contributes nothing.
	if got := entryYears("unknown", "Present", 2025); got != 0 {
		t.Errorf("entryYears = %v, want 0", got)
	}
}

func TestTotalYearsExperience(t *testing.T) {
	resume := &types.ResumeProfile{
		Experience: []types.Experience{
			{StartDate: "2018", EndDate: "2021"},
			{StartDate: "2021", EndDate: "Present"},
			{StartDate: "", EndDate: ""},
		},
	}

	// 3 + 4 + 0.5 with the year pinned to 2025
	if got := totalYearsExperience(resume, 2025); got != 7.5 {
		t.Errorf("totalYearsExperience = %v, want 7.5", got)
	}
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"2019", 2019},
		{"June 1998", 1998},
		{"Present", 2025},
		{"no year here", 2025},
		{"1899 too old", 2025},
	}

	for _, tt := range tests {
		if got := extractYear(tt.input, 2025); got != tt.want {
			t.Errorf("extractYear(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
