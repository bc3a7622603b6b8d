package ats

import (
	"sort"
	"strings"

	"resumeforge/internal/types"
)

// fieldDelimiter contains a newline so tokens from adjacent fields never merge
const fieldDelimiter = " \n "

// FlattenResume projects a structured profile into a single text blob for
// overlap-based scoring. Field order is fixed: contact, links, summary,
// education, experience with achievements, projects, certifications, skills,
// languages. Map-backed sections are emitted in sorted key order so the
// output is stable across runs.
func FlattenResume(resume *types.ResumeProfile) string {
	if resume == nil {
		return ""
	}

	var parts []string
	add := func(values ...string) {
		for _, v := range values {
			if v != "" {
				parts = append(parts, v)
			}
		}
	}

	add(resume.Contact.FullName, resume.Contact.Email, resume.Contact.Phone, resume.Contact.Location)

	for _, label := range sortedKeys(resume.Links) {
		add(resume.Links[label])
	}

	add(resume.Summary)

	for _, edu := range resume.Education {
		add(edu.Institution, edu.Degree, edu.Field, edu.Location, edu.GraduationDate, edu.GPA)
	}

	for _, exp := range resume.Experience {
		add(exp.Company, exp.Position, exp.Location, exp.StartDate, exp.EndDate)
		add(exp.Achievements...)
	}

	for _, proj := range resume.Projects {
		add(proj.Title, proj.Description)
		add(proj.Technologies...)
		add(proj.Bullets...)
	}

	for _, cert := range resume.Certifications {
		add(cert.String())
	}

	for _, category := range sortedSkillCategories(resume.Skills) {
		add(category)
		add(resume.Skills[category]...)
	}

	add(resume.Languages...)

	return strings.Join(parts, fieldDelimiter)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSkillCategories(skills map[string][]string) []string {
	keys := make([]string, 0, len(skills))
	for k := range skills {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
