package ats

import (
	"regexp"
	"strings"
)

// technicalVocabulary lists language, framework, tool, platform and general
// engineering terms. Matching is by substring, so "postgresql14" still
// classifies as technical.
var technicalVocabulary = []string{
	"python", "java", "javascript", "sql", "react", "nodejs", "aws", "docker",
	"kubernetes", "tensorflow", "pytorch", "pandas", "numpy", "git", "linux",
	"mongodb", "postgresql", "redis", "spark", "hadoop", "tableau", "powerbi",
	"machine learning", "deep learning", "api", "rest", "graphql", "microservices",
	"ci/cd", "devops", "cloud", "database", "algorithm", "framework", "library",
}

// businessVocabulary lists methodology, soft-skill and process terms
var businessVocabulary = []string{
	"agile", "scrum", "project", "management", "leadership", "communication",
	"collaboration", "stakeholder", "strategy", "analysis", "business",
	"requirements", "planning", "coordination", "presentation", "documentation",
}

var (
	acronymPattern   = regexp.MustCompile(`^[A-Z]+$`)
	extensionPattern = regexp.MustCompile(`^\w+\.\w+`)
)

// categorizeKeywords splits matched keywords into technical and business
// buckets. Unrecognized tokens default to business unless they look like an
// acronym or a dotted name (file-extension shape).
func categorizeKeywords(tokens []string) (technical, business []string) {
	technical = []string{}
	business = []string{}

	for _, token := range tokens {
		lower := strings.ToLower(token)
		switch {
		case matchesAny(lower, technicalVocabulary):
			technical = append(technical, token)
		case matchesAny(lower, businessVocabulary):
			business = append(business, token)
		case acronymPattern.MatchString(token) || extensionPattern.MatchString(token):
			technical = append(technical, token)
		default:
			business = append(business, token)
		}
	}
	return technical, business
}

func matchesAny(token string, vocabulary []string) bool {
	for _, term := range vocabulary {
		if strings.Contains(token, term) {
			return true
		}
	}
	return false
}
