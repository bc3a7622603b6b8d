package formatters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"resumeforge/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ResumeProfile", &ProfileTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeProfile", &ProfileMarkdownFormatter{})
	registry.RegisterFormatter("text", "ScoreResult", &ScoreTextFormatter{})
	registry.RegisterFormatter("markdown", "ScoreResult", &ScoreMarkdownFormatter{})
	registry.RegisterFormatter("text", "RewriteResponse", &RewriteTextFormatter{})
	registry.RegisterFormatter("markdown", "RewriteResponse", &RewriteMarkdownFormatter{})
	registry.RegisterFormatter("text", "CoverLetterResponse", &CoverLetterTextFormatter{})
	registry.RegisterFormatter("markdown", "CoverLetterResponse", &CoverLetterMarkdownFormatter{})
	registry.RegisterFormatter("text", "InterviewQuestionsResponse", &InterviewTextFormatter{})
	registry.RegisterFormatter("markdown", "InterviewQuestionsResponse", &InterviewMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ResumeProfile:
		return "ResumeProfile"
	case types.ScoreResult:
		return "ScoreResult"
	case types.RewriteResponse:
		return "RewriteResponse"
	case types.CoverLetterResponse:
		return "CoverLetterResponse"
	case types.InterviewQuestionsResponse:
		return "InterviewQuestionsResponse"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// writeKeywordList writes one keyword section as a bulleted list
func writeKeywordList(output *strings.Builder, heading string, keywords []string, markdown bool) {
	if len(keywords) == 0 {
		return
	}
	if markdown {
		output.WriteString("### " + heading + "\n")
	} else {
		output.WriteString(heading + ":\n")
	}
	for _, keyword := range keywords {
		output.WriteString(fmt.Sprintf("- %s\n", keyword))
	}
	output.WriteString("\n")
}

// ScoreTextFormatter handles text formatting for scoring results
type ScoreTextFormatter struct{}

func (stf *ScoreTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScoreResult)
	if !ok {
		return "", fmt.Errorf("expected ScoreResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS COMPATIBILITY SCORE ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %d/100\n\n", result.ATSScore))

	output.WriteString("=== BREAKDOWN ===\n")
	output.WriteString(fmt.Sprintf("Skills Match:     %d/100\n", result.ScoreBreakdown.Skills))
	output.WriteString(fmt.Sprintf("Keyword Coverage: %d/100\n", result.ScoreBreakdown.Keywords))
	output.WriteString(fmt.Sprintf("Title Alignment:  %d/100\n", result.ScoreBreakdown.Title))
	output.WriteString(fmt.Sprintf("Experience:       %d/100\n\n", result.ScoreBreakdown.Experience))

	output.WriteString("=== MATCHED KEYWORDS ===\n")
	writeKeywordList(&output, "Technical", result.KeywordMatches.Technical, false)
	writeKeywordList(&output, "Business", result.KeywordMatches.Business, false)
	if len(result.KeywordMatches.Technical) == 0 && len(result.KeywordMatches.Business) == 0 {
		output.WriteString("None.\n\n")
	}

	if len(result.MissingKeywords) > 0 {
		output.WriteString("=== MISSING KEYWORDS ===\n")
		writeKeywordList(&output, "From the job description", result.MissingKeywords, false)
	}

	if len(result.Recommendations) > 0 {
		output.WriteString("=== RECOMMENDATIONS ===\n")
		for i, recommendation := range result.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, recommendation))
		}
	}

	return output.String(), nil
}

func (stf *ScoreTextFormatter) SupportedType() string {
	return "ScoreResult"
}

// ScoreMarkdownFormatter handles markdown formatting for scoring results
type ScoreMarkdownFormatter struct{}

func (smf *ScoreMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScoreResult)
	if !ok {
		return "", fmt.Errorf("expected ScoreResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Compatibility Score\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/100\n\n", result.ATSScore))

	output.WriteString("## Breakdown\n\n")
	output.WriteString("| Component | Score |\n|---|---|\n")
	output.WriteString(fmt.Sprintf("| Skills Match | %d/100 |\n", result.ScoreBreakdown.Skills))
	output.WriteString(fmt.Sprintf("| Keyword Coverage | %d/100 |\n", result.ScoreBreakdown.Keywords))
	output.WriteString(fmt.Sprintf("| Title Alignment | %d/100 |\n", result.ScoreBreakdown.Title))
	output.WriteString(fmt.Sprintf("| Experience | %d/100 |\n\n", result.ScoreBreakdown.Experience))

	output.WriteString("## Matched Keywords\n\n")
	writeKeywordList(&output, "Technical", result.KeywordMatches.Technical, true)
	writeKeywordList(&output, "Business", result.KeywordMatches.Business, true)
	if len(result.KeywordMatches.Technical) == 0 && len(result.KeywordMatches.Business) == 0 {
		output.WriteString("None.\n\n")
	}

	if len(result.MissingKeywords) > 0 {
		output.WriteString("## Missing Keywords\n\n")
		writeKeywordList(&output, "From the job description", result.MissingKeywords, true)
	}

	if len(result.Recommendations) > 0 {
		output.WriteString("## Recommendations\n\n")
		for i, recommendation := range result.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, recommendation))
		}
	}

	return output.String(), nil
}

func (smf *ScoreMarkdownFormatter) SupportedType() string {
	return "ScoreResult"
}

// writeProfileSummary writes a compact plain rendition of a rewritten profile
func writeProfileSummary(output *strings.Builder, resume types.ResumeProfile) {
	if resume.Contact.FullName != "" {
		output.WriteString(resume.Contact.FullName + "\n")
	}
	if resume.Summary != "" {
		output.WriteString(resume.Summary + "\n")
	}
	for _, exp := range resume.Experience {
		output.WriteString(fmt.Sprintf("\n%s, %s (%s - %s)\n", exp.Position, exp.Company, exp.StartDate, exp.EndDate))
		for _, achievement := range exp.Achievements {
			output.WriteString(fmt.Sprintf("- %s\n", achievement))
		}
	}
}

// ProfileTextFormatter handles text formatting for parsed profiles
type ProfileTextFormatter struct{}

func (ptf *ProfileTextFormatter) Format(data any) (string, error) {
	resume, ok := data.(types.ResumeProfile)
	if !ok {
		return "", fmt.Errorf("expected ResumeProfile, got %T", data)
	}

	var output strings.Builder
	writeProfileSummary(&output, resume)

	if len(resume.Skills) > 0 {
		output.WriteString("\nSkills:\n")
		for _, category := range sortedSkillCategories(resume.Skills) {
			output.WriteString(fmt.Sprintf("- %s: %s\n", category, strings.Join(resume.Skills[category], ", ")))
		}
	}

	return output.String(), nil
}

func (ptf *ProfileTextFormatter) SupportedType() string {
	return "ResumeProfile"
}

// ProfileMarkdownFormatter handles markdown formatting for parsed profiles
type ProfileMarkdownFormatter struct{}

func (pmf *ProfileMarkdownFormatter) Format(data any) (string, error) {
	resume, ok := data.(types.ResumeProfile)
	if !ok {
		return "", fmt.Errorf("expected ResumeProfile, got %T", data)
	}

	var output strings.Builder

	if resume.Contact.FullName != "" {
		output.WriteString("# " + resume.Contact.FullName + "\n\n")
	}
	if resume.Summary != "" {
		output.WriteString(resume.Summary + "\n\n")
	}
	for _, exp := range resume.Experience {
		output.WriteString(fmt.Sprintf("## %s, %s\n\n*%s - %s*\n\n", exp.Position, exp.Company, exp.StartDate, exp.EndDate))
		for _, achievement := range exp.Achievements {
			output.WriteString(fmt.Sprintf("- %s\n", achievement))
		}
		output.WriteString("\n")
	}
	if len(resume.Skills) > 0 {
		output.WriteString("## Skills\n\n")
		for _, category := range sortedSkillCategories(resume.Skills) {
			output.WriteString(fmt.Sprintf("- **%s:** %s\n", category, strings.Join(resume.Skills[category], ", ")))
		}
	}

	return output.String(), nil
}

func (pmf *ProfileMarkdownFormatter) SupportedType() string {
	return "ResumeProfile"
}

func sortedSkillCategories(skills map[string][]string) []string {
	categories := make([]string, 0, len(skills))
	for category := range skills {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// RewriteTextFormatter handles text formatting for rewrite results
type RewriteTextFormatter struct{}

func (rtf *RewriteTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.RewriteResponse)
	if !ok {
		return "", fmt.Errorf("expected RewriteResponse, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== OPTIMIZED RESUME ===\n\n")
	writeProfileSummary(&output, result.Resume)
	output.WriteString("\n")

	output.WriteString("=== ATS ANALYSIS ===\n")
	output.WriteString(fmt.Sprintf("Score: %d/100\n", result.ATS.ATSScore))
	if len(result.ATS.Recommendations) > 0 {
		output.WriteString("\nRecommendations:\n")
		for i, recommendation := range result.ATS.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, recommendation))
		}
	}

	return output.String(), nil
}

func (rtf *RewriteTextFormatter) SupportedType() string {
	return "RewriteResponse"
}

// RewriteMarkdownFormatter handles markdown formatting for rewrite results
type RewriteMarkdownFormatter struct{}

func (rmf *RewriteMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.RewriteResponse)
	if !ok {
		return "", fmt.Errorf("expected RewriteResponse, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Optimized Resume\n\n")
	if result.Resume.Contact.FullName != "" {
		output.WriteString("**" + result.Resume.Contact.FullName + "**\n\n")
	}
	if result.Resume.Summary != "" {
		output.WriteString(result.Resume.Summary + "\n\n")
	}
	for _, exp := range result.Resume.Experience {
		output.WriteString(fmt.Sprintf("## %s, %s\n\n*%s - %s*\n\n", exp.Position, exp.Company, exp.StartDate, exp.EndDate))
		for _, achievement := range exp.Achievements {
			output.WriteString(fmt.Sprintf("- %s\n", achievement))
		}
		output.WriteString("\n")
	}

	output.WriteString("## ATS Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/100\n", result.ATS.ATSScore))
	if len(result.ATS.Recommendations) > 0 {
		output.WriteString("\n### Recommendations\n\n")
		for i, recommendation := range result.ATS.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, recommendation))
		}
	}

	return output.String(), nil
}

func (rmf *RewriteMarkdownFormatter) SupportedType() string {
	return "RewriteResponse"
}

// CoverLetterTextFormatter handles text formatting for cover letters
type CoverLetterTextFormatter struct{}

func (clf *CoverLetterTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.CoverLetterResponse)
	if !ok {
		return "", fmt.Errorf("expected CoverLetterResponse, got %T", data)
	}
	return result.CoverLetter + "\n", nil
}

func (clf *CoverLetterTextFormatter) SupportedType() string {
	return "CoverLetterResponse"
}

// CoverLetterMarkdownFormatter handles markdown formatting for cover letters
type CoverLetterMarkdownFormatter struct{}

func (clmf *CoverLetterMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.CoverLetterResponse)
	if !ok {
		return "", fmt.Errorf("expected CoverLetterResponse, got %T", data)
	}
	return "# Cover Letter\n\n" + result.CoverLetter + "\n", nil
}

func (clmf *CoverLetterMarkdownFormatter) SupportedType() string {
	return "CoverLetterResponse"
}

// InterviewTextFormatter handles text formatting for interview questions
type InterviewTextFormatter struct{}

func (itf *InterviewTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.InterviewQuestionsResponse)
	if !ok {
		return "", fmt.Errorf("expected InterviewQuestionsResponse, got %T", data)
	}

	var output strings.Builder
	output.WriteString("=== INTERVIEW PREPARATION ===\n\n")
	output.WriteString(result.Questions)
	output.WriteString("\n")
	return output.String(), nil
}

func (itf *InterviewTextFormatter) SupportedType() string {
	return "InterviewQuestionsResponse"
}

// InterviewMarkdownFormatter handles markdown formatting for interview questions
type InterviewMarkdownFormatter struct{}

func (imf *InterviewMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.InterviewQuestionsResponse)
	if !ok {
		return "", fmt.Errorf("expected InterviewQuestionsResponse, got %T", data)
	}
	return "# Interview Preparation\n\n" + result.Questions + "\n", nil
}

func (imf *InterviewMarkdownFormatter) SupportedType() string {
	return "InterviewQuestionsResponse"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
