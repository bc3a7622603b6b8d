package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	ParseResume        string
	RewriteResume      string
	CoverLetter        string
	InterviewQuestions string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	ParseResume        string
	RewriteResume      string
	CoverLetter        string
	InterviewQuestions string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	ParseResume: `You are a resume parsing system that converts raw resume text into structured JSON.

CRITICAL RULES - DATA FIDELITY:
- NEVER invent information that is not present in the source text
- Every field you emit must be directly traceable to the input
- Always include every field of the schema, using empty strings and empty arrays for anything the source does not contain
- Preserve names, dates, numbers and URLs exactly as written

Group skills under the category labels the resume itself suggests; when the
resume has no grouping, use sensible generic categories.`,

	RewriteResume: `You are a professional resume optimization system.

CRITICAL RULES - DATA PRESERVATION:
- NEVER add companies, positions, projects, or skills not in the original resume
- NEVER invent dates, locations, or metrics not in the original data
- ONLY rewrite and reorder existing content to better match the job description
- Do NOT create new experience bullets - only improve existing ones
- Keep all quantified results (%, $, numbers) exactly as they are
- Preserve all company names, dates, and locations exactly

Your job is to:
1. Rewrite the EXISTING summary to better target the role (if a summary exists)
2. Optimize EXISTING experience bullets for ATS and readability
3. Reorder EXISTING skills by relevance to the job description
4. Keep the most relevant EXISTING projects first`,

	CoverLetter: `You are a professional cover letter writer.

Rules:
- Write a professional business letter format cover letter
- 300-350 words maximum
- Address specific requirements from the job description
- Highlight relevant experience and achievements from the resume
- Use quantified metrics where available
- Professional, confident tone
- Include proper business letter structure

Output format: Plain text business letter (no JSON)`,

	InterviewQuestions: `You are an interview preparation expert.

Rules:
- Generate 8-10 interview questions total:
  - 3-4 technical questions specific to the role
  - 3-4 behavioral questions using the STAR method
  - 1-2 company/role-specific questions
- Questions should be realistic and commonly asked
- Focus on skills and experience mentioned in the resume and job description
- Provide a mix of difficulty levels

Output format: Numbered list of questions (no JSON)`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	ParseResume: `Convert the following resume text into the structured JSON schema. Include every schema field, defaulting to empty strings and arrays where the text has nothing.

**Resume Text:**
-----
%s
-----`,

	RewriteResume: `Optimize the following resume for the given job description. Only rework content that already exists in the resume; return the full resume JSON in the same schema.

**Resume JSON:**
-----
%s
-----

**Job Description:**
-----
%s
-----`,

	CoverLetter: `Write a cover letter for this application.

**Resume JSON:**
-----
%s
-----

**Job Description:**
-----
%s
-----

**Company Name:** %s
**Position Title:** %s

Generate a professional cover letter:`,

	InterviewQuestions: `Prepare interview questions for this application.

**Resume JSON:**
-----
%s
-----

**Job Description:**
-----
%s
-----

**Position Title:** %s

Generate interview questions:`,
}

// PromptConfig holds configuration for customizable prompts
type PromptConfig struct {
	SystemPrompts SystemPrompts `json:"systemPrompts"`
	UserPrompts   UserPrompts   `json:"userPrompts"`
}

// GetDefaultPromptConfig returns the default prompt configuration
func GetDefaultPromptConfig() PromptConfig {
	return PromptConfig{
		SystemPrompts: DefaultSystemPrompts,
		UserPrompts:   DefaultUserPrompts,
	}
}
