package types

// ScoreRequest asks for an ATS score of a resume against a job description
type ScoreRequest struct {
	Resume         ResumeProfile `json:"resume"`
	JobDescription string        `json:"job_description" validate:"required,min=1"`
}

// ParseRequest asks for raw resume text to be structured into a profile
type ParseRequest struct {
	RawText string `json:"raw_text" validate:"required,min=1"`
}

// RewriteRequest asks for a profile to be optimized against a job description
type RewriteRequest struct {
	Resume         ResumeProfile `json:"resume"`
	JobDescription string        `json:"job_description" validate:"required,min=1"`
}

// RewriteResponse carries the optimized profile and its fresh ATS score
type RewriteResponse struct {
	Resume ResumeProfile `json:"resume"`
	ATS    ScoreResult   `json:"ats"`
}

// RenderRequest asks for a profile to be rendered to a formatted document
type RenderRequest struct {
	Resume ResumeProfile `json:"resume"`
}

// CoverLetterRequest asks for a cover letter for a specific opening
type CoverLetterRequest struct {
	Resume         ResumeProfile `json:"resume"`
	JobDescription string        `json:"job_description" validate:"required,min=1"`
	CompanyName    string        `json:"company_name"`
	PositionTitle  string        `json:"position_title"`
}

// CoverLetterResponse carries the generated cover letter text
type CoverLetterResponse struct {
	CoverLetter string `json:"cover_letter"`
}

// InterviewQuestionsRequest asks for likely interview questions for an opening
type InterviewQuestionsRequest struct {
	Resume         ResumeProfile `json:"resume"`
	JobDescription string        `json:"job_description" validate:"required,min=1"`
	PositionTitle  string        `json:"position_title"`
}

// InterviewQuestionsResponse carries the generated questions text
type InterviewQuestionsResponse struct {
	Questions string `json:"questions"`
}
