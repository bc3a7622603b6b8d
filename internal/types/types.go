package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ContactInfo holds the resume header fields. All fields are optional.
type ContactInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// Education represents a single education entry
type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	Location       string `json:"location"`
	GraduationDate string `json:"graduation_date"`
	GPA            string `json:"gpa"`
}

// Experience represents a single work history entry
type Experience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Location     string   `json:"location"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Achievements []string `json:"achievements"`
}

// Project represents a single project entry
type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Bullets      []string `json:"bullets"`
}

// Certification accepts both wire shapes produced upstream: a plain string
// ("AWS Certified Developer") or a structured record {name, issuer, year}.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Year   string `json:"year,omitempty"`
}

// UnmarshalJSON decodes either a JSON string or an object into a Certification
func (c *Certification) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		c.Name = plain
		c.Issuer = ""
		c.Year = ""
		return nil
	}

	type certAlias Certification
	var detailed certAlias
	if err := json.Unmarshal(data, &detailed); err != nil {
		return fmt.Errorf("certification must be a string or an object: %w", err)
	}
	*c = Certification(detailed)
	return nil
}

// MarshalJSON emits the plain-string form when only a name is set
func (c Certification) MarshalJSON() ([]byte, error) {
	if c.Issuer == "" && c.Year == "" {
		return json.Marshal(c.Name)
	}
	type certAlias Certification
	return json.Marshal(certAlias(c))
}

// String normalizes either variant to a single display line
func (c Certification) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	if c.Issuer != "" {
		b.WriteString(" — ")
		b.WriteString(c.Issuer)
	}
	if c.Year != "" {
		b.WriteString(" (")
		b.WriteString(c.Year)
		b.WriteString(")")
	}
	return b.String()
}

// ResumeProfile is the structured resume record consumed by the scorer and
// the renderer. Skill categories are free-form: producers disagree on the
// category set, so consumers must iterate the map generically and never
// address a category by name.
type ResumeProfile struct {
	Contact        ContactInfo         `json:"contact_info"`
	Links          map[string]string   `json:"links"`
	Summary        string              `json:"summary"`
	Education      []Education         `json:"education"`
	Experience     []Experience        `json:"experience"`
	Projects       []Project           `json:"projects"`
	Certifications []Certification     `json:"certifications"`
	Skills         map[string][]string `json:"skills"`
	Languages      []string            `json:"languages"`
}

// EmptyProfile returns a profile with every field at its empty default.
// Upstream parsers fall back to this shape so all keys are always present.
func EmptyProfile() ResumeProfile {
	return ResumeProfile{
		Links:          map[string]string{},
		Education:      []Education{},
		Experience:     []Experience{},
		Projects:       []Project{},
		Certifications: []Certification{},
		Skills:         map[string][]string{},
		Languages:      []string{},
	}
}

// KeywordMatches splits matched keywords into technical and business buckets
type KeywordMatches struct {
	Technical []string `json:"technical"`
	Business  []string `json:"business"`
}

// ScoreBreakdown carries the per-factor sub-scores, each in [0,100]
type ScoreBreakdown struct {
	Skills     int `json:"skills"`
	Keywords   int `json:"keywords"`
	Title      int `json:"title"`
	Experience int `json:"experience"`
}

// ScoreResult is the output of a single ATS scoring run
type ScoreResult struct {
	ATSScore        int            `json:"ats_score"`
	KeywordMatches  KeywordMatches `json:"keyword_matches"`
	MissingKeywords []string       `json:"missing_keywords"`
	Recommendations []string       `json:"recommendations"`
	ScoreBreakdown  ScoreBreakdown `json:"score_breakdown"`
}
