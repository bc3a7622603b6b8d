// Package render emits presentation documents from a finalized resume
// profile. It carries no scoring or decision logic.
package render

import (
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"

	"resumeforge/internal/types"
)

var collapseWhitespace = regexp.MustCompile(`\s+`)

// safeText escapes HTML metacharacters and collapses runs of whitespace
func safeText(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(collapseWhitespace.ReplaceAllString(html.EscapeString(text), " "))
}

const htmlHeader = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Resume</title>
    <style>
        body { font-family: 'Times New Roman', serif; line-height: 1.4; margin: 0; padding: 20px; color: #333; }
        .container { max-width: 800px; margin: auto; background: white; padding: 30px; box-shadow: 0 0 10px rgba(0,0,0,0.1); }
        .header { text-align: center; margin-bottom: 20px; }
        .name { font-size: 24px; font-weight: bold; margin-bottom: 10px; }
        .contact { font-size: 14px; color: #666; margin-bottom: 20px; }
        .section-title { font-size: 16px; font-weight: bold; margin-top: 20px; margin-bottom: 10px; text-transform: uppercase; }
        .divider { width: 100%; border: 1px solid #ccc; margin: 10px 0; }
        .entry { margin-bottom: 15px; }
        .entry-header { display: flex; justify-content: space-between; font-weight: bold; margin-bottom: 5px; }
        .bullets { margin-left: 20px; }
        .bullet { margin-bottom: 3px; }
        .skills-category { margin-bottom: 8px; }
        .skills-category strong { display: inline-block; min-width: 100px; }
        a { color: #0066cc; text-decoration: none; }
        a:hover { text-decoration: underline; }
        @media (max-width: 600px) {
            .entry-header { flex-direction: column; }
            .container { padding: 15px; }
        }
    </style>
</head>
<body>
    <div class="container">`

// HTML renders a profile as a standalone HTML document. Sections are emitted
// only when non-empty, and no experience entry is ever dropped.
func HTML(resume *types.ResumeProfile) string {
	if resume == nil {
		empty := types.EmptyProfile()
		resume = &empty
	}

	var b strings.Builder
	b.WriteString(htmlHeader)

	writeHeaderSection(&b, resume)
	writeSummarySection(&b, resume)
	writeSkillsSection(&b, resume)
	writeExperienceSection(&b, resume)
	writeEducationSection(&b, resume)
	writeCertificationsSection(&b, resume)
	writeProjectsSection(&b, resume)
	writeLanguagesSection(&b, resume)

	b.WriteString("\n</div></body></html>")
	return b.String()
}

func sectionTitle(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n<div class=\"section-title\">%s</div>\n<hr class=\"divider\">", title)
}

func writeHeaderSection(b *strings.Builder, resume *types.ResumeProfile) {
	b.WriteString("\n<div class=\"header\">")

	if name := safeText(resume.Contact.FullName); name != "" {
		fmt.Fprintf(b, "\n<div class=\"name\">%s</div>", name)
	}

	var parts []string
	if email := resume.Contact.Email; email != "" {
		parts = append(parts, fmt.Sprintf(`<a href="mailto:%s" target="_blank">%s</a>`, html.EscapeString(email), safeText(email)))
	}
	if phone := safeText(resume.Contact.Phone); phone != "" {
		parts = append(parts, phone)
	}
	if location := safeText(resume.Contact.Location); location != "" {
		parts = append(parts, location)
	}

	labels := make([]string, 0, len(resume.Links))
	for label := range resume.Links {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		url := strings.TrimSpace(resume.Links[label])
		if url != "" {
			parts = append(parts, fmt.Sprintf(`<a href="%s" target="_blank">%s</a>`, html.EscapeString(url), safeText(label)))
		}
	}

	if len(parts) > 0 {
		fmt.Fprintf(b, "\n<div class=\"contact\">%s</div>", strings.Join(parts, " • "))
	}
	b.WriteString("\n</div>")
}

func writeSummarySection(b *strings.Builder, resume *types.ResumeProfile) {
	if summary := safeText(resume.Summary); summary != "" {
		sectionTitle(b, "Career Objective")
		fmt.Fprintf(b, "\n<p>%s</p>", summary)
	}
}

func writeSkillsSection(b *strings.Builder, resume *types.ResumeProfile) {
	categories := make([]string, 0, len(resume.Skills))
	for category, items := range resume.Skills {
		if len(items) > 0 {
			categories = append(categories, category)
		}
	}
	if len(categories) == 0 {
		return
	}
	sort.Strings(categories)

	sectionTitle(b, "Skills")
	for _, category := range categories {
		escaped := make([]string, 0, len(resume.Skills[category]))
		for _, item := range resume.Skills[category] {
			escaped = append(escaped, safeText(item))
		}
		fmt.Fprintf(b, "\n<div class=\"skills-category\"><strong>%s:</strong> %s</div>",
			safeText(category), strings.Join(escaped, ", "))
	}
}

func writeExperienceSection(b *strings.Builder, resume *types.ResumeProfile) {
	if len(resume.Experience) == 0 {
		return
	}
	sectionTitle(b, "Experience")

	for _, exp := range resume.Experience {
		endDate := exp.EndDate
		if endDate == "" {
			endDate = "Present"
		}

		b.WriteString("\n<div class=\"entry\">")
		b.WriteString("\n<div class=\"entry-header\">")
		fmt.Fprintf(b, "\n<div>%s, %s</div>", safeText(exp.Position), safeText(exp.Company))

		dateLocation := fmt.Sprintf("%s – %s", safeText(exp.StartDate), safeText(endDate))
		if location := safeText(exp.Location); location != "" {
			dateLocation += " | " + location
		}
		fmt.Fprintf(b, "\n<div>%s</div>", dateLocation)
		b.WriteString("\n</div>")

		if len(exp.Achievements) > 0 {
			b.WriteString("\n<div class=\"bullets\">")
			for _, achievement := range exp.Achievements {
				fmt.Fprintf(b, "\n<div class=\"bullet\">• %s</div>", safeText(achievement))
			}
			b.WriteString("\n</div>")
		}
		b.WriteString("\n</div>")
	}
}

func writeEducationSection(b *strings.Builder, resume *types.ResumeProfile) {
	if len(resume.Education) == 0 {
		return
	}
	sectionTitle(b, "Education")

	for _, edu := range resume.Education {
		degreeInfo := safeText(edu.Degree)
		if field := safeText(edu.Field); field != "" {
			degreeInfo += " in " + field
		}
		if gpa := safeText(edu.GPA); gpa != "" {
			degreeInfo += " – " + gpa
		}

		dateLocation := safeText(edu.GraduationDate)
		if location := safeText(edu.Location); location != "" {
			if dateLocation != "" {
				dateLocation += " | " + location
			} else {
				dateLocation = location
			}
		}

		b.WriteString("\n<div class=\"entry\">")
		b.WriteString("\n<div class=\"entry-header\">")
		fmt.Fprintf(b, "\n<div><strong>%s</strong></div>", safeText(edu.Institution))
		fmt.Fprintf(b, "\n<div>%s</div>", dateLocation)
		b.WriteString("\n</div>")
		if degreeInfo != "" {
			fmt.Fprintf(b, "\n<div>%s</div>", degreeInfo)
		}
		b.WriteString("\n</div>")
	}
}

func writeCertificationsSection(b *strings.Builder, resume *types.ResumeProfile) {
	if len(resume.Certifications) == 0 {
		return
	}
	sectionTitle(b, "Certificates")

	for _, cert := range resume.Certifications {
		fmt.Fprintf(b, "\n<div class=\"bullet\">• %s</div>", safeText(cert.String()))
	}
}

func writeProjectsSection(b *strings.Builder, resume *types.ResumeProfile) {
	if len(resume.Projects) == 0 {
		return
	}
	sectionTitle(b, "Projects")

	for _, project := range resume.Projects {
		b.WriteString("\n<div class=\"entry\">")
		fmt.Fprintf(b, "\n<div class=\"entry-header\"><div><strong>%s</strong></div></div>", safeText(project.Title))
		if description := safeText(project.Description); description != "" {
			fmt.Fprintf(b, "\n<div>%s</div>", description)
		}
		if len(project.Bullets) > 0 {
			b.WriteString("\n<div class=\"bullets\">")
			for _, bullet := range project.Bullets {
				fmt.Fprintf(b, "\n<div class=\"bullet\">• %s</div>", safeText(bullet))
			}
			b.WriteString("\n</div>")
		}
		b.WriteString("\n</div>")
	}
}

func writeLanguagesSection(b *strings.Builder, resume *types.ResumeProfile) {
	if len(resume.Languages) == 0 {
		return
	}
	sectionTitle(b, "Languages")

	escaped := make([]string, 0, len(resume.Languages))
	for _, lang := range resume.Languages {
		escaped = append(escaped, safeText(lang))
	}
	fmt.Fprintf(b, "\n<p>%s</p>", strings.Join(escaped, ", "))
}
