// Package extract converts uploaded documents to raw text for the parsing
// service. Extraction is best-effort: unsupported or unreadable input yields
// an empty string, never an error that could reach the scorer.
package extract

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"resumeforge/internal/errors"
)

var (
	whitespacePattern = regexp.MustCompile(`[ \t]+`)
	tagPattern        = regexp.MustCompile(`</?[a-z][a-z0-9-]*(\s[^<>]*)?/?>`)
)

// Extractor turns document bytes into plain text
type Extractor struct {
	logger *errors.Logger
}

// New creates an Extractor
func New(logger *errors.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract returns the text content of a document. Plain text and markdown
// pass through unchanged; HTML is stripped to its visible text. Anything
// else returns "".
func (e *Extractor) Extract(filename string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".txt", ".md", "":
		if looksLikeHTML(data) {
			return e.extractHTML(data)
		}
		return string(data)
	case ".html", ".htm":
		return e.extractHTML(data)
	default:
		if e.logger != nil {
			e.logger.Warn("Unsupported document format, returning empty text",
				"filename", filename, "extension", ext)
		}
		return ""
	}
}

// extractHTML strips markup and normalizes whitespace
func (e *Extractor) extractHTML(data []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("Failed to parse HTML document", "error", err)
		}
		return ""
	}

	doc.Find("script, style, noscript").Remove()

	var lines []string
	for _, raw := range strings.Split(doc.Text(), "\n") {
		line := strings.TrimSpace(whitespacePattern.ReplaceAllString(raw, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// looksLikeHTML detects full documents and bare fragments alike. Prose that
// merely contains angle brackets (comparisons, "x < y") has no well-formed
// tag and passes through untouched.
func looksLikeHTML(data []byte) bool {
	head := strings.ToLower(string(data[:min(len(data), 512)]))
	if strings.Contains(head, "<!doctype html") || strings.Contains(head, "<html") {
		return true
	}

	trimmed := strings.TrimLeft(head, " \t\r\n")
	if loc := tagPattern.FindStringIndex(trimmed); loc != nil && loc[0] == 0 {
		return true
	}

	// Markup embedded mid-text counts only when a closing tag confirms it
	return strings.Contains(head, "</") && tagPattern.MatchString(head)
}
