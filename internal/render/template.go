// Package render turns a final resume text into downloadable
// artifacts: PDF, DOCX, plain text, a portfolio website zip, and a
// bundle of all three documents.
package render

import (
	"fmt"
	"strings"
)

// Template selects the document styling for PDF export.
type Template string

const (
	TemplateModern       Template = "Modern"
	TemplateClassic      Template = "Classic"
	TemplateProfessional Template = "Professional"
)

// ParseTemplate resolves a template name case-insensitively. The empty
// string resolves to Modern.
func ParseTemplate(s string) (Template, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "modern":
		return TemplateModern, nil
	case "classic":
		return TemplateClassic, nil
	case "professional":
		return TemplateProfessional, nil
	}
	return "", fmt.Errorf("unknown template %q", s)
}

// pdfStyle is the per-template font and layout preset.
type pdfStyle struct {
	fontReg, fontBold          string
	headingSize, bodySize      float64
	lineGap                    float64
	headingBump                float64
	dividerR, dividerG, dividerB int
	dividerWidth               float64
}

func (t Template) pdfStyle() pdfStyle {
	switch t {
	case TemplateClassic:
		return pdfStyle{
			fontReg: "Times", fontBold: "Times",
			headingSize: 12, bodySize: 11, lineGap: 6,
			dividerR: 0, dividerG: 0, dividerB: 0, dividerWidth: 0.2,
		}
	case TemplateProfessional:
		return pdfStyle{
			fontReg: "Helvetica", fontBold: "Helvetica",
			headingSize: 12, bodySize: 11, lineGap: 6,
			dividerR: 160, dividerG: 160, dividerB: 160, dividerWidth: 0.2,
		}
	}
	// Modern: slightly larger headings, light dividers.
	return pdfStyle{
		fontReg: "Arial", fontBold: "Arial",
		headingSize: 13, bodySize: 11, lineGap: 6, headingBump: 1,
		dividerR: 180, dividerG: 180, dividerB: 180, dividerWidth: 0.6,
	}
}

// Filename builds a download filename from the candidate's name:
// spaces become underscores, and fallback is used when the name is
// blank. The suffix carries the extension ("resume.pdf",
// "Jordan_Lee_site.zip").
func Filename(name, fallback, suffix string) string {
	n := strings.TrimSpace(name)
	if n == "" {
		n = fallback
	}
	return strings.ReplaceAll(n, " ", "_") + suffix
}
