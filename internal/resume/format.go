package resume

import (
	"fmt"
	"strings"
)

// Separators used by the field formatters. The dash variants are
// deliberate typography for the on-screen document; the sanitizer maps
// them to ASCII for the plain-text exporters.
const (
	sepField = " | "
	sepPair  = " — " // em dash: institute — degree, company — role
	sepDates = " – " // en dash: start – end
)

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// joinNonEmpty joins the non-blank values with sep.
func joinNonEmpty(sep string, vals ...string) string {
	var kept []string
	for _, v := range vals {
		if !isBlank(v) {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, sep)
}

// Format renders one education entry as a single line:
// "Institute — Degree | CGPA X | Start – End". An all-blank entry
// formats to the empty string.
func (e EducationEntry) Format() string {
	if isBlank(e.Institute) && isBlank(e.Degree) && isBlank(e.CGPA) && isBlank(e.Start) && isBlank(e.End) {
		return ""
	}
	var bits []string
	switch {
	case !isBlank(e.Institute) && !isBlank(e.Degree):
		bits = append(bits, e.Institute+sepPair+e.Degree)
	case !isBlank(e.Institute):
		bits = append(bits, e.Institute)
	case !isBlank(e.Degree):
		bits = append(bits, e.Degree)
	}
	if !isBlank(e.CGPA) {
		bits = append(bits, "CGPA "+e.CGPA)
	}
	if dates := joinNonEmpty(sepDates, e.Start, e.End); dates != "" {
		bits = append(bits, dates)
	}
	return strings.Join(bits, sepField)
}

// Format renders one experience entry: a "Company — Role | Period"
// header line plus a bullet for the deliverables, if any.
func (e ExperienceEntry) Format() string {
	if isBlank(e.Company) && isBlank(e.Role) && isBlank(e.Start) && isBlank(e.End) && isBlank(e.Desc) {
		return ""
	}
	when := joinNonEmpty(sepDates, e.Start, e.End)
	header := joinNonEmpty(sepPair, e.Company, e.Role)
	line := header
	if when != "" {
		line = header + sepField + when
	}
	out := []string{line}
	if !isBlank(e.Desc) {
		out = append(out, "- "+e.Desc)
	}
	return strings.Join(out, "\n")
}

// Format renders one project entry: a bare title line followed by
// labeled bullets for whichever sub-fields are present.
func (p ProjectEntry) Format() string {
	if isBlank(p.Title) && isBlank(p.Problem) && isBlank(p.Approach) && isBlank(p.Tech) && isBlank(p.Impact) && isBlank(p.Link) {
		return ""
	}
	var lines []string
	if !isBlank(p.Title) {
		lines = append(lines, p.Title)
	}
	for _, f := range []struct{ label, val string }{
		{"Problem", p.Problem},
		{"Approach", p.Approach},
		{"Tech/Tools", p.Tech},
		{"Impact", p.Impact},
		{"Link", p.Link},
	} {
		if !isBlank(f.val) {
			lines = append(lines, fmt.Sprintf("- %s: %s", f.label, f.val))
		}
	}
	return strings.Join(lines, "\n")
}

// Format renders one publication entry: a title line plus labeled
// bullets, with venue and year joined into a single "Venue/Year" line.
func (p PublicationEntry) Format() string {
	if isBlank(p.Title) && isBlank(p.Authors) && isBlank(p.Venue) && isBlank(p.Year) && isBlank(p.Summary) && isBlank(p.Link) {
		return ""
	}
	var lines []string
	if !isBlank(p.Title) {
		lines = append(lines, p.Title)
	}
	if !isBlank(p.Authors) {
		lines = append(lines, "- Authors: "+p.Authors)
	}
	if !isBlank(p.Venue) || !isBlank(p.Year) {
		lines = append(lines, "- Venue/Year: "+joinNonEmpty(", ", p.Venue, p.Year))
	}
	if !isBlank(p.Summary) {
		lines = append(lines, "- Summary: "+p.Summary)
	}
	if !isBlank(p.Link) {
		lines = append(lines, "- Link: "+p.Link)
	}
	return strings.Join(lines, "\n")
}

// Format renders one position entry: "Role | Org | Period" plus a
// bullet for the responsibilities.
func (p PositionEntry) Format() string {
	if isBlank(p.Role) && isBlank(p.Org) && isBlank(p.When) && isBlank(p.Det) {
		return ""
	}
	lines := []string{joinNonEmpty(sepField, p.Role, p.Org, p.When)}
	if !isBlank(p.Det) {
		lines = append(lines, "- "+p.Det)
	}
	return strings.Join(lines, "\n")
}

// Block renders the SKILLS section body: one labeled bullet per
// non-blank category.
func (s Skills) Block() string {
	var items []string
	for _, f := range []struct{ label, val string }{
		{"Programming Languages", s.Languages},
		{"Frameworks/Tools", s.Frameworks},
		{"Databases", s.Databases},
		{"Cloud/DevOps", s.Cloud},
		{"Soft Skills", s.Soft},
	} {
		if !isBlank(f.val) {
			items = append(items, fmt.Sprintf("- %s: %s", f.label, strings.TrimSpace(f.val)))
		}
	}
	return strings.Join(items, "\n")
}

// Text joins all skill categories into one search string, used when
// synthesizing a job description for role-fit scoring.
func (s Skills) Text() string {
	return joinNonEmpty(sepField, s.Languages, s.Frameworks, s.Databases, s.Cloud, s.Soft)
}
