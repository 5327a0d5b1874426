package normalize

import "strings"

// StripMenu discards a leading run of heading-only lines from raw model
// output. Models sometimes echo the requested section menu before the
// actual content; everything up to (and including) those stray heading
// lines is dropped. The first non-blank line that is not a known
// heading ends the scan, and the rest of the text is kept verbatim.
//
// If every non-blank line is a heading the result is empty: a document
// with no real content is treated as all menu.
func StripMenu(text string) string {
	lines := strings.Split(text, "\n")
	start := 0
	sawContent := false
	for i, ln := range lines {
		t := strings.TrimSpace(ln)
		if t == "" {
			continue
		}
		if IsHeading(t) {
			start = i + 1
			continue
		}
		sawContent = true
		break
	}
	if !sawContent {
		return ""
	}
	return strings.TrimSpace(strings.Join(lines[start:], "\n"))
}

// EnsureLeadingOverview guarantees that the first non-blank line of the
// text is the canonical PROFESSIONAL OVERVIEW heading. Empty input
// yields just the heading. A variant spelling of the heading (case,
// trailing colon) is rewritten to the canonical form and one directly
// following blank line is collapsed; otherwise the heading is inserted
// in front of the first non-blank line.
func EnsureLeadingOverview(text string) string {
	heading := Overview.Name()

	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
	}

	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i == len(lines) {
		return heading + "\n"
	}

	first := strings.ToUpper(strings.TrimRight(strings.TrimSpace(lines[i]), ":"))
	if first != heading {
		lines = append(lines[:i], append([]string{heading}, lines[i:]...)...)
	} else {
		lines[i] = heading
	}
	if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == "" {
		lines = append(lines[:i+1], lines[i+2:]...)
	}
	return strings.Join(lines, "\n")
}

// EnforceBullets forces the "- " prefix onto non-blank lines inside
// list-style sections (skills, publications, certifications,
// achievements, participations). Headings delimit the affected ranges:
// a list-style heading opens one, any other known heading closes it.
// Blank lines and already-bulleted lines pass through unchanged, so the
// pass is idempotent.
func EnforceBullets(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	inBlock := false

	for _, raw := range lines {
		ln := strings.TrimRight(raw, " \t\r")
		sec, isHeading := ParseHeading(ln)

		switch {
		case isHeading && sec.ListStyle():
			inBlock = true
			out = append(out, sec.Name())
		case isHeading && inBlock:
			inBlock = false
			out = append(out, sec.Name())
		default:
			if inBlock {
				s := strings.TrimSpace(ln)
				if s != "" && !strings.HasPrefix(s, "- ") {
					ln = "- " + s
				}
			}
			out = append(out, ln)
		}
	}
	return strings.Join(out, "\n")
}

// Apply runs the three normalization passes in their fixed order:
// menu stripping, first-heading insertion, bullet enforcement. The
// output satisfies every structural invariant the renderers rely on.
func Apply(text string) string {
	text = StripMenu(strings.TrimSpace(text))
	text = EnsureLeadingOverview(text)
	return EnforceBullets(text)
}
