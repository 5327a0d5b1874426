// Package compose turns a structured career profile into a finished
// resume draft: it assembles the profile text, builds a deterministic
// generation prompt, calls the model, and normalizes the output.
package compose

import (
	"strings"

	"github.com/kalambet/resumeforge/internal/resume"
)

// SystemInstruction is the system message sent with every draft request.
const SystemInstruction = "Be concise and format professional resumes in plain text."

const promptHeader = `Output CLEAN PLAIN TEXT (no markdown). Do not add any preface text.
Begin directly with the heading 'PROFESSIONAL OVERVIEW' in uppercase.

Order and headings (uppercase). Do NOT include a 'CV SUMMARY' section:
PROFESSIONAL OVERVIEW
EDUCATION
SKILLS
EXPERIENCE / INTERNSHIPS
PROJECTS
PUBLICATIONS
CERTIFICATIONS / HANDS-ON
ACHIEVEMENTS
PARTICIPATIONS
POSITIONS OF RESPONSIBILITY / CO-CURRICULAR INVOLVEMENT

Rules:
- Do not invent info. Omit empty sections.
- Use bullets only inside sections where the source text already has list-like lines.
- In PROJECTS/PUBLICATIONS, keep structured sub-lines (Problem/Approach/Tech/Impact, Authors/Venue/Year/Summary/Link).
- Include link lines if present (e.g., '- Link: ...').`

const (
	aiOverviewRule = "\n- WRITE the 'PROFESSIONAL OVERVIEW' as a comprehensive 5-7 sentence CV-style summary using the profile below. Make it tailored and impactful (projects, tools, outcomes)."
	ownOverviewRule = "\n- Use the given 'PROFESSIONAL OVERVIEW' content as-is."
)

// BuildPrompt produces the user message for a draft request. The
// heading order and rules are fixed; the profile text and optional job
// description vary per request.
func BuildPrompt(p *resume.Profile, opts resume.Options) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	if opts.AIOverview {
		b.WriteString(aiOverviewRule)
	} else {
		b.WriteString(ownOverviewRule)
	}
	b.WriteString("\n")
	if jd := strings.TrimSpace(p.JobDescription); jd != "" {
		b.WriteString("\nJob Description to tailor to:\n")
		b.WriteString(jd)
		b.WriteString("\n")
	}
	b.WriteString("\nHere is the profile:\n")
	b.WriteString(p.Assemble(opts.AIOverview))
	return b.String()
}
