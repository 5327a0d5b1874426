package resume

import "strings"

// clampEducation et al. cut each section down to its slot limit.
func clamp[T any](entries []T, max int) []T {
	if len(entries) > max {
		return entries[:max]
	}
	return entries
}

func joinBlocks(sep string, blocks []string) string {
	var kept []string
	for _, b := range blocks {
		if b != "" {
			kept = append(kept, b)
		}
	}
	return strings.Join(kept, sep)
}

// Assemble serializes the profile into the ordered, headed plain-text
// document used as model input context. Every canonical section appears
// with its heading; sections the user left empty have empty bodies and
// the drafting rules instruct the model to omit them.
//
// When aiOverview is true the overview body is left blank so the model
// writes it; otherwise the user's summary is passed through as-is.
func (p Profile) Assemble(aiOverview bool) string {
	overview := ""
	if !aiOverview {
		overview = strings.TrimSpace(p.Summary)
	}

	var edu []string
	for _, e := range clamp(p.Education, MaxEducation) {
		edu = append(edu, e.Format())
	}
	var exp []string
	for _, e := range clamp(p.Experience, MaxExperience) {
		exp = append(exp, e.Format())
	}
	var proj []string
	for _, e := range clamp(p.Projects, MaxProjects) {
		proj = append(proj, e.Format())
	}
	var pub []string
	for _, e := range clamp(p.Publications, MaxPublications) {
		pub = append(pub, e.Format())
	}
	var pos []string
	for _, e := range clamp(p.Positions, MaxPositions) {
		pos = append(pos, e.Format())
	}

	var b strings.Builder
	section := func(heading, body string) {
		b.WriteString(heading)
		b.WriteString(":\n")
		b.WriteString(body)
		b.WriteString("\n\n")
	}

	section("PROFESSIONAL OVERVIEW", overview)
	section("EDUCATION", joinBlocks("\n", edu))
	section("SKILLS", p.Skills.Block())
	section("EXPERIENCE / INTERNSHIPS", joinBlocks("\n\n", exp))
	section("PROJECTS", joinBlocks("\n\n", proj))
	section("PUBLICATIONS", joinBlocks("\n\n", pub))
	section("CERTIFICATIONS / HANDS-ON", bulletList(p.Certifications))
	section("ACHIEVEMENTS", bulletList(p.Achievements))
	section("PARTICIPATIONS", bulletList(p.Participations))
	section("POSITIONS OF RESPONSIBILITY / CO-CURRICULAR INVOLVEMENT", joinBlocks("\n\n", pos))
	section("TARGET ROLE", strings.TrimSpace(p.TargetRole))

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// bulletList renders up to MaxSimpleItems non-blank items as "- item"
// lines.
func bulletList(items []string) string {
	var lines []string
	for _, it := range clamp(items, MaxSimpleItems) {
		if !isBlank(it) {
			lines = append(lines, "- "+strings.TrimSpace(it))
		}
	}
	return strings.Join(lines, "\n")
}

// HeaderLines builds the 1-4 line contact header block prepended to the
// normalized model output: name/title, location, contacts, links. Lines
// with no content are dropped.
func (c Contact) HeaderLines() []string {
	h1 := strings.ToUpper(strings.TrimSpace(c.Name))
	if !isBlank(c.Title) {
		h1 += sepPair + strings.TrimSpace(c.Title)
	}

	var contacts []string
	if !isBlank(c.Email) {
		contacts = append(contacts, "Email: "+c.Email)
	}
	if !isBlank(c.Phone) {
		contacts = append(contacts, "Phone: "+c.Phone)
	}

	var links []string
	if !isBlank(c.LinkedIn) {
		links = append(links, "LinkedIn: "+c.LinkedIn)
	}
	if !isBlank(c.GitHub) {
		links = append(links, "GitHub: "+c.GitHub)
	}

	var out []string
	for _, ln := range []string{
		h1,
		strings.TrimSpace(c.Location),
		strings.Join(contacts, sepField),
		strings.Join(links, sepField),
	} {
		if ln != "" {
			out = append(out, ln)
		}
	}
	return out
}
