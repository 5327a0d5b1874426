// Package normalize enforces the canonical resume layout on free-form
// model output: a closed set of section headings, consistent bullet
// markers, and a mandated opening section. Every component that needs
// to decide "is this line a heading?" goes through ParseHeading, so the
// classification rule exists in exactly one place.
package normalize

import "strings"

// Section identifies one of the canonical resume sections.
type Section int

const (
	Overview Section = iota
	Education
	Skills
	Experience
	Projects
	Publications
	Certifications
	Achievements
	Participations
	Positions
	TargetRole
)

// canonicalNames maps each section to its uppercase heading as it
// appears in the final text. Order matters: it is the layout order.
var canonicalNames = [...]string{
	Overview:       "PROFESSIONAL OVERVIEW",
	Education:      "EDUCATION",
	Skills:         "SKILLS",
	Experience:     "EXPERIENCE / INTERNSHIPS",
	Projects:       "PROJECTS",
	Publications:   "PUBLICATIONS",
	Certifications: "CERTIFICATIONS / HANDS-ON",
	Achievements:   "ACHIEVEMENTS",
	Participations: "PARTICIPATIONS",
	Positions:      "POSITIONS OF RESPONSIBILITY / CO-CURRICULAR INVOLVEMENT",
	TargetRole:     "TARGET ROLE",
}

var byName = func() map[string]Section {
	m := make(map[string]Section, len(canonicalNames))
	for sec, name := range canonicalNames {
		m[name] = Section(sec)
	}
	return m
}()

// Name returns the canonical uppercase heading for the section.
func (s Section) Name() string {
	if s < 0 || int(s) >= len(canonicalNames) {
		return ""
	}
	return canonicalNames[s]
}

func (s Section) String() string { return s.Name() }

// ListStyle reports whether body lines of the section must carry the
// "- " bullet prefix regardless of what the model produced.
func (s Section) ListStyle() bool {
	switch s {
	case Skills, Publications, Certifications, Achievements, Participations:
		return true
	}
	return false
}

// Sections returns all sections in canonical layout order.
func Sections() []Section {
	out := make([]Section, len(canonicalNames))
	for i := range canonicalNames {
		out[i] = Section(i)
	}
	return out
}

// ParseHeading canonicalizes a line (trim surrounding whitespace, drop
// one trailing colon, uppercase) and tests it against the canonical
// heading set. It reports false for anything that is not a recognized
// section heading.
func ParseHeading(line string) (Section, bool) {
	s := strings.TrimSpace(line)
	s = strings.TrimSuffix(s, ":")
	sec, ok := byName[strings.ToUpper(s)]
	return sec, ok
}

// IsHeading reports whether the line canonicalizes to a known heading.
func IsHeading(line string) bool {
	_, ok := ParseHeading(line)
	return ok
}
