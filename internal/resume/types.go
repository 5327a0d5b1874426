// Package resume defines the structured career profile collected from
// the user and turns it into the sectioned plain-text document the
// drafting model consumes.
package resume

// Slot limits. Entries beyond a section's limit are ignored by the
// assembler; records whose every field is blank contribute nothing.
const (
	MaxEducation      = 2
	MaxExperience     = 3
	MaxProjects       = 3
	MaxPublications   = 2
	MaxPositions      = 3
	MaxSimpleItems    = 5 // certifications, achievements, participations
)

// Contact holds the identity fields rendered as the document header.
type Contact struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// Skills groups skill text by category. Each non-blank category becomes
// one labeled bullet in the SKILLS section.
type Skills struct {
	Languages  string `json:"languages"`
	Frameworks string `json:"frameworks"`
	Databases  string `json:"databases"`
	Cloud      string `json:"cloud"`
	Soft       string `json:"soft"`
}

// EducationEntry is one education slot.
type EducationEntry struct {
	Institute string `json:"institute"`
	Degree    string `json:"degree"`
	CGPA      string `json:"cgpa"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

// ExperienceEntry is one experience/internship slot.
type ExperienceEntry struct {
	Company string `json:"company"`
	Role    string `json:"role"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Desc    string `json:"desc"`
}

// ProjectEntry is one project slot.
type ProjectEntry struct {
	Title    string `json:"title"`
	Problem  string `json:"problem"`
	Approach string `json:"approach"`
	Tech     string `json:"tech"`
	Impact   string `json:"impact"`
	Link     string `json:"link"`
}

// PublicationEntry is one publication slot.
type PublicationEntry struct {
	Title   string `json:"title"`
	Authors string `json:"authors"`
	Venue   string `json:"venue"`
	Year    string `json:"year"`
	Summary string `json:"summary"`
	Link    string `json:"link"`
}

// PositionEntry is one position-of-responsibility slot.
type PositionEntry struct {
	Role string `json:"role"`
	Org  string `json:"org"`
	When string `json:"when"`
	Det  string `json:"det"`
}

// Profile is the complete form snapshot for one generation request.
// There is no process-wide state: a Profile travels by value through
// the pipeline.
type Profile struct {
	Contact        Contact            `json:"contact"`
	Summary        string             `json:"summary"`
	Education      []EducationEntry   `json:"education"`
	Skills         Skills             `json:"skills"`
	Experience     []ExperienceEntry  `json:"experience"`
	Projects       []ProjectEntry     `json:"projects"`
	Publications   []PublicationEntry `json:"publications"`
	Certifications []string           `json:"certifications"`
	Achievements   []string           `json:"achievements"`
	Participations []string           `json:"participations"`
	Positions      []PositionEntry    `json:"positions"`
	TargetRole     string             `json:"target_role"`
	JobDescription string             `json:"job_description"`
}

// Options are the per-request generation knobs.
type Options struct {
	Template       string `json:"template"`
	PortfolioTheme string `json:"portfolio_theme"`
	AIOverview     bool   `json:"ai_overview"`
}
