package resume

// PortfolioReady is the gate for the portfolio export: all contact
// fields filled, at least one technical skill category, a complete
// first education slot, and either a first project title or a complete
// first experience slot. Soft skills alone do not open the gate.
func (p Profile) PortfolioReady() bool {
	c := p.Contact
	hasContact := !isBlank(c.Name) && !isBlank(c.Email) && !isBlank(c.Phone) && !isBlank(c.Location)

	s := p.Skills
	hasCore := !isBlank(s.Languages) || !isBlank(s.Frameworks) || !isBlank(s.Databases) || !isBlank(s.Cloud)

	hasEdu := len(p.Education) > 0 && !isBlank(p.Education[0].Institute) && !isBlank(p.Education[0].Degree)

	hasProj := len(p.Projects) > 0 && !isBlank(p.Projects[0].Title)
	hasExp := len(p.Experience) > 0 && !isBlank(p.Experience[0].Company) && !isBlank(p.Experience[0].Role)

	return hasContact && hasCore && hasEdu && (hasProj || hasExp)
}

// Suggestions returns up to eight actionable completeness tips for the
// current form snapshot.
func (p Profile) Suggestions(aiOverview bool) []string {
	var tips []string
	if isBlank(p.Contact.LinkedIn) {
		tips = append(tips, "Add your LinkedIn URL for credibility.")
	}
	if isBlank(p.Contact.GitHub) {
		tips = append(tips, "Add your GitHub URL if you have projects/code samples.")
	}
	if isBlank(p.Summary) && !aiOverview {
		tips = append(tips, "Write a 2-4 line Professional Overview or enable AI drafting.")
	}
	if isBlank(p.Skills.Languages) {
		tips = append(tips, "List 3-6 programming languages.")
	}
	if isBlank(p.Skills.Frameworks) {
		tips = append(tips, "Add key frameworks/tools (Django/React/Git etc.)")
	}
	if isBlank(p.Skills.Databases) {
		tips = append(tips, "Mention at least one database (MySQL/MongoDB).")
	}
	if len(p.Education) == 0 || isBlank(p.Education[0].Institute) || isBlank(p.Education[0].Degree) {
		tips = append(tips, "Complete Education #1 with institute and degree.")
	}
	if len(tips) > 8 {
		tips = tips[:8]
	}
	return tips
}
