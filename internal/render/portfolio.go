package render

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/kalambet/resumeforge/internal/normalize"
	"github.com/kalambet/resumeforge/internal/resume"
)

// Theme selects the portfolio website styling.
type Theme string

const (
	ThemeModern       Theme = "Modern"
	ThemeProfessional Theme = "Professional"
)

// ParseTheme resolves a theme name case-insensitively. The empty
// string resolves to Modern.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "modern":
		return ThemeModern, nil
	case "professional":
		return ThemeProfessional, nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// portfolioSections are the resume sections shown on the site, in
// page order. TARGET ROLE is internal steering data and never renders.
var portfolioSections = []normalize.Section{
	normalize.Overview,
	normalize.Education,
	normalize.Skills,
	normalize.Experience,
	normalize.Projects,
	normalize.Publications,
	normalize.Certifications,
	normalize.Achievements,
	normalize.Participations,
	normalize.Positions,
}

var urlPattern = regexp.MustCompile(`https?://[^\s<]+`)

// linkify turns bare URLs in already-escaped HTML into anchors.
func linkify(escaped string) string {
	return urlPattern.ReplaceAllString(escaped, `<a href="$0" target="_blank">$0</a>`)
}

// Portfolio renders a final resume text as a one-page website and
// returns it zipped: index.html plus styles.css. The contact block
// supplies the hero header; the resume text supplies the sections.
func Portfolio(text string, c resume.Contact, theme Theme) ([]byte, error) {
	index, styles := portfolioHTML(text, c, theme)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range []struct{ name, body string }{
		{"index.html", index},
		{"styles.css", styles},
	} {
		w, err := zw.Create(f.name)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", f.name, err)
		}
		if _, err := w.Write([]byte(f.body)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing portfolio zip: %w", err)
	}
	return buf.Bytes(), nil
}

func portfolioHTML(text string, c resume.Contact, theme Theme) (index, styles string) {
	styles = portfolioCSS(theme)

	blocks := map[normalize.Section]string{}
	for _, b := range normalize.SplitSections(text) {
		blocks[b.Section] = b.Body
	}

	var sections strings.Builder
	for _, sec := range portfolioSections {
		body := strings.TrimSpace(blocks[sec])
		if body == "" {
			continue
		}
		sections.WriteString(sectionHTML(sec, body))
	}

	themeClass := "modern"
	if theme == ThemeProfessional {
		themeClass = "professional"
	}

	name := strings.TrimSpace(c.Name)
	title := strings.TrimSpace(c.Title)
	pageTitle := name
	if pageTitle == "" {
		pageTitle = "Portfolio"
	}

	var hero strings.Builder
	fmt.Fprintf(&hero, "    <h1>%s</h1>\n", html.EscapeString(strings.ToUpper(name)))
	fmt.Fprintf(&hero, "    <div class=\"title\">%s</div>\n", html.EscapeString(title))
	if loc := strings.TrimSpace(c.Location); loc != "" {
		fmt.Fprintf(&hero, "    <div class=\"loc\">%s</div>\n", html.EscapeString(loc))
	}
	fmt.Fprintf(&hero, "    <div class=\"contacts\">%s</div>\n", contactsHTML(c))

	index = fmt.Sprintf(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>%s – %s</title>
  <style>*{box-sizing:border-box;margin:0;padding:0}</style>
  <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
  <link href="https://fonts.googleapis.com/css2?family=Inter:wght@400;600;700&family=Playfair+Display:wght@600;700&display=swap" rel="stylesheet">
  <link rel="stylesheet" href="styles.css" />
</head>
<body class="theme-%s">
  <header class="hero">
%s  </header>

  <main class="container">
%s  </main>

  <footer class="foot">
    © %d %s
  </footer>
</body>
</html>
`, html.EscapeString(pageTitle), html.EscapeString(title), themeClass, hero.String(), sections.String(), time.Now().Year(), html.EscapeString(name))
	return index, styles
}

func sectionHTML(sec normalize.Section, body string) string {
	var lines strings.Builder
	for _, ln := range strings.Split(body, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(ln, "- "); ok {
			fmt.Fprintf(&lines, "      <div class=\"li\">• %s</div>\n", linkify(html.EscapeString(rest)))
		} else {
			fmt.Fprintf(&lines, "      <div>%s</div>\n", linkify(html.EscapeString(ln)))
		}
	}
	return fmt.Sprintf(`    <section class="sec">
      <h2>%s</h2>
      <div class="sec-body">
%s      </div>
    </section>
`, html.EscapeString(titleCase(sec.Name())), lines.String())
}

// titleCase renders a heading the way the page shows it: each word
// capitalized, including after a hyphen ("Hands-On", "Co-Curricular").
func titleCase(s string) string {
	b := []byte(strings.ToLower(s))
	upNext := true
	for i, c := range b {
		if upNext && 'a' <= c && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
		upNext = c == ' ' || c == '-'
	}
	return string(b)
}

func contactsHTML(c resume.Contact) string {
	var parts []string
	if v := strings.TrimSpace(c.Email); v != "" {
		parts = append(parts, "<b>Email:</b> "+html.EscapeString(v))
	}
	if v := strings.TrimSpace(c.Phone); v != "" {
		parts = append(parts, "<b>Phone:</b> "+html.EscapeString(v))
	}
	if v := strings.TrimSpace(c.LinkedIn); v != "" {
		e := html.EscapeString(v)
		parts = append(parts, fmt.Sprintf(`<b>LinkedIn:</b> <a href="%s" target="_blank">%s</a>`, e, e))
	}
	if v := strings.TrimSpace(c.GitHub); v != "" {
		e := html.EscapeString(v)
		parts = append(parts, fmt.Sprintf(`<b>GitHub:</b> <a href="%s" target="_blank">%s</a>`, e, e))
	}
	return strings.Join(parts, " | ")
}

func portfolioCSS(theme Theme) string {
	type palette struct {
		text, sub, accent, divider   string
		heroFont                     string
		secRadius, secBG, secBorder  string
		secShadow, secHeadingColor   string
	}
	p := palette{
		text: "#111827", sub: "#4b5563", accent: "#111827", divider: "#e5e7eb",
		heroFont:  "Inter, Arial, sans-serif",
		secRadius: "16px", secBG: "var(--card)", secBorder: "1px solid #eef2ff",
		secShadow: "0 6px 24px rgba(0,0,0,.08)", secHeadingColor: "var(--accent)",
	}
	if theme == ThemeProfessional {
		p = palette{
			text: "#222222", sub: "#555555", accent: "#222222", divider: "#e6e6e6",
			heroFont:  "'Playfair Display', serif",
			secRadius: "0px", secBG: "transparent", secBorder: "1px solid var(--divider)",
			secShadow: "none", secHeadingColor: "var(--text)",
		}
	}

	return fmt.Sprintf(`:root {
  --bg: #ffffff;
  --card: #ffffff;
  --text: %s;
  --sub: %s;
  --accent: %s;
  --divider: %s;
}
html, body { background: var(--bg); color: var(--text); font-family: Inter, Arial, sans-serif; }
a { color: var(--accent); text-decoration: underline; font-weight: 600; }
a:hover { text-decoration: underline; opacity: 0.9; }
.sec-body a { text-decoration: underline; font-weight: 600; }
.container { max-width: 900px; margin: 24px auto 80px; padding: 0 18px; }
.hero { text-align: center; padding: 40px 16px 16px; border-bottom: 1px solid var(--divider); }
.hero h1 { font-family: %s; letter-spacing: .5px; font-size: 32px; font-weight: 800; color: var(--text); }
.hero .title { margin-top: 6px; color: var(--sub); font-weight: 600; }
.hero .loc { margin-top: 4px; color: var(--sub); }
.hero .contacts { margin-top: 10px; color: var(--text); }
.sec {
  padding: 16px;
  margin: 14px 0;
  border-radius: %s;
  background: %s;
  border: %s;
  box-shadow: %s;
}
.theme-professional .sec { border: none; border-bottom: 1px solid var(--divider); border-radius: 0; background: transparent; padding: 20px 0; }
.theme-professional .sec:last-child { border-bottom: none; }
.sec h2 { font-size: 18px; font-weight: 800; letter-spacing: .4px; margin-bottom: 8px; color: %s; }
.sec-body { line-height: 1.6; color: var(--text); }
.sec-body .li { margin-left: 12px; }
.foot { text-align:center; color: var(--sub); padding: 24px 0 40px; border-top: 1px solid var(--divider); margin-top: 32px; }
`, p.text, p.sub, p.accent, p.divider, p.heroFont, p.secRadius, p.secBG, p.secBorder, p.secShadow, p.secHeadingColor)
}
