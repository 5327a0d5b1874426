package normalize

import "strings"

// asciiReplacer maps the smart punctuation LLMs like to emit onto the
// plain-ASCII equivalents used by the text and PDF exporters.
var asciiReplacer = strings.NewReplacer(
	"•", "-", // bullet
	"–", "-", // en dash
	"—", "-", // em dash
	"’", "'",
	"‘", "'",
	"“", `"`,
	"”", `"`,
	" ", " ",
)

// Sanitize rewrites text into plain ASCII: smart quotes, dashes and
// bullets are replaced, runs of whitespace inside each line collapse to
// a single space, and any remaining non-ASCII rune becomes a space.
// Line structure is preserved.
func Sanitize(text string) string {
	text = asciiReplacer.Replace(text)

	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		lines[i] = strings.Join(strings.Fields(ln), " ")
	}
	text = strings.Join(lines, "\n")

	return strings.Map(func(r rune) rune {
		if r < 128 {
			return r
		}
		return ' '
	}, text)
}
