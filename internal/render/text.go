package render

import "github.com/kalambet/resumeforge/internal/normalize"

// Text renders a final resume text as plain-ASCII bytes for download.
func Text(text string) []byte {
	return []byte(normalize.Sanitize(text))
}
