// Package importer extracts plain text from an uploaded PDF resume so
// it can be edited, scored, and re-exported.
package importer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kalambet/resumeforge/internal/normalize"
)

// ErrNoText is returned when a PDF parses but yields no extractable
// text, which usually means a scanned image.
var ErrNoText = fmt.Errorf("pdf contains no extractable text")

// Text extracts the plain text of a PDF document and sanitizes it to
// ASCII. The content is returned as-is otherwise: imported resumes are
// free-form text until the user edits them.
func Text(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("reading pdf: %w", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("extracting text: %w", err)
	}

	text := strings.TrimSpace(normalize.Sanitize(buf.String()))
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
