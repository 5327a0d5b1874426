package normalize

import "strings"

// Block is one named section recovered from a final text.
type Block struct {
	Section Section
	Body    string
}

// maxHeaderLines is the number of leading non-heading lines (name,
// location, contacts, links) that may precede the first section.
const maxHeaderLines = 4

// SplitSections re-derives section structure from a final text. Up to
// four leading non-blank non-heading lines are skipped as the contact
// header; after that every recognized heading starts a new block and
// all other lines accumulate into the current block's body. Bodies are
// trimmed of surrounding blank lines. Blocks come back in document
// order; a heading that never appeared yields no block.
func SplitSections(text string) []Block {
	lines := strings.Split(text, "\n")
	i := len(HeaderLines(text))

	var blocks []Block
	var buf []string
	current := Section(-1)

	flush := func() {
		if current >= 0 {
			blocks = append(blocks, Block{Section: current, Body: strings.TrimSpace(strings.Join(buf, "\n"))})
		}
		buf = buf[:0]
	}

	for _, ln := range lines[i:] {
		if sec, ok := ParseHeading(ln); ok {
			flush()
			current = sec
			continue
		}
		buf = append(buf, ln)
	}
	flush()
	return blocks
}

// HeaderLines returns the leading contact header of a final text: up to
// four lines before the first blank line or recognized heading.
func HeaderLines(text string) []string {
	lines := strings.Split(text, "\n")
	var hdr []string
	for _, ln := range lines {
		if len(hdr) >= maxHeaderLines || strings.TrimSpace(ln) == "" || IsHeading(ln) {
			break
		}
		hdr = append(hdr, ln)
	}
	return hdr
}
