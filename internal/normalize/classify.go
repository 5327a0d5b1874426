package normalize

import "strings"

// SegmentKind labels a classified line of the final text.
type SegmentKind int

const (
	// KindHeader is one of the leading contact header lines.
	KindHeader SegmentKind = iota
	// KindHeading is a canonical section heading.
	KindHeading
	// KindEntryTitle is a project or publication title line, rendered
	// emphasized by every exporter.
	KindEntryTitle
	// KindListItem is a body line carrying the "- " bullet prefix.
	KindListItem
	// KindBody is any other non-blank body line.
	KindBody
)

// Segment is one classified line. Section is meaningful for KindHeading
// (the heading itself) and for body kinds (the enclosing section).
type Segment struct {
	Kind    SegmentKind
	Text    string
	Section Section
}

// Classify walks a final text top to bottom and labels every non-blank
// line. All three document renderers consume this single scan instead
// of re-implementing the structure rules. An unrecognized heading
// spelling is not an error: the line simply classifies as body text.
func Classify(text string) []Segment {
	lines := strings.Split(text, "\n")
	var segs []Segment

	hdr := HeaderLines(text)
	for _, ln := range hdr {
		segs = append(segs, Segment{Kind: KindHeader, Text: ln})
	}
	i := len(hdr)

	current := Section(-1)
	for _, raw := range lines[i:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if sec, ok := ParseHeading(line); ok {
			current = sec
			segs = append(segs, Segment{Kind: KindHeading, Text: sec.Name(), Section: sec})
			continue
		}

		kind := KindBody
		switch {
		case (current == Projects || current == Publications) && isEntryTitle(line):
			kind = KindEntryTitle
		case strings.HasPrefix(line, "- "):
			kind = KindListItem
		}
		segs = append(segs, Segment{Kind: kind, Text: line, Section: current})
	}
	return segs
}

// isEntryTitle reports whether a non-blank body line looks like a
// project/publication title: no colon anywhere and no bullet prefix.
func isEntryTitle(line string) bool {
	return !strings.Contains(line, ":") && !strings.HasPrefix(line, "-")
}
