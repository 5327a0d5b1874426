package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/kalambet/resumeforge/internal/normalize"
)

// DOCX output is a minimal WordprocessingML package built by hand:
// content types, package relationships, a styles part fixing the
// default font, and the document itself. Word and LibreOffice both
// accept this shape.

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const docxRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const docxDocumentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

// Calibri 11 as the document default, like the resume templates Word
// users expect. Sizes in WordprocessingML are half-points.
const docxStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:docDefaults>
<w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri"/><w:sz w:val="22"/><w:szCs w:val="22"/></w:rPr></w:rPrDefault>
</w:docDefaults>
</w:styles>`

const (
	docxDocumentOpen  = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" + `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
	docxDocumentClose = `</w:body></w:document>`
)

type docxParaOpts struct {
	bold     bool
	centered bool
	sizePt   int // 0 means inherit the document default
}

func writeDocxPara(b *strings.Builder, text string, opts docxParaOpts) {
	b.WriteString("<w:p>")
	if opts.centered {
		b.WriteString(`<w:pPr><w:jc w:val="center"/></w:pPr>`)
	}
	b.WriteString("<w:r>")
	if opts.bold || opts.sizePt > 0 {
		b.WriteString("<w:rPr>")
		if opts.bold {
			b.WriteString("<w:b/>")
		}
		if opts.sizePt > 0 {
			fmt.Fprintf(b, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, opts.sizePt*2, opts.sizePt*2)
		}
		b.WriteString("</w:rPr>")
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	xml.EscapeText(b, []byte(text))
	b.WriteString("</w:t></w:r></w:p>")
}

// DOCX renders a final resume text as a Word document: centered
// contact header (name bold at 16pt), bold 12pt section headings with
// a blank paragraph between sections, bold project/publication titles,
// everything else plain Calibri 11.
func DOCX(text string) ([]byte, error) {
	var doc strings.Builder
	doc.WriteString(docxDocumentOpen)

	headerIdx := 0
	sectionWritten := false
	for _, seg := range normalize.Classify(normalize.Sanitize(text)) {
		switch seg.Kind {
		case normalize.KindHeader:
			writeDocxPara(&doc, seg.Text, docxParaOpts{
				bold:     headerIdx == 0,
				centered: true,
				sizePt:   headerSize(headerIdx),
			})
			headerIdx++

		case normalize.KindHeading:
			if sectionWritten {
				doc.WriteString("<w:p/>")
			}
			sectionWritten = true
			writeDocxPara(&doc, seg.Text, docxParaOpts{bold: true, sizePt: 12})

		case normalize.KindEntryTitle:
			writeDocxPara(&doc, seg.Text, docxParaOpts{bold: true})

		default:
			writeDocxPara(&doc, seg.Text, docxParaOpts{})
		}
	}
	doc.WriteString(docxDocumentClose)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name, body string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRootRels},
		{"word/_rels/document.xml.rels", docxDocumentRels},
		{"word/styles.xml", docxStyles},
		{"word/document.xml", doc.String()},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", p.name, err)
		}
		if _, err := w.Write([]byte(p.body)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing docx: %w", err)
	}
	return buf.Bytes(), nil
}

func headerSize(idx int) int {
	if idx == 0 {
		return 16
	}
	return 11
}
