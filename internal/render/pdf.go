package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/kalambet/resumeforge/internal/normalize"
)

// PDF renders a final resume text as an A4 PDF in the given template.
// The contact header is centered, sections are separated by thin
// dividers, and project/publication titles come out bold.
func PDF(text string, tpl Template) ([]byte, error) {
	st := tpl.pdfStyle()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(st.fontReg, "", st.bodySize)

	divider := func() {
		pdf.SetDrawColor(st.dividerR, st.dividerG, st.dividerB)
		pdf.SetLineWidth(st.dividerWidth)
		y := pdf.GetY()
		pdf.Line(10, y, 200, y)
		pdf.Ln(3)
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(0.2)
	}

	headerIdx := 0
	headerDone := false
	sectionWritten := false
	for _, seg := range normalize.Classify(normalize.Sanitize(text)) {
		if seg.Kind != normalize.KindHeader && headerIdx > 0 && !headerDone {
			pdf.Ln(2)
			headerDone = true
		}

		switch seg.Kind {
		case normalize.KindHeader:
			if headerIdx == 0 {
				pdf.SetFont(st.fontBold, "B", st.headingSize+2)
				pdf.MultiCell(0, st.lineGap+1, seg.Text, "", "C", false)
			} else {
				pdf.SetFont(st.fontReg, "", st.bodySize)
				pdf.MultiCell(0, st.lineGap, seg.Text, "", "C", false)
			}
			headerIdx++

		case normalize.KindHeading:
			if sectionWritten {
				divider()
			}
			sectionWritten = true
			pdf.SetFont(st.fontBold, "B", st.headingSize+st.headingBump)
			pdf.CellFormat(0, st.lineGap+1, seg.Text, "", 1, "L", false, 0, "")
			pdf.SetFont(st.fontReg, "", st.bodySize)

		case normalize.KindEntryTitle:
			pdf.SetFont(st.fontBold, "B", st.bodySize)
			pdf.MultiCell(0, st.lineGap, seg.Text, "", "L", false)
			pdf.SetFont(st.fontReg, "", st.bodySize)

		default:
			pdf.MultiCell(0, st.lineGap, seg.Text, "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}
