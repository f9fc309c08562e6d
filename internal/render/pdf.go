package render

import (
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/tnguyen/resume-engine/pkg/types"
)

// Page geometry and type sizes, in points. Letter page with 0.75-inch
// margins; Helvetica throughout.
const (
	pdfMargin  = 54.0 // 0.75 inch
	pdfLeading = 13.0

	sizeH1   = 16.0
	sizeH2   = 12.0
	sizeH3   = 11.0
	sizeBody = 10.0

	bulletIndent = 12.0
	blankGap     = 6.0
)

// PDF renders the resume as a paginated PDF. Layout is manual: a running
// baseline, greedy word wrap against the text width, and a page break
// whenever fewer than two lines of room remain.
func PDF(doc *types.Document, w io.Writer) error {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	maxW := pageW - 2*pdfMargin
	y := pdfMargin + sizeH1

	for _, b := range doc.Blocks {
		if b.Kind == types.BlockBlank {
			y += blankGap
			continue
		}

		if y > pageH-pdfMargin-2*pdfLeading {
			pdf.AddPage()
			y = pdfMargin + sizeH1
		}

		switch b.Kind {
		case types.BlockHeading:
			switch b.Level {
			case 1:
				y = wrapDraw(pdf, tr(b.Text), pdfMargin, y, maxW, "B", sizeH1)
				y += 4
			case 2:
				y = wrapDraw(pdf, tr(b.Text), pdfMargin, y, maxW, "B", sizeH2)
				y += 2
			default:
				y = wrapDraw(pdf, tr(b.Text), pdfMargin, y, maxW, "B", sizeH3)
			}

		case types.BlockBullet:
			pdf.SetFont("Helvetica", "", sizeBody)
			pdf.Text(pdfMargin, y, tr("•"))
			y = wrapDraw(pdf, tr(b.Text), pdfMargin+bulletIndent, y, maxW-bulletIndent, "", sizeBody)

		default:
			y = wrapDraw(pdf, tr(b.Text), pdfMargin, y, maxW, "", sizeBody)
		}
	}

	return pdf.Output(w)
}

// wrapDraw draws text at (x, y) with greedy word wrap against maxW and
// returns the baseline below the last drawn line.
func wrapDraw(pdf *fpdf.Fpdf, text string, x, y, maxW float64, style string, size float64) float64 {
	pdf.SetFont("Helvetica", style, size)

	line := ""
	for _, word := range strings.Fields(text) {
		test := strings.TrimSpace(line + " " + word)
		if pdf.GetStringWidth(test) <= maxW {
			line = test
			continue
		}
		pdf.Text(x, y, line)
		y += pdfLeading
		line = word
	}
	if line != "" {
		pdf.Text(x, y, line)
		y += pdfLeading
	}
	return y
}
