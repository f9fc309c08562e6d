package render

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/tnguyen/resume-engine/pkg/types"
)

// slugPattern collapses anything that is not alphanumeric into a single
// separator when building Doxygen section IDs.
var slugPattern = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// DOX renders the resume as Doxygen page source, so an existing Doxygen
// setup can keep producing the HTML site. The first level-1 heading and
// the contact line below it become a raw HTML header; section headings map
// to @section/@subsection/@subsubsection; fully italicized lines become
// @paragraph entries; bullets and paragraphs pass through unchanged.
func DOX(doc *types.Document, w io.Writer) error {
	var out []string
	out = append(out, "/*!")
	out = append(out, fmt.Sprintf("@page resume %s — Resume", doc.Title()))
	out = append(out, "")

	headerDone := false
	skipNext := -1

	for i, b := range doc.Blocks {
		if i == skipNext {
			continue
		}

		if !headerDone && b.Kind == types.BlockHeading && b.Level == 1 {
			contact, contactIdx := contactAfter(doc.Blocks, i)
			out = append(out, "@htmlonly")
			if contact != "" {
				out = append(out, fmt.Sprintf("<p><strong>%s</strong><br/>", b.Text))
				out = append(out, fmt.Sprintf("%s</p>", contact))
				skipNext = contactIdx
			} else {
				out = append(out, fmt.Sprintf("<p><strong>%s</strong></p>", b.Text))
			}
			out = append(out, "@endhtmlonly", "")
			headerDone = true
			continue
		}

		switch b.Kind {
		case types.BlockHeading:
			out = append(out, fmt.Sprintf("%s %s %s", sectionCommand(b.Level), slug(b.Text, 0), b.Text), "")

		case types.BlockBullet:
			out = append(out, strings.Repeat(" ", b.Indent)+"- "+b.Text)

		case types.BlockBlank:
			out = append(out, "")

		default:
			if inner, ok := italicLine(b.Text); ok {
				out = append(out, "@paragraph "+slug(inner, 30), inner, "")
				continue
			}
			out = append(out, b.Text)
		}
	}

	out = append(out, "*/")

	_, err := io.WriteString(w, strings.Join(out, "\n")+"\n")
	return err
}

// contactAfter returns the first non-blank block after index i when it is a
// paragraph, along with its index. Headings and bullets end the search.
func contactAfter(blocks []types.Block, i int) (string, int) {
	for j := i + 1; j < len(blocks); j++ {
		switch blocks[j].Kind {
		case types.BlockBlank:
			continue
		case types.BlockParagraph:
			return blocks[j].Text, j
		default:
			return "", -1
		}
	}
	return "", -1
}

func sectionCommand(level int) string {
	switch level {
	case 2:
		return "@section"
	case 3:
		return "@subsection"
	default:
		return "@subsubsection"
	}
}

// italicLine reports whether the text is a fully italicized line (*...*)
// and returns the inner text.
func italicLine(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 3 || !strings.HasPrefix(s, "*") || !strings.HasSuffix(s, "*") {
		return "", false
	}
	inner := strings.TrimSpace(strings.Trim(s, "*"))
	if inner == "" {
		return "", false
	}
	return inner, true
}

// slug builds a Doxygen identifier from text: lowercase, alphanumeric runs
// joined by underscores. When maxLen is non-zero the text is truncated
// before slugging.
func slug(text string, maxLen int) string {
	if maxLen > 0 && len(text) > maxLen {
		text = text[:maxLen]
	}
	s := slugPattern.ReplaceAllString(strings.ToLower(text), "_")
	return strings.Trim(s, "_")
}
