package render

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/tnguyen/resume-engine/pkg/types"
)

// The DOCX output is a minimal WordprocessingML package written directly:
// the content-types manifest, the package and document relationships, a
// style sheet with the four heading styles and a bullet style, and the
// document body itself.

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

// docxStyles defines Heading1-4 (bold, descending half-point sizes) and an
// indented ListBullet style. Sizes follow the PDF renderer's hierarchy.
const docxStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:rPr><w:sz w:val="20"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="24"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="22"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading4"><w:name w:val="heading 4"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:i/><w:sz w:val="20"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="ListBullet"><w:name w:val="List Bullet"/><w:basedOn w:val="Normal"/><w:pPr><w:ind w:left="360" w:hanging="180"/></w:pPr></w:style>
</w:styles>`

// DOCX renders the resume as a Word document. Every markdown heading
// becomes a paragraph with the matching Heading style; bullets use the
// ListBullet style; blank source lines are dropped, as Word paragraphs
// already carry their own spacing.
func DOCX(doc *types.Document, w io.Writer) error {
	zw := zip.NewWriter(w)

	entries := []struct {
		name, content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRootRels},
		{"word/_rels/document.xml.rels", docxDocumentRels},
		{"word/styles.xml", docxStyles},
		{"word/document.xml", documentXML(doc)},
	}

	for _, e := range entries {
		f, err := zw.Create(e.name)
		if err != nil {
			zw.Close()
			return fmt.Errorf("creating package entry %s: %w", e.name, err)
		}
		if _, err := io.WriteString(f, e.content); err != nil {
			zw.Close()
			return fmt.Errorf("writing package entry %s: %w", e.name, err)
		}
	}

	return zw.Close()
}

// documentXML builds word/document.xml from the parsed blocks.
func documentXML(doc *types.Document) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	for _, blk := range doc.Blocks {
		switch blk.Kind {
		case types.BlockBlank:
			continue
		case types.BlockHeading:
			writeStyledParagraph(&b, fmt.Sprintf("Heading%d", blk.Level), blk.Text)
		case types.BlockBullet:
			writeStyledParagraph(&b, "ListBullet", "• "+blk.Text)
		default:
			writeStyledParagraph(&b, "", blk.Text)
		}
	}

	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func writeStyledParagraph(b *strings.Builder, style, text string) {
	b.WriteString(`<w:p>`)
	if style != "" {
		fmt.Fprintf(b, `<w:pPr><w:pStyle w:val="%s"/></w:pPr>`, style)
	}
	b.WriteString(`<w:r><w:t xml:space="preserve">`)
	b.WriteString(escapeXML(text))
	b.WriteString(`</w:t></w:r></w:p>`)
}

func escapeXML(s string) string {
	var b strings.Builder
	// EscapeText only fails on writer errors, which strings.Builder never returns.
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
