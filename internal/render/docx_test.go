package render

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/tnguyen/resume-engine/pkg/types"
)

func readPackageEntry(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("opening package: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		return string(content)
	}
	t.Fatalf("package has no entry %s", name)
	return ""
}

func TestDOCXPackageStructure(t *testing.T) {
	doc := &types.Document{
		Blocks: []types.Block{{Kind: types.BlockHeading, Level: 1, Text: "Jane Doe"}},
	}

	var buf bytes.Buffer
	if err := DOCX(doc, &buf); err != nil {
		t.Fatalf("DOCX() error: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}

	want := map[string]bool{
		"[Content_Types].xml":          false,
		"_rels/.rels":                  false,
		"word/_rels/document.xml.rels": false,
		"word/styles.xml":              false,
		"word/document.xml":            false,
	}
	for _, f := range zr.File {
		if _, ok := want[f.Name]; ok {
			want[f.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("package missing entry %s", name)
		}
	}
}

func TestDOCXDocumentContent(t *testing.T) {
	doc := &types.Document{
		Blocks: []types.Block{
			{Kind: types.BlockHeading, Level: 1, Text: "Jane Doe"},
			{Kind: types.BlockBlank},
			{Kind: types.BlockHeading, Level: 2, Text: "Experience"},
			{Kind: types.BlockBullet, Text: "Shipped A & B"},
			{Kind: types.BlockParagraph, Text: "Plain text"},
		},
	}

	var buf bytes.Buffer
	if err := DOCX(doc, &buf); err != nil {
		t.Fatalf("DOCX() error: %v", err)
	}
	body := readPackageEntry(t, buf.Bytes(), "word/document.xml")

	for _, want := range []string{
		`<w:pStyle w:val="Heading1"/>`,
		`<w:pStyle w:val="Heading2"/>`,
		`<w:pStyle w:val="ListBullet"/>`,
		`>Jane Doe</w:t>`,
		`>• Shipped A &amp; B</w:t>`,
		`>Plain text</w:t>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("document.xml missing %q:\n%s", want, body)
		}
	}

	// Blank source lines produce no paragraphs.
	if got := strings.Count(body, "<w:p>"); got != 4 {
		t.Errorf("got %d paragraphs, want 4", got)
	}
}

func TestDOCXStylesDefined(t *testing.T) {
	doc := &types.Document{Blocks: []types.Block{{Kind: types.BlockParagraph, Text: "x"}}}

	var buf bytes.Buffer
	if err := DOCX(doc, &buf); err != nil {
		t.Fatalf("DOCX() error: %v", err)
	}
	styles := readPackageEntry(t, buf.Bytes(), "word/styles.xml")

	for _, id := range []string{"Heading1", "Heading2", "Heading3", "Heading4", "ListBullet"} {
		if !strings.Contains(styles, `w:styleId="`+id+`"`) {
			t.Errorf("styles.xml missing style %s", id)
		}
	}
}
