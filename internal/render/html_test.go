package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tnguyen/resume-engine/pkg/types"
)

func TestHTML(t *testing.T) {
	doc := &types.Document{
		Meta: types.Metadata{Name: "Jane Doe"},
		Body: []byte("# Jane Doe\n\n## Experience\n\n- Built a resume pipeline\n"),
	}

	var buf bytes.Buffer
	if err := HTML(doc, &buf); err != nil {
		t.Fatalf("HTML() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Jane Doe</title>",
		"<h1>Jane Doe</h1>",
		"<h2>Experience</h2>",
		"<li>Built a resume pipeline</li>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestHTMLEscapesTitle(t *testing.T) {
	doc := &types.Document{
		Meta: types.Metadata{Name: "Jane <script>"},
		Body: []byte("text\n"),
	}

	var buf bytes.Buffer
	if err := HTML(doc, &buf); err != nil {
		t.Fatalf("HTML() error: %v", err)
	}
	if strings.Contains(buf.String(), "<title>Jane <script></title>") {
		t.Error("title was not escaped")
	}
	if !strings.Contains(buf.String(), "&lt;script&gt;") {
		t.Error("expected escaped title text")
	}
}
