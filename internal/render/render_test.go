package render

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tnguyen/resume-engine/pkg/types"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []types.OutputFormat
		wantErr bool
	}{
		{
			name: "empty selects all",
			in:   "",
			want: AllFormats,
		},
		{
			name: "single format",
			in:   "pdf",
			want: []types.OutputFormat{types.FormatPDF},
		},
		{
			name: "list with spaces and mixed case",
			in:   "DOCX, html",
			want: []types.OutputFormat{types.FormatDOCX, types.FormatHTML},
		},
		{
			name:    "unknown format",
			in:      "docx,odt",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormats(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseFormats(%q) expected error, got %v", tt.in, got)
				}
				if !strings.Contains(err.Error(), "odt") {
					t.Errorf("error should name the bad format: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormats(%q) error: %v", tt.in, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFile(t *testing.T) {
	doc := &types.Document{
		Body:   []byte("# Jane Doe\n"),
		Blocks: []types.Block{{Kind: types.BlockHeading, Level: 1, Text: "Jane Doe"}},
	}

	// The parent directory does not exist yet; File must create it.
	path := filepath.Join(t.TempDir(), "out", "resume.html")
	if err := File(doc, types.FormatHTML, path); err != nil {
		t.Fatalf("File() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "<h1>Jane Doe</h1>") {
		t.Errorf("output missing rendered heading")
	}
}

func TestFileUnsupportedFormat(t *testing.T) {
	doc := &types.Document{}
	err := File(doc, types.OutputFormat("odt"), filepath.Join(t.TempDir(), "x.odt"))
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
