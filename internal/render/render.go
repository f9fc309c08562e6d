// Package render turns a parsed resume document into its output formats:
// DOCX, PDF, standalone HTML, and Doxygen page source.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tnguyen/resume-engine/pkg/types"
)

// Renderer writes one output format for a document.
type Renderer func(doc *types.Document, w io.Writer) error

// renderers maps each output format to its writer.
var renderers = map[types.OutputFormat]Renderer{
	types.FormatDOCX: DOCX,
	types.FormatPDF:  PDF,
	types.FormatHTML: HTML,
	types.FormatDOX:  DOX,
}

// AllFormats lists every supported output format in build order.
var AllFormats = []types.OutputFormat{
	types.FormatDOX,
	types.FormatDOCX,
	types.FormatPDF,
	types.FormatHTML,
}

// ParseFormats parses a comma-separated format list ("docx,pdf") into
// output formats. An empty string selects all formats.
func ParseFormats(s string) ([]types.OutputFormat, error) {
	if strings.TrimSpace(s) == "" {
		return AllFormats, nil
	}

	var formats []types.OutputFormat
	for _, part := range strings.Split(s, ",") {
		f := types.OutputFormat(strings.ToLower(strings.TrimSpace(part)))
		if _, ok := renderers[f]; !ok {
			return nil, fmt.Errorf("unsupported format %q: use docx, pdf, html, or dox", part)
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// File renders doc in the given format and writes it to path, creating
// parent directories as needed.
func File(doc *types.Document, format types.OutputFormat, path string) error {
	r, ok := renderers[format]
	if !ok {
		return fmt.Errorf("unsupported format %q", format)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := r(doc, f); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return f.Close()
}
