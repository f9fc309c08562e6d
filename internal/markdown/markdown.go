// Package markdown parses the resume source into the block model shared by
// all renderers. The grammar is deliberately small: ATX headings (levels
// 1-4), dash bullets, blank lines, and paragraphs. Everything the parser
// recognizes is preserved in order, so output structure always reflects
// input structure.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/tnguyen/resume-engine/pkg/types"
)

// headingMarkers maps the ATX prefix to its heading level, checked longest
// first so "#### " is not misread as "# ".
var headingMarkers = []struct {
	prefix string
	level  int
}{
	{"#### ", 4},
	{"### ", 3},
	{"## ", 2},
	{"# ", 1},
}

// Parse reads the resume source, extracting optional YAML frontmatter into
// the document metadata and scanning the remaining body line by line.
func Parse(source []byte) (*types.Document, error) {
	var meta types.Metadata
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parsing frontmatter: %w", err)
	}

	doc := &types.Document{
		Meta: meta,
		Body: body,
	}

	for _, raw := range strings.Split(string(body), "\n") {
		doc.Blocks = append(doc.Blocks, parseLine(raw))
	}

	// A trailing newline produces one empty final block; drop it.
	if n := len(doc.Blocks); n > 0 && doc.Blocks[n-1].Kind == types.BlockBlank {
		doc.Blocks = doc.Blocks[:n-1]
	}

	return doc, nil
}

func parseLine(raw string) types.Block {
	line := strings.TrimRight(raw, " \t\r")

	if strings.TrimSpace(line) == "" {
		return types.Block{Kind: types.BlockBlank}
	}

	for _, m := range headingMarkers {
		if strings.HasPrefix(line, m.prefix) {
			return types.Block{
				Kind:  types.BlockHeading,
				Level: m.level,
				Text:  strings.TrimSpace(strings.TrimPrefix(line, m.prefix)),
			}
		}
	}

	if trimmed := strings.TrimLeft(line, " \t"); strings.HasPrefix(trimmed, "- ") {
		return types.Block{
			Kind:   types.BlockBullet,
			Indent: len(line) - len(trimmed),
			Text:   strings.TrimSpace(trimmed[2:]),
		}
	}

	return types.Block{Kind: types.BlockParagraph, Text: line}
}
