// Package types defines the shared data model for the resume pipeline.
package types

import "strings"

// BlockKind identifies the structural role of a line in the resume source.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockBullet    BlockKind = "bullet"
	BlockParagraph BlockKind = "paragraph"
	BlockBlank     BlockKind = "blank"
)

// Block is one structural element of the resume source. The parser is
// line-oriented: a block never spans more than one source line.
type Block struct {
	Kind BlockKind

	// Level is the heading level (1-4). Zero for non-headings.
	Level int

	// Indent is the number of leading whitespace characters on a bullet
	// line, preserved so nested bullets survive round trips.
	Indent int

	// Text is the block content with markers ("# ", "- ") stripped.
	Text string
}

// Metadata holds the optional YAML frontmatter at the top of the resume
// source. All fields are optional; renderers fall back to document content.
type Metadata struct {
	Name    string `yaml:"name"`
	Contact string `yaml:"contact"`
	Email   string `yaml:"email"`
}

// Document is a parsed resume: frontmatter metadata, the ordered blocks,
// and the raw body (frontmatter stripped) for renderers that work on
// Markdown text directly.
type Document struct {
	Meta   Metadata
	Blocks []Block
	Body   []byte
}

// Title returns the document display name: the frontmatter name when set,
// otherwise the first level-1 heading, otherwise "Resume".
func (d *Document) Title() string {
	if strings.TrimSpace(d.Meta.Name) != "" {
		return strings.TrimSpace(d.Meta.Name)
	}
	for _, b := range d.Blocks {
		if b.Kind == BlockHeading && b.Level == 1 {
			return b.Text
		}
	}
	return "Resume"
}

// ContactLine returns the first paragraph that follows the first level-1
// heading, or the frontmatter contact field when the document has no such
// paragraph. Used for the header block of rendered outputs.
func (d *Document) ContactLine() string {
	seenTitle := false
	for _, b := range d.Blocks {
		switch {
		case b.Kind == BlockHeading && b.Level == 1 && !seenTitle:
			seenTitle = true
		case seenTitle && b.Kind == BlockHeading:
			return strings.TrimSpace(d.Meta.Contact)
		case seenTitle && b.Kind == BlockParagraph:
			return b.Text
		}
	}
	return strings.TrimSpace(d.Meta.Contact)
}
