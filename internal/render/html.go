package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/tnguyen/resume-engine/pkg/types"
)

// pageTmpl wraps the converted body in a complete standalone page so the
// output opens cleanly in a browser without any doc-generator toolchain.
var pageTmpl = template.Must(template.New("resume").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; color: #222; margin: 0; }
main { max-width: 48rem; margin: 0 auto; padding: 2rem 1.5rem; }
h1 { font-size: 1.6rem; margin-bottom: 0.2rem; }
h2 { font-size: 1.2rem; border-bottom: 1px solid #ccc; padding-bottom: 0.2rem; }
h3 { font-size: 1.05rem; margin-bottom: 0.2rem; }
ul { margin-top: 0.3rem; }
li { margin-bottom: 0.15rem; }
</style>
</head>
<body>
<main>
{{.Body}}
</main>
</body>
</html>
`))

type pageData struct {
	Title string
	Body  template.HTML
}

// HTML renders the resume body to HTML via goldmark and wraps it in the
// standalone page template. Markdown headings keep their levels in the
// output.
func HTML(doc *types.Document, w io.Writer) error {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert(doc.Body, &body); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}

	return pageTmpl.Execute(w, pageData{
		Title: doc.Title(),
		Body:  template.HTML(body.String()),
	})
}
