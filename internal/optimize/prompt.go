package optimize

import (
	"bytes"
	"text/template"

	"github.com/tnguyen/resume-engine/internal/config"
)

// userPromptTmpl is the prompt sent to the provider alongside the
// configured system prompt. It carries the posting, the current resume,
// and a strict JSON response contract so the reply can be parsed without
// heuristics.
var userPromptTmpl = template.Must(template.New("optimize").Parse(`Please optimize my resume for the following job description and generate a cover letter.

JOB DESCRIPTION:
{{.JobDescription}}

CURRENT RESUME:
{{.Resume}}

Respond with a single JSON object in exactly this shape, with no text outside it:
{
  "optimized_resume": "<the optimized resume in markdown format>",
  "cover_letter": "<the cover letter in markdown format>",
  "changelog": "<list of changes made, formatted as markdown bullets>"
}

{{.ChangelogInstructions}}

{{.CoverLetterPrompt}}
`))

// BuildUserPrompt renders the user prompt for one optimization call.
func BuildUserPrompt(jobDescription, resume string, ai config.AI) (string, error) {
	var buf bytes.Buffer
	err := userPromptTmpl.Execute(&buf, struct {
		JobDescription        string
		Resume                string
		ChangelogInstructions string
		CoverLetterPrompt     string
	}{
		JobDescription:        jobDescription,
		Resume:                resume,
		ChangelogInstructions: ai.ChangelogInstructions,
		CoverLetterPrompt:     ai.CoverLetterPrompt,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
