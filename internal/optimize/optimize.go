package optimize

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tnguyen/resume-engine/internal/config"
)

// Result is the structured payload the provider must return.
type Result struct {
	OptimizedResume string `json:"optimized_resume"`
	CoverLetter     string `json:"cover_letter"`
	Changelog       string `json:"changelog"`
}

// Options selects what to optimize against.
type Options struct {
	JobURL  string
	Company string
	Verbose bool
}

// Outputs reports where the optimization run landed.
type Outputs struct {
	ResumePath      string
	CoverLetterPath string
	Timestamp       string
	JobDescription  string
	Result          Result
}

// Run executes one optimization: fetch the posting, load the resume, call
// the backend, parse the JSON reply, and write the optimized resume and
// cover letter under the optimized directory. Progress lines go to w.
func Run(ctx context.Context, backend Backend, cfg *config.Config, opts Options, w io.Writer) (*Outputs, error) {
	fmt.Fprintf(w, "fetching job posting: %s\n", opts.JobURL)
	client := &http.Client{Timeout: cfg.HTTP.Timeout}
	jobDesc, err := FetchJobPosting(ctx, client, opts.JobURL, cfg.HTTP)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "fetched job posting (%d characters)\n", len(jobDesc))

	resume, err := os.ReadFile(cfg.Paths.ResumeSource)
	if err != nil {
		return nil, fmt.Errorf("reading resume %s: %w", cfg.Paths.ResumeSource, err)
	}
	fmt.Fprintf(w, "loaded resume (%d characters)\n", len(resume))

	user, err := BuildUserPrompt(jobDesc, string(resume), cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	fmt.Fprintf(w, "calling %s for optimization\n", providerName(cfg.AI))
	content, err := callWithRetry(ctx, backend, cfg.AI.ResumePrompt, user, cfg.AI.MaxRetries)
	if err != nil {
		return nil, err
	}

	result, err := ParseResult(content)
	if err != nil {
		debugPath, werr := writeDebug(cfg.Paths.OptimizedDir, content)
		if werr == nil {
			return nil, fmt.Errorf("%w (raw response saved to %s)", err, debugPath)
		}
		return nil, err
	}

	timestamp := time.Now().Format(config.TimestampLayout)
	vars := map[string]string{"timestamp": timestamp}

	resumeName, err := cfg.OutputFilename("optimized_resume", vars)
	if err != nil {
		return nil, err
	}
	coverName, err := cfg.OutputFilename("optimized_cover_letter", vars)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Paths.OptimizedDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	resumePath := filepath.Join(cfg.Paths.OptimizedDir, resumeName)
	if err := os.WriteFile(resumePath, []byte(result.OptimizedResume), 0o644); err != nil {
		return nil, fmt.Errorf("writing optimized resume: %w", err)
	}
	fmt.Fprintf(w, "saved optimized resume: %s\n", resumePath)

	coverPath := filepath.Join(cfg.Paths.OptimizedDir, coverName)
	if err := os.WriteFile(coverPath, []byte(result.CoverLetter), 0o644); err != nil {
		return nil, fmt.Errorf("writing cover letter: %w", err)
	}
	fmt.Fprintf(w, "saved cover letter: %s\n", coverPath)

	return &Outputs{
		ResumePath:      resumePath,
		CoverLetterPath: coverPath,
		Timestamp:       timestamp,
		JobDescription:  jobDesc,
		Result:          *result,
	}, nil
}

func providerName(ai config.AI) string {
	if ai.Provider == "" {
		return ProviderClaude
	}
	return strings.ToLower(ai.Provider)
}

// fencedJSON matches a JSON object wrapped in a markdown code fence, the
// most common way models decorate a structured reply.
var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ExtractJSON locates the JSON object in a model reply: a fenced block
// first, then a balanced-brace scan from the first opening brace.
func ExtractJSON(content string) (string, bool) {
	if m := fencedJSON.FindStringSubmatch(content); m != nil {
		return m[1], true
	}

	start := strings.IndexByte(content, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		c := content[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return content[start : i+1], true
			}
		}
	}
	return "", false
}

// ParseResult extracts and validates the structured reply. All three
// fields are required.
func ParseResult(content string) (*Result, error) {
	jsonStr, ok := ExtractJSON(content)
	if !ok {
		return nil, fmt.Errorf("no JSON object found in AI response")
	}

	var r Result
	if err := json.Unmarshal([]byte(jsonStr), &r); err != nil {
		return nil, fmt.Errorf("parsing AI response JSON: %w", err)
	}

	var missing []string
	if strings.TrimSpace(r.OptimizedResume) == "" {
		missing = append(missing, "optimized_resume")
	}
	if strings.TrimSpace(r.CoverLetter) == "" {
		missing = append(missing, "cover_letter")
	}
	if strings.TrimSpace(r.Changelog) == "" {
		missing = append(missing, "changelog")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("AI response missing required fields: %s", strings.Join(missing, ", "))
	}
	return &r, nil
}

// writeDebug saves an unparseable model reply next to the would-be outputs
// so the prompt or the provider can be debugged offline.
func writeDebug(dir, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("ai_response_debug_%s.txt", time.Now().Format(config.TimestampLayout)))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
