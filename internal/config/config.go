// Package config loads the resume-engine configuration: project paths,
// output filename patterns, and AI provider settings. Values come from
// resume-engine.yaml via viper, with defaults for every key so the tool
// works in a bare checkout.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tnguyen/resume-engine/pkg/types"
)

// TimestampLayout is the timestamp format used in output filenames and
// changelog entries.
const TimestampLayout = "20060102_150405"

// Paths locates the source and output files, relative to the project root.
type Paths struct {
	ResumeSource string `mapstructure:"resume_source" yaml:"resume_source"`
	ResumeDox    string `mapstructure:"resume_dox" yaml:"resume_dox"`
	BuildDir     string `mapstructure:"build_dir" yaml:"build_dir"`
	OptimizedDir string `mapstructure:"optimized_dir" yaml:"optimized_dir"`
	BackupDir    string `mapstructure:"backup_dir" yaml:"backup_dir"`
	Changelog    string `mapstructure:"changelog" yaml:"changelog"`
	HistoryDB    string `mapstructure:"history_db" yaml:"history_db"`
}

// AI holds provider selection and the prompt text for the optimize command.
type AI struct {
	types.AIConfig `mapstructure:",squash" yaml:",inline"`

	ResumePrompt          string `mapstructure:"resume_prompt" yaml:"resume_prompt"`
	CoverLetterPrompt     string `mapstructure:"cover_letter_prompt" yaml:"cover_letter_prompt"`
	ChangelogInstructions string `mapstructure:"changelog_instructions" yaml:"changelog_instructions"`
}

// Config is the full resume-engine configuration.
type Config struct {
	// Name is the resume owner's name as used in output filenames.
	Name           string            `mapstructure:"name" yaml:"name"`
	Paths          Paths             `mapstructure:"paths" yaml:"paths"`
	OutputPatterns map[string]string `mapstructure:"output_patterns" yaml:"output_patterns"`
	AI             AI                `mapstructure:"ai" yaml:"ai"`
	HTTP           types.HTTPConfig  `mapstructure:"http" yaml:"http"`
}

// Load applies defaults to v and unmarshals the configuration.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "Resume")

	v.SetDefault("paths.resume_source", "docs/resume.md")
	v.SetDefault("paths.resume_dox", "docs/resume.dox")
	v.SetDefault("paths.build_dir", "build")
	v.SetDefault("paths.optimized_dir", "build/optimized")
	v.SetDefault("paths.backup_dir", "build/backups")
	v.SetDefault("paths.changelog", "CHANGELOG.md")
	v.SetDefault("paths.history_db", "build/history.db")

	v.SetDefault("output_patterns.baseline_docx", "{name}_Resume.docx")
	v.SetDefault("output_patterns.baseline_pdf", "{name}_Resume.pdf")
	v.SetDefault("output_patterns.baseline_html", "{name}_Resume.html")
	v.SetDefault("output_patterns.optimized_resume", "resume_optimized_{timestamp}.md")
	v.SetDefault("output_patterns.optimized_cover_letter", "cover_letter_{timestamp}.md")
	v.SetDefault("output_patterns.optimized_docx", "{name}_Resume_{company}_{timestamp}.docx")
	v.SetDefault("output_patterns.optimized_docx_fallback", "{name}_Resume_optimized_{timestamp}.docx")
	v.SetDefault("output_patterns.optimized_pdf", "{name}_Resume_{company}_{timestamp}.pdf")
	v.SetDefault("output_patterns.optimized_pdf_fallback", "{name}_Resume_optimized_{timestamp}.pdf")
	v.SetDefault("output_patterns.optimized_html", "{name}_Resume_optimized_{timestamp}.html")

	v.SetDefault("ai.provider", "claude")
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.max_tokens", 8000)
	v.SetDefault("ai.max_retries", 3)
	v.SetDefault("ai.ollama_base_url", "http://localhost:11434")
	v.SetDefault("ai.resume_prompt",
		"You are an expert resume writer. Tailor the resume to the job "+
			"description without inventing experience, keep the Markdown "+
			"structure intact, and keep the content to a single page.")
	v.SetDefault("ai.cover_letter_prompt",
		"Also write a concise one-page cover letter in Markdown addressed "+
			"to the hiring team, drawing on the strongest matches between "+
			"the resume and the job description.")
	v.SetDefault("ai.changelog_instructions",
		"List every change you made as Markdown bullets, one bullet per "+
			"change, naming the section you changed and why.")

	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("http.user_agent",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
}

// OutputFilename renders the named output pattern, substituting {name} and
// {timestamp} plus any caller-supplied variables such as {company}. Values
// are sanitized for filename use. Unknown pattern keys and unresolved
// placeholders are errors.
func (c *Config) OutputFilename(key string, vars map[string]string) (string, error) {
	pattern, ok := c.OutputPatterns[key]
	if !ok {
		return "", fmt.Errorf("unknown output pattern %q", key)
	}

	merged := map[string]string{
		"name":      sanitize(c.Name),
		"timestamp": time.Now().Format(TimestampLayout),
	}
	for k, v := range vars {
		merged[k] = sanitize(v)
	}

	out := pattern
	for k, v := range merged {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}

	if strings.ContainsAny(out, "{}") {
		return "", fmt.Errorf("output pattern %q: unresolved placeholder in %q", key, out)
	}
	return out, nil
}

// sanitize makes a value safe for use inside a filename: whitespace and
// path separators become underscores.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '/', '\\':
			return '_'
		}
		return r
	}, s)
}
