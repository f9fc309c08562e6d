package types

import "time"

// Run records one resume optimization: when it ran, what posting it
// targeted, and where the outputs landed. Runs are append-only.
type Run struct {
	ID              int64     `json:"id" yaml:"id"`
	CreatedAt       time.Time `json:"created_at" yaml:"created_at"`
	Company         string    `json:"company,omitempty" yaml:"company,omitempty"`
	JobURL          string    `json:"job_url" yaml:"job_url"`
	JobDescription  string    `json:"job_description,omitempty" yaml:"job_description,omitempty"`
	ResumePath      string    `json:"resume_path" yaml:"resume_path"`
	CoverLetterPath string    `json:"cover_letter_path" yaml:"cover_letter_path"`
	Changelog       string    `json:"changelog,omitempty" yaml:"changelog,omitempty"`
}
