package history

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const changelogHeader = "# Resume Optimization Changelog\n\n"

// OptimizationEntry describes one optimization run for the changelog.
type OptimizationEntry struct {
	Date      time.Time
	JobURL    string
	Company   string
	Timestamp string
	Changes   string
}

// PromotionEntry describes a baseline promotion for the changelog.
type PromotionEntry struct {
	Date   time.Time
	Source string
	Backup string
	Reason string
}

// AppendOptimization appends an optimization entry to the changelog file,
// creating it with the standard header when missing.
func AppendOptimization(path string, e OptimizationEntry) error {
	date := e.Date
	if date.IsZero() {
		date = time.Now()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n## %s - Resume Optimization\n\n", date.Format("2006-01-02"))
	fmt.Fprintf(&b, "**Job Posting:** %s\n", e.JobURL)
	if e.Company != "" {
		fmt.Fprintf(&b, "**Company:** %s\n", e.Company)
	}
	fmt.Fprintf(&b, "**Timestamp:** %s\n\n", e.Timestamp)
	b.WriteString("### Changes Made:\n")
	b.WriteString(strings.TrimRight(e.Changes, "\n"))
	b.WriteString("\n\n---\n")

	return appendEntry(path, b.String())
}

// AppendPromotion appends a promotion entry to the changelog file.
func AppendPromotion(path string, e PromotionEntry) error {
	date := e.Date
	if date.IsZero() {
		date = time.Now()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n## %s - Promoted Optimized Resume to Baseline\n\n", date.Format("2006-01-02"))
	fmt.Fprintf(&b, "**Source:** %s\n", e.Source)
	fmt.Fprintf(&b, "**Backup:** %s\n", e.Backup)
	if e.Reason != "" {
		fmt.Fprintf(&b, "**Reason:** %s\n", e.Reason)
	}
	b.WriteString("\nThe optimized resume has been promoted to be the new baseline resume.\n")
	b.WriteString("All future optimizations will be based on this version.\n\n---\n")

	return appendEntry(path, b.String())
}

func appendEntry(path, entry string) error {
	current, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("reading changelog: %w", err)
		}
		current = []byte(changelogHeader)
	}

	if err := os.WriteFile(path, append(current, entry...), 0o644); err != nil {
		return fmt.Errorf("writing changelog: %w", err)
	}
	return nil
}
