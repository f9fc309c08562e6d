package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAppendOptimizationCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")

	entry := OptimizationEntry{
		Date:      time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC),
		JobURL:    "https://example.com/jobs/1",
		Company:   "Example Corp",
		Timestamp: "20260826_100000",
		Changes:   "- tightened the summary\n- reordered skills\n",
	}
	if err := AppendOptimization(path, entry); err != nil {
		t.Fatalf("AppendOptimization() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)

	for _, want := range []string{
		"# Resume Optimization Changelog",
		"## 2026-08-26 - Resume Optimization",
		"**Job Posting:** https://example.com/jobs/1",
		"**Company:** Example Corp",
		"**Timestamp:** 20260826_100000",
		"### Changes Made:",
		"- tightened the summary",
		"- reordered skills",
		"---",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("changelog missing %q:\n%s", want, got)
		}
	}
}

func TestAppendOptimizationOmitsEmptyCompany(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")

	err := AppendOptimization(path, OptimizationEntry{
		JobURL:    "https://example.com",
		Timestamp: "x",
		Changes:   "- change",
	})
	if err != nil {
		t.Fatalf("AppendOptimization() error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "**Company:**") {
		t.Error("company line present for empty company")
	}
}

func TestAppendPreservesExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	existing := "# Resume Optimization Changelog\n\ncustom intro\n"
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	err := AppendPromotion(path, PromotionEntry{
		Source: "resume_optimized_20260826_100000.md",
		Backup: "resume_backup_20260826_100100.md",
		Reason: "accepted offer-track revision",
	})
	if err != nil {
		t.Fatalf("AppendPromotion() error: %v", err)
	}

	data, _ := os.ReadFile(path)
	got := string(data)

	if !strings.HasPrefix(got, existing) {
		t.Error("existing content was not preserved")
	}
	for _, want := range []string{
		"Promoted Optimized Resume to Baseline",
		"**Source:** resume_optimized_20260826_100000.md",
		"**Backup:** resume_backup_20260826_100100.md",
		"**Reason:** accepted offer-track revision",
		"new baseline resume",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("changelog missing %q:\n%s", want, got)
		}
	}

	// Header must not be duplicated when the file already exists.
	if strings.Count(got, "# Resume Optimization Changelog") != 1 {
		t.Error("changelog header duplicated")
	}
}
