// Package history records optimization runs: an append-only SQLite log
// with full-text search over the stored job descriptions, plus the
// human-readable CHANGELOG.md appender.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/tnguyen/resume-engine/pkg/types"
)

const defaultMaxResults = 20

// Store manages the run history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at path, creating the
// schema if it does not exist.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db, maxResults: defaultMaxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			company TEXT,
			job_url TEXT NOT NULL,
			job_description TEXT,
			resume_path TEXT,
			cover_letter_path TEXT,
			changelog TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_company ON runs(company)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table. Runs are append-only, so a single insert
	// trigger keeps the index in sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='runs_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE runs_fts USING fts5(job_description, changelog, content=runs, content_rowid=id)`,
			`CREATE TRIGGER runs_ai AFTER INSERT ON runs BEGIN
				INSERT INTO runs_fts(rowid, job_description, changelog)
				VALUES (new.id, new.job_description, new.changelog);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Record appends one run and returns its ID. A zero CreatedAt is filled
// with the current time.
func (s *Store) Record(ctx context.Context, run types.Run) (int64, error) {
	created := run.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (created_at, company, job_url, job_description, resume_path, cover_letter_path, changelog)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		created.UTC().Format(time.RFC3339), run.Company, run.JobURL,
		run.JobDescription, run.ResumePath, run.CoverLetterPath, run.Changelog,
	)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	return res.LastInsertId()
}

// List returns the most recent runs, newest first. A non-positive limit
// uses the default.
func (s *Store) List(ctx context.Context, limit int) ([]types.Run, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, company, job_url, job_description, resume_path, cover_letter_path, changelog
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// Search returns runs whose job description or changelog matches the FTS5
// query, best match first.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]types.Run, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.created_at, r.company, r.job_url, r.job_description, r.resume_path, r.cover_letter_path, r.changelog
		 FROM runs r JOIN runs_fts f ON r.id = f.rowid
		 WHERE runs_fts MATCH ? ORDER BY rank LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// ExportYAML writes every run, oldest first, to path.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, company, job_url, job_description, resume_path, cover_letter_path, changelog
		 FROM runs ORDER BY id ASC`)
	if err != nil {
		return fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(runs)
	if err != nil {
		return fmt.Errorf("marshaling runs: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func scanRuns(rows *sql.Rows) ([]types.Run, error) {
	var runs []types.Run
	for rows.Next() {
		var r types.Run
		var created string
		if err := rows.Scan(&r.ID, &created, &r.Company, &r.JobURL,
			&r.JobDescription, &r.ResumePath, &r.CoverLetterPath, &r.Changelog); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
