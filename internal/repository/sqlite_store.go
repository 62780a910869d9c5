package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wellbeing/internal/model"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// SQLiteStore keeps submissions and reports in a single local database file.
// Records are stored as JSON documents next to the columns used for lookup.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and migrates) the database at path
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("repository: create data dir: %w", err)
		}
	}
	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repository: open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("repository: pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("repository: migration: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS submissions (
			id         TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			facility   TEXT NOT NULL,
			created_at TEXT NOT NULL,
			doc        TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_submissions_facility ON submissions(facility);

		CREATE TABLE IF NOT EXISTS ai_reports (
			submission_id TEXT PRIMARY KEY,
			status        TEXT NOT NULL,
			updated_at    TEXT NOT NULL,
			doc           TEXT NOT NULL
		);
	`)
	return err
}

// Store exposes the sqlite database through the repository interfaces
func (s *SQLiteStore) Store() *Store {
	return &Store{
		Submissions: s,
		Reports:     s,
		Close:       func(context.Context) error { return s.Close() },
	}
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Create(ctx context.Context, submission *model.Submission) error {
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
	}
	doc, err := json.Marshal(submission)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, session_id, facility, created_at, doc) VALUES (?, ?, ?, ?, ?)`,
		submission.ID, submission.SessionID, submission.Profile.Facility,
		submission.CreatedAt.Format(time.RFC3339Nano), string(doc),
	)
	return err
}

func (s *SQLiteStore) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM submissions WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var submission model.Submission
	if err := json.Unmarshal([]byte(doc), &submission); err != nil {
		return nil, fmt.Errorf("repository: decode submission %s: %w", id, err)
	}
	return &submission, nil
}

func (s *SQLiteStore) SaveAIReport(ctx context.Context, report *model.AIReport) error {
	doc, err := json.Marshal(report)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ai_reports (submission_id, status, updated_at, doc) VALUES (?, ?, ?, ?)
		ON CONFLICT(submission_id) DO UPDATE SET
			status = excluded.status,
			updated_at = excluded.updated_at,
			doc = excluded.doc`,
		report.SubmissionID, string(report.Status), time.Now().UTC().Format(time.RFC3339Nano), string(doc),
	)
	return err
}

func (s *SQLiteStore) GetAIReport(ctx context.Context, submissionID string) (*model.AIReport, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM ai_reports WHERE submission_id = ?`, submissionID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report model.AIReport
	if err := json.Unmarshal([]byte(doc), &report); err != nil {
		return nil, fmt.Errorf("repository: decode report %s: %w", submissionID, err)
	}
	return &report, nil
}
