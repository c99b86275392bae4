// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records export runs in a SQLite database so past exports
// can be listed and exported.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/image-collector/pkg/types"
)

const (
	// DefaultDir is created under the vault root when no DB path is configured.
	DefaultDir = ".image-collector"
	dbFile     = "history.db"

	defaultLimit = 20

	// timeLayout is fixed-width so stored timestamps sort lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Store manages the export history database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the history database path for a vault root.
func DefaultPath(vaultRoot string) string {
	return filepath.Join(vaultRoot, DefaultDir, dbFile)
}

// Open opens or creates the history database at dbPath and creates the
// schema if it does not exist.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
			document TEXT NOT NULL,
			title TEXT,
			target_folder TEXT NOT NULL,
			started_at TEXT NOT NULL,
			exported INTEGER NOT NULL,
			not_found INTEGER NOT NULL,
			copy_failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS outcomes (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			raw_path TEXT NOT NULL,
			literal TEXT,
			kind TEXT NOT NULL,
			status TEXT NOT NULL,
			resolved_name TEXT,
			target_path TEXT,
			error_detail TEXT,
			PRIMARY KEY (run_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_document ON runs(document)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Run is one recorded export of one document.
type Run struct {
	ID           int64     `json:"id" yaml:"id"`
	Document     string    `json:"document" yaml:"document"`
	Title        string    `json:"title,omitempty" yaml:"title,omitempty"`
	TargetFolder string    `json:"target_folder" yaml:"target_folder"`
	StartedAt    time.Time `json:"started_at" yaml:"started_at"`
	Exported     int       `json:"exported" yaml:"exported"`
	NotFound     int       `json:"not_found" yaml:"not_found"`
	CopyFailed   int       `json:"copy_failed" yaml:"copy_failed"`
}

// Total returns the number of image references in the run.
func (r Run) Total() int {
	return r.Exported + r.NotFound + r.CopyFailed
}

// QueryOptions filters Runs.
type QueryOptions struct {
	// Document restricts results to one vault path.
	Document string

	// Limit caps the result count. Zero uses the default (20); negative
	// means no limit.
	Limit int
}

// Record stores a report as one run. doc is the vault path of the source
// document. It returns the new run ID.
func (s *Store) Record(ctx context.Context, doc, title string, report types.ExportReport, startedAt time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (document, title, target_folder, started_at, exported, not_found, copy_failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		doc, title, report.TargetFolderName, startedAt.UTC().Format(timeLayout),
		report.Count(types.OutcomeExported),
		report.Count(types.OutcomeNotFound),
		report.Count(types.OutcomeCopyFailed),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO outcomes (run_id, seq, raw_path, literal, kind, status, resolved_name, target_path, error_detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, o := range report.Outcomes {
		_, err := stmt.ExecContext(ctx,
			runID, i, o.Reference.RawPath, o.Reference.Literal, string(o.Reference.Kind),
			string(o.Status), o.ResolvedName, o.TargetPath, o.ErrorDetail,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting outcome %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs lists recorded runs, newest first.
func (s *Store) Runs(ctx context.Context, opts QueryOptions) ([]Run, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, document, title, target_folder, started_at, exported, not_found, copy_failed
		FROM runs WHERE 1=1`)
	if opts.Document != "" {
		qb.WriteString(` AND document = ?`)
		args = append(args, opts.Document)
	}
	qb.WriteString(` ORDER BY started_at DESC, id DESC`)

	limit := opts.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			title     sql.NullString
			startedAt string
		)
		if err := rows.Scan(&r.ID, &r.Document, &title, &r.TargetFolder, &startedAt,
			&r.Exported, &r.NotFound, &r.CopyFailed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Title = title.String
		if t, err := time.Parse(timeLayout, startedAt); err == nil {
			r.StartedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Outcomes returns the outcomes of a run in their original order.
func (s *Store) Outcomes(ctx context.Context, runID int64) ([]types.ExportOutcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT raw_path, literal, kind, status, resolved_name, target_path, error_detail
		 FROM outcomes WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []types.ExportOutcome
	for rows.Next() {
		var (
			o                                    types.ExportOutcome
			kind, status                         string
			literal, resolved, target, errDetail sql.NullString
		)
		if err := rows.Scan(&o.Reference.RawPath, &literal, &kind, &status,
			&resolved, &target, &errDetail); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		o.Reference.Literal = literal.String
		o.Reference.Kind = types.ReferenceKind(kind)
		o.Status = types.OutcomeStatus(status)
		o.ResolvedName = resolved.String
		o.TargetPath = target.String
		o.ErrorDetail = errDetail.String
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}
