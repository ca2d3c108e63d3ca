// Package history persists completed analyses in a local SQLite
// database so past results can be listed and re-opened.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agentstation/utc"
	_ "modernc.org/sqlite"

	"github.com/crosscheck-ai/crosscheck/pkg/errors"
	"github.com/crosscheck-ai/crosscheck/pkg/priority"
	"github.com/crosscheck-ai/crosscheck/pkg/reconcile"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	excel_filename TEXT NOT NULL,
	pptx_filename TEXT NOT NULL,
	analysis_date TEXT NOT NULL,
	discrepancies_summary TEXT,
	discrepancies_json TEXT,
	status TEXT NOT NULL DEFAULT 'completed'
);
CREATE TABLE IF NOT EXISTS priority_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	filename TEXT NOT NULL,
	analysis_date TEXT NOT NULL,
	total_projects INTEGER NOT NULL,
	results_json TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'completed'
);
`

// AnalysisRecord is one stored reconciliation run.
type AnalysisRecord struct {
	ID            int64             `json:"id"`
	ExcelFilename string            `json:"excel_filename"`
	PptxFilename  string            `json:"pptx_filename"`
	AnalysisDate  utc.Time          `json:"analysis_date"`
	Summary       string            `json:"summary"`
	Result        *reconcile.Result `json:"result,omitempty"`
	Status        string            `json:"status"`
}

// PriorityRecord is one stored batch scoring run.
type PriorityRecord struct {
	ID            int64                 `json:"id"`
	Filename      string                `json:"filename"`
	AnalysisDate  utc.Time              `json:"analysis_date"`
	TotalProjects int                   `json:"total_projects"`
	Result        *priority.BatchResult `json:"result,omitempty"`
	Status        string                `json:"status"`
}

// Store wraps the SQLite database. Safe for concurrent use; SQLite
// serializes writers internally.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.WrapIO("migrate", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveAnalysis records a completed reconciliation run and returns its
// assigned identifier.
func (s *Store) SaveAnalysis(ctx context.Context, excelFilename, pptxFilename string, result *reconcile.Result) (int64, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("encoding analysis result: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO analysis_history
			(excel_filename, pptx_filename, analysis_date, discrepancies_summary, discrepancies_json, status)
		VALUES (?, ?, ?, ?, ?, 'completed')`,
		excelFilename, pptxFilename, utc.Now().Format(time.RFC3339Nano), result.Summary, string(payload))
	if err != nil {
		return 0, fmt.Errorf("saving analysis: %w", err)
	}
	return res.LastInsertId()
}

// SavePriority records a completed batch scoring run and returns its
// assigned identifier.
func (s *Store) SavePriority(ctx context.Context, filename string, result *priority.BatchResult) (int64, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("encoding batch result: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO priority_history
			(filename, analysis_date, total_projects, results_json, status)
		VALUES (?, ?, ?, ?, 'completed')`,
		filename, utc.Now().Format(time.RFC3339Nano), result.TotalProjects, string(payload))
	if err != nil {
		return 0, fmt.Errorf("saving priority batch: %w", err)
	}
	return res.LastInsertId()
}

// GetAnalysis loads one reconciliation record by identifier.
func (s *Store) GetAnalysis(ctx context.Context, id int64) (*AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, excel_filename, pptx_filename, analysis_date, discrepancies_summary, discrepancies_json, status
		 FROM analysis_history WHERE id = ?`, id)

	var rec AnalysisRecord
	var date, payload string
	if err := row.Scan(&rec.ID, &rec.ExcelFilename, &rec.PptxFilename, &date, &rec.Summary, &payload, &rec.Status); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("loading analysis %d: %w", id, err)
	}
	if err := rec.setDate(date); err != nil {
		return nil, err
	}
	if payload != "" {
		rec.Result = &reconcile.Result{}
		if err := json.Unmarshal([]byte(payload), rec.Result); err != nil {
			return nil, fmt.Errorf("decoding analysis %d: %w", id, err)
		}
	}
	return &rec, nil
}

// GetPriority loads one batch scoring record by identifier.
func (s *Store) GetPriority(ctx context.Context, id int64) (*PriorityRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, filename, analysis_date, total_projects, results_json, status
		 FROM priority_history WHERE id = ?`, id)

	var rec PriorityRecord
	var date, payload string
	if err := row.Scan(&rec.ID, &rec.Filename, &date, &rec.TotalProjects, &payload, &rec.Status); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("loading priority batch %d: %w", id, err)
	}
	if err := rec.setDate(date); err != nil {
		return nil, err
	}
	rec.Result = &priority.BatchResult{}
	if err := json.Unmarshal([]byte(payload), rec.Result); err != nil {
		return nil, fmt.Errorf("decoding priority batch %d: %w", id, err)
	}
	return &rec, nil
}

// ListAnalyses returns recent reconciliation records, newest first,
// without their full result payloads.
func (s *Store) ListAnalyses(ctx context.Context, limit int) ([]AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, excel_filename, pptx_filename, analysis_date, discrepancies_summary, status
		 FROM analysis_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	var records []AnalysisRecord
	for rows.Next() {
		var rec AnalysisRecord
		var date string
		if err := rows.Scan(&rec.ID, &rec.ExcelFilename, &rec.PptxFilename, &date, &rec.Summary, &rec.Status); err != nil {
			return nil, fmt.Errorf("scanning analysis row: %w", err)
		}
		if err := rec.setDate(date); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListPriorities returns recent batch scoring records, newest first,
// without their full result payloads.
func (s *Store) ListPriorities(ctx context.Context, limit int) ([]PriorityRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, analysis_date, total_projects, status
		 FROM priority_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing priority batches: %w", err)
	}
	defer rows.Close()

	var records []PriorityRecord
	for rows.Next() {
		var rec PriorityRecord
		var date string
		if err := rows.Scan(&rec.ID, &rec.Filename, &date, &rec.TotalProjects, &rec.Status); err != nil {
			return nil, fmt.Errorf("scanning priority row: %w", err)
		}
		if err := rec.setDate(date); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *AnalysisRecord) setDate(date string) error {
	t, err := utc.Parse(time.RFC3339Nano, date)
	if err != nil {
		return fmt.Errorf("parsing analysis date %q: %w", date, err)
	}
	r.AnalysisDate = t
	return nil
}

func (r *PriorityRecord) setDate(date string) error {
	t, err := utc.Parse(time.RFC3339Nano, date)
	if err != nil {
		return fmt.Errorf("parsing analysis date %q: %w", date, err)
	}
	r.AnalysisDate = t
	return nil
}
