package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Run is one recorded analysis. Metric columns are null for runs where no
// column structure was detected or inspection failed.
type Run struct {
	RunID           int64
	CreatedAt       time.Time
	Source          string
	AvailableHeight float64
	Detected        bool
	IsBalanced      sql.NullBool
	Column1Pct      sql.NullFloat64
	Column2Pct      sql.NullFloat64
	Column3Pct      sql.NullFloat64
	MaxHeightPx     sql.NullFloat64
	MinHeightPx     sql.NullFloat64
	DiffPx          sql.NullFloat64
	DiffPct         sql.NullFloat64
	OverallStatus   sql.NullString
	ErrorType       sql.NullString
}

// InsertRun records one analysis and returns its ID.
func (db *DB) InsertRun(run Run) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (
			source, available_height, detected, is_balanced,
			column_1_pct, column_2_pct, column_3_pct,
			max_height_px, min_height_px, diff_px, diff_pct,
			overall_status, error_type
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.Source, run.AvailableHeight, run.Detected, run.IsBalanced,
		run.Column1Pct, run.Column2Pct, run.Column3Pct,
		run.MaxHeightPx, run.MinHeightPx, run.DiffPx, run.DiffPct,
		run.OverallStatus, run.ErrorType)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT run_id, created_at, source, available_height, detected, is_balanced,
		       column_1_pct, column_2_pct, column_3_pct,
		       max_height_px, min_height_px, diff_px, diff_pct,
		       overall_status, error_type
		FROM runs
		ORDER BY created_at DESC, run_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRunByID returns one run or sql.ErrNoRows.
func (db *DB) GetRunByID(runID int64) (Run, error) {
	row := db.QueryRow(`
		SELECT run_id, created_at, source, available_height, detected, is_balanced,
		       column_1_pct, column_2_pct, column_3_pct,
		       max_height_px, min_height_px, diff_px, diff_pct,
		       overall_status, error_type
		FROM runs
		WHERE run_id = ?
	`, runID)
	return scanRun(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	err := row.Scan(
		&run.RunID, &run.CreatedAt, &run.Source, &run.AvailableHeight,
		&run.Detected, &run.IsBalanced,
		&run.Column1Pct, &run.Column2Pct, &run.Column3Pct,
		&run.MaxHeightPx, &run.MinHeightPx, &run.DiffPx, &run.DiffPct,
		&run.OverallStatus, &run.ErrorType)
	if err != nil {
		return Run{}, fmt.Errorf("failed to scan run: %w", err)
	}
	return run, nil
}
