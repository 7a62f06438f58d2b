package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

const runColumns = `id, name, category, seed, rank, config, host, status, started_at, finished_at`

// ListRuns returns every run, most recently started first.
// Returns an empty slice (not nil) if the store holds no runs.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		ORDER BY started_at DESC, id COLLATE BINARY DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun returns a single run by ID.
// Returns ErrRunNotFound if no such run exists.
func (s *Store) ReadRun(ctx context.Context, runID string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE id = ?
	`, runID)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// LatestRunID returns the ID of the most recently started run.
// Returns ErrRunNotFound if the store holds no runs.
func (s *Store) LatestRunID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM runs
		ORDER BY started_at DESC, id COLLATE BINARY DESC
		LIMIT 1
	`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("latest run: %w", ErrRunNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("latest run: %w", err)
	}
	return id, nil
}

// ReadMeasurements returns the measurements of a run ordered by seq.
// Returns an empty slice (not nil) if the run has none.
func (s *Store) ReadMeasurements(ctx context.Context, runID string) ([]Measurement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, seq, distribution, size, repeat, algorithm,
		       elapsed_ms, comparisons, memory_bytes, outcome, error
		FROM measurements
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query measurements: %w", err)
	}
	defer rows.Close()

	ms := []Measurement{}
	for rows.Next() {
		var (
			m           Measurement
			comparisons int64
			memory      int64
		)
		if err := rows.Scan(
			&m.RunID, &m.Seq, &m.Distribution, &m.Size, &m.Repeat, &m.Algorithm,
			&m.ElapsedMillis, &comparisons, &memory, &m.Outcome, &m.Error,
		); err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}
		m.Comparisons = uint64(comparisons)
		m.MemoryBytes = uint64(memory)
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate measurements: %w", err)
	}
	return ms, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run        Run
		seed       int64
		status     string
		startedAt  string
		finishedAt sql.NullString
	)
	err := row.Scan(
		&run.ID, &run.Name, &run.Category, &seed, &run.Rank,
		&run.Config, &run.Host, &status, &startedAt, &finishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	run.Seed = uint64(seed)
	run.Status = RunStatus(status)

	run.StartedAt, err = time.Parse(timeLayout, startedAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse started_at of run %s: %w", run.ID, err)
	}
	if finishedAt.Valid {
		t, err := time.Parse(timeLayout, finishedAt.String)
		if err != nil {
			return Run{}, fmt.Errorf("parse finished_at of run %s: %w", run.ID, err)
		}
		run.FinishedAt = &t
	}
	return run, nil
}
