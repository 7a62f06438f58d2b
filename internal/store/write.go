package store

import (
	"context"
	"fmt"
	"time"
)

// timeLayout is the on-disk format of run timestamps.
const timeLayout = time.RFC3339Nano

// BeginRun inserts a run record. Status is forced to running and
// FinishedAt is ignored; use FinishRun to close the run.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, name, category, seed, rank, config, host, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Name,
		run.Category,
		int64(run.Seed),
		run.Rank,
		run.Config,
		run.Host,
		string(StatusRunning),
		run.StartedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("begin run %s: %w", run.ID, err)
	}
	return nil
}

// RecordMeasurement appends a measurement to its run.
// The run must exist (foreign key constraint) and (run_id, seq) must be new.
func (s *Store) RecordMeasurement(ctx context.Context, m Measurement) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO measurements
		(run_id, seq, distribution, size, repeat, algorithm, elapsed_ms, comparisons, memory_bytes, outcome, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		m.RunID,
		m.Seq,
		m.Distribution,
		m.Size,
		m.Repeat,
		m.Algorithm,
		m.ElapsedMillis,
		int64(m.Comparisons),
		int64(m.MemoryBytes),
		m.Outcome,
		m.Error,
	)
	if err != nil {
		return fmt.Errorf("record measurement %s/%d: %w", m.RunID, m.Seq, err)
	}
	return nil
}

// FinishRun sets the final status and finish time of a run.
// Returns ErrRunNotFound if no such run exists.
func (s *Store) FinishRun(ctx context.Context, runID string, status RunStatus, finishedAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET status = ?, finished_at = ? WHERE id = ?
	`, string(status), finishedAt.UTC().Format(timeLayout), runID)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", runID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run %s: %w", runID, err)
	}
	if n == 0 {
		return fmt.Errorf("finish run %s: %w", runID, ErrRunNotFound)
	}
	return nil
}
