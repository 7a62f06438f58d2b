package store

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginRun_ForcesRunningStatus(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run := createTestRun("run-1")
	run.Status = StatusCompleted
	require.NoError(t, s.BeginRun(ctx, run))

	got, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, got.Status)
	assert.Nil(t, got.FinishedAt)
}

func TestBeginRun_DuplicateID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.BeginRun(ctx, createTestRun("run-1")))
	assert.Error(t, s.BeginRun(ctx, createTestRun("run-1")))
}

func TestBeginRun_SeedRoundTripsFullRange(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run := createTestRun("run-big-seed")
	run.Seed = math.MaxUint64
	require.NoError(t, s.BeginRun(ctx, run))

	got, err := s.ReadRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), got.Seed)
}

func TestFinishRun(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.BeginRun(ctx, createTestRun("run-1")))

	finished := testStart.Add(90 * time.Second)
	require.NoError(t, s.FinishRun(ctx, "run-1", StatusFailed, finished))

	got, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, got.Status)
	require.NotNil(t, got.FinishedAt)
	assert.True(t, finished.Equal(*got.FinishedAt))
}

func TestFinishRun_UnknownRun(t *testing.T) {
	s := createTestStore(t)

	err := s.FinishRun(context.Background(), "nope", StatusCompleted, testStart)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestRecordMeasurement_FailedMeasurement(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.BeginRun(ctx, createTestRun("run-1")))

	m := Measurement{
		RunID:        "run-1",
		Seq:          1,
		Distribution: "RANDOM",
		Size:         3,
		Algorithm:    "QuickSelect",
		Error:        "QuickSelect: OUT_OF_RANGE: k=6 is out of bounds for sequence of size 3",
	}
	require.NoError(t, s.RecordMeasurement(ctx, m))

	ms, err := s.ReadMeasurements(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.True(t, ms[0].Failed())
	assert.Equal(t, m, ms[0])
}
