package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gnames/pokedb/internal/ioprogress"
	"github.com/gnames/pokedb/pkg/progress"
	"github.com/gnames/pokedb/pkg/schema"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProgressCmd(t *testing.T) {
	cmd := getProgressCmd()
	assert.Equal(t, "progress", cmd.Name())
	require.NotNil(t, cmd.Flags().Lookup("watch"))
	require.NotNil(t, cmd.Flags().Lookup("interval"))

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"reset", "stop", "runs"}, names)
}

func TestProgressLine(t *testing.T) {
	s := progress.Initial()
	s.Start("moves", 1200)
	for range 1050 {
		s.Advance("")
		s.Success()
	}
	s.Error("Failed move 13")

	line := progressLine(progress.Report{State: s})
	assert.Equal(t, "[moves] 1,050/1,200 ok: 1,050, errors: 1 | Failed move 13", line)

	rep := progress.Report{
		State:   s,
		Workers: []progress.Worker{{ID: 0}, {ID: 1}},
	}
	assert.Contains(t, progressLine(rep), ", workers: 2 |")
}

func TestShowProgress(t *testing.T) {
	ctx := context.Background()
	board := ioprogress.NewBoard(ioprogress.NewMemStore(), "test")
	tr := ioprogress.NewTracker(board, -1, progress.Initial())
	require.NoError(t, tr.Start("types", 20))
	require.NoError(t, tr.Advance("Imported fire"))
	require.NoError(t, tr.Success())

	var buf bytes.Buffer
	require.NoError(t, showProgress(ctx, board, &buf))
	out := buf.String()
	assert.Contains(t, out, `"current_step": "types"`)
	assert.Contains(t, out, `"successCount": 1`)
}

func TestWatchProgress(t *testing.T) {
	ctx := context.Background()
	board := ioprogress.NewBoard(ioprogress.NewMemStore(), "test")
	tr := ioprogress.NewTracker(board, -1, progress.Initial())
	require.NoError(t, tr.Start("pokemon", 2))

	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = tr.Advance("")
		_ = tr.Success()
		_ = tr.Complete(progress.StageAll)
	}()

	var buf bytes.Buffer
	err := watchProgress(ctx, board, &buf, 5*time.Millisecond)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.GreaterOrEqual(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[0], "[pokemon] 0/2"))
	assert.Contains(t, lines[len(lines)-1], "Import complete!")
}

func TestWatchProgressFailed(t *testing.T) {
	board := ioprogress.NewBoard(ioprogress.NewMemStore(), "test")
	tr := ioprogress.NewTracker(board, -1, progress.Initial())
	require.NoError(t, tr.Start("moves", 5))
	require.NoError(t, tr.Advance("Processing tackle"))
	require.NoError(t, tr.Fail("moves", false, "upstream is down"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	var buf bytes.Buffer
	err := watchProgress(ctx, board, &buf, 5*time.Millisecond)
	require.NoError(t, err)

	out := strings.TrimSpace(buf.String())
	assert.Equal(t, 1, strings.Count(out, "\n")+1)
	assert.True(t, strings.HasPrefix(out, "[failed] 1/5"))
	assert.Contains(t, out, "Stage moves failed: upstream is down")
}

func TestWatchProgressCancel(t *testing.T) {
	board := ioprogress.NewBoard(ioprogress.NewMemStore(), "test")
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	var buf bytes.Buffer
	err := watchProgress(ctx, board, &buf, 5*time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrintRuns(t *testing.T) {
	id := uuid.New()
	worker := 3
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	done := start.Add(90 * time.Second)
	runs := []schema.ImportRun{
		{
			ID:               id,
			Status:           "completed",
			CurrentStep:      "pokemon",
			CurrentStepIndex: 7,
			TotalSteps:       7,
			Processed:        1234,
			SuccessCount:     1230,
			ErrorCount:       4,
			StartedAt:        start,
			CompletedAt:      &done,
		},
		{
			ID:          uuid.New(),
			WorkerID:    &worker,
			Status:      "running",
			CurrentStep: "moves",
			StartedAt:   start,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, printRuns(&buf, runs))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], id.String()[:8])
	assert.Contains(t, lines[1], "7/7 pokemon")
	assert.Contains(t, lines[1], "1,234")
	assert.Contains(t, lines[1], "2025-03-01 10:00:00")
	assert.Contains(t, lines[2], "running")
	assert.Contains(t, lines[2], " 3 ")
}
