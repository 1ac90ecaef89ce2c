package ioorchestrate_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/pokedb/internal/ioimport"
	"github.com/gnames/pokedb/internal/ioorchestrate"
	"github.com/gnames/pokedb/internal/ioparallel"
	"github.com/gnames/pokedb/internal/ioprogress"
	"github.com/gnames/pokedb/internal/iosource"
	"github.com/gnames/pokedb/internal/iotesting"
	"github.com/gnames/pokedb/pkg/errcode"
	"github.com/gnames/pokedb/pkg/lifecycle"
	"github.com/gnames/pokedb/pkg/progress"
	"github.com/gnames/pokedb/pkg/schema"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStages() []string {
	var res []string
	for _, st := range ioimport.Stages() {
		res = append(res, st.Name())
	}
	return res
}

// fakeRunner records stages and fails the one named in fail.
type fakeRunner struct {
	mu   sync.Mutex
	ran  []string
	fail string
	hook func(name string)
}

func (f *fakeRunner) RunStage(
	_ context.Context,
	st ioimport.Stage,
) (lifecycle.StageReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ran = append(f.ran, st.Name())
	if f.hook != nil {
		f.hook(st.Name())
	}
	rep := lifecycle.StageReport{Total: 2, Processed: 2, Success: 2}
	if st.Name() == f.fail {
		rep.Success, rep.Errors = 1, 1
		return rep, errors.New("upstream is down")
	}
	return rep, nil
}

func newTracker() (*ioprogress.Board, progress.Tracker) {
	board := ioprogress.NewBoard(ioprogress.NewMemStore(), "test")
	return board, ioprogress.NewTracker(board, -1, progress.Initial())
}

func statuses(rep lifecycle.Report) map[string]lifecycle.StageStatus {
	res := make(map[string]lifecycle.StageStatus)
	for _, s := range rep.Stages {
		res[s.Stage] = s.Status
	}
	return res
}

func TestImportOrder(t *testing.T) {
	st := iotesting.NewMemStore()
	_, tr := newTracker()
	runner := &fakeRunner{}
	runID := uuid.New()

	imp := ioorchestrate.New(st, runner, tr,
		ioorchestrate.OptRunID(runID), ioorchestrate.OptQuiet(true))
	rep, err := imp.Import(context.Background(), allStages())
	require.NoError(t, err)

	assert.Equal(t, allStages(), runner.ran)
	assert.Equal(t, runID, rep.RunID)
	require.Len(t, rep.Stages, 7)
	for _, s := range rep.Stages {
		assert.Equal(t, lifecycle.StageCompleted, s.Status)
	}
	assert.True(t, tr.State().IsComplete())

	runs := st.Runs()
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.ID)
	assert.Equal(t, schema.RunCompleted, run.Status)
	assert.Equal(t, 7, run.TotalSteps)
	assert.Equal(t, 7, run.CurrentStepIndex)
	assert.Equal(t, 14, run.SuccessCount)
	assert.Nil(t, run.ParentID)
	assert.NotNil(t, run.CompletedAt)
	assert.Contains(t, string(run.StepDetails), `"stage":"pokemon"`)
}

func TestImportStopsAtFailure(t *testing.T) {
	st := iotesting.NewMemStore()
	_, tr := newTracker()
	runner := &fakeRunner{fail: "moves"}

	imp := ioorchestrate.New(st, runner, tr, ioorchestrate.OptQuiet(true))
	rep, err := imp.Import(context.Background(), allStages())
	require.Error(t, err)

	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.OrchestrateStageFailedError, gnErr.Code)

	assert.Equal(t, []string{"types", "abilities", "moves"}, runner.ran)
	failed, ok := rep.Failed()
	require.True(t, ok)
	assert.Equal(t, "moves", failed.Stage)
	assert.Equal(t, 1, failed.Errors)
	assert.False(t, tr.State().IsComplete())

	run := st.Runs()[0]
	assert.Equal(t, schema.RunFailed, run.Status)
	assert.Equal(t, "moves", run.CurrentStep)
	require.NotNil(t, run.ErrorMessage)
	assert.Contains(t, *run.ErrorMessage, "upstream is down")
	assert.Equal(t, 1, run.ErrorCount)
}

func TestImportFailurePublished(t *testing.T) {
	st := iotesting.NewMemStore()
	board, tr := newTracker()
	runner := &fakeRunner{fail: "moves", hook: func(name string) {
		if name == "moves" {
			_ = tr.Start("moves", 2)
			_ = tr.Advance("Processing tackle")
		}
	}}

	imp := ioorchestrate.New(st, runner, tr, ioorchestrate.OptQuiet(true))
	_, err := imp.Import(context.Background(), allStages())
	require.Error(t, err)

	rep, err := board.Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, progress.StepFailed, rep.Progress.CurrentStep)
	assert.Contains(t, rep.Progress.Message, "Stage moves failed")
	assert.Contains(t, rep.Progress.Message, "upstream is down")
	assert.True(t, rep.IsFinished())
	assert.False(t, rep.IsComplete())
}

func TestImportSkip(t *testing.T) {
	st := iotesting.NewMemStore()
	_, tr := newTracker()
	runner := &fakeRunner{}

	imp := ioorchestrate.New(st, runner, tr,
		ioorchestrate.OptSkip([]string{"abilities", "items"}),
		ioorchestrate.OptQuiet(true))
	rep, err := imp.Import(context.Background(), allStages())
	require.NoError(t, err)

	assert.NotContains(t, runner.ran, "abilities")
	assert.NotContains(t, runner.ran, "items")
	got := statuses(rep)
	assert.Equal(t, lifecycle.StageSkipped, got["abilities"])
	assert.Equal(t, lifecycle.StageSkipped, got["items"])
	assert.Equal(t, lifecycle.StageCompleted, got["pokemon"])
}

func TestImportPrerequisites(t *testing.T) {
	st := iotesting.NewMemStore()
	_, tr := newTracker()
	runner := &fakeRunner{}

	imp := ioorchestrate.New(st, runner, tr,
		ioorchestrate.OptCheckPrerequisites(true),
		ioorchestrate.OptQuiet(true))
	rep, err := imp.Import(context.Background(), allStages())
	require.NoError(t, err)

	assert.Equal(t, []string{"types", "abilities", "items", "species"}, runner.ran)
	got := statuses(rep)
	assert.Equal(t, lifecycle.StageSkipped, got["moves"])
	assert.Equal(t, lifecycle.StageSkipped, got["evolution-chains"])
	assert.Equal(t, lifecycle.StageSkipped, got["pokemon"])
	for _, s := range rep.Stages {
		if s.Stage == "moves" {
			assert.Contains(t, s.Reason, "types")
		}
	}
}

func TestImportWorkerRun(t *testing.T) {
	st := iotesting.NewMemStore()
	_, tr := newTracker()
	parent := uuid.New()
	runID := ioparallel.WorkerRunID(parent, "types", 3)

	imp := ioorchestrate.New(st, &fakeRunner{}, tr,
		ioorchestrate.OptRunID(runID),
		ioorchestrate.OptParent(parent, 3),
		ioorchestrate.OptQuiet(true))
	_, err := imp.Import(context.Background(), []string{"types"})
	require.NoError(t, err)

	run := st.Runs()[0]
	assert.Equal(t, runID, run.ID)
	require.NotNil(t, run.ParentID)
	assert.Equal(t, parent, *run.ParentID)
	require.NotNil(t, run.WorkerID)
	assert.Equal(t, 3, *run.WorkerID)
}

func TestImportCancel(t *testing.T) {
	st := iotesting.NewMemStore()
	_, tr := newTracker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runner := &fakeRunner{fail: "abilities", hook: func(name string) {
		if name == "abilities" {
			cancel()
		}
	}}

	imp := ioorchestrate.New(st, runner, tr, ioorchestrate.OptQuiet(true))
	rep, err := imp.Import(ctx, allStages())
	require.Error(t, err)

	failed, ok := rep.Failed()
	require.True(t, ok)
	assert.Equal(t, lifecycle.StageCancelled, failed.Status)
	assert.Equal(t, schema.RunCancelled, st.Runs()[0].Status)
	assert.Equal(t, progress.StepCancelled, tr.State().Progress.CurrentStep)
	assert.Contains(t, tr.State().Progress.Message, "Stage abilities was cancelled")
}

func TestImportUnknownStage(t *testing.T) {
	_, tr := newTracker()
	imp := ioorchestrate.New(iotesting.NewMemStore(), &fakeRunner{}, tr)
	_, err := imp.Import(context.Background(), []string{"types", "berries"})
	require.Error(t, err)
}

func TestExecutorInline(t *testing.T) {
	up := iotesting.NewUpstream(t)
	iotesting.SeedDataset(up)
	cfg := iotesting.TestConfig(t)
	cfg.Import.BaseURL = up.BaseURL()
	st := iotesting.NewMemStore()
	_, tr := newTracker()

	ex := ioorchestrate.NewExecutor(cfg.Import, iosource.New(cfg.Import, nil), st, nil, tr)
	assert.False(t, ex.Parallel())

	imp := ioorchestrate.New(st, ex, tr,
		ioorchestrate.OptCheckPrerequisites(true), ioorchestrate.OptQuiet(true))
	rep, err := imp.Import(context.Background(), allStages())
	require.NoError(t, err)

	for _, s := range rep.Stages {
		assert.Equal(t, lifecycle.StageCompleted, s.Status, s.Stage)
		assert.Zero(t, s.Workers)
	}
	counts := st.RowCounts()
	assert.Equal(t, 3, counts["types"])
	assert.Equal(t, 2, counts["pokemon"])
	assert.Equal(t, 2, counts["evolutions"])
}

func TestExecutorParallel(t *testing.T) {
	up := iotesting.NewUpstream(t)
	iotesting.SeedDataset(up)
	cfg := iotesting.TestConfig(t)
	cfg.Import.BaseURL = up.BaseURL()
	cfg.Import.Threads = 2
	src := iosource.New(cfg.Import, nil)

	inline := iotesting.NewMemStore()
	_, tr := newTracker()
	seq := cfg.Import
	seq.Threads = 1
	ex := ioorchestrate.NewExecutor(seq, src, inline, nil, tr)
	_, err := ioorchestrate.New(inline, ex, tr, ioorchestrate.OptQuiet(true)).
		Import(context.Background(), allStages())
	require.NoError(t, err)

	st := iotesting.NewMemStore()
	board, parTr := newTracker()
	l := ioparallel.NewGoroutineLauncher(ioparallel.ImportWorker(cfg.Import, src, st, board))
	coord := ioparallel.New(l, board,
		ioparallel.OptQuiet(true), ioparallel.OptPoll(5*time.Millisecond))
	pex := ioorchestrate.NewExecutor(cfg.Import, src, st, coord, parTr)
	require.True(t, pex.Parallel())

	rep, err := ioorchestrate.New(st, pex, parTr, ioorchestrate.OptQuiet(true)).
		Import(context.Background(), allStages())
	require.NoError(t, err)

	assert.Equal(t, inline.RowCounts(), st.RowCounts())
	for _, s := range rep.Stages {
		assert.Equal(t, lifecycle.StageCompleted, s.Status, s.Stage)
		assert.Equal(t, s.Total, s.Success, s.Stage)
	}
	state := parTr.State()
	assert.True(t, state.IsComplete())
}
