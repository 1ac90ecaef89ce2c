package progress_test

import (
	"testing"

	"github.com/gnames/pokedb/pkg/progress"
	"github.com/stretchr/testify/assert"
)

func TestInitial(t *testing.T) {
	s := progress.Initial()
	assert.Equal(t, progress.StepStart, s.Progress.CurrentStep)
	assert.Equal(t, "Ready to import", s.Progress.Message)
	assert.Zero(t, s.SuccessCount)
	assert.Zero(t, s.ErrorCount)
	assert.False(t, s.IsComplete())
}

func TestTransitions(t *testing.T) {
	s := progress.Initial()
	s.Start("types", 2)
	assert.Equal(t, "types", s.Progress.CurrentStep)
	assert.Equal(t, 2, s.Progress.Total)
	assert.Equal(t, 0, s.Progress.Current)
	assert.Equal(t, "Starting types...", s.Progress.Message)

	s.Advance("Imported type fire")
	s.Success()
	s.Advance("")
	s.Error("type 11 failed")
	assert.Equal(t, 2, s.Progress.Current)
	assert.Equal(t, "type 11 failed", s.Progress.Message)
	assert.Equal(t, 1, s.SuccessCount)
	assert.Equal(t, 1, s.ErrorCount)

	s.Complete("types")
	assert.Equal(t, "Completed types", s.Progress.Message)
	assert.False(t, s.IsComplete())

	s.Start("moves", 5)
	assert.Equal(t, 0, s.Progress.Current)
	assert.Equal(t, 1, s.SuccessCount, "counters survive a new stage")

	s.Complete(progress.StageAll)
	assert.True(t, s.IsComplete())
	assert.Equal(t, "Import complete!", s.Progress.Message)
}

func TestFail(t *testing.T) {
	tests := []struct {
		msg       string
		cancelled bool
		step      string
		message   string
	}{
		{"failed", false, progress.StepFailed, "Stage moves failed: upstream is down"},
		{"cancelled", true, progress.StepCancelled, "Stage moves was cancelled: upstream is down"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			s := progress.Initial()
			s.Start("moves", 3)
			s.Advance("Processing tackle")
			s.Success()
			s.Fail("moves", v.cancelled, "upstream is down")

			assert.Equal(t, v.step, s.Progress.CurrentStep)
			assert.Equal(t, v.message, s.Progress.Message)
			assert.Equal(t, 1, s.Progress.Current)
			assert.Equal(t, 1, s.SuccessCount)
			assert.True(t, s.IsFinished())
			assert.False(t, s.IsComplete())
		})
	}
}

func TestIsFinished(t *testing.T) {
	s := progress.Initial()
	assert.False(t, s.IsFinished())
	s.Start("types", 1)
	assert.False(t, s.IsFinished())
	s.Complete("types")
	assert.False(t, s.IsFinished())
	s.Complete(progress.StageAll)
	assert.True(t, s.IsFinished())
}

func TestAggregate(t *testing.T) {
	main := progress.Initial()
	main.Start("moves", 10)

	w0 := progress.Initial()
	w0.Start("moves", 5)
	for range 4 {
		w0.Advance("")
		w0.Success()
	}
	w0.Advance("")
	w0.Error("")

	w1 := progress.Initial()
	w1.Start("moves", 5)
	for range 3 {
		w1.Advance("")
		w1.Success()
	}

	tests := []struct {
		name    string
		workers map[int]progress.State
		current int
		success int
		errors  int
		nWork   int
	}{
		{"no workers", nil, 0, 0, 0, 0},
		{"one worker", map[int]progress.State{0: w0}, 5, 4, 1, 1},
		{"two workers", map[int]progress.State{1: w1, 0: w0}, 8, 7, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := progress.Aggregate(main, tt.workers)
			assert.Equal(t, 10, rep.Progress.Total)
			assert.Equal(t, tt.current, rep.Progress.Current)
			assert.Equal(t, tt.success, rep.SuccessCount)
			assert.Equal(t, tt.errors, rep.ErrorCount)
			assert.Len(t, rep.Workers, tt.nWork)
			if tt.nWork == 2 {
				assert.Equal(t, 0, rep.Workers[0].ID)
				assert.Equal(t, 1, rep.Workers[1].ID)
			}
		})
	}

	folded := progress.Fold(main, map[int]progress.State{0: w0, 1: w1})
	assert.Equal(t, 7, folded.SuccessCount)
	assert.Equal(t, "moves", folded.Progress.CurrentStep)
}
