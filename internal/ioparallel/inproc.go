package ioparallel

import (
	"context"
	"fmt"

	"github.com/gnames/pokedb/internal/ioimport"
	"github.com/gnames/pokedb/internal/ioprogress"
	"github.com/gnames/pokedb/pkg/config"
	"github.com/gnames/pokedb/pkg/parallel"
	"github.com/gnames/pokedb/pkg/progress"
	"github.com/gnames/pokedb/pkg/store"
)

// WorkerFunc runs the partition of a stage.
type WorkerFunc func(ctx context.Context, stage string, p parallel.Partition) error

// GoroutineLauncher runs workers as goroutines of the current process.
// It keeps the partition and join semantics of ExecLauncher.
type GoroutineLauncher struct {
	run WorkerFunc
}

type goHandle struct {
	part parallel.Partition
	done chan error
}

func (h *goHandle) Partition() parallel.Partition {
	return h.part
}

// NewGoroutineLauncher creates a launcher that calls run for every
// worker.
func NewGoroutineLauncher(run WorkerFunc) *GoroutineLauncher {
	return &GoroutineLauncher{run: run}
}

// Launch starts the worker goroutine.
func (l *GoroutineLauncher) Launch(
	ctx context.Context,
	stage string,
	p parallel.Partition,
) (parallel.Handle, error) {
	h := &goHandle{part: p, done: make(chan error, 1)}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				h.done <- fmt.Errorf("worker %d panic: %v", p.WorkerID, r)
			}
		}()
		h.done <- l.run(ctx, stage, p)
	}()
	return h, nil
}

// Join waits for the worker goroutine.
func (l *GoroutineLauncher) Join(h parallel.Handle) parallel.ExitStatus {
	gh, ok := h.(*goHandle)
	if !ok {
		return parallel.ExitStatus{
			Partition: h.Partition(),
			Code:      -1,
			Err:       fmt.Errorf("unknown handle %T", h),
		}
	}
	res := parallel.ExitStatus{Partition: gh.part}
	if err := <-gh.done; err != nil {
		res.Code = 1
		res.Err = err
	}
	return res
}

// ImportWorker returns a WorkerFunc that imports the partition with
// its own importer and publishes progress under the worker key.
func ImportWorker(
	cfg config.ImportConfig,
	src ioimport.Source,
	st store.Store,
	board *ioprogress.Board,
) WorkerFunc {
	return func(ctx context.Context, stage string, p parallel.Partition) error {
		s, err := ioimport.ParseStage(stage)
		if err != nil {
			return err
		}
		wcfg := cfg
		wcfg.Threads = 1
		wcfg.WorkerID = p.WorkerID
		wcfg.Offset = p.Offset
		wcfg.MaxItems = p.MaxItems
		wcfg.Quiet = true

		tr := ioprogress.NewTracker(board, p.WorkerID, progress.Initial())
		_, err = ioimport.New(wcfg, src, st).Run(ctx, s, tr)
		return err
	}
}
