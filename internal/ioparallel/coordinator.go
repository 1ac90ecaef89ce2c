// Package ioparallel spreads an import stage over workers, waits for
// all of them and merges their progress.
package ioparallel

import (
	"context"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/pokedb/internal/ioprogress"
	"github.com/gnames/pokedb/pkg/parallel"
	"github.com/gnames/pokedb/pkg/progress"
	"golang.org/x/sync/errgroup"
)

// Summary is the outcome of a parallel stage.
type Summary struct {
	Statuses  []parallel.ExitStatus
	Processed int
	Success   int
	Errors    int
	Duration  time.Duration
}

// Failed returns ids of workers that did not finish successfully.
func (s Summary) Failed() []int {
	var res []int
	for _, st := range s.Statuses {
		if !st.OK() {
			res = append(res, st.WorkerID)
		}
	}
	return res
}

// Coordinator starts the workers of a stage and joins them. A failed
// worker does not stop its siblings.
type Coordinator struct {
	launcher parallel.Launcher
	board    *ioprogress.Board
	poll     time.Duration
	quiet    bool
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// OptPoll sets how often worker progress is read.
func OptPoll(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.poll = d
		}
	}
}

// OptQuiet disables the progress bar.
func OptQuiet(b bool) Option {
	return func(c *Coordinator) {
		c.quiet = b
	}
}

// New creates a Coordinator.
func New(l parallel.Launcher, board *ioprogress.Board, opts ...Option) *Coordinator {
	res := &Coordinator{
		launcher: l,
		board:    board,
		poll:     500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Run splits total items of stage between threads workers and blocks
// until all of them exit. Worker counters are folded into tr when they
// are done. An error is returned if any worker failed or ctx was
// cancelled.
func (c *Coordinator) Run(
	ctx context.Context,
	stage string,
	total, threads int,
	tr progress.Tracker,
) (Summary, error) {
	start := time.Now()
	parts := parallel.Split(total, threads)
	res := Summary{Statuses: make([]parallel.ExitStatus, len(parts))}

	if err := c.board.ClearWorkers(ctx); err != nil {
		slog.Warn("Cannot clear old worker progress", "error", err)
	}
	if err := tr.Start(stage, total); err != nil {
		slog.Warn("Cannot update progress", "stage", stage, "error", err)
	}

	slog.Info("Starting workers", "stage", stage, "total", total, "workers", len(parts))
	if !c.quiet {
		gn.Info("Importing <em>%s</em> with %d workers", stage, len(parts))
	}

	var g errgroup.Group
	for i, p := range parts {
		g.Go(func() error {
			h, err := c.launcher.Launch(ctx, stage, p)
			if err != nil {
				res.Statuses[i] = parallel.ExitStatus{Partition: p, Code: -1, Err: err}
				return nil
			}
			res.Statuses[i] = c.launcher.Join(h)
			return nil
		})
	}

	stop := make(chan struct{})
	polled := make(chan struct{})
	go func() {
		defer close(polled)
		c.watch(stage, total, stop)
	}()

	_ = g.Wait()
	close(stop)
	<-polled

	workers, err := c.board.Workers(context.Background())
	if err != nil {
		slog.Warn("Cannot read worker progress", "stage", stage, "error", err)
	}
	for _, w := range workers {
		res.Processed += w.Progress.Current
		res.Success += w.SuccessCount
		res.Errors += w.ErrorCount
	}
	folded, err := c.board.FoldWorkers(context.Background(), tr.State())
	if err != nil {
		slog.Warn("Cannot fold worker progress", "stage", stage, "error", err)
	}
	if err = tr.Set(folded); err != nil {
		slog.Warn("Cannot update progress", "stage", stage, "error", err)
	}
	res.Duration = time.Since(start)

	for _, st := range res.Statuses {
		if !st.OK() {
			slog.Error("Worker failed", "stage", stage, "status", st.String())
		}
	}
	slog.Info("Workers finished",
		"stage", stage,
		"processed", res.Processed,
		"success", res.Success,
		"errors", res.Errors,
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)

	if ctx.Err() != nil {
		return res, CancelledError(ctx.Err())
	}
	if failed := res.Failed(); len(failed) > 0 {
		return res, WorkersFailedError(stage, failed)
	}
	if err = tr.Complete(stage); err != nil {
		slog.Warn("Cannot update progress", "stage", stage, "error", err)
	}
	return res, nil
}

// watch shows the aggregated progress of the workers until stop is
// closed.
func (c *Coordinator) watch(stage string, total int, stop <-chan struct{}) {
	var bar *pb.ProgressBar
	if !c.quiet {
		bar = pb.Full.Start(total)
		bar.Set("prefix", stage+": ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			rep, err := c.board.Report(context.Background())
			if err != nil {
				slog.Debug("Cannot read progress report", "error", err)
				continue
			}
			if bar != nil {
				bar.SetCurrent(int64(rep.Progress.Current))
			}
		}
	}
}
