package ioorchestrate

import (
	"context"
	"log/slog"

	"github.com/gnames/gnfmt"
	"github.com/gnames/pokedb/internal/ioimport"
	"github.com/gnames/pokedb/internal/ioparallel"
	"github.com/gnames/pokedb/pkg/config"
	"github.com/gnames/pokedb/pkg/lifecycle"
	"github.com/gnames/pokedb/pkg/progress"
	"github.com/gnames/pokedb/pkg/store"
)

// StageRunner imports one stage and reports its counters.
type StageRunner interface {
	RunStage(ctx context.Context, st ioimport.Stage) (lifecycle.StageReport, error)
}

// Executor runs a stage in this process, or spreads it over workers
// when more than one thread is configured.
type Executor struct {
	cfg   config.ImportConfig
	src   ioimport.Source
	imp   *ioimport.Importer
	coord *ioparallel.Coordinator
	tr    progress.Tracker
}

// NewExecutor creates an Executor. A nil coord forces in-process
// imports.
func NewExecutor(
	cfg config.ImportConfig,
	src ioimport.Source,
	st store.Store,
	coord *ioparallel.Coordinator,
	tr progress.Tracker,
) *Executor {
	return &Executor{
		cfg:   cfg,
		src:   src,
		imp:   ioimport.New(cfg, src, st),
		coord: coord,
		tr:    tr,
	}
}

// Parallel returns true when stages are delegated to workers.
func (e *Executor) Parallel() bool {
	return e.coord != nil && e.cfg.Threads > 1 && e.cfg.WorkerID < 0
}

// RunStage imports the stage.
func (e *Executor) RunStage(
	ctx context.Context,
	st ioimport.Stage,
) (lifecycle.StageReport, error) {
	if e.Parallel() {
		return e.runParallel(ctx, st)
	}
	return e.runInline(ctx, st)
}

func (e *Executor) runInline(
	ctx context.Context,
	st ioimport.Stage,
) (lifecycle.StageReport, error) {
	res, err := e.imp.Run(ctx, st, e.tr)
	rep := lifecycle.StageReport{
		Stage:     st.Name(),
		Total:     res.Total,
		Processed: res.Processed,
		Success:   res.Success,
		Errors:    res.Errors,
		Duration:  gnfmt.TimeString(res.Duration.Seconds()),
	}
	return rep, err
}

func (e *Executor) runParallel(
	ctx context.Context,
	st ioimport.Stage,
) (lifecycle.StageReport, error) {
	name := st.Name()
	rep := lifecycle.StageReport{Stage: name}

	count, err := e.src.Count(ctx, st.Endpoint)
	if err != nil {
		if ctx.Err() != nil {
			return rep, ioimport.CancelledError(ctx.Err())
		}
		return rep, ioimport.StageError(name, ioimport.CountError(st.Endpoint, err))
	}
	rep.Total = ioimport.SliceSize(count, 0, e.cfg.MaxItems)

	if rep.Total == 0 {
		slog.Info("Nothing to import", "stage", name)
		if err = e.tr.Start(name, 0); err == nil {
			err = e.tr.Complete(name)
		}
		if err != nil {
			slog.Warn("Cannot update progress", "stage", name, "error", err)
		}
		return rep, nil
	}

	sum, err := e.coord.Run(ctx, name, rep.Total, e.cfg.Threads, e.tr)
	rep.Processed = sum.Processed
	rep.Success = sum.Success
	rep.Errors = sum.Errors
	rep.Workers = len(sum.Statuses)
	rep.Duration = gnfmt.TimeString(sum.Duration.Seconds())
	return rep, err
}
