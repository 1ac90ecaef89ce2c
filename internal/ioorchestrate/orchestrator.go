// Package ioorchestrate runs import stages in order, records every
// run in the import_runs table and reports the outcome of each stage.
package ioorchestrate

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/pokedb/internal/ioimport"
	"github.com/gnames/pokedb/pkg/lifecycle"
	"github.com/gnames/pokedb/pkg/progress"
	"github.com/gnames/pokedb/pkg/schema"
	"github.com/gnames/pokedb/pkg/store"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// orchestrator implements lifecycle.Importer.
type orchestrator struct {
	st          store.Store
	runner      StageRunner
	tr          progress.Tracker
	runID       uuid.UUID
	parentID    *uuid.UUID
	workerID    *int
	skip        map[string]bool
	checkPrereq bool
	quiet       bool
}

// Option configures the orchestrator.
type Option func(*orchestrator)

// OptRunID sets the id of the import run record.
func OptRunID(id uuid.UUID) Option {
	return func(o *orchestrator) {
		if id != uuid.Nil {
			o.runID = id
		}
	}
}

// OptParent marks the run as a worker of the parent run.
func OptParent(parent uuid.UUID, workerID int) Option {
	return func(o *orchestrator) {
		o.parentID = &parent
		o.workerID = &workerID
	}
}

// OptSkip sets stages that are reported as skipped without running.
func OptSkip(stages []string) Option {
	return func(o *orchestrator) {
		for _, s := range stages {
			o.skip[s] = true
		}
	}
}

// OptCheckPrerequisites enables skipping of stages whose required
// tables are empty.
func OptCheckPrerequisites(b bool) Option {
	return func(o *orchestrator) {
		o.checkPrereq = b
	}
}

// OptQuiet disables terminal output.
func OptQuiet(b bool) Option {
	return func(o *orchestrator) {
		o.quiet = b
	}
}

// New creates an Importer that runs stages with runner and records
// runs in st.
func New(
	st store.Store,
	runner StageRunner,
	tr progress.Tracker,
	opts ...Option,
) lifecycle.Importer {
	res := &orchestrator{
		st:     st,
		runner: runner,
		tr:     tr,
		runID:  uuid.New(),
		skip:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Import runs the named stages in the given order and stops at the
// first failed one.
func (o *orchestrator) Import(
	ctx context.Context,
	names []string,
) (lifecycle.Report, error) {
	rep := lifecycle.Report{RunID: o.runID}
	stages := make([]ioimport.Stage, 0, len(names))
	for _, n := range names {
		st, err := ioimport.ParseStage(n)
		if err != nil {
			return rep, err
		}
		stages = append(stages, st)
	}

	start := time.Now()
	run := &schema.ImportRun{
		ID:         o.runID,
		ParentID:   o.parentID,
		WorkerID:   o.workerID,
		Status:     schema.RunRunning,
		TotalSteps: len(stages),
		StartedAt:  start.UTC(),
	}
	o.save(ctx, run, rep)

	slog.Info("Starting import", "run_id", o.runID, "stages", names)

	for i, st := range stages {
		name := st.Name()
		run.CurrentStep = name
		run.CurrentStepIndex = i + 1

		reason, skip, err := o.skipReason(ctx, st)
		if err != nil {
			rep.Stages = append(rep.Stages,
				lifecycle.StageReport{Stage: name, Status: lifecycle.StageFailed})
			return o.fail(ctx, run, rep, start, name, err)
		}
		if skip {
			slog.Warn("Skipping stage", "stage", name, "reason", reason)
			if !o.quiet {
				gn.Warn("Skipping <em>%s</em>: %s", name, reason)
			}
			rep.Stages = append(rep.Stages, lifecycle.StageReport{
				Stage:  name,
				Status: lifecycle.StageSkipped,
				Reason: reason,
			})
			continue
		}

		o.save(ctx, run, rep)
		sr, err := o.runner.RunStage(ctx, st)
		sr.Stage = name
		run.Total += sr.Total
		run.Processed += sr.Processed
		run.SuccessCount += sr.Success
		run.ErrorCount += sr.Errors

		if err != nil {
			sr.Status = lifecycle.StageFailed
			if ctx.Err() != nil {
				sr.Status = lifecycle.StageCancelled
			}
			rep.Stages = append(rep.Stages, sr)
			return o.fail(ctx, run, rep, start, name, err)
		}
		sr.Status = lifecycle.StageCompleted
		rep.Stages = append(rep.Stages, sr)
	}

	rep.Duration = time.Since(start)
	now := time.Now().UTC()
	run.Status = schema.RunCompleted
	run.CompletedAt = &now
	o.save(ctx, run, rep)

	if err := o.tr.Complete(progress.StageAll); err != nil {
		slog.Warn("Cannot update progress", "error", err)
	}

	processed, success, errs := rep.Totals()
	slog.Info("Import complete",
		"run_id", o.runID,
		"processed", processed,
		"success", success,
		"errors", errs,
		"duration", gnfmt.TimeString(rep.Duration.Seconds()),
	)
	if !o.quiet {
		gn.Info(`Import complete
Items processed: %s, imported: %s, failed: %s.
Elapsed time: <em>%s</em>`,
			humanize.Comma(int64(processed)),
			humanize.Comma(int64(success)),
			humanize.Comma(int64(errs)),
			gnfmt.TimeString(rep.Duration.Seconds()),
		)
	}
	return rep, nil
}

// skipReason tells if a stage must not run.
func (o *orchestrator) skipReason(
	ctx context.Context,
	st ioimport.Stage,
) (string, bool, error) {
	if o.skip[st.Name()] {
		return "skipped by request", true, nil
	}
	if !o.checkPrereq {
		return "", false, nil
	}

	var missing []string
	for _, e := range st.Requires {
		n, err := o.st.Count(ctx, e)
		if err != nil {
			return "", false, err
		}
		if n == 0 {
			missing = append(missing, e.String())
		}
	}
	if len(missing) > 0 {
		return "no " + strings.Join(missing, ", ") + " in the database", true, nil
	}
	return "", false, nil
}

func (o *orchestrator) fail(
	ctx context.Context,
	run *schema.ImportRun,
	rep lifecycle.Report,
	start time.Time,
	stage string,
	err error,
) (lifecycle.Report, error) {
	rep.Duration = time.Since(start)
	now := time.Now().UTC()
	msg := err.Error()
	run.Status = schema.RunFailed
	if ctx.Err() != nil {
		run.Status = schema.RunCancelled
	}
	run.ErrorMessage = &msg
	run.CompletedAt = &now
	o.save(ctx, run, rep)

	cancelled := run.Status == schema.RunCancelled
	if trErr := o.tr.Fail(stage, cancelled, msg); trErr != nil {
		slog.Warn("Cannot update progress", "error", trErr)
	}

	slog.Error("Import stopped",
		"run_id", o.runID,
		"stage", stage,
		"status", run.Status,
		"error", err,
	)
	return rep, StageFailedError(stage, err)
}

// save writes the run record. It survives cancellation of ctx, so a
// cancelled run is still recorded.
func (o *orchestrator) save(
	ctx context.Context,
	run *schema.ImportRun,
	rep lifecycle.Report,
) {
	details, err := gnfmt.GNjson{}.Encode(rep.Stages)
	if err != nil {
		slog.Warn("Cannot encode stage details", "error", err)
	} else {
		run.StepDetails = datatypes.JSON(details)
	}

	if err = o.st.SaveRun(context.WithoutCancel(ctx), run); err != nil {
		slog.Warn("Cannot save import run", "run_id", run.ID, "error", err)
	}
}
