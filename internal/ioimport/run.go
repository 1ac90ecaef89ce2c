package ioimport

import (
	"context"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/pokedb/pkg/progress"
	"github.com/gnames/pokedb/pkg/store"
)

// Result summarises a stage run of one process.
type Result struct {
	Stage string
	Total int
	Tally
	Duration time.Duration
}

// Run imports one stage in this process. Offset and MaxItems of the
// import configuration restrict the walk to a worker slice.
func (imp *Importer) Run(
	ctx context.Context,
	st Stage,
	tr progress.Tracker,
) (Result, error) {
	start := time.Now()
	name := st.Name()
	res := Result{Stage: name}

	count, err := imp.src.Count(ctx, st.Endpoint)
	if err != nil {
		if ctx.Err() != nil {
			return res, CancelledError(ctx.Err())
		}
		return res, StageError(name, CountError(st.Endpoint, err))
	}
	res.Total = SliceSize(count, imp.cfg.Offset, imp.cfg.MaxItems)

	wk := walker{
		src:     imp.src,
		delay:   imp.delay(),
		tracker: tr,
		stage:   name,
	}
	wk.track(tr.Start(name, res.Total))

	slog.Info("Starting stage",
		"stage", name,
		"total", res.Total,
		"offset", imp.cfg.Offset,
		"worker_id", imp.cfg.WorkerID,
	)
	if !imp.cfg.Quiet {
		gn.Info("Importing <em>%s</em>: %s items",
			name, humanize.Comma(int64(res.Total)))
		wk.bar = pb.Full.Start(res.Total)
		wk.bar.Set("prefix", name+": ")
		wk.bar.Set(pb.CleanOnFinish, true)
		defer wk.bar.Finish()
	}

	pageSize := imp.cfg.Limit
	if pageSize <= 0 {
		pageSize = st.PageSize
	}
	w := Window{
		PageSize: pageSize,
		Offset:   imp.cfg.Offset,
		MaxItems: imp.cfg.MaxItems,
	}

	res.Tally, err = wk.walk(ctx, st.Endpoint, w, imp.itemFunc(st.Entity))
	res.Duration = time.Since(start)
	stageDuration.WithLabelValues(name).Observe(res.Duration.Seconds())
	if err != nil {
		if ctx.Err() != nil {
			return res, err
		}
		return res, StageError(name, err)
	}

	wk.track(tr.Complete(name))
	slog.Info("Stage complete",
		"stage", name,
		"processed", res.Processed,
		"success", res.Success,
		"errors", res.Errors,
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
	return res, nil
}

// SliceSize returns the number of items a walk starting at offset
// visits in a collection of count items, at most maxItems when
// maxItems is positive.
func SliceSize(count, offset, maxItems int) int {
	res := max(count-offset, 0)
	if maxItems > 0 {
		res = min(res, maxItems)
	}
	return res
}

func (imp *Importer) itemFunc(e store.Entity) ItemFunc {
	switch e {
	case store.Types:
		return imp.importType
	case store.Abilities:
		return imp.importAbility
	case store.Moves:
		return imp.importMove
	case store.Items:
		return imp.importItem
	case store.Species:
		return imp.importSpecies
	case store.EvolutionChains:
		return imp.importEvolutionChain
	case store.Pokemon:
		return imp.importPokemon
	}
	return func(context.Context, int) error {
		return UnknownStageError(e.String())
	}
}
