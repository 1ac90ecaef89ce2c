package ioimport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/pokedb/pkg/pokeapi"
	"github.com/gnames/pokedb/pkg/progress"
)

// Window selects the part of a collection to walk.
type Window struct {
	// PageSize is the limit of each list request.
	PageSize int

	// Offset of the first item.
	Offset int

	// MaxItems stops the walk after this many items, 0 means all.
	MaxItems int
}

// Tally counts item outcomes of a walk.
type Tally struct {
	Processed int
	Success   int
	Errors    int
}

// ItemFunc fetches and persists the resource with the given id.
type ItemFunc func(ctx context.Context, id int) error

type walker struct {
	src     Source
	delay   time.Duration
	tracker progress.Tracker
	stage   string
	bar     *pb.ProgressBar
}

// Walk pages through the collection of st and calls onItem for every
// listed resource. A failed item is counted and the walk goes on. The
// walk stops on an empty page, after w.MaxItems items, when a page
// cannot be fetched or when ctx is cancelled.
func (imp *Importer) Walk(
	ctx context.Context,
	st Stage,
	w Window,
	tr progress.Tracker,
	onItem ItemFunc,
) (Tally, error) {
	wk := walker{
		src:     imp.src,
		delay:   imp.delay(),
		tracker: tr,
		stage:   st.Name(),
	}
	return wk.walk(ctx, st.Endpoint, w, onItem)
}

func (wk *walker) walk(
	ctx context.Context,
	endpoint string,
	w Window,
	onItem ItemFunc,
) (Tally, error) {
	var res Tally
	if w.PageSize <= 0 {
		w.PageSize = 100
	}
	offset := w.Offset

	for {
		if err := ctx.Err(); err != nil {
			return res, CancelledError(err)
		}
		if w.MaxItems > 0 && res.Processed >= w.MaxItems {
			return res, nil
		}

		page, err := wk.src.FetchPage(ctx, endpoint, w.PageSize, offset)
		if err != nil {
			if ctx.Err() != nil {
				return res, CancelledError(ctx.Err())
			}
			return res, PageError(endpoint, offset, err)
		}
		if len(page.Results) == 0 {
			return res, nil
		}

		for _, item := range page.Results {
			if w.MaxItems > 0 && res.Processed >= w.MaxItems {
				return res, nil
			}
			if err = ctx.Err(); err != nil {
				return res, CancelledError(err)
			}

			res.Processed++
			err = wk.attempt(ctx, item, onItem)
			if err != nil && ctx.Err() != nil {
				return res, CancelledError(ctx.Err())
			}
			wk.record(item, err, &res)

			if err = wk.sleep(ctx); err != nil {
				return res, CancelledError(err)
			}
		}
		offset += len(page.Results)
	}
}

func (wk *walker) attempt(
	ctx context.Context,
	item pokeapi.NamedResource,
	onItem ItemFunc,
) error {
	id, err := pokeapi.ExtractID(item.URL)
	if err != nil {
		return err
	}
	return onItem(ctx, id)
}

func (wk *walker) record(item pokeapi.NamedResource, err error, res *Tally) {
	if wk.bar != nil {
		wk.bar.Increment()
	}
	wk.track(wk.tracker.Advance(fmt.Sprintf("Processing %s", item.Name)))

	if err != nil {
		res.Errors++
		itemsTotal.WithLabelValues(wk.stage, "error").Inc()
		slog.Warn("Cannot import item",
			"stage", wk.stage,
			"name", item.Name,
			"url", item.URL,
			"error", err,
		)
		wk.track(wk.tracker.Error(fmt.Sprintf("%s: %v", item.Name, err)))
		return
	}

	res.Success++
	itemsTotal.WithLabelValues(wk.stage, "success").Inc()
	wk.track(wk.tracker.Success())
}

func (wk *walker) sleep(ctx context.Context) error {
	if wk.delay <= 0 {
		return nil
	}
	t := time.NewTimer(wk.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// track logs progress store failures, they never stop an import.
func (wk *walker) track(err error) {
	if err != nil {
		slog.Warn("Cannot update progress", "stage", wk.stage, "error", err)
	}
}
