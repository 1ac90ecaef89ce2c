package ioprogress

import (
	"context"
	"strconv"
	"strings"

	"github.com/gnames/gnfmt"
	"github.com/gnames/pokedb/pkg/progress"
)

// Board reads and writes progress documents under one key prefix.
// The coordinator (or a single-process run) owns "<prefix>:progress",
// worker i owns "<prefix>:progress:worker:<i>".
type Board struct {
	store  Store
	prefix string
	enc    gnfmt.GNjson
}

// NewBoard creates a Board over a Store.
func NewBoard(store Store, prefix string) *Board {
	return &Board{store: store, prefix: prefix}
}

// MainKey is the key of the coordinator state.
func (b *Board) MainKey() string {
	return b.prefix + ":progress"
}

// WorkerKey is the key of the state of worker id.
func (b *Board) WorkerKey(id int) string {
	return b.MainKey() + ":worker:" + strconv.Itoa(id)
}

// StopKey is the key of the stop flag.
func (b *Board) StopKey() string {
	return b.prefix + ":stop"
}

func (b *Board) workerPattern() string {
	return b.MainKey() + ":worker:*"
}

// key returns the worker key for id >= 0, the main key otherwise.
func (b *Board) key(workerID int) string {
	if workerID < 0 {
		return b.MainKey()
	}
	return b.WorkerKey(workerID)
}

// Load returns the state written by workerID (-1 for the main state).
// A missing entry gives the initial state.
func (b *Board) Load(ctx context.Context, workerID int) (progress.State, error) {
	key := b.key(workerID)
	bs, err := b.store.Get(ctx, key)
	if err != nil {
		return progress.State{}, err
	}
	if bs == nil {
		return progress.Initial(), nil
	}
	var res progress.State
	if err = b.enc.Decode(bs, &res); err != nil {
		return progress.State{}, ReadError(key, err)
	}
	return res, nil
}

// Save publishes the state of workerID (-1 for the main state).
func (b *Board) Save(
	ctx context.Context,
	workerID int,
	s progress.State,
) error {
	key := b.key(workerID)
	bs, err := b.enc.Encode(s)
	if err != nil {
		return WriteError(key, err)
	}
	return b.store.Set(ctx, key, bs)
}

// Workers returns the states of all workers that published anything.
func (b *Board) Workers(ctx context.Context) (map[int]progress.State, error) {
	keys, err := b.store.Keys(ctx, b.workerPattern())
	if err != nil {
		return nil, err
	}

	res := make(map[int]progress.State, len(keys))
	for _, k := range keys {
		idx := strings.LastIndex(k, ":")
		id, err := strconv.Atoi(k[idx+1:])
		if err != nil {
			continue
		}
		s, err := b.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		res[id] = s
	}
	return res, nil
}

// Report aggregates the main state with all worker states.
func (b *Board) Report(ctx context.Context) (progress.Report, error) {
	main, err := b.Load(ctx, -1)
	if err != nil {
		return progress.Report{}, err
	}
	workers, err := b.Workers(ctx)
	if err != nil {
		return progress.Report{}, err
	}
	return progress.Aggregate(main, workers), nil
}

// FoldWorkers adds the counters of finished workers to main, saves the
// result as the main state and removes the worker entries.
func (b *Board) FoldWorkers(
	ctx context.Context,
	main progress.State,
) (progress.State, error) {
	workers, err := b.Workers(ctx)
	if err != nil {
		return main, err
	}
	res := progress.Fold(main, workers)
	if err = b.Save(ctx, -1, res); err != nil {
		return main, err
	}
	if err = b.ClearWorkers(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// Reset brings the board back to the initial "ready" state.
func (b *Board) Reset(ctx context.Context) error {
	if err := b.ClearWorkers(ctx); err != nil {
		return err
	}
	return b.Save(ctx, -1, progress.Initial())
}

// ClearWorkers removes all worker entries.
func (b *Board) ClearWorkers(ctx context.Context) error {
	keys, err := b.store.Keys(ctx, b.workerPattern())
	if err != nil {
		return err
	}
	return b.store.Del(ctx, keys...)
}

// RequestStop sets the stop flag.
func (b *Board) RequestStop(ctx context.Context) error {
	return b.store.Set(ctx, b.StopKey(), []byte("1"))
}

// StopRequested reports whether the stop flag is set.
func (b *Board) StopRequested(ctx context.Context) (bool, error) {
	bs, err := b.store.Get(ctx, b.StopKey())
	if err != nil {
		return false, err
	}
	return bs != nil, nil
}

// ClearStop removes the stop flag. A new run calls it before starting.
func (b *Board) ClearStop(ctx context.Context) error {
	return b.store.Del(ctx, b.StopKey())
}
