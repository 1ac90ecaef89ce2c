package ioprogress_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gnames/pokedb/internal/ioprogress"
	"github.com/gnames/pokedb/pkg/config"
	"github.com/gnames/pokedb/pkg/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisStore(t *testing.T) (ioprogress.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cfg := config.New().Redis
	cfg.Addr = mr.Addr()

	client, err := ioprogress.NewRedisClient(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return ioprogress.NewRedisStore(client, time.Hour), mr
}

func stores(t *testing.T) map[string]ioprogress.Store {
	rs, _ := redisStore(t)
	return map[string]ioprogress.Store{
		"redis":  rs,
		"memory": ioprogress.NewMemStore(),
	}
}

func TestNewRedisClientError(t *testing.T) {
	cfg := config.New().Redis
	cfg.Addr = "127.0.0.1:1"
	_, err := ioprogress.NewRedisClient(context.Background(), cfg)
	assert.Error(t, err)
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			val, err := st.Get(ctx, "missing")
			require.NoError(t, err)
			assert.Nil(t, val)

			require.NoError(t, st.Set(ctx, "a:1", []byte("one")))
			require.NoError(t, st.Set(ctx, "a:2", []byte("two")))
			require.NoError(t, st.Set(ctx, "b:1", []byte("three")))

			val, err = st.Get(ctx, "a:1")
			require.NoError(t, err)
			assert.Equal(t, "one", string(val))

			keys, err := st.Keys(ctx, "a:*")
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"a:1", "a:2"}, keys)

			require.NoError(t, st.Del(ctx, "a:1", "a:2"))
			require.NoError(t, st.Del(ctx))
			keys, err = st.Keys(ctx, "a:*")
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestRedisTTL(t *testing.T) {
	st, mr := redisStore(t)
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, "k", []byte("v")))
	assert.Equal(t, time.Hour, mr.TTL("k"))

	mr.FastForward(2 * time.Hour)
	val, err := st.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestBoardKeys(t *testing.T) {
	b := ioprogress.NewBoard(ioprogress.NewMemStore(), "pokedb")
	assert.Equal(t, "pokedb:progress", b.MainKey())
	assert.Equal(t, "pokedb:progress:worker:3", b.WorkerKey(3))
	assert.Equal(t, "pokedb:stop", b.StopKey())
}

func TestBoardLoadMissing(t *testing.T) {
	b := ioprogress.NewBoard(ioprogress.NewMemStore(), "pokedb")
	s, err := b.Load(context.Background(), -1)
	require.NoError(t, err)
	assert.Equal(t, progress.Initial(), s)
}

func TestTrackerPublishes(t *testing.T) {
	ctx := context.Background()
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			b := ioprogress.NewBoard(st, "test")
			tr := ioprogress.NewTracker(b, -1, progress.Initial())

			require.NoError(t, tr.Start("types", 2))
			require.NoError(t, tr.Advance("fire"))
			require.NoError(t, tr.Success())
			require.NoError(t, tr.Advance("water"))
			require.NoError(t, tr.Success())
			require.NoError(t, tr.Complete(progress.StageAll))

			s, err := b.Load(ctx, -1)
			require.NoError(t, err)
			assert.Equal(t, tr.State(), s)
			assert.True(t, s.IsComplete())
			assert.Equal(t, 2, s.SuccessCount)
			assert.Equal(t, 2, s.Progress.Current)

			require.NoError(t, tr.Reset())
			s, err = b.Load(ctx, -1)
			require.NoError(t, err)
			assert.Equal(t, progress.Initial(), s)
		})
	}
}

func TestBoardAggregation(t *testing.T) {
	ctx := context.Background()
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			b := ioprogress.NewBoard(st, "test")
			main := ioprogress.NewTracker(b, -1, progress.Initial())
			require.NoError(t, main.Start("moves", 4))

			for id := range 2 {
				w := ioprogress.NewTracker(b, id, progress.Initial())
				require.NoError(t, w.Start("moves", 2))
				require.NoError(t, w.Advance(""))
				require.NoError(t, w.Success())
				require.NoError(t, w.Advance(""))
				require.NoError(t, w.Error("bad item"))
			}

			rep, err := b.Report(ctx)
			require.NoError(t, err)
			assert.Equal(t, 4, rep.Progress.Total)
			assert.Equal(t, 4, rep.Progress.Current)
			assert.Equal(t, 2, rep.SuccessCount)
			assert.Equal(t, 2, rep.ErrorCount)
			assert.Len(t, rep.Workers, 2)

			folded, err := b.FoldWorkers(ctx, main.State())
			require.NoError(t, err)
			assert.Equal(t, 2, folded.SuccessCount)

			workers, err := b.Workers(ctx)
			require.NoError(t, err)
			assert.Empty(t, workers)

			s, err := b.Load(ctx, -1)
			require.NoError(t, err)
			assert.Equal(t, 2, s.ErrorCount)

			require.NoError(t, b.Reset(ctx))
			rep, err = b.Report(ctx)
			require.NoError(t, err)
			assert.Equal(t, progress.Initial(), rep.State)
		})
	}
}

func TestWatchStop(t *testing.T) {
	b := ioprogress.NewBoard(ioprogress.NewMemStore(), "test")
	ctx, cancel := ioprogress.WatchStop(
		context.Background(), b, 10*time.Millisecond,
	)
	defer cancel()

	stop, err := b.StopRequested(context.Background())
	require.NoError(t, err)
	assert.False(t, stop)

	require.NoError(t, b.RequestStop(context.Background()))
	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled after stop request")
	}

	require.NoError(t, b.ClearStop(context.Background()))
	stop, err = b.StopRequested(context.Background())
	require.NoError(t, err)
	assert.False(t, stop)
}
