/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/pokedb/internal/ioimport"
	"github.com/gnames/pokedb/internal/ioorchestrate"
	"github.com/gnames/pokedb/internal/ioparallel"
	"github.com/gnames/pokedb/internal/ioprogress"
	"github.com/gnames/pokedb/internal/iosource"
	"github.com/gnames/pokedb/internal/iostore"
	"github.com/gnames/pokedb/pkg/config"
	"github.com/gnames/pokedb/pkg/parallel"
	"github.com/gnames/pokedb/pkg/progress"
	"github.com/gnames/pokedb/pkg/store"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// stopPoll is how often import processes look for the stop flag.
const stopPoll = time.Second

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	var inProcess, purgeCache bool

	importCmd := &cobra.Command{
		Use:   "import <stage>|all",
		Short: "Import PokeAPI data into the database",
		Long: `Import one entity type, or all of them in dependency order:

  types, abilities, moves, items, species, evolution-chains, pokemon

Every item of a stage is fetched from the API and upserted by its API
id, so imports can be repeated safely. A failed item is counted and
skipped, a failed stage stops "import all".

With --threads N a stage is split into N slices, each imported by its
own worker process. Progress is published to Redis and can be followed
with "pokedb progress --watch" or stopped with "pokedb progress stop".

Examples:
  pokedb import types
  pokedb import pokemon --threads 4 --delay 50
  pokedb import all --skip-items --skip-evolution-chains
  pokedb import all --purge-cache`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: importArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runImport(cmd, args[0], inProcess, purgeCache)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	f := importCmd.Flags()
	f.IntP("delay", "d", 0, "pause between item requests, milliseconds")
	f.IntP("limit", "l", 0, "page size of list requests")
	f.IntP("threads", "t", 0, "number of worker processes per stage")
	f.Bool("no-cache", false, "do not use the local response cache")
	f.BoolVar(&purgeCache, "purge-cache", false, "empty the response cache before import")
	for _, st := range ioimport.Stages() {
		f.Bool("skip-"+st.Name(), false, "skip "+st.Name()+" (only with 'all')")
	}

	// Worker flags are set by the coordinator.
	f.Int("offset", 0, "first item of the worker slice")
	f.Int("max-items", 0, "size of the worker slice")
	f.Int("worker-id", -1, "id of the worker")
	f.String("run-id", "", "import run of the coordinator")
	f.BoolVar(&inProcess, "in-process", false, "run workers as goroutines")
	for _, name := range []string{
		"offset", "max-items", "worker-id", "run-id", "in-process",
	} {
		_ = f.MarkHidden(name)
	}

	return importCmd
}

func importArgs() []string {
	res := []string{progress.StageAll}
	for _, st := range ioimport.Stages() {
		res = append(res, st.Name())
	}
	return res
}

// stageNames resolves the argument of the import command.
func stageNames(arg string) ([]string, error) {
	if arg == progress.StageAll {
		return importArgs()[1:], nil
	}
	st, err := ioimport.ParseStage(arg)
	if err != nil {
		return nil, err
	}
	return []string{st.Name()}, nil
}

// importOptions converts flags that were set on the command line to
// config options.
func importOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	f := cmd.Flags()

	if v, ok := changedInt(cmd, "delay"); ok {
		res = append(res, config.OptImportDelay(v))
	}
	if v, ok := changedInt(cmd, "limit"); ok {
		res = append(res, config.OptImportLimit(v))
	}
	if v, ok := changedInt(cmd, "threads"); ok {
		res = append(res, config.OptImportThreads(v))
	}
	if noCache, _ := f.GetBool("no-cache"); noCache {
		res = append(res, config.OptImportUseCache(false))
	}

	var skip []string
	for _, st := range ioimport.Stages() {
		if v, _ := f.GetBool("skip-" + st.Name()); v {
			skip = append(skip, st.Name())
		}
	}
	if len(skip) > 0 {
		res = append(res, config.OptImportSkip(skip))
	}

	if id, ok := changedInt(cmd, "worker-id"); ok {
		offset, _ := f.GetInt("offset")
		maxItems, _ := f.GetInt("max-items")
		runID, _ := f.GetString("run-id")
		res = append(res,
			config.OptImportWorkerID(id),
			config.OptImportOffset(offset),
			config.OptImportMaxItems(maxItems),
			config.OptImportRunID(runID),
			config.OptImportQuiet(true),
		)
	}
	return res
}

func runImport(
	cmd *cobra.Command,
	arg string,
	inProcess, purgeCache bool,
) error {
	names, err := stageNames(arg)
	if err != nil {
		return err
	}
	cfg.Update(importOptions(cmd))
	all := arg == progress.StageAll
	worker := cfg.IsWorker()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	op, err := connect(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer op.Close()
	if err = requireSchema(ctx, op); err != nil {
		return err
	}
	gdb, err := op.GORM()
	if err != nil {
		return err
	}
	st := iostore.New(gdb)

	client, err := ioprogress.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer client.Close()
	ttl := time.Duration(cfg.Redis.TTL) * time.Second
	board := ioprogress.NewBoard(ioprogress.NewRedisStore(client, ttl), cfg.Redis.Prefix)

	if !worker {
		if err = board.Reset(ctx); err != nil {
			return err
		}
		if err = board.ClearStop(ctx); err != nil {
			return err
		}
	}
	ctx, cancel := ioprogress.WatchStop(ctx, board, stopPoll)
	defer cancel()

	var cache *iosource.Cache
	if cfg.Import.UseCache {
		path := config.ResponseCachePath(cfg.HomeDir)
		ttl := time.Duration(cfg.Import.CacheTTL) * time.Hour
		if cache, err = iosource.OpenCache(path, ttl); err != nil {
			return err
		}
		defer cache.Close()
		if purgeCache && !worker {
			if err = cache.Purge(ctx); err != nil {
				return err
			}
			gn.Info("Response cache is empty")
		}
	}
	src := iosource.New(cfg.Import, cache)

	if cfg.Import.MetricsAddr != "" && !worker {
		srv := serveMetrics(cfg.Import.MetricsAddr)
		defer srv.Close()
	}

	runID := uuid.New()
	orchOpts := []ioorchestrate.Option{
		ioorchestrate.OptQuiet(cfg.Import.Quiet),
	}
	var tr progress.Tracker
	var coord *ioparallel.Coordinator

	if worker {
		parent, perr := uuid.Parse(cfg.Import.RunID)
		if perr != nil {
			parent = uuid.Nil
			slog.Warn("Worker without a valid run id", "run_id", cfg.Import.RunID)
		}
		runID = ioparallel.WorkerRunID(parent, names[0], cfg.Import.WorkerID)
		orchOpts = append(orchOpts, ioorchestrate.OptParent(parent, cfg.Import.WorkerID))
		tr = ioprogress.NewTracker(board, cfg.Import.WorkerID, progress.Initial())
	} else {
		tr = ioprogress.NewTracker(board, -1, progress.Initial())
		orchOpts = append(orchOpts,
			ioorchestrate.OptSkip(cfg.Import.Skip),
			ioorchestrate.OptCheckPrerequisites(all),
		)
		if cfg.Import.Threads > 1 {
			if coord, err = newCoordinator(runID, src, st, board, inProcess); err != nil {
				return err
			}
		}
	}
	orchOpts = append(orchOpts, ioorchestrate.OptRunID(runID))

	ex := ioorchestrate.NewExecutor(cfg.Import, src, st, coord, tr)
	imp := ioorchestrate.New(st, ex, tr, orchOpts...)

	_, err = imp.Import(ctx, names)
	if err != nil {
		if ctx.Err() != nil {
			slog.Warn("Import cancelled", "run_id", runID)
		}
		return err
	}

	if all && !cfg.Import.Quiet {
		printSummary(ctx, gdb)
	}
	return nil
}

// newCoordinator creates the coordinator of a parallel import. Workers
// are subprocesses of pokedb unless inProcess is set.
func newCoordinator(
	runID uuid.UUID,
	src ioimport.Source,
	st store.Store,
	board *ioprogress.Board,
	inProcess bool,
) (*ioparallel.Coordinator, error) {
	var l parallel.Launcher
	if inProcess {
		l = ioparallel.NewGoroutineLauncher(
			ioparallel.ImportWorker(cfg.Import, src, st, board))
	} else {
		el, err := ioparallel.NewExecLauncher(cfg.Import, runID)
		if err != nil {
			return nil, err
		}
		l = el
	}
	return ioparallel.New(l, board, ioparallel.OptQuiet(cfg.Import.Quiet)), nil
}

// serveMetrics exposes Prometheus metrics on addr until the server is
// closed.
func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "addr", addr, "error", err)
		}
	}()
	slog.Info("Serving metrics", "addr", addr)
	return srv
}

// printSummary shows the number of rows in every table.
func printSummary(ctx context.Context, gdb *gorm.DB) {
	counts, err := iostore.TableCounts(ctx, gdb)
	if err != nil {
		slog.Warn("Cannot count rows", "error", err)
		return
	}
	gn.Info("<em>Database summary</em>")
	for _, c := range counts {
		fmt.Printf("  %-22s %12s\n", c.Table, humanize.Comma(c.Rows))
	}
}
