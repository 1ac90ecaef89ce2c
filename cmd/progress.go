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
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/pokedb/internal/ioprogress"
	"github.com/gnames/pokedb/internal/iostore"
	"github.com/gnames/pokedb/pkg/progress"
	"github.com/gnames/pokedb/pkg/schema"
	"github.com/spf13/cobra"
)

// getProgressCmd returns the progress command and its subcommands.
func getProgressCmd() *cobra.Command {
	var (
		watch    bool
		interval time.Duration
	)

	progressCmd := &cobra.Command{
		Use:   "progress",
		Short: "Show the progress of the current import",
		Long: `Print the progress of the current import as JSON. Counters of
running workers are added to the coordinator counters.

With --watch a one-line summary is printed every interval until the
import is complete.

Examples:
  pokedb progress
  pokedb progress --watch --interval 5s
  pokedb progress stop
  pokedb progress runs -n 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withBoard(func(ctx context.Context, b *ioprogress.Board) error {
				if watch {
					return watchProgress(ctx, b, os.Stdout, interval)
				}
				return showProgress(ctx, b, os.Stdout)
			})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	progressCmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"poll until the import is complete")
	progressCmd.Flags().DurationVarP(&interval, "interval", "i", 2*time.Second,
		"polling interval of --watch")

	progressCmd.AddCommand(
		&cobra.Command{
			Use:   "reset",
			Short: "Reset progress to the initial state",
			RunE: func(cmd *cobra.Command, args []string) error {
				err := withBoard(func(ctx context.Context, b *ioprogress.Board) error {
					if err := b.Reset(ctx); err != nil {
						return err
					}
					gn.Info("Progress was reset")
					return nil
				})
				if err != nil {
					gn.PrintErrorMessage(err)
				}
				return err
			},
		},
		&cobra.Command{
			Use:   "stop",
			Short: "Ask the running import to stop",
			Long: `Set the stop flag. The coordinator and all its workers check it
every second and cancel their work. The current stage is reported as
cancelled.`,
			RunE: func(cmd *cobra.Command, args []string) error {
				err := withBoard(func(ctx context.Context, b *ioprogress.Board) error {
					if err := b.RequestStop(ctx); err != nil {
						return err
					}
					gn.Info("Stop requested")
					return nil
				})
				if err != nil {
					gn.PrintErrorMessage(err)
				}
				return err
			},
		},
		getRunsCmd(),
	)

	return progressCmd
}

func getRunsCmd() *cobra.Command {
	var n int
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent import runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRuns(n)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	runsCmd.Flags().IntVarP(&n, "number", "n", 10, "number of runs to show")
	return runsCmd
}

// withBoard connects to the progress store and calls fn.
func withBoard(fn func(context.Context, *ioprogress.Board) error) error {
	ctx := context.Background()
	client, err := ioprogress.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer client.Close()

	ttl := time.Duration(cfg.Redis.TTL) * time.Second
	board := ioprogress.NewBoard(ioprogress.NewRedisStore(client, ttl), cfg.Redis.Prefix)
	return fn(ctx, board)
}

func showProgress(ctx context.Context, b *ioprogress.Board, w io.Writer) error {
	rep, err := b.Report(ctx)
	if err != nil {
		return err
	}
	enc := gnfmt.GNjson{Pretty: true}
	bs, err := enc.Encode(rep)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(bs))
	return err
}

func watchProgress(
	ctx context.Context,
	b *ioprogress.Board,
	w io.Writer,
	interval time.Duration,
) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		rep, err := b.Report(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, progressLine(rep))
		if rep.IsFinished() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// progressLine is a one-line summary of a report.
func progressLine(rep progress.Report) string {
	p := rep.Progress
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s/%s ok: %s, errors: %s",
		p.CurrentStep,
		humanize.Comma(int64(p.Current)),
		humanize.Comma(int64(p.Total)),
		humanize.Comma(int64(rep.SuccessCount)),
		humanize.Comma(int64(rep.ErrorCount)),
	)
	if len(rep.Workers) > 0 {
		fmt.Fprintf(&sb, ", workers: %d", len(rep.Workers))
	}
	if p.Message != "" {
		fmt.Fprintf(&sb, " | %s", p.Message)
	}
	return sb.String()
}

func runRuns(n int) error {
	ctx := context.Background()
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

	runs, err := iostore.New(gdb).RecentRuns(ctx, n)
	if err != nil {
		return err
	}
	return printRuns(os.Stdout, runs)
}

func printRuns(w io.Writer, runs []schema.ImportRun) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWORKER\tSTATUS\tSTEP\tPROCESSED\tOK\tERRORS\tSTARTED\tDURATION")
	for _, r := range runs {
		worker := "-"
		if r.WorkerID != nil {
			worker = fmt.Sprint(*r.WorkerID)
		}
		dur := "-"
		if r.CompletedAt != nil {
			dur = gnfmt.TimeString(r.CompletedAt.Sub(r.StartedAt).Seconds())
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d %s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID.String()[:8],
			worker,
			r.Status,
			r.CurrentStepIndex, r.TotalSteps, r.CurrentStep,
			humanize.Comma(int64(r.Processed)),
			humanize.Comma(int64(r.SuccessCount)),
			humanize.Comma(int64(r.ErrorCount)),
			r.StartedAt.Format(time.DateTime),
			dur,
		)
	}
	return tw.Flush()
}
